package ladder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanChallenge(t *testing.T) {
	tests := []struct {
		name            string
		challengerLevel int
		challengedLevel int
		allowed         bool
	}{
		{"same level 2", 2, 2, true},
		{"same level 3", 3, 3, true},
		{"same level 4", 4, 4, true},
		{"one level above from 2", 2, 1, true},
		{"one level above from 3", 3, 2, true},
		{"one level above from 4", 4, 3, true},
		{"one level below from 2", 2, 3, false},
		{"one level below from 3", 3, 4, false},
		{"two levels above from 3", 3, 1, false},
		{"two levels above from 4", 4, 2, false},
		{"base challenges top", 4, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanChallenge(tt.challengerLevel, tt.challengedLevel))
		})
	}
}

func TestClampLevel(t *testing.T) {
	assert.Equal(t, 1, ClampLevel(0))
	assert.Equal(t, 1, ClampLevel(1))
	assert.Equal(t, 3, ClampLevel(3))
	assert.Equal(t, 4, ClampLevel(4))
	assert.Equal(t, 4, ClampLevel(5))
}

func TestEvaluateMatch_UpsetSwap(t *testing.T) {
	// Level 3 winner beats level 2 loser: they trade levels.
	transitions := EvaluateMatch(3, 2, nil, nil)

	require.Len(t, transitions, 2)

	assert.Equal(t, RoleWinner, transitions[0].Role)
	assert.Equal(t, 3, transitions[0].OldLevel)
	assert.Equal(t, 2, transitions[0].NewLevel)
	assert.Equal(t, ReasonVictoryPromotion, transitions[0].Reason)

	assert.Equal(t, RoleLoser, transitions[1].Role)
	assert.Equal(t, 2, transitions[1].OldLevel)
	assert.Equal(t, 3, transitions[1].NewLevel)
	assert.Equal(t, ReasonDefeatDemotion, transitions[1].Reason)
}

func TestEvaluateMatch_BeatingLowerRankedMovesNobody(t *testing.T) {
	// Level 2 winner beats level 3 loser: no transitions at all, regardless
	// of either player's recent run.
	winnerHistory := []Result{
		{Won: true, PlayerLevel: 2, OpponentLevel: 3},
		{Won: true, PlayerLevel: 2, OpponentLevel: 2},
	}
	loserHistory := []Result{
		{Won: false, PlayerLevel: 3, OpponentLevel: 2},
		{Won: false, PlayerLevel: 3, OpponentLevel: 3},
	}

	assert.Empty(t, EvaluateMatch(2, 3, winnerHistory, loserHistory))
}

func TestEvaluateMatch_StreakPromotion(t *testing.T) {
	// Two straight same-level wins at level 3 promote the winner.
	winnerHistory := []Result{
		{Won: true, PlayerLevel: 3, OpponentLevel: 3},
		{Won: true, PlayerLevel: 3, OpponentLevel: 3},
	}

	transitions := EvaluateMatch(3, 3, winnerHistory, nil)

	require.Len(t, transitions, 1)
	assert.Equal(t, RoleWinner, transitions[0].Role)
	assert.Equal(t, 3, transitions[0].OldLevel)
	assert.Equal(t, 2, transitions[0].NewLevel)
	assert.Equal(t, ReasonVictoryPromotion, transitions[0].Reason)
}

func TestEvaluateMatch_StreakPromotionNeedsSameLevelOpponents(t *testing.T) {
	// The older win was against a level-2 opponent, so no promotion.
	winnerHistory := []Result{
		{Won: true, PlayerLevel: 3, OpponentLevel: 3},
		{Won: true, PlayerLevel: 3, OpponentLevel: 2},
	}

	assert.Empty(t, EvaluateMatch(3, 3, winnerHistory, nil))
}

func TestEvaluateMatch_SingleWinIsNotAStreak(t *testing.T) {
	winnerHistory := []Result{
		{Won: true, PlayerLevel: 3, OpponentLevel: 3},
	}

	assert.Empty(t, EvaluateMatch(3, 3, winnerHistory, nil))
}

func TestEvaluateMatch_StreakBrokenByLoss(t *testing.T) {
	winnerHistory := []Result{
		{Won: true, PlayerLevel: 3, OpponentLevel: 3},
		{Won: false, PlayerLevel: 3, OpponentLevel: 3},
	}

	assert.Empty(t, EvaluateMatch(3, 3, winnerHistory, nil))
}

func TestEvaluateMatch_StreakDemotion(t *testing.T) {
	loserHistory := []Result{
		{Won: false, PlayerLevel: 2, OpponentLevel: 2},
		{Won: false, PlayerLevel: 2, OpponentLevel: 2},
	}

	transitions := EvaluateMatch(2, 2, nil, loserHistory)

	require.Len(t, transitions, 1)
	assert.Equal(t, RoleLoser, transitions[0].Role)
	assert.Equal(t, 2, transitions[0].OldLevel)
	assert.Equal(t, 3, transitions[0].NewLevel)
	assert.Equal(t, ReasonConsecutiveDefeats, transitions[0].Reason)
}

func TestEvaluateMatch_PromotionAndDemotionTogether(t *testing.T) {
	// Same match can promote the winner and demote the loser.
	winnerHistory := []Result{
		{Won: true, PlayerLevel: 3, OpponentLevel: 3},
		{Won: true, PlayerLevel: 3, OpponentLevel: 3},
	}
	loserHistory := []Result{
		{Won: false, PlayerLevel: 3, OpponentLevel: 3},
		{Won: false, PlayerLevel: 3, OpponentLevel: 3},
	}

	transitions := EvaluateMatch(3, 3, winnerHistory, loserHistory)

	require.Len(t, transitions, 2)
	assert.Equal(t, RoleWinner, transitions[0].Role)
	assert.Equal(t, 2, transitions[0].NewLevel)
	assert.Equal(t, RoleLoser, transitions[1].Role)
	assert.Equal(t, 4, transitions[1].NewLevel)
}

func TestEvaluateMatch_NoPromotionPastTop(t *testing.T) {
	winnerHistory := []Result{
		{Won: true, PlayerLevel: 1, OpponentLevel: 1},
		{Won: true, PlayerLevel: 1, OpponentLevel: 1},
	}

	assert.Empty(t, EvaluateMatch(1, 1, winnerHistory, nil))
}

func TestEvaluateMatch_NoDemotionPastBase(t *testing.T) {
	loserHistory := []Result{
		{Won: false, PlayerLevel: 4, OpponentLevel: 4},
		{Won: false, PlayerLevel: 4, OpponentLevel: 4},
	}

	assert.Empty(t, EvaluateMatch(4, 4, nil, loserHistory))
}
