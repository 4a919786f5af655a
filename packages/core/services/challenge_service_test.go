package services

import (
	"testing"
	"time"

	"core/ladder"
	"core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateChallenge_Direct(t *testing.T) {
	db, _, challengeService := newTestServices(t)
	challenger := createTestPlayer(t, db, "alice", 3)
	challenged := createTestPlayer(t, db, "bob", 2)

	challenge, err := challengeService.CreateChallenge(challenger.ID, challenged.ID, models.ChallengeKindDirect, nil)
	require.NoError(t, err)

	assert.Equal(t, ladder.StatusPending, challenge.Status)
	assert.Equal(t, ladder.AcceptanceAccepted, challenge.ChallengerAcceptance)
	assert.Equal(t, ladder.AcceptancePending, challenge.ChallengedAcceptance)
	assert.WithinDuration(t, time.Now().Add(models.ChallengeResponseWindow), challenge.ExpiresAt, 5*time.Second)
	assert.Nil(t, challenge.AcceptedAt)
}

func TestCreateChallenge_Suggestion(t *testing.T) {
	db, _, challengeService := newTestServices(t)
	challenger := createTestPlayer(t, db, "alice", 3)
	challenged := createTestPlayer(t, db, "bob", 3)
	organizer := createTestPlayer(t, db, "carol", 1)

	challenge, err := challengeService.CreateChallenge(challenger.ID, challenged.ID, models.ChallengeKindSuggestion, &organizer.ID)
	require.NoError(t, err)

	// A suggestion binds neither side until they answer.
	assert.Equal(t, ladder.AcceptancePending, challenge.ChallengerAcceptance)
	assert.Equal(t, ladder.AcceptancePending, challenge.ChallengedAcceptance)
	require.NotNil(t, challenge.SuggestedByID)
	assert.Equal(t, organizer.ID, *challenge.SuggestedByID)
}

func TestCreateChallenge_InvalidParticipants(t *testing.T) {
	db, _, challengeService := newTestServices(t)
	alice := createTestPlayer(t, db, "alice", 3)
	inactive := createTestPlayer(t, db, "ghost", 3)
	require.NoError(t, db.Model(inactive).Update("active", false).Error)

	_, err := challengeService.CreateChallenge(alice.ID, alice.ID, models.ChallengeKindDirect, nil)
	assert.ErrorIs(t, err, ErrInvalidParticipants)

	_, err = challengeService.CreateChallenge(alice.ID, 9999, models.ChallengeKindDirect, nil)
	assert.ErrorIs(t, err, ErrInvalidParticipants)

	_, err = challengeService.CreateChallenge(alice.ID, inactive.ID, models.ChallengeKindDirect, nil)
	assert.ErrorIs(t, err, ErrInvalidParticipants)
}

func TestCanChallenge(t *testing.T) {
	db, _, challengeService := newTestServices(t)
	level3 := createTestPlayer(t, db, "alice", 3)
	level2 := createTestPlayer(t, db, "bob", 2)
	level1 := createTestPlayer(t, db, "carol", 1)

	resp, err := challengeService.CanChallenge(level3.ID, level2.ID)
	require.NoError(t, err)
	assert.True(t, resp.Allowed)

	resp, err = challengeService.CanChallenge(level3.ID, level1.ID)
	require.NoError(t, err)
	assert.False(t, resp.Allowed)
	assert.NotEmpty(t, resp.Reason)

	resp, err = challengeService.CanChallenge(level3.ID, level3.ID)
	require.NoError(t, err)
	assert.False(t, resp.Allowed)
}

func TestRespond_RejectClosesChallenge(t *testing.T) {
	db, _, challengeService := newTestServices(t)
	challenger := createTestPlayer(t, db, "alice", 3)
	challenged := createTestPlayer(t, db, "bob", 2)

	challenge, err := challengeService.CreateChallenge(challenger.ID, challenged.ID, models.ChallengeKindDirect, nil)
	require.NoError(t, err)

	challenge, err = challengeService.Respond(challenge.ID, challenged.ID, DecisionReject)
	require.NoError(t, err)
	assert.Equal(t, ladder.StatusRejected, challenge.Status)

	// A rejected challenge takes no further answers.
	_, err = challengeService.Respond(challenge.ID, challenger.ID, DecisionAccept)
	assert.ErrorIs(t, err, ErrAlreadyDecided)
}

func TestRespond_SuggestionNeedsBothSides(t *testing.T) {
	db, _, challengeService := newTestServices(t)
	challenger := createTestPlayer(t, db, "alice", 3)
	challenged := createTestPlayer(t, db, "bob", 3)

	challenge, err := challengeService.CreateChallenge(challenger.ID, challenged.ID, models.ChallengeKindSuggestion, nil)
	require.NoError(t, err)

	challenge, err = challengeService.Respond(challenge.ID, challenger.ID, DecisionAccept)
	require.NoError(t, err)
	assert.Equal(t, ladder.StatusPending, challenge.Status)
	assert.Nil(t, challenge.AcceptedAt)

	challenge, err = challengeService.Respond(challenge.ID, challenged.ID, DecisionAccept)
	require.NoError(t, err)
	assert.Equal(t, ladder.StatusAccepted, challenge.Status)
	require.NotNil(t, challenge.AcceptedAt)

	// Acceptance restarts the clock as the window to play the match.
	assert.WithinDuration(t, time.Now().Add(models.ChallengePlayWindow), challenge.ExpiresAt, 5*time.Second)
}

func TestRespond_NotAParticipant(t *testing.T) {
	db, _, challengeService := newTestServices(t)
	challenger := createTestPlayer(t, db, "alice", 3)
	challenged := createTestPlayer(t, db, "bob", 2)
	outsider := createTestPlayer(t, db, "mallory", 2)

	challenge, err := challengeService.CreateChallenge(challenger.ID, challenged.ID, models.ChallengeKindDirect, nil)
	require.NoError(t, err)

	_, err = challengeService.Respond(challenge.ID, outsider.ID, DecisionAccept)
	assert.ErrorIs(t, err, ErrNotAParticipant)
}

func TestRespond_ExpiredLazily(t *testing.T) {
	db, _, challengeService := newTestServices(t)
	challenger := createTestPlayer(t, db, "alice", 3)
	challenged := createTestPlayer(t, db, "bob", 2)

	challenge, err := challengeService.CreateChallenge(challenger.ID, challenged.ID, models.ChallengeKindDirect, nil)
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	require.NoError(t, db.Model(&models.Challenge{}).Where("id = ?", challenge.ID).Update("expires_at", past).Error)

	_, err = challengeService.Respond(challenge.ID, challenged.ID, DecisionAccept)
	assert.ErrorIs(t, err, ErrChallengeClosed)

	var reloaded models.Challenge
	require.NoError(t, db.First(&reloaded, challenge.ID).Error)
	assert.Equal(t, ladder.StatusExpired, reloaded.Status)
}

func TestComplete_RequiresAcceptance(t *testing.T) {
	db, _, challengeService := newTestServices(t)
	challenger := createTestPlayer(t, db, "alice", 3)
	challenged := createTestPlayer(t, db, "bob", 2)

	challenge, err := challengeService.CreateChallenge(challenger.ID, challenged.ID, models.ChallengeKindDirect, nil)
	require.NoError(t, err)

	_, err = challengeService.Complete(challenge.ID, challenger.ID)
	assert.ErrorIs(t, err, ErrNotAccepted)

	// A refused completion leaves the ladder untouched.
	after := reloadPlayer(t, db, challenger.ID)
	assert.Equal(t, 1200, after.EloRating)
	assert.Equal(t, 3, after.Level)
	assert.Equal(t, 0, after.TotalMatches)

	var matchCount int64
	require.NoError(t, db.Model(&models.Match{}).Count(&matchCount).Error)
	assert.Zero(t, matchCount)
}

func TestComplete_AcceptedChallenge(t *testing.T) {
	db, _, challengeService := newTestServices(t)
	challenger := createTestPlayer(t, db, "alice", 3)
	challenged := createTestPlayer(t, db, "bob", 2)

	challenge, err := challengeService.CreateChallenge(challenger.ID, challenged.ID, models.ChallengeKindDirect, nil)
	require.NoError(t, err)
	_, err = challengeService.Respond(challenge.ID, challenged.ID, DecisionAccept)
	require.NoError(t, err)

	challenge, err = challengeService.Complete(challenge.ID, challenger.ID)
	require.NoError(t, err)

	assert.Equal(t, ladder.StatusCompleted, challenge.Status)
	require.NotNil(t, challenge.WinnerID)
	assert.Equal(t, challenger.ID, *challenge.WinnerID)
	require.NotNil(t, challenge.MatchID)
	require.NotNil(t, challenge.CompletedAt)

	// Challenger beat someone a level above: the two swap places.
	assert.Equal(t, 2, reloadPlayer(t, db, challenger.ID).Level)
	assert.Equal(t, 3, reloadPlayer(t, db, challenged.ID).Level)
}

func TestComplete_InvalidWinner(t *testing.T) {
	db, _, challengeService := newTestServices(t)
	challenger := createTestPlayer(t, db, "alice", 3)
	challenged := createTestPlayer(t, db, "bob", 2)
	outsider := createTestPlayer(t, db, "mallory", 2)

	challenge, err := challengeService.CreateChallenge(challenger.ID, challenged.ID, models.ChallengeKindDirect, nil)
	require.NoError(t, err)
	_, err = challengeService.Respond(challenge.ID, challenged.ID, DecisionAccept)
	require.NoError(t, err)

	_, err = challengeService.Complete(challenge.ID, outsider.ID)
	assert.ErrorIs(t, err, ErrInvalidWinner)
}

func TestComplete_Twice(t *testing.T) {
	db, _, challengeService := newTestServices(t)
	challenger := createTestPlayer(t, db, "alice", 3)
	challenged := createTestPlayer(t, db, "bob", 3)

	challenge, err := challengeService.CreateChallenge(challenger.ID, challenged.ID, models.ChallengeKindDirect, nil)
	require.NoError(t, err)
	_, err = challengeService.Respond(challenge.ID, challenged.ID, DecisionAccept)
	require.NoError(t, err)

	_, err = challengeService.Complete(challenge.ID, challenger.ID)
	require.NoError(t, err)

	_, err = challengeService.Complete(challenge.ID, challenged.ID)
	assert.ErrorIs(t, err, ErrChallengeClosed)

	// Still only one match on record.
	var matchCount int64
	require.NoError(t, db.Model(&models.Match{}).Count(&matchCount).Error)
	assert.EqualValues(t, 1, matchCount)
}

func TestCancel(t *testing.T) {
	db, _, challengeService := newTestServices(t)
	challenger := createTestPlayer(t, db, "alice", 3)
	challenged := createTestPlayer(t, db, "bob", 2)

	challenge, err := challengeService.CreateChallenge(challenger.ID, challenged.ID, models.ChallengeKindDirect, nil)
	require.NoError(t, err)

	challenge, err = challengeService.Cancel(challenge.ID)
	require.NoError(t, err)
	assert.Equal(t, ladder.StatusCancelled, challenge.Status)

	_, err = challengeService.Cancel(challenge.ID)
	assert.ErrorIs(t, err, ErrChallengeClosed)
}

func TestSweepExpired(t *testing.T) {
	db, _, challengeService := newTestServices(t)
	alice := createTestPlayer(t, db, "alice", 3)
	bob := createTestPlayer(t, db, "bob", 2)
	carol := createTestPlayer(t, db, "carol", 2)

	overdue, err := challengeService.CreateChallenge(alice.ID, bob.ID, models.ChallengeKindDirect, nil)
	require.NoError(t, err)
	fresh, err := challengeService.CreateChallenge(alice.ID, carol.ID, models.ChallengeKindDirect, nil)
	require.NoError(t, err)

	past := time.Now().Add(-time.Minute)
	require.NoError(t, db.Model(&models.Challenge{}).Where("id = ?", overdue.ID).Update("expires_at", past).Error)

	swept, err := challengeService.SweepExpired()
	require.NoError(t, err)
	assert.EqualValues(t, 1, swept)

	var reloaded models.Challenge
	require.NoError(t, db.First(&reloaded, overdue.ID).Error)
	assert.Equal(t, ladder.StatusExpired, reloaded.Status)
	require.NoError(t, db.First(&reloaded, fresh.ID).Error)
	assert.Equal(t, ladder.StatusPending, reloaded.Status)

	// Sweeping again finds nothing.
	swept, err = challengeService.SweepExpired()
	require.NoError(t, err)
	assert.Zero(t, swept)
}

func TestSweepExpired_SparesAcceptedChallenges(t *testing.T) {
	db, _, challengeService := newTestServices(t)
	alice := createTestPlayer(t, db, "alice", 3)
	bob := createTestPlayer(t, db, "bob", 2)

	challenge, err := challengeService.CreateChallenge(alice.ID, bob.ID, models.ChallengeKindDirect, nil)
	require.NoError(t, err)
	_, err = challengeService.Respond(challenge.ID, bob.ID, DecisionAccept)
	require.NoError(t, err)

	past := time.Now().Add(-time.Minute)
	require.NoError(t, db.Model(&models.Challenge{}).Where("id = ?", challenge.ID).Update("expires_at", past).Error)

	swept, err := challengeService.SweepExpired()
	require.NoError(t, err)
	assert.Zero(t, swept)
}

func TestGetOpenChallengesForPlayer(t *testing.T) {
	db, _, challengeService := newTestServices(t)
	alice := createTestPlayer(t, db, "alice", 3)
	bob := createTestPlayer(t, db, "bob", 2)
	carol := createTestPlayer(t, db, "carol", 3)

	_, err := challengeService.CreateChallenge(alice.ID, bob.ID, models.ChallengeKindDirect, nil)
	require.NoError(t, err)
	rejected, err := challengeService.CreateChallenge(carol.ID, alice.ID, models.ChallengeKindDirect, nil)
	require.NoError(t, err)
	_, err = challengeService.Respond(rejected.ID, alice.ID, DecisionReject)
	require.NoError(t, err)

	open, err := challengeService.GetOpenChallengesForPlayer(alice.ID)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, bob.ID, open[0].ChallengedID)
}
