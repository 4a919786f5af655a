package services

import (
	"testing"

	"core/ladder"
	"core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordIndividualMatch_UpsetSwapsLevels(t *testing.T) {
	db, matchService, _ := newTestServices(t)
	underdog := createTestPlayer(t, db, "alice", 3)
	favorite := createTestPlayer(t, db, "bob", 2)

	match, err := matchService.RecordIndividualMatch(underdog.ID, favorite.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, match.WinnerLevelBefore)
	assert.Equal(t, 2, match.LoserLevelBefore)

	winner := reloadPlayer(t, db, underdog.ID)
	loser := reloadPlayer(t, db, favorite.ID)
	assert.Equal(t, 2, winner.Level)
	assert.Equal(t, 3, loser.Level)
	assert.Equal(t, 1, winner.Promotions)
	assert.Equal(t, 1, loser.Demotions)

	// One level change per swapped player.
	var entries []models.LevelHistory
	require.NoError(t, db.Order("player_id ASC").Find(&entries).Error)
	require.Len(t, entries, 2)
	assert.Equal(t, ladder.ReasonVictoryPromotion, entries[0].Reason)
	assert.Equal(t, ladder.ReasonDefeatDemotion, entries[1].Reason)
}

func TestRecordIndividualMatch_SameLevelNoImmediateMove(t *testing.T) {
	db, matchService, _ := newTestServices(t)
	alice := createTestPlayer(t, db, "alice", 3)
	bob := createTestPlayer(t, db, "bob", 3)

	_, err := matchService.RecordIndividualMatch(alice.ID, bob.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, reloadPlayer(t, db, alice.ID).Level)
	assert.Equal(t, 3, reloadPlayer(t, db, bob.ID).Level)
}

func TestRecordIndividualMatch_TwoWinsPromote(t *testing.T) {
	db, matchService, _ := newTestServices(t)
	alice := createTestPlayer(t, db, "alice", 3)
	bob := createTestPlayer(t, db, "bob", 3)
	carol := createTestPlayer(t, db, "carol", 3)

	_, err := matchService.RecordIndividualMatch(alice.ID, bob.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, reloadPlayer(t, db, alice.ID).Level)

	_, err = matchService.RecordIndividualMatch(alice.ID, carol.ID, nil)
	require.NoError(t, err)

	alice2 := reloadPlayer(t, db, alice.ID)
	assert.Equal(t, 2, alice2.Level)
	assert.Equal(t, 1, alice2.Promotions)
	assert.Equal(t, 2, alice2.Streak)

	var entry models.LevelHistory
	require.NoError(t, db.Where("player_id = ?", alice.ID).First(&entry).Error)
	assert.Equal(t, ladder.ReasonVictoryPromotion, entry.Reason)
	assert.Equal(t, 3, entry.OldLevel)
	assert.Equal(t, 2, entry.NewLevel)
}

func TestRecordIndividualMatch_TwoLossesDemote(t *testing.T) {
	db, matchService, _ := newTestServices(t)
	alice := createTestPlayer(t, db, "alice", 2)
	bob := createTestPlayer(t, db, "bob", 2)
	carol := createTestPlayer(t, db, "carol", 2)

	_, err := matchService.RecordIndividualMatch(bob.ID, alice.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, reloadPlayer(t, db, alice.ID).Level)

	_, err = matchService.RecordIndividualMatch(carol.ID, alice.ID, nil)
	require.NoError(t, err)

	alice2 := reloadPlayer(t, db, alice.ID)
	assert.Equal(t, 3, alice2.Level)
	assert.Equal(t, 1, alice2.Demotions)
	assert.Equal(t, -2, alice2.Streak)

	var entry models.LevelHistory
	require.NoError(t, db.Where("player_id = ?", alice.ID).First(&entry).Error)
	assert.Equal(t, ladder.ReasonConsecutiveDefeats, entry.Reason)
}

func TestRecordIndividualMatch_UpsetWinBreaksStreakLevel(t *testing.T) {
	db, matchService, _ := newTestServices(t)
	alice := createTestPlayer(t, db, "alice", 3)
	bob := createTestPlayer(t, db, "bob", 3)
	carol := createTestPlayer(t, db, "carol", 2)

	// First win is at level 3, second at level 2 after the upset swap, so no
	// two-wins-at-the-same-level promotion fires on top of the swap.
	_, err := matchService.RecordIndividualMatch(alice.ID, bob.ID, nil)
	require.NoError(t, err)
	_, err = matchService.RecordIndividualMatch(alice.ID, carol.ID, nil)
	require.NoError(t, err)

	alice2 := reloadPlayer(t, db, alice.ID)
	assert.Equal(t, 2, alice2.Level)
	assert.Equal(t, 1, alice2.Promotions)

	_, err = matchService.RecordIndividualMatch(alice.ID, createTestPlayer(t, db, "dave", 2).ID, nil)
	require.NoError(t, err)

	// Only one win at level 2 so far: still level 2.
	assert.Equal(t, 2, reloadPlayer(t, db, alice.ID).Level)
}

func TestRecordIndividualMatch_NoPromotionPastTop(t *testing.T) {
	db, matchService, _ := newTestServices(t)
	alice := createTestPlayer(t, db, "alice", 1)
	bob := createTestPlayer(t, db, "bob", 1)
	carol := createTestPlayer(t, db, "carol", 1)

	_, err := matchService.RecordIndividualMatch(alice.ID, bob.ID, nil)
	require.NoError(t, err)
	_, err = matchService.RecordIndividualMatch(alice.ID, carol.ID, nil)
	require.NoError(t, err)

	alice2 := reloadPlayer(t, db, alice.ID)
	assert.Equal(t, ladder.TopLevel, alice2.Level)
	assert.Zero(t, alice2.Promotions)
}

func TestRecordIndividualMatch_NoDemotionPastBase(t *testing.T) {
	db, matchService, _ := newTestServices(t)
	alice := createTestPlayer(t, db, "alice", 4)
	bob := createTestPlayer(t, db, "bob", 4)
	carol := createTestPlayer(t, db, "carol", 4)

	_, err := matchService.RecordIndividualMatch(bob.ID, alice.ID, nil)
	require.NoError(t, err)
	_, err = matchService.RecordIndividualMatch(carol.ID, alice.ID, nil)
	require.NoError(t, err)

	alice2 := reloadPlayer(t, db, alice.ID)
	assert.Equal(t, ladder.BaseLevel, alice2.Level)
	assert.Zero(t, alice2.Demotions)
}

func TestRecordIndividualMatch_RatingsAndHistory(t *testing.T) {
	db, matchService, _ := newTestServices(t)
	alice := createTestPlayer(t, db, "alice", 3)
	bob := createTestPlayer(t, db, "bob", 3)

	match, err := matchService.RecordIndividualMatch(alice.ID, bob.ID, nil)
	require.NoError(t, err)

	winner := reloadPlayer(t, db, alice.ID)
	loser := reloadPlayer(t, db, bob.ID)

	// Equal ratings: winner takes 16, loser gives 16.
	assert.Equal(t, 1216, winner.EloRating)
	assert.Equal(t, 1184, loser.EloRating)

	var entries []models.EloHistory
	require.NoError(t, db.Where("match_id = ?", match.ID).Order("player_id ASC").Find(&entries).Error)
	require.Len(t, entries, 2)
	assert.Equal(t, 1200, entries[0].EloBefore)
	assert.Equal(t, 1216, entries[0].EloAfter)
	assert.Equal(t, 16, entries[0].EloChange)
	assert.Equal(t, -16, entries[1].EloChange)

	assert.Equal(t, 1, winner.Wins)
	assert.Equal(t, 1, winner.TotalMatches)
	assert.Equal(t, 1, winner.Streak)
	assert.Equal(t, 1, winner.BestStreak)
	assert.Equal(t, 1, loser.Losses)
	assert.Equal(t, -1, loser.Streak)
}

func TestRecordIndividualMatch_StreakFlips(t *testing.T) {
	db, matchService, _ := newTestServices(t)
	alice := createTestPlayer(t, db, "alice", 3)
	bob := createTestPlayer(t, db, "bob", 4)

	_, err := matchService.RecordIndividualMatch(bob.ID, alice.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, -1, reloadPlayer(t, db, alice.ID).Streak)

	_, err = matchService.RecordIndividualMatch(alice.ID, bob.ID, nil)
	require.NoError(t, err)

	alice2 := reloadPlayer(t, db, alice.ID)
	assert.Equal(t, 1, alice2.Streak)
	assert.Equal(t, 2, alice2.TotalMatches)
	assert.Equal(t, alice2.Wins+alice2.Losses, alice2.TotalMatches)
}

func TestRecordIndividualMatch_UnknownPlayer(t *testing.T) {
	db, matchService, _ := newTestServices(t)
	alice := createTestPlayer(t, db, "alice", 3)

	_, err := matchService.RecordIndividualMatch(alice.ID, 9999, nil)
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	_, err = matchService.RecordIndividualMatch(alice.ID, alice.ID, nil)
	assert.ErrorIs(t, err, ErrInvalidParticipants)
}

func TestRecordGroupMatch(t *testing.T) {
	db, matchService, _ := newTestServices(t)
	alice := createTestPlayer(t, db, "alice", 3)
	bob := createTestPlayer(t, db, "bob", 2)
	carol := createTestPlayer(t, db, "carol", 4)
	dave := createTestPlayer(t, db, "dave", 1)

	match, err := matchService.RecordGroupMatch([]string{"alice", "bob"}, []string{"carol", "dave"}, 1)
	require.NoError(t, err)

	assert.Equal(t, models.MatchKindGroup, match.Kind)
	require.Len(t, match.Participants, 4)

	wonByPlayer := make(map[uint]bool, 4)
	for _, p := range match.Participants {
		wonByPlayer[p.PlayerID] = p.Won
	}
	assert.True(t, wonByPlayer[alice.ID])
	assert.True(t, wonByPlayer[bob.ID])
	assert.False(t, wonByPlayer[carol.ID])
	assert.False(t, wonByPlayer[dave.ID])

	// Group matches are for the record only.
	for _, p := range []*models.Player{alice, bob, carol, dave} {
		reloaded := reloadPlayer(t, db, p.ID)
		assert.Equal(t, 1200, reloaded.EloRating)
		assert.Equal(t, p.Level, reloaded.Level)
		assert.Zero(t, reloaded.TotalMatches)
	}

	var eloCount int64
	require.NoError(t, db.Model(&models.EloHistory{}).Count(&eloCount).Error)
	assert.Zero(t, eloCount)
}

func TestRecordGroupMatch_InvalidTeams(t *testing.T) {
	db, matchService, _ := newTestServices(t)
	createTestPlayer(t, db, "alice", 3)
	createTestPlayer(t, db, "bob", 2)

	_, err := matchService.RecordGroupMatch([]string{"alice"}, []string{"alice"}, 1)
	assert.ErrorIs(t, err, ErrInvalidTeams)

	_, err = matchService.RecordGroupMatch([]string{"alice"}, []string{}, 1)
	assert.ErrorIs(t, err, ErrInvalidTeams)

	_, err = matchService.RecordGroupMatch([]string{"alice"}, []string{"bob"}, 3)
	assert.ErrorIs(t, err, ErrInvalidTeams)

	_, err = matchService.RecordGroupMatch([]string{"alice"}, []string{"nobody"}, 1)
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}
