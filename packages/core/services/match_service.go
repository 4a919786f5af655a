package services

import (
	"errors"
	"fmt"
	"time"

	"core/ladder"
	"core/models"
	"core/utils"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// MatchService commits match outcomes. An individual match is recorded as a
// single transaction covering the rating update, the level transitions, the
// aggregate counters and the closing of the originating challenge; nothing is
// persisted if any step fails.
type MatchService struct {
	db     *gorm.DB
	logger zerolog.Logger
	locks  *keyedLock
}

func NewMatchService(db *gorm.DB, logger zerolog.Logger) *MatchService {
	return &MatchService{
		db:     db,
		logger: logger.With().Str("service", "match").Logger(),
		locks:  newKeyedLock(),
	}
}

// pairKey is the same for both orderings of a player pair, so two commits
// touching the same two players are serialized.
func pairKey(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("pair:%d:%d", a, b)
}

// RecordIndividualMatch commits a completed individual match between two
// players. challengeID links back to the originating challenge; when set, the
// challenge must still be accepted and is closed in the same transaction.
func (s *MatchService) RecordIndividualMatch(winnerID, loserID uint, challengeID *uint) (*models.Match, error) {
	if winnerID == loserID {
		return nil, ErrInvalidParticipants
	}

	key := pairKey(winnerID, loserID)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	match, err := s.recordIndividualMatchTx(tx, winnerID, loserID, challengeID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.logger.Info().
		Uint("match_id", match.ID).
		Uint("winner_id", winnerID).
		Uint("loser_id", loserID).
		Msg("individual match recorded")

	// Load the created match with relationships
	if err := s.db.Preload("Winner").Preload("Loser").First(match, match.ID).Error; err != nil {
		return nil, err
	}

	return match, nil
}

func (s *MatchService) recordIndividualMatchTx(tx *gorm.DB, winnerID, loserID uint, challengeID *uint) (*models.Match, error) {
	// Lock the two player rows in ascending id order to avoid deadlocks
	// between concurrent commits on overlapping pairs.
	firstID, secondID := winnerID, loserID
	if firstID > secondID {
		firstID, secondID = secondID, firstID
	}

	players := make(map[uint]*models.Player, 2)
	for _, id := range []uint{firstID, secondID} {
		var player models.Player
		if err := forUpdate(tx).First(&player, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrPlayerNotFound
			}
			return nil, err
		}
		players[id] = &player
	}
	winner, loser := players[winnerID], players[loserID]

	now := time.Now()

	match := models.Match{
		Kind:              models.MatchKindIndividual,
		WinnerID:          &winner.ID,
		LoserID:           &loser.ID,
		WinnerLevelBefore: winner.Level,
		LoserLevelBefore:  loser.Level,
		ChallengeID:       challengeID,
		CompletedAt:       now,
	}
	if err := tx.Create(&match).Error; err != nil {
		return nil, err
	}

	// Rating is updated exactly once per match, here and nowhere else.
	newWinnerElo, newLoserElo := utils.CalculateEloChange(winner.EloRating, loser.EloRating)

	eloEntries := []models.EloHistory{
		{
			PlayerID:   winner.ID,
			MatchID:    match.ID,
			EloBefore:  winner.EloRating,
			EloAfter:   newWinnerElo,
			EloChange:  newWinnerElo - winner.EloRating,
			OpponentID: &loser.ID,
		},
		{
			PlayerID:   loser.ID,
			MatchID:    match.ID,
			EloBefore:  loser.EloRating,
			EloAfter:   newLoserElo,
			EloChange:  newLoserElo - loser.EloRating,
			OpponentID: &winner.ID,
		},
	}
	for i := range eloEntries {
		if err := tx.Create(&eloEntries[i]).Error; err != nil {
			return nil, err
		}
	}

	// Level transitions are decided from history that includes the match
	// just created.
	winnerHistory, err := s.recentResults(tx, winner.ID)
	if err != nil {
		return nil, err
	}
	loserHistory, err := s.recentResults(tx, loser.ID)
	if err != nil {
		return nil, err
	}

	transitions := ladder.EvaluateMatch(match.WinnerLevelBefore, match.LoserLevelBefore, winnerHistory, loserHistory)
	for _, transition := range transitions {
		player := winner
		if transition.Role == ladder.RoleLoser {
			player = loser
		}
		if err := s.applyTransition(tx, player, transition, &match.ID); err != nil {
			return nil, err
		}
	}

	// Aggregate counters and streaks
	winner.Wins++
	winner.TotalMatches++
	if winner.Streak >= 0 {
		winner.Streak++
	} else {
		winner.Streak = 1
	}
	if winner.Streak > winner.BestStreak {
		winner.BestStreak = winner.Streak
	}

	loser.Losses++
	loser.TotalMatches++
	if loser.Streak <= 0 {
		loser.Streak--
	} else {
		loser.Streak = -1
	}

	winner.EloRating = newWinnerElo
	loser.EloRating = newLoserElo

	if err := tx.Save(winner).Error; err != nil {
		return nil, err
	}
	if err := tx.Save(loser).Error; err != nil {
		return nil, err
	}

	if challengeID != nil {
		if err := s.closeChallenge(tx, *challengeID, winner.ID, match.ID, now); err != nil {
			return nil, err
		}
	}

	return &match, nil
}

// recentResults loads a player's last two completed individual matches,
// newest first, as rules-engine input.
func (s *MatchService) recentResults(tx *gorm.DB, playerID uint) ([]ladder.Result, error) {
	var matches []models.Match
	err := tx.Where("kind = ? AND (winner_id = ? OR loser_id = ?)", models.MatchKindIndividual, playerID, playerID).
		Order("completed_at DESC, id DESC").
		Limit(2).
		Find(&matches).Error
	if err != nil {
		return nil, err
	}

	results := make([]ladder.Result, 0, len(matches))
	for _, m := range matches {
		if m.WinnerID != nil && *m.WinnerID == playerID {
			results = append(results, ladder.Result{
				Won:           true,
				PlayerLevel:   m.WinnerLevelBefore,
				OpponentLevel: m.LoserLevelBefore,
			})
		} else {
			results = append(results, ladder.Result{
				Won:           false,
				PlayerLevel:   m.LoserLevelBefore,
				OpponentLevel: m.WinnerLevelBefore,
			})
		}
	}
	return results, nil
}

func (s *MatchService) applyTransition(tx *gorm.DB, player *models.Player, transition ladder.Transition, matchID *uint) error {
	entry := models.LevelHistory{
		PlayerID: player.ID,
		OldLevel: transition.OldLevel,
		NewLevel: transition.NewLevel,
		Reason:   transition.Reason,
		MatchID:  matchID,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return err
	}

	player.Level = ladder.ClampLevel(transition.NewLevel)
	if transition.NewLevel < transition.OldLevel {
		player.Promotions++
	} else {
		player.Demotions++
	}

	s.logger.Info().
		Uint("player_id", player.ID).
		Int("old_level", transition.OldLevel).
		Int("new_level", transition.NewLevel).
		Str("reason", string(transition.Reason)).
		Msg("level transition applied")

	return nil
}

func (s *MatchService) closeChallenge(tx *gorm.DB, challengeID, winnerID, matchID uint, now time.Time) error {
	var challenge models.Challenge
	if err := forUpdate(tx).First(&challenge, challengeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChallengeNotFound
		}
		return err
	}

	if challenge.Status != ladder.StatusAccepted {
		return ErrNotAccepted
	}
	if winnerID != challenge.ChallengerID && winnerID != challenge.ChallengedID {
		return ErrInvalidWinner
	}

	challenge.Status = ladder.StatusCompleted
	challenge.WinnerID = &winnerID
	challenge.MatchID = &matchID
	challenge.CompletedAt = &now

	return tx.Save(&challenge).Error
}

// RecordGroupMatch stores a group match for the record. Group matches never
// touch ratings, levels or player aggregates.
func (s *MatchService) RecordGroupMatch(team1Aliases, team2Aliases []string, winningTeam int) (*models.Match, error) {
	if len(team1Aliases) == 0 || len(team2Aliases) == 0 {
		return nil, ErrInvalidTeams
	}
	if winningTeam != 1 && winningTeam != 2 {
		return nil, ErrInvalidTeams
	}

	team1, err := s.resolveTeam(team1Aliases)
	if err != nil {
		return nil, err
	}
	team2, err := s.resolveTeam(team2Aliases)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool, len(team1))
	for _, p := range team1 {
		seen[p.ID] = true
	}
	for _, p := range team2 {
		if seen[p.ID] {
			return nil, ErrInvalidTeams
		}
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	match := models.Match{
		Kind:        models.MatchKindGroup,
		CompletedAt: time.Now(),
	}
	if err := tx.Create(&match).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	teams := map[int][]models.Player{1: team1, 2: team2}
	for team, teamPlayers := range teams {
		for _, p := range teamPlayers {
			participant := models.GroupMatchParticipant{
				MatchID:  match.ID,
				PlayerID: p.ID,
				Team:     team,
				Won:      team == winningTeam,
			}
			if err := tx.Create(&participant).Error; err != nil {
				tx.Rollback()
				return nil, err
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.logger.Info().
		Uint("match_id", match.ID).
		Int("winning_team", winningTeam).
		Msg("group match recorded")

	if err := s.db.Preload("Participants").Preload("Participants.Player").First(&match, match.ID).Error; err != nil {
		return nil, err
	}

	return &match, nil
}

func (s *MatchService) resolveTeam(aliases []string) ([]models.Player, error) {
	players := make([]models.Player, 0, len(aliases))
	for _, alias := range aliases {
		var player models.Player
		if err := s.db.Where("alias = ? AND active = ?", alias, true).First(&player).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrPlayerNotFound
			}
			return nil, err
		}
		players = append(players, player)
	}
	return players, nil
}

// MatchFilters narrows the paginated match listing.
type MatchFilters struct {
	Page     int
	PerPage  int
	PlayerID *uint
	Kind     *string
	DateFrom *time.Time
	DateTo   *time.Time
}

func (s *MatchService) GetRecentMatches(limit int) ([]models.Match, error) {
	var matches []models.Match

	result := s.db.Order("completed_at DESC").
		Limit(limit).
		Preload("Winner").
		Preload("Loser").
		Preload("Participants").
		Preload("Participants.Player").
		Find(&matches)

	if result.Error != nil {
		return nil, result.Error
	}

	return matches, nil
}

func (s *MatchService) GetMatches(filters MatchFilters) (*models.PaginatedMatchResponse, error) {
	var matches []models.Match
	var total int64

	baseQuery := s.db.Model(&models.Match{})

	if filters.PlayerID != nil {
		baseQuery = baseQuery.Where(
			"winner_id = ? OR loser_id = ? OR id IN (?)",
			*filters.PlayerID, *filters.PlayerID,
			s.db.Model(&models.GroupMatchParticipant{}).Select("match_id").Where("player_id = ?", *filters.PlayerID),
		)
	}
	if filters.Kind != nil {
		baseQuery = baseQuery.Where("kind = ?", *filters.Kind)
	}
	if filters.DateFrom != nil {
		baseQuery = baseQuery.Where("completed_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		baseQuery = baseQuery.Where("completed_at < ?", filters.DateTo.AddDate(0, 0, 1))
	}

	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (filters.Page - 1) * filters.PerPage

	query := baseQuery.Order("completed_at DESC").
		Preload("Winner").
		Preload("Loser").
		Preload("Participants").
		Preload("Participants.Player").
		Offset(offset).
		Limit(filters.PerPage)

	if err := query.Find(&matches).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filters.PerPage) - 1) / int64(filters.PerPage))

	return &models.PaginatedMatchResponse{
		Data:       matches,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PerPage,
		TotalPages: totalPages,
	}, nil
}
