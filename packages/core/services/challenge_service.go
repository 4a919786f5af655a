package services

import (
	"errors"
	"fmt"
	"time"

	"core/ladder"
	"core/models"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Decisions a participant can give on a pending challenge.
const (
	DecisionAccept = "accept"
	DecisionReject = "reject"
)

// ChallengeService is the challenge state machine. It owns every challenge
// mutation except completion, which it delegates to the match recorder so the
// challenge closes in the same transaction as the match commit.
type ChallengeService struct {
	db           *gorm.DB
	matchService *MatchService
	logger       zerolog.Logger
	locks        *keyedLock
}

func NewChallengeService(db *gorm.DB, matchService *MatchService, logger zerolog.Logger) *ChallengeService {
	return &ChallengeService{
		db:           db,
		matchService: matchService,
		logger:       logger.With().Str("service", "challenge").Logger(),
		locks:        newKeyedLock(),
	}
}

func challengeKey(id uint) string {
	return fmt.Sprintf("challenge:%d", id)
}

// CreateChallenge opens a challenge between two distinct active players. The
// level-legality check is advisory and deliberately not enforced here; callers
// consult CanChallenge before creating.
func (s *ChallengeService) CreateChallenge(challengerID, challengedID uint, kind string, suggestedByID *uint) (*models.Challenge, error) {
	if challengerID == challengedID {
		return nil, ErrInvalidParticipants
	}
	if kind == "" {
		kind = models.ChallengeKindDirect
	}

	for _, id := range []uint{challengerID, challengedID} {
		var player models.Player
		if err := s.db.First(&player, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidParticipants
			}
			return nil, err
		}
		if !player.Active {
			return nil, ErrInvalidParticipants
		}
	}

	challenge := models.Challenge{
		ChallengerID:         challengerID,
		ChallengedID:         challengedID,
		SuggestedByID:        suggestedByID,
		Kind:                 kind,
		ChallengerAcceptance: ladder.AcceptancePending,
		ChallengedAcceptance: ladder.AcceptancePending,
		Status:               ladder.StatusPending,
		ExpiresAt:            time.Now().Add(models.ChallengeResponseWindow),
	}

	// A direct challenge is its challenger's own declaration of intent.
	if kind == models.ChallengeKindDirect {
		challenge.ChallengerAcceptance = ladder.AcceptanceAccepted
	}

	if err := s.db.Create(&challenge).Error; err != nil {
		return nil, err
	}

	s.logger.Info().
		Uint("challenge_id", challenge.ID).
		Uint("challenger_id", challengerID).
		Uint("challenged_id", challengedID).
		Str("kind", kind).
		Msg("challenge created")

	if err := s.db.Preload("Challenger").Preload("Challenged").First(&challenge, challenge.ID).Error; err != nil {
		return nil, err
	}

	return &challenge, nil
}

// CanChallenge is the advisory legality check: same level or exactly one
// level above. It never blocks creation.
func (s *ChallengeService) CanChallenge(challengerID, challengedID uint) (*models.CanChallengeResponse, error) {
	if challengerID == challengedID {
		return &models.CanChallengeResponse{Allowed: false, Reason: "players cannot challenge themselves"}, nil
	}

	var challenger, challenged models.Player
	if err := s.db.First(&challenger, challengerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	if err := s.db.First(&challenged, challengedID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	if !challenger.Active || !challenged.Active {
		return &models.CanChallengeResponse{Allowed: false, Reason: "both players must be active"}, nil
	}

	if !ladder.CanChallenge(challenger.Level, challenged.Level) {
		return &models.CanChallengeResponse{
			Allowed: false,
			Reason:  "players may only challenge their own level or one level above",
		}, nil
	}

	return &models.CanChallengeResponse{Allowed: true}, nil
}

// Respond records one participant's accept/reject answer. Responses to the
// same challenge are serialized so two simultaneous answers cannot race.
func (s *ChallengeService) Respond(challengeID, playerID uint, decision string) (*models.Challenge, error) {
	key := challengeKey(challengeID)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	challenge, err := s.respondTx(tx, challengeID, playerID, decision)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.logger.Info().
		Uint("challenge_id", challengeID).
		Uint("player_id", playerID).
		Str("decision", decision).
		Str("status", string(challenge.Status)).
		Msg("challenge response recorded")

	if err := s.db.Preload("Challenger").Preload("Challenged").First(challenge, challenge.ID).Error; err != nil {
		return nil, err
	}

	return challenge, nil
}

func (s *ChallengeService) respondTx(tx *gorm.DB, challengeID, playerID uint, decision string) (*models.Challenge, error) {
	var challenge models.Challenge
	if err := forUpdate(tx).First(&challenge, challengeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}

	now := time.Now()

	// A pending challenge past its deadline is expired, not answerable.
	// The sweep usually gets there first; this covers the gap between runs.
	if expired, err := s.expireIfOverdue(tx, &challenge, now); err != nil {
		return nil, err
	} else if expired {
		return nil, ErrChallengeClosed
	}

	if playerID != challenge.ChallengerID && playerID != challenge.ChallengedID {
		return nil, ErrNotAParticipant
	}

	acceptance := &challenge.ChallengerAcceptance
	if playerID == challenge.ChallengedID {
		acceptance = &challenge.ChallengedAcceptance
	}

	if *acceptance != ladder.AcceptancePending {
		return nil, ErrAlreadyDecided
	}
	if challenge.Status.Terminal() {
		return nil, ErrChallengeClosed
	}

	switch decision {
	case DecisionAccept:
		*acceptance = ladder.AcceptanceAccepted
	case DecisionReject:
		*acceptance = ladder.AcceptanceRejected
	default:
		return nil, fmt.Errorf("unknown decision %q", decision)
	}

	challenge.Status = ladder.DeriveOverallStatus(
		challenge.ChallengerAcceptance, challenge.ChallengedAcceptance, challenge.ExpiresAt, now)

	// Both sides in: the clock restarts as the window to actually play.
	if challenge.Status == ladder.StatusAccepted && challenge.AcceptedAt == nil {
		challenge.AcceptedAt = &now
		challenge.ExpiresAt = now.Add(models.ChallengePlayWindow)
	}

	if err := tx.Save(&challenge).Error; err != nil {
		return nil, err
	}

	return &challenge, nil
}

// Complete reports the result of an accepted challenge. The actual commit —
// match row, ratings, level transitions, challenge closure — happens inside
// the match recorder's transaction.
func (s *ChallengeService) Complete(challengeID, winnerID uint) (*models.Challenge, error) {
	key := challengeKey(challengeID)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	var challenge models.Challenge
	if err := s.db.First(&challenge, challengeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}

	now := time.Now()
	if expired, err := s.expireIfOverdue(s.db, &challenge, now); err != nil {
		return nil, err
	} else if expired {
		return nil, ErrNotAccepted
	}

	switch challenge.Status {
	case ladder.StatusAccepted:
		// fallthrough to the commit below
	case ladder.StatusPending:
		return nil, ErrNotAccepted
	default:
		return nil, ErrChallengeClosed
	}

	if winnerID != challenge.ChallengerID && winnerID != challenge.ChallengedID {
		return nil, ErrInvalidWinner
	}

	loserID := challenge.ChallengerID
	if winnerID == challenge.ChallengerID {
		loserID = challenge.ChallengedID
	}

	if _, err := s.matchService.RecordIndividualMatch(winnerID, loserID, &challenge.ID); err != nil {
		return nil, err
	}

	if err := s.db.Preload("Challenger").Preload("Challenged").Preload("Winner").Preload("Match").
		First(&challenge, challenge.ID).Error; err != nil {
		return nil, err
	}

	return &challenge, nil
}

// Cancel is the administrative override. It closes a pending or accepted
// challenge with no ladder effects.
func (s *ChallengeService) Cancel(challengeID uint) (*models.Challenge, error) {
	key := challengeKey(challengeID)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	var challenge models.Challenge
	if err := s.db.First(&challenge, challengeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}

	if challenge.Status.Terminal() {
		return nil, ErrChallengeClosed
	}

	challenge.Status = ladder.StatusCancelled
	if err := s.db.Save(&challenge).Error; err != nil {
		return nil, err
	}

	s.logger.Info().Uint("challenge_id", challengeID).Msg("challenge cancelled")

	return &challenge, nil
}

// SweepExpired closes every pending challenge past its deadline. Running it
// twice in a row is a no-op the second time.
func (s *ChallengeService) SweepExpired() (int64, error) {
	result := s.db.Model(&models.Challenge{}).
		Where("status = ? AND expires_at < ?", ladder.StatusPending, time.Now()).
		Update("status", ladder.StatusExpired)

	if result.Error != nil {
		return 0, result.Error
	}

	if result.RowsAffected > 0 {
		s.logger.Info().Int64("count", result.RowsAffected).Msg("expired challenges swept")
	}

	return result.RowsAffected, nil
}

// expireIfOverdue persists the expired state for a pending challenge whose
// deadline has passed. Reports whether the challenge is now expired.
func (s *ChallengeService) expireIfOverdue(tx *gorm.DB, challenge *models.Challenge, now time.Time) (bool, error) {
	if challenge.Status != ladder.StatusPending {
		return false, nil
	}

	derived := ladder.DeriveOverallStatus(
		challenge.ChallengerAcceptance, challenge.ChallengedAcceptance, challenge.ExpiresAt, now)
	if derived != ladder.StatusExpired {
		return false, nil
	}

	challenge.Status = ladder.StatusExpired
	if err := tx.Model(challenge).Update("status", ladder.StatusExpired).Error; err != nil {
		return false, err
	}
	return true, nil
}

// ChallengeFilters narrows the paginated challenge listing.
type ChallengeFilters struct {
	Page     int
	PerPage  int
	PlayerID *uint
	Status   *string
}

func (s *ChallengeService) GetChallenge(id uint) (*models.Challenge, error) {
	var challenge models.Challenge
	err := s.db.Preload("Challenger").Preload("Challenged").Preload("SuggestedBy").
		Preload("Winner").First(&challenge, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}
	return &challenge, nil
}

func (s *ChallengeService) GetChallenges(filters ChallengeFilters) (*models.PaginatedChallengesResponse, error) {
	var challenges []models.Challenge
	var total int64

	baseQuery := s.db.Model(&models.Challenge{})

	if filters.PlayerID != nil {
		baseQuery = baseQuery.Where("challenger_id = ? OR challenged_id = ?", *filters.PlayerID, *filters.PlayerID)
	}
	if filters.Status != nil {
		baseQuery = baseQuery.Where("status = ?", *filters.Status)
	}

	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (filters.Page - 1) * filters.PerPage

	query := baseQuery.Order("created_at DESC").
		Preload("Challenger").
		Preload("Challenged").
		Preload("Winner").
		Offset(offset).
		Limit(filters.PerPage)

	if err := query.Find(&challenges).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filters.PerPage) - 1) / int64(filters.PerPage))

	return &models.PaginatedChallengesResponse{
		Data:       challenges,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PerPage,
		TotalPages: totalPages,
	}, nil
}

// GetOpenChallengesForPlayer lists the pending and accepted challenges a
// player is involved in.
func (s *ChallengeService) GetOpenChallengesForPlayer(playerID uint) ([]models.Challenge, error) {
	var challenges []models.Challenge
	err := s.db.Where("(challenger_id = ? OR challenged_id = ?) AND status IN ?",
		playerID, playerID, []ladder.Status{ladder.StatusPending, ladder.StatusAccepted}).
		Order("expires_at ASC").
		Preload("Challenger").
		Preload("Challenged").
		Find(&challenges).Error
	if err != nil {
		return nil, err
	}
	return challenges, nil
}
