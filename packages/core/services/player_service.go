package services

import (
	"errors"

	"core/ladder"
	"core/models"
	"core/utils"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type PlayerService struct {
	db     *gorm.DB
	logger zerolog.Logger
}

func NewPlayerService(db *gorm.DB, logger zerolog.Logger) *PlayerService {
	return &PlayerService{
		db:     db,
		logger: logger.With().Str("service", "player").Logger(),
	}
}

func (s *PlayerService) GetPlayerByID(id uint) (*models.Player, error) {
	var player models.Player

	result := s.db.First(&player, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, result.Error
	}

	return &player, nil
}

func (s *PlayerService) GetPlayerByAlias(alias string) (*models.Player, error) {
	var player models.Player

	result := s.db.Where("alias = ?", alias).First(&player)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, result.Error
	}

	return &player, nil
}

func (s *PlayerService) CreatePlayer(userID uint, alias string, level int) (*models.Player, error) {
	player := &models.Player{
		ID:        userID,
		Alias:     alias,
		Level:     ladder.ClampLevel(level),
		EloRating: utils.StartingElo,
		Active:    true,
	}

	result := s.db.Create(player)
	if result.Error != nil {
		return nil, result.Error
	}

	s.logger.Info().Uint("player_id", player.ID).Str("alias", alias).Int("level", player.Level).Msg("player created")

	return player, nil
}

// GetPyramid returns the active roster grouped by level, top level first,
// each level ordered by rating.
func (s *PlayerService) GetPyramid() ([]models.PyramidLevel, error) {
	var players []models.Player

	result := s.db.Where("active = ?", true).
		Order("level ASC, elo_rating DESC, alias ASC").
		Find(&players)
	if result.Error != nil {
		return nil, result.Error
	}

	pyramid := make([]models.PyramidLevel, 0, ladder.BaseLevel)
	for level := ladder.TopLevel; level <= ladder.BaseLevel; level++ {
		tier := models.PyramidLevel{Level: level, Players: []models.Player{}}
		for _, p := range players {
			if p.Level == level {
				tier.Players = append(tier.Players, p)
			}
		}
		pyramid = append(pyramid, tier)
	}

	return pyramid, nil
}

// SetActive soft-activates or deactivates a player. Inactive players are
// excluded from the pyramid and from new challenges; their history stays.
func (s *PlayerService) SetActive(playerID uint, active bool) (*models.Player, error) {
	player, err := s.GetPlayerByID(playerID)
	if err != nil {
		return nil, err
	}

	player.Active = active
	if err := s.db.Save(player).Error; err != nil {
		return nil, err
	}

	s.logger.Info().Uint("player_id", playerID).Bool("active", active).Msg("player activation changed")

	return player, nil
}

// AdjustLevel moves a player to an arbitrary level and records the change as
// an admin adjustment.
func (s *PlayerService) AdjustLevel(playerID uint, newLevel int) (*models.Player, error) {
	newLevel = ladder.ClampLevel(newLevel)

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var player models.Player
	if err := forUpdate(tx).First(&player, playerID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	if player.Level == newLevel {
		tx.Rollback()
		return &player, nil
	}

	entry := models.LevelHistory{
		PlayerID: player.ID,
		OldLevel: player.Level,
		NewLevel: newLevel,
		Reason:   ladder.ReasonAdminAdjustment,
	}
	if err := tx.Create(&entry).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if newLevel < player.Level {
		player.Promotions++
	} else {
		player.Demotions++
	}
	player.Level = newLevel

	if err := tx.Save(&player).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.logger.Info().Uint("player_id", playerID).Int("level", newLevel).Msg("level adjusted by admin")

	return &player, nil
}

func (s *PlayerService) GetEloHistoryByPlayerID(playerID uint) ([]models.EloHistory, error) {
	var eloHistory []models.EloHistory

	result := s.db.Where("player_id = ?", playerID).
		Order("id ASC").
		Preload("Match").
		Preload("Opponent").
		Find(&eloHistory)

	if result.Error != nil {
		return nil, result.Error
	}

	return eloHistory, nil
}

func (s *PlayerService) GetLevelHistoryByPlayerID(playerID uint) ([]models.LevelHistory, error) {
	var levelHistory []models.LevelHistory

	result := s.db.Where("player_id = ?", playerID).
		Order("id ASC").
		Preload("Match").
		Find(&levelHistory)

	if result.Error != nil {
		return nil, result.Error
	}

	return levelHistory, nil
}

func (s *PlayerService) GetTopPlayersByElo(limit int) ([]models.Player, error) {
	var players []models.Player

	result := s.db.Where("active = ?", true).
		Order("elo_rating DESC").
		Limit(limit).
		Find(&players)

	if result.Error != nil {
		return nil, result.Error
	}

	return players, nil
}

func (s *PlayerService) GetTopPlayersByStreak(limit int) ([]models.Player, error) {
	var players []models.Player

	result := s.db.Where("active = ? AND streak > 0", true).
		Order("streak DESC").
		Limit(limit).
		Find(&players)

	if result.Error != nil {
		return nil, result.Error
	}

	return players, nil
}

func (s *PlayerService) GetTopPlayersByBestStreak(limit int) ([]models.Player, error) {
	var players []models.Player

	result := s.db.Where("active = ?", true).
		Order("best_streak DESC").
		Limit(limit).
		Find(&players)

	if result.Error != nil {
		return nil, result.Error
	}

	return players, nil
}

func (s *PlayerService) GetPlayerMatches(playerID uint, filter string, page int, pageSize int) (*models.PaginatedMatchResponse, error) {
	var matches []models.Match
	var total int64

	baseQuery := s.db.Model(&models.Match{}).
		Where("kind = ? AND (winner_id = ? OR loser_id = ?)", models.MatchKindIndividual, playerID, playerID)

	switch filter {
	case "wins":
		baseQuery = baseQuery.Where("winner_id = ?", playerID)
	case "losses":
		baseQuery = baseQuery.Where("loser_id = ?", playerID)
	}

	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (page - 1) * pageSize

	query := baseQuery.Order("completed_at DESC").
		Preload("Winner").
		Preload("Loser").
		Offset(offset).
		Limit(pageSize)

	if err := query.Find(&matches).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &models.PaginatedMatchResponse{
		Data:       matches,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *PlayerService) GetAllPlayers(orderBy string, direction string, page int, pageSize int) (*models.PaginatedPlayersResponse, error) {
	var players []models.Player
	var total int64

	allowedOrderBy := map[string]bool{
		"created_at": true,
		"elo_rating": true,
		"level":      true,
		"alias":      true,
	}

	if !allowedOrderBy[orderBy] {
		orderBy = "level"
	}

	if direction != "ASC" && direction != "DESC" {
		direction = "ASC"
	}

	if err := s.db.Model(&models.Player{}).Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (page - 1) * pageSize

	orderClause := orderBy + " " + direction

	if err := s.db.Order(orderClause).
		Offset(offset).
		Limit(pageSize).
		Find(&players).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &models.PaginatedPlayersResponse{
		Data:       players,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}
