package services

import (
	"time"

	"core/ladder"
	"core/models"

	"gorm.io/gorm"
)

type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{
		db: db,
	}
}

// MonthStart returns the first instant of the current month, the window the
// monthly counters aggregate over.
func MonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

func (s *StatsService) GetStats() (*models.Stats, error) {
	stats := &models.Stats{}
	monthStart := MonthStart(time.Now())

	if err := s.db.Model(&models.Player{}).Count(&stats.TotalPlayers).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Player{}).Where("active = ?", true).Count(&stats.ActivePlayers).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Match{}).Count(&stats.TotalMatches).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Match{}).
		Where("completed_at >= ?", monthStart).
		Count(&stats.MatchesThisMonth).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Challenge{}).
		Where("status IN ?", []ladder.Status{ladder.StatusPending, ladder.StatusAccepted}).
		Count(&stats.OpenChallenges).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Challenge{}).
		Where("created_at >= ?", monthStart).
		Count(&stats.ChallengesThisMonth).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.LevelHistory{}).
		Where("created_at >= ? AND new_level < old_level", monthStart).
		Count(&stats.PromotionsThisMonth).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.LevelHistory{}).
		Where("created_at >= ? AND new_level > old_level", monthStart).
		Count(&stats.DemotionsThisMonth).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
