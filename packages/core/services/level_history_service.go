package services

import (
	"core/models"

	"gorm.io/gorm"
)

type LevelHistoryService struct {
	db *gorm.DB
}

func NewLevelHistoryService(db *gorm.DB) *LevelHistoryService {
	return &LevelHistoryService{
		db: db,
	}
}

// GetRecentLevelChanges returns the latest promotions and demotions across
// the whole ladder, newest first.
func (s *LevelHistoryService) GetRecentLevelChanges(limit int) ([]models.LevelHistory, error) {
	var levelHistory []models.LevelHistory

	result := s.db.Order("created_at DESC").
		Limit(limit).
		Preload("Player").
		Preload("Match").
		Find(&levelHistory)

	if result.Error != nil {
		return nil, result.Error
	}

	return levelHistory, nil
}
