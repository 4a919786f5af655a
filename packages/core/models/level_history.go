package models

import (
	"time"

	"core/ladder"

	"gorm.io/gorm"
)

// LevelHistory is the append-only audit log of every level change.
type LevelHistory struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	PlayerID  uint           `gorm:"not null;index;constraint:OnDelete:CASCADE" json:"player_id"`
	OldLevel  int            `gorm:"not null" json:"old_level"`
	NewLevel  int            `gorm:"not null" json:"new_level"`
	Reason    ladder.Reason  `gorm:"size:30;not null" json:"reason"`
	MatchID   *uint          `json:"match_id"` // nil for admin adjustments
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Player Player `gorm:"foreignKey:PlayerID;references:ID" json:"player,omitempty"`
	Match  *Match `gorm:"foreignKey:MatchID;references:ID" json:"match,omitempty"`
}

func (LevelHistory) TableName() string {
	return "level_history"
}
