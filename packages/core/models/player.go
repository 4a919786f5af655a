package models

import (
	"time"

	"gorm.io/gorm"
)

type Player struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Alias        string         `gorm:"size:255;uniqueIndex;not null" json:"alias"`
	Level        int            `gorm:"default:4" json:"level"` // 1 = top of the pyramid, 4 = base
	EloRating    int            `gorm:"default:1200" json:"elo_rating"`
	TotalMatches int            `gorm:"default:0" json:"total_matches"`
	Wins         int            `gorm:"default:0" json:"wins"`
	Losses       int            `gorm:"default:0" json:"losses"`
	Streak       int            `gorm:"default:0" json:"streak"` // positive = wins in a row, negative = losses
	BestStreak   int            `gorm:"default:0" json:"best_streak"`
	Promotions   int            `gorm:"default:0" json:"promotions"`
	Demotions    int            `gorm:"default:0" json:"demotions"`
	Active       bool           `gorm:"default:true" json:"active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	ChallengesSent     []Challenge    `gorm:"foreignKey:ChallengerID" json:"challenges_sent,omitempty"`
	ChallengesReceived []Challenge    `gorm:"foreignKey:ChallengedID" json:"challenges_received,omitempty"`
	WonMatches         []Match        `gorm:"foreignKey:WinnerID" json:"won_matches,omitempty"`
	LostMatches        []Match        `gorm:"foreignKey:LoserID" json:"lost_matches,omitempty"`
	EloHistory         []EloHistory   `gorm:"foreignKey:PlayerID" json:"elo_history,omitempty"`
	LevelHistory       []LevelHistory `gorm:"foreignKey:PlayerID" json:"level_history,omitempty"`
}

func (Player) TableName() string {
	return "players"
}

type PaginatedPlayersResponse struct {
	Data       []Player `json:"data"`
	Total      int64    `json:"total"`
	Page       int      `json:"page"`
	PageSize   int      `json:"pageSize"`
	TotalPages int      `json:"totalPages"`
}

// PyramidLevel is one tier of the pyramid view, top first.
type PyramidLevel struct {
	Level   int      `json:"level"`
	Players []Player `json:"players"`
}

type AdjustLevelRequest struct {
	Level int `json:"level" binding:"required,min=1,max=4"`
}

type CreatePlayerRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Alias  string `json:"alias" binding:"required,min=2,max=255"`
	Level  int    `json:"level" binding:"omitempty,min=1,max=4"`
}

type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}
