package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	MatchKindIndividual = "individual"
	MatchKindGroup      = "group"
)

type Match struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Kind string `gorm:"size:20;default:individual;index" json:"kind"` // individual, group

	// Individual matches only. Group matches carry their participants in
	// the group_match_participants table instead.
	WinnerID          *uint `gorm:"constraint:OnDelete:CASCADE" json:"winner_id"`
	LoserID           *uint `gorm:"constraint:OnDelete:CASCADE" json:"loser_id"`
	WinnerLevelBefore int   `json:"winner_level_before"`
	LoserLevelBefore  int   `json:"loser_level_before"`

	ChallengeID *uint          `json:"challenge_id"`
	CompletedAt time.Time      `gorm:"not null;index" json:"completed_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Winner       *Player                 `gorm:"foreignKey:WinnerID;references:ID" json:"winner,omitempty"`
	Loser        *Player                 `gorm:"foreignKey:LoserID;references:ID" json:"loser,omitempty"`
	Challenge    *Challenge              `gorm:"foreignKey:ChallengeID;references:ID" json:"challenge,omitempty"`
	Participants []GroupMatchParticipant `gorm:"foreignKey:MatchID" json:"participants,omitempty"`
}

func (Match) TableName() string {
	return "matches"
}

type GroupMatchParticipant struct {
	ID       uint `gorm:"primaryKey;autoIncrement" json:"id"`
	MatchID  uint `gorm:"not null;index;constraint:OnDelete:CASCADE" json:"match_id"`
	PlayerID uint `gorm:"not null;index;constraint:OnDelete:CASCADE" json:"player_id"`
	Team     int  `gorm:"not null" json:"team"` // 1 or 2
	Won      bool `gorm:"not null" json:"won"`

	Player Player `gorm:"foreignKey:PlayerID;references:ID" json:"player,omitempty"`
}

func (GroupMatchParticipant) TableName() string {
	return "group_match_participants"
}

type PaginatedMatchResponse struct {
	Data       []Match `json:"data"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
}

type RecordGroupMatchRequest struct {
	Team1Aliases []string `json:"team1_aliases" binding:"required,min=1"`
	Team2Aliases []string `json:"team2_aliases" binding:"required,min=1"`
	WinningTeam  int      `json:"winning_team" binding:"required,oneof=1 2"`
}
