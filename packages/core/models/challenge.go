package models

import (
	"time"

	"core/ladder"

	"gorm.io/gorm"
)

const (
	ChallengeKindDirect     = "direct"
	ChallengeKindSuggestion = "suggestion"
)

// Acceptance windows. A fresh challenge gives both sides 48 hours to answer;
// once both have accepted, the players get 7 days to play and report.
const (
	ChallengeResponseWindow = 48 * time.Hour
	ChallengePlayWindow     = 7 * 24 * time.Hour
)

type Challenge struct {
	ID                   uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	ChallengerID         uint              `gorm:"not null;constraint:OnDelete:CASCADE" json:"challenger_id"`
	ChallengedID         uint              `gorm:"not null;constraint:OnDelete:CASCADE" json:"challenged_id"`
	SuggestedByID        *uint             `json:"suggested_by_id"` // set when a third party proposed the match
	Kind                 string            `gorm:"size:20;default:direct" json:"kind"` // direct, suggestion
	ChallengerAcceptance ladder.Acceptance `gorm:"size:20;default:pending" json:"challenger_acceptance"`
	ChallengedAcceptance ladder.Acceptance `gorm:"size:20;default:pending" json:"challenged_acceptance"`
	Status               ladder.Status     `gorm:"size:20;default:pending;index" json:"status"`
	ExpiresAt            time.Time         `gorm:"not null;index" json:"expires_at"`
	AcceptedAt           *time.Time        `json:"accepted_at"`
	CompletedAt          *time.Time        `json:"completed_at"`
	WinnerID             *uint             `json:"winner_id"`
	MatchID              *uint             `json:"match_id"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at"`
	DeletedAt            gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Challenger  Player  `gorm:"foreignKey:ChallengerID;references:ID" json:"challenger,omitempty"`
	Challenged  Player  `gorm:"foreignKey:ChallengedID;references:ID" json:"challenged,omitempty"`
	SuggestedBy *Player `gorm:"foreignKey:SuggestedByID;references:ID" json:"suggested_by,omitempty"`
	Winner      *Player `gorm:"foreignKey:WinnerID;references:ID" json:"winner,omitempty"`
	Match       *Match  `gorm:"foreignKey:MatchID;references:ID" json:"match,omitempty"`
}

func (Challenge) TableName() string {
	return "challenges"
}

type PaginatedChallengesResponse struct {
	Data       []Challenge `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

type CreateChallengeRequest struct {
	ChallengerID uint   `json:"challenger_id" binding:"required"`
	ChallengedID uint   `json:"challenged_id" binding:"required"`
	Kind         string `json:"kind" binding:"omitempty,oneof=direct suggestion"`
}

type RespondChallengeRequest struct {
	PlayerID uint   `json:"player_id" binding:"required"`
	Decision string `json:"decision" binding:"required,oneof=accept reject"`
}

type CompleteChallengeRequest struct {
	WinnerID uint `json:"winner_id" binding:"required"`
}

// CanChallengeResponse is the advisory legality check result.
type CanChallengeResponse struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}
