package services

import "errors"

// Player errors
var (
	ErrPlayerNotFound      = errors.New("player not found")
	ErrInvalidParticipants = errors.New("participants must be two distinct active players")
)

// Challenge errors
var (
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrNotAParticipant   = errors.New("player is not a participant of this challenge")
	ErrAlreadyDecided    = errors.New("player has already responded to this challenge")
	ErrNotAccepted       = errors.New("challenge has not been accepted by both players")
	ErrInvalidWinner     = errors.New("winner must be one of the two participants")
	ErrChallengeClosed   = errors.New("challenge is already closed")
)

// Match errors
var (
	ErrInvalidTeams = errors.New("teams must be non-empty and share no players")
)
