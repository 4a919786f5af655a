package ladder

import "time"

// Acceptance is one participant's answer to a challenge.
type Acceptance string

const (
	AcceptancePending  Acceptance = "pending"
	AcceptanceAccepted Acceptance = "accepted"
	AcceptanceRejected Acceptance = "rejected"
)

// Status is the overall state of a challenge.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether a challenge in this status can no longer move.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusRejected, StatusExpired, StatusCancelled:
		return true
	}
	return false
}

// DeriveOverallStatus computes a challenge's overall status from its two
// acceptance fields and its deadline. Every mutation point goes through this
// one function so the acceptance fields and the status can never drift.
//
// A rejection from either side wins over everything else. A challenge still
// waiting on an answer past its deadline is expired. Both sides accepted
// means accepted; anything else is still pending.
func DeriveOverallStatus(challenger, challenged Acceptance, expiresAt, now time.Time) Status {
	if challenger == AcceptanceRejected || challenged == AcceptanceRejected {
		return StatusRejected
	}
	if challenger == AcceptanceAccepted && challenged == AcceptanceAccepted {
		return StatusAccepted
	}
	if now.After(expiresAt) {
		return StatusExpired
	}
	return StatusPending
}
