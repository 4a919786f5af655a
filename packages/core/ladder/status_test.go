package ladder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveOverallStatus(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name       string
		challenger Acceptance
		challenged Acceptance
		expiresAt  time.Time
		want       Status
	}{
		{"both pending", AcceptancePending, AcceptancePending, future, StatusPending},
		{"one accepted", AcceptanceAccepted, AcceptancePending, future, StatusPending},
		{"both accepted", AcceptanceAccepted, AcceptanceAccepted, future, StatusAccepted},
		{"challenger rejected", AcceptanceRejected, AcceptancePending, future, StatusRejected},
		{"challenged rejected", AcceptanceAccepted, AcceptanceRejected, future, StatusRejected},
		{"pending past deadline", AcceptanceAccepted, AcceptancePending, past, StatusExpired},
		{"rejection wins over deadline", AcceptancePending, AcceptanceRejected, past, StatusRejected},
		{"acceptance wins over deadline", AcceptanceAccepted, AcceptanceAccepted, past, StatusAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveOverallStatus(tt.challenger, tt.challenged, tt.expiresAt, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusAccepted.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusRejected.Terminal())
	assert.True(t, StatusExpired.Terminal())
	assert.True(t, StatusCancelled.Terminal())
}
