package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"pending to accepted", BookingStatusPending, BookingStatusAccepted, true},
		{"pending to declined", BookingStatusPending, BookingStatusDeclined, true},
		{"pending to cancelled", BookingStatusPending, BookingStatusCancelled, true},
		{"pending to completed", BookingStatusPending, BookingStatusCompleted, false},
		{"pending to in-progress", BookingStatusPending, BookingStatusInProgress, false},
		{"accepted to confirmed", BookingStatusAccepted, BookingStatusConfirmed, true},
		{"accepted to in-progress", BookingStatusAccepted, BookingStatusInProgress, true},
		{"accepted to cancelled", BookingStatusAccepted, BookingStatusCancelled, true},
		{"accepted to declined", BookingStatusAccepted, BookingStatusDeclined, false},
		{"confirmed to in-progress", BookingStatusConfirmed, BookingStatusInProgress, true},
		{"confirmed to cancelled", BookingStatusConfirmed, BookingStatusCancelled, true},
		{"confirmed to completed", BookingStatusConfirmed, BookingStatusCompleted, false},
		{"in-progress to completed", BookingStatusInProgress, BookingStatusCompleted, true},
		{"in-progress to cancelled", BookingStatusInProgress, BookingStatusCancelled, false},
		{"completed to accepted", BookingStatusCompleted, BookingStatusAccepted, false},
		{"same state is not a transition", BookingStatusPending, BookingStatusPending, false},
		{"unknown status", BookingStatus("unknown"), BookingStatusAccepted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransitionStatus(tt.from, tt.to))
		})
	}
}

func TestTerminalStatusesAllowNoTransitions(t *testing.T) {
	terminals := []BookingStatus{
		BookingStatusCompleted,
		BookingStatusCancelled,
		BookingStatusDeclined,
	}
	all := []BookingStatus{
		BookingStatusPending,
		BookingStatusAccepted,
		BookingStatusConfirmed,
		BookingStatusInProgress,
		BookingStatusCompleted,
		BookingStatusCancelled,
		BookingStatusDeclined,
	}

	for _, from := range terminals {
		assert.True(t, IsTerminalStatus(from))
		for _, to := range all {
			assert.False(t, CanTransitionStatus(from, to),
				"terminal status %s must not transition to %s", from, to)
		}
	}
}

func TestClaimsProvider(t *testing.T) {
	assert.True(t, ClaimsProvider(BookingStatusAccepted))
	assert.True(t, ClaimsProvider(BookingStatusConfirmed))
	assert.False(t, ClaimsProvider(BookingStatusCompleted))
	assert.False(t, ClaimsProvider(BookingStatusDeclined))
	assert.False(t, ClaimsProvider(BookingStatusCancelled))
}
