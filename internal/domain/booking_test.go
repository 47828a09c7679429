package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBooking_SessionStartEnd(t *testing.T) {
	b := &Booking{
		BookingDate:     time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		StartTime:       "14:00",
		DurationMinutes: 90,
	}

	assert.Equal(t, time.Date(2026, 4, 10, 14, 0, 0, 0, time.UTC), b.SessionStart())
	assert.Equal(t, time.Date(2026, 4, 10, 15, 30, 0, 0, time.UTC), b.SessionEnd())
}

func TestBooking_StatusPredicates(t *testing.T) {
	tests := []struct {
		status   BookingStatus
		active   bool
		terminal bool
		joinable bool
	}{
		{StatusPending, true, false, false},
		{StatusConfirmed, true, false, true},
		{StatusInProgress, true, false, true},
		{StatusCompleted, false, true, false},
		{StatusCancelled, false, true, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			b := &Booking{Status: tt.status}
			assert.Equal(t, tt.active, b.IsActive())
			assert.Equal(t, tt.terminal, b.IsTerminal())
			assert.Equal(t, tt.joinable, b.CanBeJoined())
		})
	}
}

func TestStatusSetsMatchPredicates(t *testing.T) {
	for _, status := range ActiveStatuses {
		b := &Booking{Status: status}
		assert.True(t, b.IsActive(), string(status))
		assert.False(t, b.IsTerminal(), string(status))
	}
	for _, status := range TerminalStatuses {
		b := &Booking{Status: status}
		assert.True(t, b.IsTerminal(), string(status))
		assert.False(t, b.IsActive(), string(status))
	}
}

func TestBooking_JoinedAt(t *testing.T) {
	joined := time.Date(2026, 4, 10, 14, 2, 0, 0, time.UTC)
	b := &Booking{MentorJoinedAt: &joined}

	assert.Equal(t, &joined, b.JoinedAt(RoleMentor))
	assert.Nil(t, b.JoinedAt(RoleCandidate))
}

func TestOverlaps(t *testing.T) {
	at := func(hour, min int) time.Time {
		return time.Date(2026, 4, 10, hour, min, 0, 0, time.UTC)
	}

	tests := []struct {
		name   string
		aStart time.Time
		aEnd   time.Time
		bStart time.Time
		bEnd   time.Time
		want   bool
	}{
		{"partial overlap", at(10, 0), at(11, 0), at(10, 30), at(11, 30), true},
		{"contained", at(10, 0), at(12, 0), at(10, 30), at(11, 0), true},
		{"identical", at(10, 0), at(11, 0), at(10, 0), at(11, 0), true},
		{"back to back", at(10, 0), at(11, 0), at(11, 0), at(12, 0), false},
		{"disjoint", at(10, 0), at(11, 0), at(13, 0), at(14, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Симметрично
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}
