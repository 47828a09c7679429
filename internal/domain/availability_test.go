package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mentorguru/MG-BookingService/pkg/types"
)

func TestAvailabilityWindow_MatchesDay(t *testing.T) {
	window := AvailabilityWindow{Day: "monday", StartTime: "09:00", EndTime: "18:00"}

	assert.True(t, window.MatchesDay(time.Monday))
	assert.False(t, window.MatchesDay(time.Tuesday))

	// Регистр дня недели не важен
	upper := AvailabilityWindow{Day: "MONDAY", StartTime: "09:00", EndTime: "18:00"}
	assert.True(t, upper.MatchesDay(time.Monday))
}

func TestAvailabilityWindow_Covers(t *testing.T) {
	window := AvailabilityWindow{Day: "monday", StartTime: "09:00", EndTime: "18:00"}

	tests := []struct {
		name  string
		start types.TimeString
		end   types.TimeString
		want  bool
	}{
		{"inside window", "10:00", "11:00", true},
		{"exact boundaries", "09:00", "18:00", true},
		{"starts at window start", "09:00", "10:00", true},
		{"ends at window end", "17:00", "18:00", true},
		{"starts before window", "08:30", "09:30", false},
		{"ends after window", "17:30", "18:30", false},
		{"entirely outside", "19:00", "20:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, window.Covers(tt.start, tt.end))
		})
	}
}
