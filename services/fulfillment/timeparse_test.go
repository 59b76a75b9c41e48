package fulfillment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTimeInput(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"7 pm", "19:00"},
		{"7pm", "19:00"},
		{"7:30 am", "07:30"},
		{"12 am", "00:00"},
		{"12 pm", "12:00"},
		{"19:30", "19:30"},
		{"9:05", "09:05"},
		{"19:30:45", "19:30"},
		{"2025-01-01T19:30:00Z", "01:00"}, // UTC evening rolls into the next IST morning
		{"2025-01-01T19:30:00", "01:00"},
		{"2025-01-01T19:30", "01:00"},
		{"2025-01-01T19:30:00+05:30", "19:30"},
		{"half past seven", "00:00"},
		{"", "00:00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, parseTimeInput(tc.in), "input %q", tc.in)
	}
}

func TestBookingTime(t *testing.T) {
	assert.Equal(t, "19:00:00", bookingTime("7 pm"))
	assert.Equal(t, "00:00:00", bookingTime("garbage"))
}

func TestBookingDateIsLocalToday(t *testing.T) {
	// 20:00 UTC on June 14 is already June 15 in UTC+5:30.
	now := time.Date(2025, 6, 14, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-06-15", bookingDate(now))

	now = time.Date(2025, 6, 14, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-06-14", bookingDate(now))
}
