package fulfillment

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// All bookings run on restaurant-local time, a fixed UTC+5:30 offset.
var istZone = time.FixedZone("IST", 5*3600+30*60)

var (
	isoPrefixRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}`)
	amPmRe      = regexp.MustCompile(`(?i)^\s*(\d{1,2})(?::(\d{2}))?\s*(am|pm)\s*$`)
	clockRe     = regexp.MustCompile(`^\s*(\d{1,2}):(\d{2})(?::\d{2})?\s*$`)
)

// parseTimeInput normalizes a heterogeneous time expression to a
// 24-hour "HH:MM" string. Unparseable input becomes "00:00" rather
// than failing the turn.
func parseTimeInput(raw string) string {
	if isoPrefixRe.MatchString(raw) {
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
			if t, err := time.Parse(layout, raw); err == nil {
				local := t.In(istZone)
				return fmt.Sprintf("%02d:%02d", local.Hour(), local.Minute())
			}
		}
		return "00:00"
	}

	if m := amPmRe.FindStringSubmatch(raw); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		meridiem := strings.ToLower(m[3])
		if meridiem == "pm" && hour < 12 {
			hour += 12
		}
		if meridiem == "am" && hour == 12 {
			hour = 0
		}
		return fmt.Sprintf("%02d:%02d", hour, minute)
	}

	if m := clockRe.FindStringSubmatch(raw); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		return fmt.Sprintf("%02d:%02d", hour, minute)
	}

	return "00:00"
}

// bookingTime is the "HH:MM:SS" form used when committing a booking.
func bookingTime(raw string) string {
	return parseTimeInput(raw) + ":00"
}

// bookingDate is always today in the fixed offset; no user-spoken date
// is ever consumed.
func bookingDate(now time.Time) string {
	return now.In(istZone).Format("2006-01-02")
}
