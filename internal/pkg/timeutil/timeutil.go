package timeutil

import (
	"fmt"
	"time"
)

// MinutesPerDay is the number of minutes in one calendar day. Intervals are
// half-open [start, end), so MinutesPerDay is the end of a full-day span.
const MinutesPerDay = 24 * 60

// DateLayout is the wire format for calendar days.
const DateLayout = "2006-01-02"

// ParseClock parses a wall-clock string in "HH:mm" format and returns
// the minute of day (0..1439). Seconds are not accepted.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:mm: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders a minute of day back to "HH:mm".
func FormatClock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// ParseDate parses a calendar day in "YYYY-MM-DD" format.
// The result is midnight UTC; the system treats all times as local
// wall-clock within one shop, so no zone conversion happens anywhere.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// FormatDate renders a calendar day back to "YYYY-MM-DD".
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Midnight normalizes t to midnight UTC of its calendar day.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
