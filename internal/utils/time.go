package utils

import (
	"time"
)

// DateOnly truncates a timestamp to midnight in its own location. Event-date
// comparisons are calendar-day comparisons, not instant comparisons.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
