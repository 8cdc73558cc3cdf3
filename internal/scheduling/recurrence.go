package scheduling

import (
	"fmt"
	"time"
)

// Pattern describes how a recurring booking repeats.
type Pattern string

const (
	PatternNone    Pattern = "none"
	PatternDaily   Pattern = "daily"
	PatternWeekly  Pattern = "weekly"
	PatternMonthly Pattern = "monthly"
)

// Valid reports whether p is one of the known recurrence patterns.
func (p Pattern) Valid() bool {
	switch p {
	case PatternNone, PatternDaily, PatternWeekly, PatternMonthly:
		return true
	}
	return false
}

// Expand computes the occurrence instants for a booking request. The first
// occurrence is always the start instant itself; each subsequent occurrence
// is derived from the previous one by a fixed calendar increment.
//
// A count below 1 is treated as 1. With PatternNone or count 1 the result is
// the single start instant, matching a non-recurring booking.
func Expand(start time.Time, pattern Pattern, count int) ([]time.Time, error) {
	if !pattern.Valid() {
		return nil, fmt.Errorf("unknown recurrence pattern %q", pattern)
	}
	if count < 1 {
		count = 1
	}
	if pattern == PatternNone {
		count = 1
	}

	occurrences := make([]time.Time, 0, count)
	occurrences = append(occurrences, start)

	current := start
	for i := 1; i < count; i++ {
		switch pattern {
		case PatternDaily:
			current = current.AddDate(0, 0, 1)
		case PatternWeekly:
			current = current.AddDate(0, 0, 7)
		case PatternMonthly:
			current = addMonthClamped(current)
		}
		occurrences = append(occurrences, current)
	}

	return occurrences, nil
}

// addMonthClamped advances t by one calendar month, clamping the day-of-month
// to the last valid day of the target month. Jan 31 becomes Feb 28 (or Feb 29
// in a leap year), and the clamped day carries forward to later occurrences.
// Plain AddDate would normalize Jan 31 into Mar 3, skipping February entirely.
func addMonthClamped(t time.Time) time.Time {
	year, month, day := t.Date()
	firstOfNext := time.Date(year, month+1, 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(firstOfNext.Year(), firstOfNext.Month(), t.Location()); day > last {
		day = last
	}
	return time.Date(firstOfNext.Year(), firstOfNext.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
