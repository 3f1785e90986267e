package booking

import (
	"fmt"
	"time"
)

// parseClock converts a zero-padded "HH:MM" string to minutes since midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// clockOverlaps reports whether two same-day "HH:MM" ranges intersect.
// Zero-padded clock strings compare correctly lexicographically.
func clockOverlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && aEnd > bStart
}

// weekdayOf returns the Monday-origin weekday (0 = Monday) of an ISO date.
func weekdayOf(date string) (int, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return (int(t.Weekday()) + 6) % 7, nil
}

// firstOccurrenceDate returns the first date on or after a recurrence's start
// date that falls on one of its selected weekdays. Weekdays must be non-empty
// and in range; the caller validates them first.
func firstOccurrenceDate(weekdays []int, startDate string) (string, error) {
	day, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", startDate, err)
	}
	for i := 0; i < 7; i++ {
		if containsWeekday(weekdays, (int(day.Weekday())+6)%7) {
			return day.Format("2006-01-02"), nil
		}
		day = day.AddDate(0, 0, 1)
	}
	return "", fmt.Errorf("no weekday selected")
}

// slotStart combines an ISO date and "HH:MM" clock into a local time.Time.
func slotStart(date, clock string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid slot %q %q: %w", date, clock, err)
	}
	return t, nil
}
