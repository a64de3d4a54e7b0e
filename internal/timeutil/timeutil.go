package timeutil

import (
	"errors"
	"time"
)

// DayFormat is the canonical wire representation of a calendar day.
const DayFormat = "2006-01-02"

var ErrUnparseableDate = errors.New("unparseable date")

// ParseDay parses a calendar day from either the canonical YYYY-MM-DD form or
// a full RFC3339 timestamp, normalized to UTC midnight.
func ParseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, ErrUnparseableDate
	}
	if t, err := time.Parse(DayFormat, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Truncate(t), nil
	}
	return time.Time{}, ErrUnparseableDate
}

// Truncate drops the time-of-day component, returning UTC midnight of t's day.
func Truncate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDay renders a day in the canonical YYYY-MM-DD form.
func FormatDay(t time.Time) string {
	return t.UTC().Format(DayFormat)
}

// Days enumerates every calendar day from start to end inclusive.
// A single-day range yields exactly one entry; start after end yields none.
func Days(start, end time.Time) []time.Time {
	start = Truncate(start)
	end = Truncate(end)

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
