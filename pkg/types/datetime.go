package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ErrInvalidDate is returned when a date or instant cannot be parsed
var ErrInvalidDate = errors.New("invalid date")

// MergeDateTime combines the calendar date of date with the wall-clock time t in loc.
// The time-of-day part of date is ignored. An empty t yields midnight.
// Invalid input is reported as an error, never coerced into an instant.
func MergeDateTime(date time.Time, t TimeString, loc *time.Location) (time.Time, error) {
	if date.IsZero() {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidDate)
	}
	if loc == nil {
		loc = time.UTC
	}

	minutes := 0
	if !t.IsZero() {
		m, err := t.Minutes()
		if err != nil {
			return time.Time{}, err
		}
		minutes = m
	}

	// the calendar day is read in date's own location: DATE columns arrive as UTC midnight
	y, mon, d := date.Date()

	return time.Date(y, mon, d, minutes/60, minutes%60, 0, 0, loc), nil
}

// MergeDateAndTimeStrings parses a "YYYY-MM-DD" date and an "HH:MM" time and merges them in loc
func MergeDateAndTimeStrings(date, clock string, loc *time.Location) (time.Time, error) {
	d, err := ParseDate(date, loc)
	if err != nil {
		return time.Time{}, err
	}

	ts, err := NewTimeStringFromString(clock)
	if err != nil {
		return time.Time{}, err
	}

	return MergeDateTime(d, ts, loc)
}

// ParseDate parses "YYYY-MM-DD" (or an RFC3339 instant, keeping only its date) as midnight in loc
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidDate)
	}

	if d, err := time.ParseInLocation(dateLayout, s, loc); err == nil {
		return d, nil
	}

	instant, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	y, m, d := instant.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
}

// ParseInstant parses an RFC3339 instant
func ParseInstant(s string) (time.Time, error) {
	instant, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return instant, nil
}

// StartOfDay truncates t to midnight in its own location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
