package domain

import "time"

// GroupedByDate maps a calendar date key ("YYYY-MM-DD") to the items of that day,
// in the order they appeared in the source list
type GroupedByDate[T any] map[string][]T

// DateKey truncates t to its calendar date in loc and formats it as a GroupedByDate key
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateFormat)
}

// ParseDateKey parses a GroupedByDate key as midnight in loc
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateFormat, key, loc)
}

// Count returns the total number of items across all dates
func (g GroupedByDate[T]) Count() int {
	n := 0
	for _, items := range g {
		n += len(items)
	}
	return n
}
