package domain

import (
	"strings"
	"time"
)

// durationTable maps a type label to its duration in minutes.
// It is unexported so that the table stays immutable; use LookupDuration / DurationMinutes.
// WORKSHOP is shared by appointments and events and has the same length for both.
var durationTable = map[string]int{
	string(ActivityReading):    ReadingDurationMinutes,
	string(ActivityCleansing):  CleansingDurationMinutes,
	string(ActivityInitiation): InitiationDurationMinutes,
	string(ActivityWorkshop):   WorkshopDurationMinutes,
	string(EventBembe):         BembeDurationMinutes,
	string(EventLecture):       LectureDurationMinutes,
	string(EventEgungun):       EgungunDurationMinutes,
	string(EventTraining):      TrainingDurationMinutes,
}

// LookupDuration returns the duration for a type label. Matching is case-sensitive.
func LookupDuration(label string) (int, bool) {
	d, ok := durationTable[label]
	return d, ok
}

// DurationMinutes returns the duration for a type label,
// or UnknownTypeDurationMinutes when the label is not in the table
func DurationMinutes(label string) int {
	if d, ok := LookupDuration(label); ok {
		return d
	}
	return UnknownTypeDurationMinutes
}

// Duration is DurationMinutes as time.Duration
func Duration(label string) time.Duration {
	return time.Duration(DurationMinutes(label)) * time.Minute
}

// BufferMinutes returns the buffer placed around an item.
// Rules are evaluated in order: virtual, Bremerton, Seattle, default.
func BufferMinutes(isVirtual bool, location string) int {
	if isVirtual {
		return VirtualBufferMinutes
	}

	loc := strings.ToLower(location)
	switch {
	case strings.Contains(loc, LocationBremerton):
		return BremertonBufferMinutes
	case strings.Contains(loc, LocationSeattle):
		return SeattleBufferMinutes
	default:
		return DefaultBufferMinutes
	}
}

// Buffer is BufferMinutes as time.Duration
func Buffer(isVirtual bool, location string) time.Duration {
	return time.Duration(BufferMinutes(isVirtual, location)) * time.Minute
}
