package domain

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// EventType represents the kind of an event
type EventType string

const (
	EventWorkshop EventType = "WORKSHOP"
	EventBembe    EventType = "BEMBE"
	EventLecture  EventType = "LECTURE"
	EventEgungun  EventType = "EGUNGUN"
	EventTraining EventType = "TRAINING"
)

// EventTypes lists every known event type
var EventTypes = []EventType{
	EventWorkshop,
	EventBembe,
	EventLecture,
	EventEgungun,
	EventTraining,
}

// IsValid returns true if the event type is one of EventTypes
func (t EventType) IsValid() bool {
	for _, known := range EventTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Event represents an admin-managed event (workshop, ceremony, lecture, ...)
type Event struct {
	ID          ID
	EventName   string
	EventType   EventType
	ClientName  string
	StartDate   time.Time // calendar date, time of day ignored
	EndDate     time.Time // zero if the event ends on StartDate
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsVirtual   bool
	Address     Address
	Description string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StartInstant merges StartDate and StartTime in loc.
// An empty StartTime means the event starts at midnight.
func (e *Event) StartInstant(loc *time.Location) (time.Time, error) {
	if e.StartDate.IsZero() {
		return time.Time{}, ErrMissingStart
	}
	return types.MergeDateTime(e.StartDate, e.StartTime, loc)
}

// CalendarDay returns StartDate as midnight in loc, keeping the calendar day of StartDate.
// ok is false when the event has no start date.
func (e *Event) CalendarDay(loc *time.Location) (time.Time, bool) {
	if e.StartDate.IsZero() {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := e.StartDate.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc), true
}

// LastDate returns the last calendar date of the event
func (e *Event) LastDate() time.Time {
	if e.EndDate.IsZero() || e.EndDate.Before(e.StartDate) {
		return e.StartDate
	}
	return e.EndDate
}
