package domain

import (
	"fmt"
	"time"
)

// ItemKind discriminates the variants of Item
type ItemKind string

const (
	KindAppointment ItemKind = "appointment"
	KindEvent       ItemKind = "event"
)

// ItemRef identifies an appointment or an event
type ItemRef struct {
	Kind ItemKind `json:"kind"`
	ID   ID       `json:"id"`
}

func (r ItemRef) String() string {
	return fmt.Sprintf("%s#%d", r.Kind, r.ID)
}

// Item is either an appointment or an event.
// Fields are unexported so that exactly one variant is always set;
// construct it with AppointmentItem or EventItem.
type Item struct {
	kind        ItemKind
	appointment *Appointment
	event       *Event
}

// AppointmentItem wraps an appointment
func AppointmentItem(a *Appointment) Item {
	return Item{kind: KindAppointment, appointment: a}
}

// EventItem wraps an event
func EventItem(e *Event) Item {
	return Item{kind: KindEvent, event: e}
}

func (i Item) Kind() ItemKind {
	return i.kind
}

// Appointment returns the wrapped appointment or nil
func (i Item) Appointment() *Appointment {
	return i.appointment
}

// Event returns the wrapped event or nil
func (i Item) Event() *Event {
	return i.event
}

// Ref returns the item reference
func (i Item) Ref() ItemRef {
	switch i.kind {
	case KindAppointment:
		return ItemRef{Kind: KindAppointment, ID: i.appointment.ID}
	case KindEvent:
		return ItemRef{Kind: KindEvent, ID: i.event.ID}
	default:
		return ItemRef{}
	}
}

// TypeLabel returns the activity or event type used for the duration lookup
func (i Item) TypeLabel() string {
	switch i.kind {
	case KindAppointment:
		return string(i.appointment.ActivityType)
	case KindEvent:
		return string(i.event.EventType)
	default:
		return ""
	}
}

// Title returns a human readable summary
func (i Item) Title() string {
	switch i.kind {
	case KindAppointment:
		return fmt.Sprintf("%s: %s", i.appointment.ActivityType, i.appointment.Name)
	case KindEvent:
		return i.event.EventName
	default:
		return ""
	}
}

func (i Item) IsVirtual() bool {
	switch i.kind {
	case KindAppointment:
		return i.appointment.IsVirtual
	case KindEvent:
		return i.event.IsVirtual
	default:
		return false
	}
}

// Location returns the address line used by the buffer policy
func (i Item) Location() string {
	switch i.kind {
	case KindAppointment:
		return i.appointment.Address.Location()
	case KindEvent:
		return i.event.Address.Location()
	default:
		return ""
	}
}

// StartInstant returns the single start instant of the item.
// loc is used to merge the start date and time of events.
func (i Item) StartInstant(loc *time.Location) (time.Time, error) {
	switch i.kind {
	case KindAppointment:
		return i.appointment.StartInstant()
	case KindEvent:
		return i.event.StartInstant(loc)
	default:
		return time.Time{}, ErrMissingStart
	}
}

// CalendarDate returns the date the item is grouped under: the appointment date
// or the event start date. ok is false when the item has no date.
func (i Item) CalendarDate(loc *time.Location) (time.Time, bool) {
	switch i.kind {
	case KindAppointment:
		return i.appointment.Date, !i.appointment.Date.IsZero()
	case KindEvent:
		return i.event.CalendarDay(loc)
	default:
		return time.Time{}, false
	}
}
