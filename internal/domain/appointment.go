package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// ErrMissingStart is returned when an item has no start instant
var ErrMissingStart = errors.New("item has no start instant")

// ActivityType represents the kind of an appointment
type ActivityType string

const (
	ActivityReading    ActivityType = "READING"
	ActivityCleansing  ActivityType = "CLEANSING"
	ActivityInitiation ActivityType = "INITIATION"
	ActivityWorkshop   ActivityType = "WORKSHOP"
)

// ActivityTypes lists every known activity type
var ActivityTypes = []ActivityType{
	ActivityReading,
	ActivityCleansing,
	ActivityInitiation,
	ActivityWorkshop,
}

// IsValid returns true if the activity type is one of ActivityTypes
func (t ActivityType) IsValid() bool {
	for _, known := range ActivityTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Address is an optional postal address; every part may be absent
type Address struct {
	Street     *string
	City       *string
	State      *string
	PostalCode *string
}

// Location joins the present address parts into a single line ("" when empty)
func (a Address) Location() string {
	parts := make([]string, 0, 4)
	for _, p := range []*string{a.Street, a.City, a.State, a.PostalCode} {
		if p == nil {
			continue
		}
		if s := strings.TrimSpace(*p); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// IsEmpty returns true if no address part is set
func (a Address) IsEmpty() bool {
	return a.Location() == ""
}

// Appointment represents a one-to-one booking made by (or for) a user
type Appointment struct {
	ID             ID
	UserID         string
	ActivityType   ActivityType
	Name           string
	Email          string
	Phone          string
	Address        Address
	Date           time.Time // start instant
	StartTime      types.TimeString
	EndTime        types.TimeString
	IsVirtual      bool
	CreatedByAdmin bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StartInstant returns the instant used for conflict math
func (a *Appointment) StartInstant() (time.Time, error) {
	if a.Date.IsZero() {
		return time.Time{}, ErrMissingStart
	}
	return a.Date, nil
}

// DurationMinutes returns the appointment length used to derive its end time.
// Unknown activity types fall back to DefaultAppointmentDurationMinutes.
func (a *Appointment) DurationMinutes() int {
	if d, ok := LookupDuration(string(a.ActivityType)); ok {
		return d
	}
	return DefaultAppointmentDurationMinutes
}

// IsPast returns true if the appointment starts before now
func (a *Appointment) IsPast(now time.Time) bool {
	return a.Date.Before(now)
}

// IsOwnedBy returns true if the appointment belongs to the given user
func (a *Appointment) IsOwnedBy(uid string) bool {
	return uid != "" && a.UserID == uid
}

// AppointmentFilter narrows appointments of a user by time
type AppointmentFilter string

const (
	FilterAll      AppointmentFilter = ""
	FilterPast     AppointmentFilter = "past"
	FilterUpcoming AppointmentFilter = "upcoming"
)

// IsValid returns true for the supported filters
func (f AppointmentFilter) IsValid() bool {
	return f == FilterAll || f == FilterPast || f == FilterUpcoming
}
