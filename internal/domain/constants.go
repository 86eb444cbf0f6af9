package domain

// Activity and event durations in minutes
const (
	ReadingDurationMinutes    = 30
	CleansingDurationMinutes  = 45
	InitiationDurationMinutes = 60
	WorkshopDurationMinutes   = 90
	BembeDurationMinutes      = 120
	LectureDurationMinutes    = 90
	EgungunDurationMinutes    = 60
	TrainingDurationMinutes   = 120

	// UnknownTypeDurationMinutes is used for conflict math when a type label is not in the table.
	// A zero-duration item still blocks its buffer window.
	UnknownTypeDurationMinutes = 0

	// DefaultAppointmentDurationMinutes is used to derive an appointment end time
	// when its activity type has no entry in the table
	DefaultAppointmentDurationMinutes = 30
)

// Buffer windows in minutes, see BufferMinutes
const (
	VirtualBufferMinutes   = 15
	BremertonBufferMinutes = 150
	SeattleBufferMinutes   = 45
	DefaultBufferMinutes   = 0
)

// Location markers matched case-insensitively by BufferMinutes
const (
	LocationBremerton = "bremerton"
	LocationSeattle   = "seattle"
)

// Day-range settings of the calendar view
const (
	DefaultDaysRange   = 3
	UnboundedDaysRange = -1
)

// Validation limits
const (
	MaxNameLength        = 200
	MaxDescriptionLength = 2000
	MaxDaysRange         = 3660
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
