package get_calendar

import (
	"github.com/m04kA/SMC-SchedulingService/internal/service/calendar"
)

type CalendarService interface {
	DefaultSettings() calendar.RangeSettings
	View(settings calendar.RangeSettings) (*calendar.View, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
