package get_appointment

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

type BookingService interface {
	GetAppointment(ctx context.Context, id domain.ID, actor *domain.User) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
