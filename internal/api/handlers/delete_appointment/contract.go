package delete_appointment

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	deleteBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/delete_booking"
)

type DeleteUseCase interface {
	DeleteAppointment(ctx context.Context, req *deleteBooking.Request[domain.Appointment]) (*deleteBooking.Response, error)
}

// AppointmentSnapshot текущий список записей (in-memory хранилище)
type AppointmentSnapshot interface {
	Appointments() []domain.Appointment
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
