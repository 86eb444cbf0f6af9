package delete_appointment

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	deleteBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/delete_booking"
)

// DeleteAppointmentResponse HTTP response model
type DeleteAppointmentResponse struct {
	Deleted domain.ItemRef `json:"deleted"`
}

// ToUseCaseRequest собирает запрос на удаление.
// Если требуется подтверждение, оно берется из query параметра confirm.
func ToUseCaseRequest(
	id domain.ID,
	actor *domain.User,
	current []domain.Appointment,
	requireConfirmation bool,
	confirmed bool,
) *deleteBooking.Request[domain.Appointment] {
	req := &deleteBooking.Request[domain.Appointment]{
		ID:      id,
		Actor:   actor,
		Current: &deleteBooking.Snapshot[domain.Appointment]{Items: current},
	}
	if requireConfirmation {
		req.Gate = deleteBooking.GateFunc(func(context.Context, domain.ItemRef) bool { return confirmed })
	}
	return req
}
