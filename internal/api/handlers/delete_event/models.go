package delete_event

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	deleteBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/delete_booking"
)

// DeleteEventResponse HTTP response model
type DeleteEventResponse struct {
	Deleted domain.ItemRef `json:"deleted"`
}

// ToUseCaseRequest собирает запрос на удаление события
func ToUseCaseRequest(
	id domain.ID,
	actor *domain.User,
	current []domain.Event,
	requireConfirmation bool,
	confirmed bool,
) *deleteBooking.Request[domain.Event] {
	req := &deleteBooking.Request[domain.Event]{
		ID:      id,
		Actor:   actor,
		Current: &deleteBooking.Snapshot[domain.Event]{Items: current},
	}
	if requireConfirmation {
		req.Gate = deleteBooking.GateFunc(func(context.Context, domain.ItemRef) bool { return confirmed })
	}
	return req
}
