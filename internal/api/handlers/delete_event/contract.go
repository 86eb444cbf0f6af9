package delete_event

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	deleteBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/delete_booking"
)

type DeleteUseCase interface {
	DeleteEvent(ctx context.Context, req *deleteBooking.Request[domain.Event]) (*deleteBooking.Response, error)
}

// EventSnapshot текущий список событий (in-memory хранилище)
type EventSnapshot interface {
	Events() []domain.Event
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
