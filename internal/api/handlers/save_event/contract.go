package save_event

import (
	"context"

	saveEvent "github.com/m04kA/SMC-SchedulingService/internal/usecase/save_event"
)

type SaveEventUseCase interface {
	Execute(ctx context.Context, req *saveEvent.Request) (*saveEvent.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
