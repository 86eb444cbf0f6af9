package check_conflicts

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// AppointmentSource источник всех текущих записей на прием
// (репозиторий, REST клиент или снимок in-memory хранилища)
type AppointmentSource interface {
	GetAll(ctx context.Context) ([]domain.Appointment, error)
}

// EventSource источник всех текущих событий
type EventSource interface {
	GetAll(ctx context.Context) ([]domain.Event, error)
}

// MetricsRecorder учет результатов проверок
type MetricsRecorder interface {
	ObserveConflictCheck(conflict bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type noopMetrics struct{}

func (noopMetrics) ObserveConflictCheck(bool) {}
