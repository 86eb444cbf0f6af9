package store

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// MetricsRecorder учет размера кэша
type MetricsRecorder interface {
	SetStoreItems(kind string, count int)
}

// AppointmentLoader источник полного списка записей (БД или REST)
type AppointmentLoader interface {
	GetAll(ctx context.Context) ([]domain.Appointment, error)
}

// EventLoader источник полного списка событий (БД или REST)
type EventLoader interface {
	GetAll(ctx context.Context) ([]domain.Event, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type noopMetrics struct{}

func (noopMetrics) SetStoreItems(string, int) {}
