package calendar

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// SnapshotSource in-memory хранилище текущих записей и событий
type SnapshotSource interface {
	Appointments() []domain.Appointment
	Events() []domain.Event
	Subscribe() (<-chan domain.Change, func())
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
