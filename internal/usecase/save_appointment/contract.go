package save_appointment

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	checkConflicts "github.com/m04kA/SMC-SchedulingService/internal/usecase/check_conflicts"
)

// AppointmentRepository интерфейс хранилища записей (PostgreSQL или REST)
type AppointmentRepository interface {
	GetByID(ctx context.Context, id domain.ID) (*domain.Appointment, error)
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	Update(ctx context.Context, id domain.ID, appointment *domain.Appointment) (*domain.Appointment, error)
}

// ConflictChecker проверка пересечений
type ConflictChecker interface {
	Execute(ctx context.Context, req *checkConflicts.Request) (*checkConflicts.Response, error)
}

// Store in-memory кэш записей
type Store interface {
	UpsertAppointment(item domain.Appointment)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
