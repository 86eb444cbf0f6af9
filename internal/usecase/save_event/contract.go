package save_event

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	checkConflicts "github.com/m04kA/SMC-SchedulingService/internal/usecase/check_conflicts"
)

// EventRepository интерфейс хранилища событий (PostgreSQL или REST)
type EventRepository interface {
	GetByID(ctx context.Context, id domain.ID) (*domain.Event, error)
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
	Update(ctx context.Context, id domain.ID, event *domain.Event) (*domain.Event, error)
}

// ConflictChecker проверка пересечений
type ConflictChecker interface {
	Execute(ctx context.Context, req *checkConflicts.Request) (*checkConflicts.Response, error)
}

// Store in-memory кэш событий
type Store interface {
	UpsertEvent(item domain.Event)
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
