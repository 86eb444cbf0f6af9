package delete_booking

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// AppointmentDeleter удаление записи во внешнем хранилище (БД или REST)
type AppointmentDeleter interface {
	Delete(ctx context.Context, id domain.ID) error
}

// EventDeleter удаление события во внешнем хранилище (БД или REST)
type EventDeleter interface {
	Delete(ctx context.Context, id domain.ID) error
}

// Store in-memory кэш; удаление из него рассылает уведомление подписчикам.
// id принимается в любом представлении (число или строка).
type Store interface {
	RemoveAppointment(rawID interface{}) (int, error)
	RemoveEvent(rawID interface{}) (int, error)
}

// ConfirmationGate подтверждение удаления.
// В интерактивном клиенте это диалог, на сервере - политика, переданная вызывающей стороной.
type ConfirmationGate interface {
	Confirm(ctx context.Context, ref domain.ItemRef) bool
}

// GateFunc функция как ConfirmationGate
type GateFunc func(ctx context.Context, ref domain.ItemRef) bool

// Confirm вызывает f
func (f GateFunc) Confirm(ctx context.Context, ref domain.ItemRef) bool {
	return f(ctx, ref)
}

// AlwaysConfirm подтверждает любое удаление
var AlwaysConfirm ConfirmationGate = GateFunc(func(context.Context, domain.ItemRef) bool { return true })

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
