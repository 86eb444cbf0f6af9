package delete_booking

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// UseCase use case удаления записи или события
type UseCase struct {
	appointments AppointmentDeleter
	events       EventDeleter
	store        Store
	defaultGate  ConfirmationGate
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// defaultGate применяется к запросам без собственного подтверждения; nil - AlwaysConfirm.
func NewUseCase(
	appointments AppointmentDeleter,
	events EventDeleter,
	store Store,
	defaultGate ConfirmationGate,
	logger Logger,
) *UseCase {
	if defaultGate == nil {
		defaultGate = AlwaysConfirm
	}
	return &UseCase{
		appointments: appointments,
		events:       events,
		store:        store,
		defaultGate:  defaultGate,
		logger:       logger,
	}
}

// kindOps операции, различающиеся для записей и событий
type kindOps[T any] struct {
	kind      domain.ItemKind
	opName    string
	idOf      func(T) domain.ID
	canDelete func(actor *domain.User, item *T) bool
	remote    func(ctx context.Context, id domain.ID) error
	local     func(rawID interface{}) (int, error)
}

// DeleteAppointment удаляет запись.
// Удалять может администратор или владелец записи.
func (uc *UseCase) DeleteAppointment(ctx context.Context, req *Request[domain.Appointment]) (*Response, error) {
	return execute(ctx, uc, req, kindOps[domain.Appointment]{
		kind:   domain.KindAppointment,
		opName: "DeleteAppointment",
		idOf:   func(a domain.Appointment) domain.ID { return a.ID },
		canDelete: func(actor *domain.User, a *domain.Appointment) bool {
			return actor.CanAccessAppointment(a)
		},
		remote: uc.appointments.Delete,
		local:  uc.store.RemoveAppointment,
	})
}

// DeleteEvent удаляет событие. Удалять события может только администратор.
func (uc *UseCase) DeleteEvent(ctx context.Context, req *Request[domain.Event]) (*Response, error) {
	return execute(ctx, uc, req, kindOps[domain.Event]{
		kind:   domain.KindEvent,
		opName: "DeleteEvent",
		idOf:   func(e domain.Event) domain.ID { return e.ID },
		canDelete: func(actor *domain.User, _ *domain.Event) bool {
			return actor.CanManageEvents()
		},
		remote: uc.events.Delete,
		local:  uc.store.RemoveEvent,
	})
}

func execute[T any](ctx context.Context, uc *UseCase, req *Request[T], ops kindOps[T]) (*Response, error) {
	if req != nil && req.OnComplete != nil {
		defer req.OnComplete()
	}

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("%s: validation failed: %v", ops.opName, err)
		return nil, err
	}

	ref := domain.ItemRef{Kind: ops.kind, ID: req.ID}
	uc.logger.Info("%s: %s requested", ops.opName, ref)

	// 2. Подтверждение
	gate := req.Gate
	if gate == nil {
		gate = uc.defaultGate
	}
	if !gate.Confirm(ctx, ref) {
		uc.logger.Info("%s: %s not confirmed", ops.opName, ref)
		return nil, ErrCancelled
	}

	// 3. Ищем элемент в текущем списке; внешнее хранилище не вызывается, если его нет
	index := -1
	for i, item := range req.Current.Items {
		if ops.idOf(item) == req.ID {
			index = i
			break
		}
	}
	if index < 0 {
		uc.logger.Warn("%s: %s not found in current list", ops.opName, ref)
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	item := req.Current.Items[index]

	// 4. Права доступа
	if !ops.canDelete(req.Actor, &item) {
		uc.logger.Warn("%s: access denied to %s", ops.opName, ref)
		return nil, ErrAccessDenied
	}

	// 5. Удаление во внешнем хранилище
	if err := ops.remote(ctx, req.ID); err != nil {
		uc.logger.Error("%s: failed to delete %s: %v", ops.opName, ref, err)
		return nil, fmt.Errorf("%w: %s: %v", ErrUpstream, ref, err)
	}

	// 6. Локальное состояние: новый снимок собирается полностью и подменяется одним присваиванием
	*req.Current = withoutID(*req.Current, req.ID, ops.idOf)

	// 7. Кэш и уведомление подписчиков
	removed, err := ops.local(req.ID)
	if err != nil {
		uc.logger.Warn("%s: failed to remove %s from store: %v", ops.opName, ref, err)
	}

	if req.OnSuccess != nil {
		req.OnSuccess(item)
	}

	uc.logger.Info("%s: %s deleted", ops.opName, ref)
	return &Response{Deleted: ref, RemovedFromStore: removed}, nil
}

// withoutID возвращает копию снимка без элементов с id.
// Исходные списки и карта не изменяются; пустые дни удаляются из карты.
func withoutID[T any](s Snapshot[T], id domain.ID, idOf func(T) domain.ID) Snapshot[T] {
	items := make([]T, 0, len(s.Items))
	for _, it := range s.Items {
		if idOf(it) != id {
			items = append(items, it)
		}
	}

	var grouped domain.GroupedByDate[T]
	if s.Grouped != nil {
		grouped = make(domain.GroupedByDate[T], len(s.Grouped))
		for key, dayItems := range s.Grouped {
			kept := make([]T, 0, len(dayItems))
			for _, it := range dayItems {
				if idOf(it) != id {
					kept = append(kept, it)
				}
			}
			if len(kept) > 0 {
				grouped[key] = kept
			}
		}
	}

	return Snapshot[T]{Items: items, Grouped: grouped}
}
