package save_event

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	eventRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/event"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/bookingapi"
	checkConflicts "github.com/m04kA/SMC-SchedulingService/internal/usecase/check_conflicts"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

// UseCase use case создания и обновления события (только администратор)
type UseCase struct {
	repo      EventRepository
	conflicts ConflictChecker
	store     Store
	txManager TransactionManager
	location  *time.Location
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	repo EventRepository,
	conflicts ConflictChecker,
	store Store,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		repo:      repo,
		conflicts: conflicts,
		store:     store,
		txManager: txManager,
		location:  location,
		logger:    logger,
	}
}

// Execute создает (req.ID == nil) или обновляет событие
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SaveEvent: validation failed: %v", err)
		return nil, err
	}

	// 2. События ведет только администратор
	if !req.Actor.CanManageEvents() {
		uc.logger.Warn("SaveEvent: access denied for user=%s", req.Actor.UID)
		return nil, ErrAccessDenied
	}

	uc.logger.Info("SaveEvent: actor=%s, id=%v, type=%s, startDate=%s",
		req.Actor.UID, ptr.Value(req.ID), req.EventType, req.StartDate.Format(domain.DateFormat))

	event := &domain.Event{
		EventName:   strings.TrimSpace(req.EventName),
		EventType:   req.EventType,
		ClientName:  strings.TrimSpace(req.ClientName),
		StartDate:   dateOnly(req.StartDate),
		EndDate:     dateOnly(req.EndDate),
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsVirtual:   req.IsVirtual,
		Address:     req.Address,
		Description: req.Description,
	}

	var (
		saved    *domain.Event
		response = &Response{Created: req.ID == nil}
	)

	// 3. Проверка пересечений и сохранение в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if req.ID != nil {
			if _, err := uc.repo.GetByID(txCtx, *req.ID); err != nil {
				if isNotFound(err) {
					uc.logger.Warn("SaveEvent: event id=%d not found", *req.ID)
					return ErrNotFound
				}
				uc.logger.Error("SaveEvent: failed to get event id=%d: %v", *req.ID, err)
				return fmt.Errorf("%w: failed to get event: %v", ErrInternal, err)
			}
		}

		uc.checkConflicts(txCtx, req, event, response)

		var err error
		if req.ID == nil {
			saved, err = uc.repo.Create(txCtx, event)
		} else {
			saved, err = uc.repo.Update(txCtx, *req.ID, event)
		}
		if err != nil {
			if isNotFound(err) {
				return ErrNotFound
			}
			uc.logger.Error("SaveEvent: failed to save event: %v", err)
			return fmt.Errorf("%w: failed to save event: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 4. Обновляем кэш после фиксации
	uc.store.UpsertEvent(*saved)

	response.Event = *saved
	uc.logger.Info("SaveEvent: saved event id=%d (created=%t, conflict=%t)",
		saved.ID, response.Created, response.Conflict)
	return response, nil
}

// checkConflicts заполняет предупреждение о пересечении; ошибка проверки не прерывает сохранение
func (uc *UseCase) checkConflicts(ctx context.Context, req *Request, e *domain.Event, response *Response) {
	start, err := e.StartInstant(uc.location)
	if err != nil {
		uc.logger.Warn("SaveEvent: cannot compute start instant, skipping conflict check: %v", err)
		return
	}

	var exclude *domain.ItemRef
	if req.ID != nil {
		exclude = &domain.ItemRef{Kind: domain.KindEvent, ID: *req.ID}
	}

	var location *string
	if loc := e.Address.Location(); loc != "" {
		location = &loc
	}

	result, err := uc.conflicts.Execute(ctx, &checkConflicts.Request{
		CandidateStart: start,
		ActivityType:   string(e.EventType),
		IsVirtual:      e.IsVirtual,
		Location:       location,
		Exclude:        exclude,
	})
	if err != nil {
		uc.logger.Warn("SaveEvent: conflict check failed, saving without it: %v", err)
		return
	}

	response.ConflictChecked = true
	response.Conflict = result.Conflict
	response.ConflictsWith = result.ConflictsWith
}

// dateOnly оставляет календарную дату как полночь UTC
func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func isNotFound(err error) bool {
	return errors.Is(err, eventRepo.ErrEventNotFound) || errors.Is(err, bookingapi.ErrNotFound)
}
