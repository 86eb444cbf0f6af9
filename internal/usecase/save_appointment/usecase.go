package save_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/bookingapi"
	checkConflicts "github.com/m04kA/SMC-SchedulingService/internal/usecase/check_conflicts"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// UseCase use case создания и обновления записи на прием
type UseCase struct {
	repo      AppointmentRepository
	conflicts ConflictChecker
	store     Store
	txManager TransactionManager
	location  *time.Location
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	repo AppointmentRepository,
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

// Execute создает (req.ID == nil) или обновляет запись.
// Пересечение с другими записями не блокирует сохранение и возвращается как предупреждение.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SaveAppointment: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("SaveAppointment: actor=%s, id=%v, type=%s, date=%s",
		req.Actor.UID, ptr.Value(req.ID), req.ActivityType, req.Date.Format(time.RFC3339))

	// 2. Собираем запись
	appointment, err := uc.build(req)
	if err != nil {
		uc.logger.Warn("SaveAppointment: %v", err)
		return nil, err
	}

	var (
		saved    *domain.Appointment
		response = &Response{Created: req.ID == nil}
	)

	// 3. Проверка пересечений и сохранение в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if req.ID != nil {
			existing, err := uc.repo.GetByID(txCtx, *req.ID)
			if err != nil {
				if isNotFound(err) {
					uc.logger.Warn("SaveAppointment: appointment id=%d not found", *req.ID)
					return ErrNotFound
				}
				uc.logger.Error("SaveAppointment: failed to get appointment id=%d: %v", *req.ID, err)
				return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
			}

			if !req.Actor.CanAccessAppointment(existing) {
				uc.logger.Warn("SaveAppointment: access denied for user=%s to appointment id=%d", req.Actor.UID, *req.ID)
				return ErrAccessDenied
			}

			// Владелец и признак создания администратором не меняются при обновлении
			appointment.UserID = existing.UserID
			appointment.CreatedByAdmin = existing.CreatedByAdmin
		}

		uc.checkConflicts(txCtx, req, appointment, response)

		var err error
		if req.ID == nil {
			saved, err = uc.repo.Create(txCtx, appointment)
		} else {
			saved, err = uc.repo.Update(txCtx, *req.ID, appointment)
		}
		if err != nil {
			if isNotFound(err) {
				return ErrNotFound
			}
			uc.logger.Error("SaveAppointment: failed to save appointment: %v", err)
			return fmt.Errorf("%w: failed to save appointment: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 4. Обновляем кэш после фиксации
	uc.store.UpsertAppointment(*saved)

	response.Appointment = *saved
	uc.logger.Info("SaveAppointment: saved appointment id=%d (created=%t, conflict=%t)",
		saved.ID, response.Created, response.Conflict)
	return response, nil
}

// build собирает доменную запись и выводит недостающие поля времени
func (uc *UseCase) build(req *Request) (*domain.Appointment, error) {
	userID := req.Actor.UID
	if owner := strings.TrimSpace(req.UserID); owner != "" && owner != req.Actor.UID {
		if !req.Actor.IsAdmin() {
			return nil, fmt.Errorf("%w: only admin can book for another user", ErrAccessDenied)
		}
		userID = owner
	}

	appointment := &domain.Appointment{
		UserID:         userID,
		ActivityType:   req.ActivityType,
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.TrimSpace(req.Email),
		Phone:          strings.TrimSpace(req.Phone),
		Address:        req.Address,
		Date:           req.Date,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		IsVirtual:      req.IsVirtual,
		CreatedByAdmin: req.Actor.IsAdmin(),
	}

	// Время начала всегда берется из date; переданный startTime обязан с ним совпадать
	local := req.Date.In(uc.location)
	derived := types.NewTimeString(local)
	if !appointment.StartTime.IsZero() {
		given, _ := appointment.StartTime.Minutes()
		want, _ := derived.Minutes()
		if given != want {
			return nil, fmt.Errorf("%w: startTime %s does not match date (%s in %s)",
				ErrInvalidInput, appointment.StartTime, derived, uc.location)
		}
	}
	appointment.StartTime = derived

	if appointment.EndTime.IsZero() {
		// Конец = начало + длительность типа; переход через полночь допустим
		end := local.Add(time.Duration(appointment.DurationMinutes()) * time.Minute)
		appointment.EndTime = types.NewTimeString(end)
	} else if !appointment.EndTime.IsAfter(appointment.StartTime) {
		return nil, fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}

	return appointment, nil
}

// checkConflicts заполняет предупреждение о пересечении; ошибка проверки не прерывает сохранение
func (uc *UseCase) checkConflicts(ctx context.Context, req *Request, a *domain.Appointment, response *Response) {
	var exclude *domain.ItemRef
	if req.ID != nil {
		exclude = &domain.ItemRef{Kind: domain.KindAppointment, ID: *req.ID}
	}

	var location *string
	if loc := a.Address.Location(); loc != "" {
		location = &loc
	}

	result, err := uc.conflicts.Execute(ctx, &checkConflicts.Request{
		CandidateStart: a.Date,
		ActivityType:   string(a.ActivityType),
		IsVirtual:      a.IsVirtual,
		Location:       location,
		Exclude:        exclude,
	})
	if err != nil {
		uc.logger.Warn("SaveAppointment: conflict check failed, saving without it: %v", err)
		return
	}

	response.ConflictChecked = true
	response.Conflict = result.Conflict
	response.ConflictsWith = result.ConflictsWith
}

func isNotFound(err error) bool {
	return errors.Is(err, appointmentRepo.ErrAppointmentNotFound) || errors.Is(err, bookingapi.ErrNotFound)
}
