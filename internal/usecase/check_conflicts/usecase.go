package check_conflicts

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

// UseCase use case проверки пересечения нового времени с существующими записями и событиями
type UseCase struct {
	appointments AppointmentSource
	events       EventSource
	location     *time.Location
	metrics      MetricsRecorder
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// location используется для сборки времени начала событий (дата + "HH:MM").
func NewUseCase(
	appointments AppointmentSource,
	events EventSource,
	location *time.Location,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &UseCase{
		appointments: appointments,
		events:       events,
		location:     location,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет проверку.
// Каждый вызов читает полный актуальный снимок записей и событий.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckConflicts: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CheckConflicts: start=%s, type=%s, virtual=%t, location=%q",
		req.CandidateStart.Format(time.RFC3339), req.ActivityType, req.IsVirtual, ptr.Value(req.Location))

	// 2. Получаем записи и события
	appointments, events, err := uc.fetch(ctx)
	if err != nil {
		uc.logger.Error("CheckConflicts: failed to fetch bookings: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	// 3. Длительность кандидата. Неизвестный тип - длительность 0, это не ошибка
	_, known := domain.LookupDuration(req.ActivityType)
	if !known {
		uc.logger.Warn("CheckConflicts: unknown type %q, using duration %d min",
			req.ActivityType, domain.UnknownTypeDurationMinutes)
	}
	candidateEnd := req.CandidateStart.Add(domain.Duration(req.ActivityType))

	// 4. Буфер кандидата вычисляется, но к его интервалу не применяется:
	// расширяются только интервалы существующих записей, каждая своим буфером
	candidateBuffer := domain.BufferMinutes(req.IsVirtual, ptr.Value(req.Location))

	// 5. Собираем интервалы существующих записей
	existing, err := collectOccupancies(appointments, events, uc.location, req.Exclude)
	if err != nil {
		uc.logger.Error("CheckConflicts: %v", err)
		return nil, err
	}

	// 6. Ищем пересечение
	ref, conflict := findConflict(req.CandidateStart, candidateEnd, existing)
	uc.metrics.ObserveConflictCheck(conflict)

	if conflict {
		uc.logger.Info("CheckConflicts: conflict with %s", ref)
	} else {
		uc.logger.Info("CheckConflicts: no conflicts among %d items", len(existing))
	}

	return &Response{
		Conflict:               conflict,
		ConflictsWith:          ref,
		CandidateEnd:           candidateEnd,
		CandidateBufferMinutes: candidateBuffer,
		KnownType:              known,
	}, nil
}

// fetch читает записи и события одновременно и дожидается обоих результатов.
// Внутри транзакции чтения идут последовательно: одно соединение не выполняет два запроса сразу.
func (uc *UseCase) fetch(ctx context.Context) ([]domain.Appointment, []domain.Event, error) {
	if dbmetrics.IsInTransaction(ctx) {
		return uc.fetchSequential(ctx)
	}

	var (
		appointments []domain.Appointment
		events       []domain.Event
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		appointments, err = uc.appointments.GetAll(gctx)
		if err != nil {
			return fmt.Errorf("appointments: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		events, err = uc.events.GetAll(gctx)
		if err != nil {
			return fmt.Errorf("events: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return appointments, events, nil
}

func (uc *UseCase) fetchSequential(ctx context.Context) ([]domain.Appointment, []domain.Event, error) {
	appointments, err := uc.appointments.GetAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("appointments: %w", err)
	}

	events, err := uc.events.GetAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("events: %w", err)
	}
	return appointments, events, nil
}
