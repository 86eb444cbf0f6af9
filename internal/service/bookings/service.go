package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	eventRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/event"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

// Service сервис чтения записей и событий
type Service struct {
	appointments AppointmentRepository
	events       EventRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	appointments AppointmentRepository,
	events EventRepository,
	logger Logger,
) *Service {
	return &Service{
		appointments: appointments,
		events:       events,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetAppointment получает запись по ID.
// Пользователь видит только свои записи, администратор - любые.
func (s *Service) GetAppointment(ctx context.Context, id domain.ID, actor *domain.User) (*domain.Appointment, error) {
	s.logger.Info("GetAppointment: fetching appointment id=%d", id)

	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			s.logger.Warn("GetAppointment: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetAppointment: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetAppointment - repository error: %v", ErrInternal, err)
	}

	if !actor.CanAccessAppointment(appointment) {
		s.logger.Warn("GetAppointment: access denied to appointment id=%d", id)
		return nil, ErrAccessDenied
	}

	return appointment, nil
}

// GetUserAppointments получает записи пользователя с фильтром past/upcoming.
// past - по убыванию даты, upcoming - по возрастанию, без фильтра - по убыванию.
func (s *Service) GetUserAppointments(ctx context.Context, req *models.GetUserAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetUserAppointments: fetching appointments for user=%s, filter=%q", req.UserID, req.Filter)

	if req.UserID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetUserAppointments: invalid filter=%q", req.Filter)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.Actor == nil || (!req.Actor.IsAdmin() && req.Actor.UID != req.UserID) {
		s.logger.Warn("GetUserAppointments: access denied to appointments of user=%s", req.UserID)
		return nil, ErrAccessDenied
	}

	appointments, err := s.appointments.GetByUserID(ctx, req.UserID, filter, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("GetUserAppointments: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserAppointments: successfully fetched %d appointments for user=%s", len(appointments), req.UserID)
	return &models.AppointmentListResponse{Appointments: appointments}, nil
}

// GetEvent получает событие по ID
func (s *Service) GetEvent(ctx context.Context, id domain.ID) (*domain.Event, error) {
	s.logger.Info("GetEvent: fetching event id=%d", id)

	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			s.logger.Warn("GetEvent: event id=%d not found", id)
			return nil, ErrEventNotFound
		}
		s.logger.Error("GetEvent: repository error for event id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetEvent - repository error: %v", ErrInternal, err)
	}

	return event, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, appointmentRepo.ErrAppointmentNotFound) ||
		errors.Is(err, eventRepo.ErrEventNotFound) ||
		errors.Is(err, bookingapi.ErrNotFound)
}
