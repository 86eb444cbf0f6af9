package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type appointmentsStub struct {
	byID      map[domain.ID]domain.Appointment
	err       error
	gotFilter domain.AppointmentFilter
	gotNow    time.Time
}

func (s *appointmentsStub) GetByID(_ context.Context, id domain.ID) (*domain.Appointment, error) {
	if s.err != nil {
		return nil, s.err
	}
	a, ok := s.byID[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return &a, nil
}

func (s *appointmentsStub) GetByUserID(_ context.Context, userID string, filter domain.AppointmentFilter, now time.Time) ([]domain.Appointment, error) {
	s.gotFilter, s.gotNow = filter, now
	if s.err != nil {
		return nil, s.err
	}
	var out []domain.Appointment
	for _, a := range s.byID {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

type eventsStub struct {
	err error
}

func (s *eventsStub) GetByID(_ context.Context, id domain.ID) (*domain.Event, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Event{ID: id}, nil
}

var (
	admin = &domain.User{UID: "admin-1", Role: domain.RoleAdmin}
	alice = &domain.User{UID: "alice", Role: domain.RoleUser}
	bob   = &domain.User{UID: "bob", Role: domain.RoleUser}
	now   = time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC)
)

func newService(appts *appointmentsStub, events *eventsStub) *Service {
	svc := NewService(appts, events, nopLogger{})
	svc.timeProvider = fixedTime{now: now}
	return svc
}

func TestGetAppointment(t *testing.T) {
	appts := &appointmentsStub{byID: map[domain.ID]domain.Appointment{1: {ID: 1, UserID: "alice"}}}
	svc := newService(appts, &eventsStub{})

	tests := []struct {
		name    string
		id      domain.ID
		actor   *domain.User
		wantErr error
	}{
		{name: "owner", id: 1, actor: alice},
		{name: "admin", id: 1, actor: admin},
		{name: "stranger", id: 1, actor: bob, wantErr: ErrAccessDenied},
		{name: "anonymous", id: 1, wantErr: ErrAccessDenied},
		{name: "missing", id: 2, actor: admin, wantErr: ErrAppointmentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := svc.GetAppointment(context.Background(), tt.id, tt.actor)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, a.ID)
		})
	}
}

func TestGetAppointment_RepositoryError(t *testing.T) {
	svc := newService(&appointmentsStub{err: errors.New("timeout")}, &eventsStub{})

	_, err := svc.GetAppointment(context.Background(), 1, admin)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestGetUserAppointments(t *testing.T) {
	appts := &appointmentsStub{byID: map[domain.ID]domain.Appointment{
		1: {ID: 1, UserID: "alice"},
		2: {ID: 2, UserID: "bob"},
	}}
	svc := newService(appts, &eventsStub{})

	resp, err := svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{
		Actor: alice, UserID: "alice", Filter: "upcoming",
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)
	assert.Equal(t, domain.FilterUpcoming, appts.gotFilter)
	assert.Equal(t, now, appts.gotNow)

	_, err = svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{
		Actor: alice, UserID: "bob",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err = svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{
		Actor: admin, UserID: "bob", Filter: "past",
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)

	_, err = svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{
		Actor: alice, UserID: "alice", Filter: "soon",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetEvent(t *testing.T) {
	svc := newService(&appointmentsStub{}, &eventsStub{})
	e, err := svc.GetEvent(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, domain.ID(3), e.ID)

	svc = newService(&appointmentsStub{}, &eventsStub{err: bookingapi.ErrNotFound})
	_, err = svc.GetEvent(context.Background(), 3)
	assert.ErrorIs(t, err, ErrEventNotFound)
}
