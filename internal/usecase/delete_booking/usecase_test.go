package delete_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type deleterStub struct {
	calls []domain.ID
	err   error
}

func (d *deleterStub) Delete(_ context.Context, id domain.ID) error {
	d.calls = append(d.calls, id)
	return d.err
}

type storeStub struct {
	appointments []domain.ID
	events       []domain.ID
}

func (s *storeStub) RemoveAppointment(rawID interface{}) (int, error) {
	id, err := domain.NormalizeID(rawID)
	if err != nil {
		return 0, err
	}
	s.appointments = append(s.appointments, id)
	return 1, nil
}

func (s *storeStub) RemoveEvent(rawID interface{}) (int, error) {
	id, err := domain.NormalizeID(rawID)
	if err != nil {
		return 0, err
	}
	s.events = append(s.events, id)
	return 1, nil
}

var (
	admin = &domain.User{UID: "admin-1", Role: domain.RoleAdmin}
	owner = &domain.User{UID: "user-1", Role: domain.RoleUser}
	other = &domain.User{UID: "user-2", Role: domain.RoleUser}
)

func eventSnapshot() *Snapshot[domain.Event] {
	e1 := domain.Event{ID: 1, EventName: "Bembe", StartDate: time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)}
	e2 := domain.Event{ID: 2, EventName: "Lecture", StartDate: time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)}
	e3 := domain.Event{ID: 3, EventName: "Training", StartDate: time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC)}
	return &Snapshot[domain.Event]{
		Items: []domain.Event{e1, e2, e3},
		Grouped: domain.GroupedByDate[domain.Event]{
			"2025-06-16": {e1, e2},
			"2025-06-17": {e3},
		},
	}
}

type harness struct {
	uc           *UseCase
	appointments *deleterStub
	events       *deleterStub
	store        *storeStub
}

func newHarness(gate ConfirmationGate) *harness {
	h := &harness{appointments: &deleterStub{}, events: &deleterStub{}, store: &storeStub{}}
	h.uc = NewUseCase(h.appointments, h.events, h.store, gate, nopLogger{})
	return h
}

func TestDeleteEvent_Success(t *testing.T) {
	h := newHarness(nil)
	current := eventSnapshot()
	original := current.Grouped

	var deleted *domain.Event
	completed := 0
	resp, err := h.uc.DeleteEvent(context.Background(), &Request[domain.Event]{
		ID:         3,
		Actor:      admin,
		Current:    current,
		OnSuccess:  func(e domain.Event) { deleted = &e },
		OnComplete: func() { completed++ },
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ItemRef{Kind: domain.KindEvent, ID: 3}, resp.Deleted)
	assert.Equal(t, []domain.ID{3}, h.events.calls)
	assert.Equal(t, []domain.ID{3}, h.store.events)
	require.NotNil(t, deleted)
	assert.Equal(t, "Training", deleted.EventName)
	assert.Equal(t, 1, completed)

	assert.Len(t, current.Items, 2)
	assert.NotContains(t, current.Grouped, "2025-06-17", "empty days are dropped")
	assert.Len(t, current.Grouped["2025-06-16"], 2)
	assert.Len(t, original, 2, "previous grouped map is not mutated")
}

func TestDeleteEvent_NotFound(t *testing.T) {
	h := newHarness(nil)
	current := eventSnapshot()

	completed := false
	_, err := h.uc.DeleteEvent(context.Background(), &Request[domain.Event]{
		ID:         42,
		Actor:      admin,
		Current:    current,
		OnSuccess:  func(domain.Event) { t.Fatal("OnSuccess must not be called") },
		OnComplete: func() { completed = true },
	})

	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, completed)
	assert.Empty(t, h.events.calls, "storage is not called for unknown ids")
	assert.Len(t, current.Items, 3)
}

func TestDeleteEvent_UpstreamFailureLeavesStateUntouched(t *testing.T) {
	h := newHarness(nil)
	h.events.err = errors.New("503 Service Unavailable")
	current := eventSnapshot()
	before := *current

	completed := false
	_, err := h.uc.DeleteEvent(context.Background(), &Request[domain.Event]{
		ID:         1,
		Actor:      admin,
		Current:    current,
		OnComplete: func() { completed = true },
	})

	assert.ErrorIs(t, err, ErrUpstream)
	assert.True(t, completed)
	assert.Equal(t, before, *current)
	assert.Len(t, current.Grouped["2025-06-16"], 2)
	assert.Empty(t, h.store.events)
}

func TestDeleteEvent_RequiresAdmin(t *testing.T) {
	h := newHarness(nil)

	_, err := h.uc.DeleteEvent(context.Background(), &Request[domain.Event]{
		ID:      1,
		Actor:   owner,
		Current: eventSnapshot(),
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, h.events.calls)
}

func TestDelete_NotConfirmed(t *testing.T) {
	h := newHarness(GateFunc(func(context.Context, domain.ItemRef) bool { return false }))

	completed := false
	_, err := h.uc.DeleteEvent(context.Background(), &Request[domain.Event]{
		ID:         1,
		Actor:      admin,
		Current:    eventSnapshot(),
		OnComplete: func() { completed = true },
	})
	assert.ErrorIs(t, err, ErrCancelled)
	assert.True(t, completed)
	assert.Empty(t, h.events.calls)

	// подтверждение в запросе важнее политики по умолчанию
	_, err = h.uc.DeleteEvent(context.Background(), &Request[domain.Event]{
		ID:      1,
		Actor:   admin,
		Current: eventSnapshot(),
		Gate:    AlwaysConfirm,
	})
	assert.NoError(t, err)
}

func TestDeleteAppointment_Access(t *testing.T) {
	appointment := domain.Appointment{ID: 5, UserID: owner.UID, Date: time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC)}

	tests := []struct {
		name    string
		actor   *domain.User
		wantErr error
	}{
		{name: "owner", actor: owner},
		{name: "admin", actor: admin},
		{name: "other user", actor: other, wantErr: ErrAccessDenied},
		{name: "anonymous", actor: nil, wantErr: ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(nil)
			current := &Snapshot[domain.Appointment]{
				Items:   []domain.Appointment{appointment},
				Grouped: domain.GroupedByDate[domain.Appointment]{"2025-06-16": {appointment}},
			}

			_, err := h.uc.DeleteAppointment(context.Background(), &Request[domain.Appointment]{
				ID:      5,
				Actor:   tt.actor,
				Current: current,
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Len(t, current.Items, 1)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, current.Items)
			assert.Empty(t, current.Grouped)
			assert.Equal(t, []domain.ID{5}, h.store.appointments)
		})
	}
}

func TestDelete_InvalidInput(t *testing.T) {
	h := newHarness(nil)

	completed := false
	_, err := h.uc.DeleteAppointment(context.Background(), &Request[domain.Appointment]{
		ID:         0,
		Current:    &Snapshot[domain.Appointment]{},
		OnComplete: func() { completed = true },
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.True(t, completed)

	_, err = h.uc.DeleteAppointment(context.Background(), &Request[domain.Appointment]{ID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = h.uc.DeleteAppointment(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
