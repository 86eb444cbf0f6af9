package save_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	saveAppointment "github.com/m04kA/SMC-SchedulingService/internal/usecase/save_appointment"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type stubUseCase struct {
	got  *saveAppointment.Request
	resp *saveAppointment.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *saveAppointment.Request) (*saveAppointment.Response, error) {
	s.got = req
	return s.resp, s.err
}

func newRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/appointments", h.Handle).Methods(http.MethodPost)
	r.HandleFunc("/appointments/{appointmentId}", h.Handle).Methods(http.MethodPut)
	return r
}

func do(t *testing.T, h *Handler, method, path, body string, user *domain.User) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if user != nil {
		req = req.WithContext(middleware.WithUser(req.Context(), user))
	}
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)
	return rec
}

var member = &domain.User{UID: "u1", Role: domain.RoleUser}

func TestHandler_Create(t *testing.T) {
	uc := &stubUseCase{resp: &saveAppointment.Response{
		Appointment: domain.Appointment{
			ID:           12,
			UserID:       "u1",
			ActivityType: domain.ActivityReading,
			Name:         "Ana",
			Date:         time.Date(2025, 6, 16, 17, 0, 0, 0, time.UTC),
			StartTime:    "10:00",
			EndTime:      "10:30",
		},
		Created:         true,
		ConflictChecked: true,
		Conflict:        true,
		ConflictsWith:   &domain.ItemRef{Kind: domain.KindAppointment, ID: 3},
	}}
	h := NewHandler(uc, time.UTC, logger.NewNop())

	body := `{"activityType": "READING", "name": "Ana", "email": "a@b.c", "city": "Seattle", "date": "2025-06-16T17:00:00Z"}`
	rec := do(t, h, http.MethodPost, "/appointments", body, member)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Nil(t, uc.got.ID)
	assert.Same(t, member, uc.got.Actor)
	assert.Equal(t, "Seattle", uc.got.Address.Location())

	var resp SaveAppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, domain.ID(12), resp.Appointment.ID)
	assert.Equal(t, "10:30", resp.Appointment.EndTime)
	assert.True(t, resp.ConflictCheck.Conflict)
	assert.Equal(t, domain.ID(3), resp.ConflictCheck.ConflictsWith.ID)
}

func TestHandler_UpdateWithDateAndStartTime(t *testing.T) {
	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	uc := &stubUseCase{resp: &saveAppointment.Response{Appointment: domain.Appointment{ID: 5}}}
	h := NewHandler(uc, loc, logger.NewNop())

	body := `{"activityType": "CLEANSING", "name": "Ana", "date": "2025-06-16", "startTime": "09:15"}`
	rec := do(t, h, http.MethodPut, "/appointments/5", body, member)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got.ID)
	assert.Equal(t, domain.ID(5), *uc.got.ID)
	assert.True(t, uc.got.Date.Equal(time.Date(2025, 6, 16, 9, 15, 0, 0, loc)))
}

func TestHandler_Errors(t *testing.T) {
	valid := `{"activityType": "READING", "name": "Ana", "date": "2025-06-16T17:00:00Z"}`

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		user   *domain.User
		ucErr  error
		status int
	}{
		{name: "no user", method: http.MethodPost, path: "/appointments", body: valid, status: http.StatusUnauthorized},
		{name: "bad id", method: http.MethodPut, path: "/appointments/abc", body: valid, user: member, status: http.StatusBadRequest},
		{name: "bad date", method: http.MethodPost, path: "/appointments", body: `{"date": "soon"}`, user: member, status: http.StatusBadRequest},
		{name: "invalid input", method: http.MethodPost, path: "/appointments", body: valid, user: member, ucErr: saveAppointment.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "not found", method: http.MethodPut, path: "/appointments/9", body: valid, user: member, ucErr: saveAppointment.ErrNotFound, status: http.StatusNotFound},
		{name: "forbidden", method: http.MethodPut, path: "/appointments/9", body: valid, user: member, ucErr: saveAppointment.ErrAccessDenied, status: http.StatusForbidden},
		{name: "internal", method: http.MethodPost, path: "/appointments", body: valid, user: member, ucErr: saveAppointment.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubUseCase{err: tt.ucErr}, time.UTC, logger.NewNop())
			rec := do(t, h, tt.method, tt.path, tt.body, tt.user)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
