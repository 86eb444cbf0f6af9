package save_event

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
	saveEvent "github.com/m04kA/SMC-SchedulingService/internal/usecase/save_event"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type stubUseCase struct {
	got  *saveEvent.Request
	resp *saveEvent.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *saveEvent.Request) (*saveEvent.Response, error) {
	s.got = req
	return s.resp, s.err
}

var admin = &domain.User{UID: "root", Role: domain.RoleAdmin}

func serve(h *Handler, method, path, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/events", h.Handle).Methods(http.MethodPost)
	r.HandleFunc("/events/{eventId}", h.Handle).Methods(http.MethodPut)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req = req.WithContext(middleware.WithUser(req.Context(), admin))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_CreateMultiDay(t *testing.T) {
	uc := &stubUseCase{resp: &saveEvent.Response{
		Event: domain.Event{
			ID:        8,
			EventName: "Retreat",
			EventType: domain.EventTraining,
			StartDate: time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 6, 22, 0, 0, 0, 0, time.UTC),
			StartTime: "09:00",
		},
		Created:         true,
		ConflictChecked: true,
	}}
	h := NewHandler(uc, logger.NewNop())

	body := `{"eventName": "Retreat", "eventType": "TRAINING", "startDate": "2025-06-20", "endDate": "2025-06-22", "startTime": "09:00"}`
	rec := serve(h, http.MethodPost, "/events", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, time.Date(2025, 6, 22, 0, 0, 0, 0, time.UTC), uc.got.EndDate)

	var resp SaveEventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2025-06-20", resp.Event.StartDate)
	assert.Equal(t, "2025-06-22", resp.Event.EndDate)
	assert.True(t, resp.ConflictCheck.Checked)
	assert.False(t, resp.ConflictCheck.Conflict)
}

func TestHandler_UpdateSingleDay(t *testing.T) {
	uc := &stubUseCase{resp: &saveEvent.Response{Event: domain.Event{ID: 3, StartDate: time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)}}}
	h := NewHandler(uc, logger.NewNop())

	rec := serve(h, http.MethodPut, "/events/3", `{"eventName": "Bembe", "eventType": "BEMBE", "startDate": "2025-06-16"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.ID(3), *uc.got.ID)
	assert.True(t, uc.got.EndDate.IsZero())

	var resp SaveEventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Event.EndDate)
}

func TestHandler_Errors(t *testing.T) {
	valid := `{"eventName": "Bembe", "eventType": "BEMBE", "startDate": "2025-06-16"}`

	tests := []struct {
		name   string
		body   string
		ucErr  error
		status int
	}{
		{name: "bad start date", body: `{"startDate": "16/06/2025"}`, status: http.StatusBadRequest},
		{name: "bad end date", body: `{"startDate": "2025-06-16", "endDate": "x"}`, status: http.StatusBadRequest},
		{name: "forbidden", body: valid, ucErr: saveEvent.ErrAccessDenied, status: http.StatusForbidden},
		{name: "not found", body: valid, ucErr: saveEvent.ErrNotFound, status: http.StatusNotFound},
		{name: "invalid input", body: valid, ucErr: saveEvent.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "internal", body: valid, ucErr: saveEvent.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&stubUseCase{err: tt.ucErr}, logger.NewNop()), http.MethodPut, "/events/1", tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
