package get_event

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type stubService struct {
	event *domain.Event
	err   error
}

func (s *stubService) GetEvent(context.Context, domain.ID) (*domain.Event, error) {
	return s.event, s.err
}

func serve(s *stubService, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/events/{eventId}", NewHandler(s, logger.NewNop()).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandler_OK(t *testing.T) {
	rec := serve(&stubService{event: &domain.Event{
		ID:        4,
		EventName: "Bembe",
		EventType: domain.EventBembe,
		StartDate: time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		StartTime: "18:00",
	}}, "/events/4")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.EventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2025-06-16", resp.StartDate)
	assert.Equal(t, "18:00", resp.StartTime)
	assert.Equal(t, "BEMBE", resp.EventType)
}

func TestHandler_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&stubService{}, "/events/abc").Code)
	assert.Equal(t, http.StatusNotFound, serve(&stubService{err: bookings.ErrEventNotFound}, "/events/4").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&stubService{err: errors.New("db down")}, "/events/4").Code)
}
