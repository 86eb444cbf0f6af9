package export_calendar

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/store"
	"github.com/m04kA/SMC-SchedulingService/internal/service/calendar"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

func TestHandler_ExportsVisibleItems(t *testing.T) {
	tomorrow := time.Now().UTC().AddDate(0, 0, 1)
	day := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, time.UTC)

	s := store.New(nil)
	s.SetAppointments([]domain.Appointment{
		{ID: 1, UserID: "u1", ActivityType: domain.ActivityReading, Name: "Ana", Date: day.Add(10 * time.Hour), StartTime: "10:00", EndTime: "10:30"},
		{ID: 2, UserID: "u2", ActivityType: domain.ActivityReading, Name: "Bo", Date: day.Add(12 * time.Hour), StartTime: "12:00", EndTime: "12:30"},
	})
	svc := calendar.NewService(s, time.UTC, calendar.DefaultRangeSettings(), 0, logger.NewNop())
	svc.Regroup()

	req := httptest.NewRequest(http.MethodGet, "/calendar.ics", nil)
	req = req.WithContext(middleware.WithUser(req.Context(), &domain.User{UID: "u1", Role: domain.RoleUser}))
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, contentType, rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "BEGIN:VCALENDAR"))
	assert.Contains(t, body, "appointment-1@smc-scheduling")
	assert.NotContains(t, body, "appointment-2@smc-scheduling")
}

func TestHandler_InvalidRange(t *testing.T) {
	svc := calendar.NewService(store.New(nil), time.UTC, calendar.DefaultRangeSettings(), 0, logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/calendar.ics?daysRange=abc", nil)
	req = req.WithContext(middleware.WithUser(req.Context(), &domain.User{UID: "u1"}))
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
