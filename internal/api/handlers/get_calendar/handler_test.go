package get_calendar

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
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

func newCalendar(t *testing.T) (*calendar.Service, string) {
	t.Helper()

	tomorrow := time.Now().UTC().AddDate(0, 0, 1)
	day := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, time.UTC)

	s := store.New(nil)
	s.SetAppointments([]domain.Appointment{
		{ID: 1, UserID: "u1", ActivityType: domain.ActivityReading, Date: day.Add(12 * time.Hour)},
		{ID: 2, UserID: "u2", ActivityType: domain.ActivityWorkshop, Date: day.Add(14 * time.Hour)},
	})
	s.SetEvents([]domain.Event{{ID: 7, EventName: "Bembe", EventType: domain.EventBembe, StartDate: day}})

	svc := calendar.NewService(s, time.UTC, calendar.DefaultRangeSettings(), 0, logger.NewNop())
	svc.Regroup()
	return svc, domain.DateKey(day, time.UTC)
}

func get(h *Handler, path string, user *domain.User) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if user != nil {
		req = req.WithContext(middleware.WithUser(req.Context(), user))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_MemberSeesOwnAppointments(t *testing.T) {
	svc, key := newCalendar(t)
	h := NewHandler(svc, logger.NewNop())

	rec := get(h, "/calendar", &domain.User{UID: "u1", Role: domain.RoleUser})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CalendarResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, []string{key}, resp.FutureKeys)
	assert.Empty(t, resp.PastKeys)
	require.Len(t, resp.FutureAppointments[key], 1)
	assert.Equal(t, domain.ID(1), resp.FutureAppointments[key][0].ID)
	assert.Len(t, resp.FutureEvents[key], 1)
	assert.Equal(t, "UTC", resp.Timezone)
	assert.Equal(t, domain.DefaultDaysRange, resp.Settings.DaysRange)
}

func TestHandler_AdminSeesAll(t *testing.T) {
	svc, key := newCalendar(t)
	h := NewHandler(svc, logger.NewNop())

	rec := get(h, "/calendar?daysRange=-1&includePast=true", &domain.User{UID: "root", Role: domain.RoleAdmin})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CalendarResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Len(t, resp.FutureAppointments[key], 2)
	assert.True(t, resp.Settings.IncludePast)
	assert.Equal(t, -1, resp.Settings.DaysRange)
	assert.NotNil(t, resp.PastKeys)
}

func TestHandler_Errors(t *testing.T) {
	svc, _ := newCalendar(t)
	h := NewHandler(svc, logger.NewNop())

	assert.Equal(t, http.StatusUnauthorized, get(h, "/calendar", nil).Code)
	assert.Equal(t, http.StatusBadRequest, get(h, "/calendar?daysRange=-5", &domain.User{UID: "u1"}).Code)
	assert.Equal(t, http.StatusBadRequest, get(h, "/calendar?includePast=sometimes", &domain.User{UID: "u1"}).Code)
}
