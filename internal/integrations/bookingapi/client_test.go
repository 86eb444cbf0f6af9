package bookingapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

func newTestClient(t *testing.T, router *mux.Router) *Client {
	t.Helper()
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", time.Second, logger.NewNop())
}

func TestAppointments_GetAll_MixedIDs(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/appointments", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[
			{"id": 1, "userId": "u1", "activityType": "READING", "date": "2025-06-16T10:00:00Z", "startTime": "10:00:00", "endTime": "10:30"},
			{"id": "2", "userId": "u2", "activityType": "WORKSHOP", "date": "2025-06-17T09:00:00-07:00", "isVirtual": true}
		]`)
	}).Methods(http.MethodGet)

	appts, err := newTestClient(t, router).Appointments().GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, appts, 2)

	assert.Equal(t, domain.ID(1), appts[0].ID)
	assert.Equal(t, types.TimeString("10:00"), appts[0].StartTime)
	assert.Equal(t, domain.ID(2), appts[1].ID)
	assert.True(t, appts[1].IsVirtual)
	assert.True(t, appts[1].Date.Equal(time.Date(2025, 6, 17, 16, 0, 0, 0, time.UTC)))
}

func TestAppointments_GetAll_InvalidDate(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/appointments", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"id": 1, "date": "tomorrow"}]`)
	})

	_, err := newTestClient(t, router).Appointments().GetAll(context.Background())
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestAppointments_GetByUserID_FiltersLocally(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/appointments/user/{uid}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "user 1", mux.Vars(r)["uid"])
		io.WriteString(w, `[
			{"id": 1, "date": "2025-06-10T10:00:00Z"},
			{"id": 2, "date": "2025-06-20T10:00:00Z"},
			{"id": 3, "date": "2025-06-18T10:00:00Z"},
			{"id": 4, "date": "2025-06-01T10:00:00Z"}
		]`)
	})
	api := newTestClient(t, router).Appointments()
	now := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	ids := func(appts []domain.Appointment) []domain.ID {
		out := make([]domain.ID, 0, len(appts))
		for _, a := range appts {
			out = append(out, a.ID)
		}
		return out
	}

	upcoming, err := api.GetByUserID(context.Background(), "user 1", domain.FilterUpcoming, now)
	require.NoError(t, err)
	assert.Equal(t, []domain.ID{3, 2}, ids(upcoming))

	past, err := api.GetByUserID(context.Background(), "user 1", domain.FilterPast, now)
	require.NoError(t, err)
	assert.Equal(t, []domain.ID{1, 4}, ids(past))

	all, err := api.GetByUserID(context.Background(), "user 1", domain.FilterAll, now)
	require.NoError(t, err)
	assert.Equal(t, []domain.ID{2, 3, 1, 4}, ids(all))
}

func TestAppointments_CreateSendsPayload(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/appointments", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		assert.NotContains(t, body, "id")
		assert.Equal(t, "2025-06-16T10:00:00Z", body["date"])
		assert.Equal(t, "10:00", body["startTime"])
		assert.Equal(t, "READING", body["activityType"])

		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id": "15", "userId": "u1", "activityType": "READING", "date": "2025-06-16T10:00:00Z"}`)
	}).Methods(http.MethodPost)

	created, err := newTestClient(t, router).Appointments().Create(context.Background(), &domain.Appointment{
		UserID:       "u1",
		ActivityType: domain.ActivityReading,
		Date:         time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC),
		StartTime:    "10:00",
		EndTime:      "10:30",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ID(15), created.ID)
}

func TestAppointments_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{name: "not found", status: http.StatusNotFound, want: ErrNotFound},
		{name: "bad request", status: http.StatusBadRequest, body: `{"code":400,"message":"bad date"}`, want: ErrBadRequest},
		{name: "server error", status: http.StatusBadGateway, body: "upstream down", want: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := mux.NewRouter()
			router.HandleFunc("/appointments/{id}", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})

			_, err := newTestClient(t, router).Appointments().GetByID(context.Background(), 7)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAppointments_Delete(t *testing.T) {
	var called bool
	router := mux.NewRouter()
	router.HandleFunc("/appointments/{id}", func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, "9", mux.Vars(r)["id"])
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodDelete)

	require.NoError(t, newTestClient(t, router).Appointments().Delete(context.Background(), 9))
	assert.True(t, called)
}

func TestClient_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 100*time.Millisecond, logger.NewNop())

	err := client.Events().Delete(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestEvents_GetAll(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[
			{"id": 3, "eventName": "Bembe", "eventType": "BEMBE", "startDate": "2025-06-16", "startTime": "18:00", "city": "Seattle"},
			{"id": "4", "eventName": "Retreat", "eventType": "TRAINING", "startDate": "2025-06-20T00:00:00Z", "endDate": "2025-06-22"}
		]`)
	})

	events, err := newTestClient(t, router).Events().GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), events[0].StartDate)
	assert.Equal(t, "Seattle", events[0].Address.Location())
	assert.Equal(t, time.Date(2025, 6, 22, 0, 0, 0, 0, time.UTC), events[1].LastDate())
}

func TestEvents_Update(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/events/{id}", func(w http.ResponseWriter, r *http.Request) {
		var body Event
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "2025-06-16", body.StartDate)
		assert.Empty(t, body.EndDate)

		io.WriteString(w, `{"eventName": "Renamed", "eventType": "LECTURE", "startDate": "2025-06-16"}`)
	}).Methods(http.MethodPut)

	updated, err := newTestClient(t, router).Events().Update(context.Background(), 5, &domain.Event{
		EventName: "Renamed",
		EventType: domain.EventLecture,
		StartDate: time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ID(5), updated.ID)
	assert.Equal(t, "Renamed", updated.EventName)
}
