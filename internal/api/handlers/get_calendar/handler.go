package get_calendar

import (
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
)

const (
	msgInvalidRange = "некорректные параметры: daysRange от -1 до 3660, includePast true/false"
)

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendar
// Query params: daysRange (-1 - без ограничения), includePast
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		h.logger.Warn("GET /calendar - Missing user")
		handlers.RespondUnauthorized(w)
		return
	}

	settings, err := handlers.CalendarSettings(r, h.service.DefaultSettings())
	if err != nil {
		h.logger.Warn("GET /calendar - Invalid settings: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	view, err := h.service.View(settings)
	if err != nil {
		h.logger.Warn("GET /calendar - Failed to build view: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	// Пользователь видит только свои записи, события видны всем
	view = view.VisibleTo(user)

	h.logger.Info("GET /calendar - user=%s, daysRange=%d, includePast=%t, days=%d",
		user.UID, settings.DaysRange, settings.IncludePast, len(view.FutureKeys()))
	handlers.RespondJSON(w, http.StatusOK, FromView(view))
}
