package export_calendar

import (
	"io"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/calendar"
)

const (
	msgInvalidRange = "некорректные параметры: daysRange от -1 до 3660, includePast true/false"

	contentType = "text/calendar; charset=utf-8"
	fileName    = "calendar.ics"
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

// Handle GET /api/v1/calendar.ics
// Query params те же, что у GET /calendar
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		h.logger.Warn("GET /calendar.ics - Missing user")
		handlers.RespondUnauthorized(w)
		return
	}

	settings, err := handlers.CalendarSettings(r, h.service.DefaultSettings())
	if err != nil {
		h.logger.Warn("GET /calendar.ics - Invalid settings: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	view, err := h.service.View(settings)
	if err != nil {
		h.logger.Warn("GET /calendar.ics - Failed to build view: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	body, err := calendar.ExportICS(view.VisibleTo(user))
	if err != nil {
		h.logger.Error("GET /calendar.ics - Export failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /calendar.ics - Exported calendar for user=%s, bytes=%d", user.UID, len(body))
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, body)
}
