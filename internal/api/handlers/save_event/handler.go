package save_event

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	saveEvent "github.com/m04kA/SMC-SchedulingService/internal/usecase/save_event"
)

const (
	msgInvalidEventID     = "некорректный ID события"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректная дата, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные события"
	msgNotFound           = "событие не найдено"
	msgForbidden          = "управлять событиями может только администратор"
)

type Handler struct {
	useCase SaveEventUseCase
	logger  Logger
}

func NewHandler(useCase SaveEventUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/events и PUT /api/v1/events/{eventId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	route := r.Method + " /events"

	var id *domain.ID
	if _, ok := mux.Vars(r)["eventId"]; ok {
		route += "/{id}"
		parsed, err := handlers.PathID(r, "eventId")
		if err != nil {
			h.logger.Warn("%s - Invalid event ID: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidEventID)
			return
		}
		id = &parsed
	}

	user := middleware.GetUser(r.Context())
	if user == nil {
		h.logger.Warn("%s - Missing user", route)
		handlers.RespondUnauthorized(w)
		return
	}

	var req SaveEventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(id, user)
	if err != nil {
		h.logger.Warn("%s - Invalid date: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, saveEvent.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, saveEvent.ErrNotFound):
			h.logger.Warn("%s - Event not found: %v", route, err)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, saveEvent.ErrAccessDenied):
			h.logger.Warn("%s - Access denied: user=%s", route, user.UID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("%s - Failed to save event: %v", route, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}

	h.logger.Info("%s - Event saved: event_id=%d, conflict=%t", route, result.Event.ID, result.Conflict)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
