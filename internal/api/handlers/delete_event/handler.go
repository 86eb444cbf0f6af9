package delete_event

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	deleteBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/delete_booking"
)

const (
	msgInvalidEventID = "некорректный ID события"
	msgInvalidConfirm = "некорректный параметр confirm"
	msgNotConfirmed   = "удаление не подтверждено, повторите запрос с confirm=true"
	msgNotFound       = "событие не найдено"
	msgForbidden      = "управлять событиями может только администратор"
	msgUpstream       = "не удалось удалить событие в хранилище"
)

type Handler struct {
	useCase             DeleteUseCase
	snapshot            EventSnapshot
	requireConfirmation bool
	logger              Logger
}

func NewHandler(useCase DeleteUseCase, snapshot EventSnapshot, requireConfirmation bool, logger Logger) *Handler {
	return &Handler{
		useCase:             useCase,
		snapshot:            snapshot,
		requireConfirmation: requireConfirmation,
		logger:              logger,
	}
}

// Handle DELETE /api/v1/events/{eventId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventID, err := handlers.PathID(r, "eventId")
	if err != nil {
		h.logger.Warn("DELETE /events/{id} - Invalid event ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventID)
		return
	}

	confirmed, err := handlers.QueryBool(r, "confirm", false)
	if err != nil {
		h.logger.Warn("DELETE /events/{id} - Invalid confirm: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConfirm)
		return
	}

	user := middleware.GetUser(r.Context())
	if user == nil {
		h.logger.Warn("DELETE /events/{id} - Missing user")
		handlers.RespondUnauthorized(w)
		return
	}

	req := ToUseCaseRequest(eventID, user, h.snapshot.Events(), h.requireConfirmation, confirmed)

	result, err := h.useCase.DeleteEvent(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, deleteBooking.ErrCancelled):
			h.logger.Info("DELETE /events/{id} - Not confirmed: event_id=%d", eventID)
			handlers.RespondError(w, http.StatusPreconditionRequired, msgNotConfirmed)

		case errors.Is(err, deleteBooking.ErrNotFound):
			h.logger.Warn("DELETE /events/{id} - Event not found: event_id=%d", eventID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, deleteBooking.ErrAccessDenied):
			h.logger.Warn("DELETE /events/{id} - Access denied: event_id=%d, user=%s", eventID, user.UID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, deleteBooking.ErrUpstream):
			h.logger.Error("DELETE /events/{id} - Storage error: event_id=%d, error=%v", eventID, err)
			handlers.RespondBadGateway(w, msgUpstream)

		default:
			h.logger.Error("DELETE /events/{id} - Failed to delete event: event_id=%d, error=%v", eventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /events/{id} - Event deleted: event_id=%d", eventID)
	handlers.RespondJSON(w, http.StatusOK, DeleteEventResponse{Deleted: result.Deleted})
}
