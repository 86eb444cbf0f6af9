package delete_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	deleteBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/delete_booking"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidConfirm       = "некорректный параметр confirm"
	msgNotConfirmed         = "удаление не подтверждено, повторите запрос с confirm=true"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "доступ запрещен"
	msgUpstream             = "не удалось удалить запись в хранилище"
)

type Handler struct {
	useCase             DeleteUseCase
	snapshot            AppointmentSnapshot
	requireConfirmation bool
	logger              Logger
}

func NewHandler(useCase DeleteUseCase, snapshot AppointmentSnapshot, requireConfirmation bool, logger Logger) *Handler {
	return &Handler{
		useCase:             useCase,
		snapshot:            snapshot,
		requireConfirmation: requireConfirmation,
		logger:              logger,
	}
}

// Handle DELETE /api/v1/appointments/{appointmentId}
// Query params: confirm (bool, обязателен при включенном подтверждении)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathID(r, "appointmentId")
	if err != nil {
		h.logger.Warn("DELETE /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	confirmed, err := handlers.QueryBool(r, "confirm", false)
	if err != nil {
		h.logger.Warn("DELETE /appointments/{id} - Invalid confirm: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConfirm)
		return
	}

	user := middleware.GetUser(r.Context())
	if user == nil {
		h.logger.Warn("DELETE /appointments/{id} - Missing user")
		handlers.RespondUnauthorized(w)
		return
	}

	req := ToUseCaseRequest(appointmentID, user, h.snapshot.Appointments(), h.requireConfirmation, confirmed)

	result, err := h.useCase.DeleteAppointment(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, deleteBooking.ErrCancelled):
			h.logger.Info("DELETE /appointments/{id} - Not confirmed: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusPreconditionRequired, msgNotConfirmed)

		case errors.Is(err, deleteBooking.ErrNotFound):
			h.logger.Warn("DELETE /appointments/{id} - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, deleteBooking.ErrAccessDenied):
			h.logger.Warn("DELETE /appointments/{id} - Access denied: appointment_id=%d, user=%s", appointmentID, user.UID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, deleteBooking.ErrUpstream):
			h.logger.Error("DELETE /appointments/{id} - Storage error: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondBadGateway(w, msgUpstream)

		case errors.Is(err, deleteBooking.ErrInvalidInput):
			h.logger.Warn("DELETE /appointments/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidAppointmentID)

		default:
			h.logger.Error("DELETE /appointments/{id} - Failed to delete appointment: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /appointments/{id} - Appointment deleted: appointment_id=%d, user=%s", appointmentID, user.UID)
	handlers.RespondJSON(w, http.StatusOK, DeleteAppointmentResponse{Deleted: result.Deleted})
}
