package save_appointment

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	saveAppointment "github.com/m04kA/SMC-SchedulingService/internal/usecase/save_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректная дата, ожидается RFC3339 или YYYY-MM-DD вместе со startTime"
	msgInvalidInput         = "некорректные данные записи"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "доступ запрещен"
)

type Handler struct {
	useCase  SaveAppointmentUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase SaveAppointmentUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/appointments и PUT /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	route := r.Method + " /appointments"

	// Есть appointmentId в пути - обновление
	var id *domain.ID
	if _, ok := mux.Vars(r)["appointmentId"]; ok {
		route += "/{id}"
		parsed, err := handlers.PathID(r, "appointmentId")
		if err != nil {
			h.logger.Warn("%s - Invalid appointment ID: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidAppointmentID)
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

	var req SaveAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(id, user, h.location)
	if err != nil {
		h.logger.Warn("%s - Invalid date: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, saveAppointment.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, saveAppointment.ErrNotFound):
			h.logger.Warn("%s - Appointment not found: %v", route, err)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, saveAppointment.ErrAccessDenied):
			h.logger.Warn("%s - Access denied: user=%s", route, user.UID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("%s - Failed to save appointment: %v", route, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}

	h.logger.Info("%s - Appointment saved: appointment_id=%d, user=%s, conflict=%t",
		route, result.Appointment.ID, user.UID, result.Conflict)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
