package check_conflicts

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	checkConflicts "github.com/m04kA/SMC-SchedulingService/internal/usecase/check_conflicts"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStart       = "некорректное время начала, ожидается start (RFC3339) или date (YYYY-MM-DD) и startTime (HH:MM)"
	msgInvalidInput       = "некорректные данные запроса"
	msgUpstream           = "хранилище записей недоступно"
)

type Handler struct {
	useCase  CheckConflictsUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CheckConflictsUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/conflicts/check
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CheckConflictsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /conflicts/check - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(h.location)
	if err != nil {
		h.logger.Warn("POST /conflicts/check - Invalid start: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStart)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkConflicts.ErrInvalidInput):
			h.logger.Warn("POST /conflicts/check - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, checkConflicts.ErrUpstream):
			h.logger.Error("POST /conflicts/check - Storage unavailable: %v", err)
			handlers.RespondBadGateway(w, msgUpstream)

		default:
			h.logger.Error("POST /conflicts/check - Failed to check conflicts: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /conflicts/check - Checked: start=%s, conflict=%t",
		useCaseReq.CandidateStart.Format(time.RFC3339), result.Conflict)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, h.location))
}
