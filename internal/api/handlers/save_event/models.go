package save_event

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	saveEvent "github.com/m04kA/SMC-SchedulingService/internal/usecase/save_event"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// SaveEventRequest HTTP request model
type SaveEventRequest struct {
	EventName   string  `json:"eventName"`
	EventType   string  `json:"eventType"`
	ClientName  string  `json:"clientName"`
	StartDate   string  `json:"startDate"`         // "2025-06-16"
	EndDate     string  `json:"endDate,omitempty"` // пусто - однодневное событие
	StartTime   string  `json:"startTime,omitempty"`
	EndTime     string  `json:"endTime,omitempty"`
	IsVirtual   bool    `json:"isVirtual"`
	Street      *string `json:"street,omitempty"`
	City        *string `json:"city,omitempty"`
	State       *string `json:"state,omitempty"`
	PostalCode  *string `json:"postalCode,omitempty"`
	Description string  `json:"description"`
}

// SaveEventResponse HTTP response model
type SaveEventResponse struct {
	Event         handlers.EventResponse   `json:"event"`
	ConflictCheck handlers.ConflictWarning `json:"conflictCheck"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Даты событий - календарные, читаются в UTC.
func (r *SaveEventRequest) ToUseCaseRequest(id *domain.ID, actor *domain.User) (*saveEvent.Request, error) {
	startDate, err := types.ParseDate(r.StartDate, time.UTC)
	if err != nil {
		return nil, err
	}

	var endDate time.Time
	if r.EndDate != "" {
		endDate, err = types.ParseDate(r.EndDate, time.UTC)
		if err != nil {
			return nil, err
		}
	}

	return &saveEvent.Request{
		ID:         id,
		Actor:      actor,
		EventName:  r.EventName,
		EventType:  domain.EventType(r.EventType),
		ClientName: r.ClientName,
		StartDate:  startDate,
		EndDate:    endDate,
		StartTime:  types.TimeString(r.StartTime),
		EndTime:    types.TimeString(r.EndTime),
		IsVirtual:  r.IsVirtual,
		Address: handlers.AddressRequest{
			Street:     r.Street,
			City:       r.City,
			State:      r.State,
			PostalCode: r.PostalCode,
		}.ToDomain(),
		Description: r.Description,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *saveEvent.Response) *SaveEventResponse {
	return &SaveEventResponse{
		Event: handlers.FromEvent(&resp.Event),
		ConflictCheck: handlers.ConflictWarning{
			Checked:       resp.ConflictChecked,
			Conflict:      resp.Conflict,
			ConflictsWith: resp.ConflictsWith,
		},
	}
}
