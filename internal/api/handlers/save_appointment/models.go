package save_appointment

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	saveAppointment "github.com/m04kA/SMC-SchedulingService/internal/usecase/save_appointment"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// SaveAppointmentRequest HTTP request model.
// Date - RFC3339 момент начала либо "YYYY-MM-DD" вместе со StartTime.
type SaveAppointmentRequest struct {
	UserID       string  `json:"userId,omitempty"` // только для администратора
	ActivityType string  `json:"activityType"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Street       *string `json:"street,omitempty"`
	City         *string `json:"city,omitempty"`
	State        *string `json:"state,omitempty"`
	PostalCode   *string `json:"postalCode,omitempty"`
	Date         string  `json:"date"`
	StartTime    string  `json:"startTime,omitempty"`
	EndTime      string  `json:"endTime,omitempty"`
	IsVirtual    bool    `json:"isVirtual"`
}

// SaveAppointmentResponse HTTP response model
type SaveAppointmentResponse struct {
	Appointment   handlers.AppointmentResponse `json:"appointment"`
	ConflictCheck handlers.ConflictWarning     `json:"conflictCheck"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SaveAppointmentRequest) ToUseCaseRequest(id *domain.ID, actor *domain.User, loc *time.Location) (*saveAppointment.Request, error) {
	date, err := parseStart(r.Date, r.StartTime, loc)
	if err != nil {
		return nil, err
	}

	return &saveAppointment.Request{
		ID:           id,
		Actor:        actor,
		UserID:       r.UserID,
		ActivityType: domain.ActivityType(r.ActivityType),
		Name:         r.Name,
		Email:        r.Email,
		Phone:        r.Phone,
		Address: handlers.AddressRequest{
			Street:     r.Street,
			City:       r.City,
			State:      r.State,
			PostalCode: r.PostalCode,
		}.ToDomain(),
		Date:      date,
		StartTime: types.TimeString(r.StartTime),
		EndTime:   types.TimeString(r.EndTime),
		IsVirtual: r.IsVirtual,
	}, nil
}

func parseStart(date, startTime string, loc *time.Location) (time.Time, error) {
	if instant, err := types.ParseInstant(date); err == nil {
		return instant, nil
	}
	return types.MergeDateAndTimeStrings(date, startTime, loc)
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *saveAppointment.Response) *SaveAppointmentResponse {
	return &SaveAppointmentResponse{
		Appointment: handlers.FromAppointment(&resp.Appointment),
		ConflictCheck: handlers.ConflictWarning{
			Checked:       resp.ConflictChecked,
			Conflict:      resp.Conflict,
			ConflictsWith: resp.ConflictsWith,
		},
	}
}
