package bookingapi

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Appointment модель записи в API хранилища.
// id может приходить числом или строкой.
type Appointment struct {
	ID             domain.ID `json:"id,omitempty"`
	UserID         string    `json:"userId"`
	ActivityType   string    `json:"activityType"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Street         *string   `json:"street,omitempty"`
	City           *string   `json:"city,omitempty"`
	State          *string   `json:"state,omitempty"`
	PostalCode     *string   `json:"postalCode,omitempty"`
	Date           string    `json:"date"` // RFC3339
	StartTime      string    `json:"startTime,omitempty"`
	EndTime        string    `json:"endTime,omitempty"`
	IsVirtual      bool      `json:"isVirtual"`
	CreatedByAdmin bool      `json:"createdByAdmin"`
}

// Event модель события в API хранилища
type Event struct {
	ID          domain.ID `json:"id,omitempty"`
	EventName   string    `json:"eventName"`
	EventType   string    `json:"eventType"`
	ClientName  string    `json:"clientName"`
	StartDate   string    `json:"startDate"`         // YYYY-MM-DD или RFC3339
	EndDate     string    `json:"endDate,omitempty"` // YYYY-MM-DD или RFC3339
	StartTime   string    `json:"startTime,omitempty"`
	EndTime     string    `json:"endTime,omitempty"`
	IsVirtual   bool      `json:"isVirtual"`
	Street      *string   `json:"street,omitempty"`
	City        *string   `json:"city,omitempty"`
	State       *string   `json:"state,omitempty"`
	PostalCode  *string   `json:"postalCode,omitempty"`
	Description string    `json:"description"`
}

// ErrorResponse модель ошибки от API хранилища
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func fromDomainAppointment(a *domain.Appointment) Appointment {
	var date string
	if !a.Date.IsZero() {
		date = a.Date.Format(time.RFC3339)
	}
	return Appointment{
		ID:             a.ID,
		UserID:         a.UserID,
		ActivityType:   string(a.ActivityType),
		Name:           a.Name,
		Email:          a.Email,
		Phone:          a.Phone,
		Street:         a.Address.Street,
		City:           a.Address.City,
		State:          a.Address.State,
		PostalCode:     a.Address.PostalCode,
		Date:           date,
		StartTime:      a.StartTime.String(),
		EndTime:        a.EndTime.String(),
		IsVirtual:      a.IsVirtual,
		CreatedByAdmin: a.CreatedByAdmin,
	}
}

// toDomain приводит запись из API к доменной модели.
// Запись без даты допустима: она не участвует в группировке и проверках.
func (a Appointment) toDomain() (domain.Appointment, error) {
	result := domain.Appointment{
		ID:             a.ID,
		UserID:         a.UserID,
		ActivityType:   domain.ActivityType(a.ActivityType),
		Name:           a.Name,
		Email:          a.Email,
		Phone:          a.Phone,
		Address:        domain.Address{Street: a.Street, City: a.City, State: a.State, PostalCode: a.PostalCode},
		IsVirtual:      a.IsVirtual,
		CreatedByAdmin: a.CreatedByAdmin,
	}

	if a.Date != "" {
		date, err := types.ParseInstant(a.Date)
		if err != nil {
			return domain.Appointment{}, fmt.Errorf("appointment %s: %w", a.ID, err)
		}
		result.Date = date
	}

	var err error
	if result.StartTime, err = optionalTime(a.StartTime); err != nil {
		return domain.Appointment{}, fmt.Errorf("appointment %s: %w", a.ID, err)
	}
	if result.EndTime, err = optionalTime(a.EndTime); err != nil {
		return domain.Appointment{}, fmt.Errorf("appointment %s: %w", a.ID, err)
	}

	return result, nil
}

func fromDomainEvent(e *domain.Event) Event {
	var startDate, endDate string
	if !e.StartDate.IsZero() {
		startDate = e.StartDate.Format(domain.DateFormat)
	}
	if !e.EndDate.IsZero() {
		endDate = e.EndDate.Format(domain.DateFormat)
	}
	return Event{
		ID:          e.ID,
		EventName:   e.EventName,
		EventType:   string(e.EventType),
		ClientName:  e.ClientName,
		StartDate:   startDate,
		EndDate:     endDate,
		StartTime:   e.StartTime.String(),
		EndTime:     e.EndTime.String(),
		IsVirtual:   e.IsVirtual,
		Street:      e.Address.Street,
		City:        e.Address.City,
		State:       e.Address.State,
		PostalCode:  e.Address.PostalCode,
		Description: e.Description,
	}
}

// toDomain приводит событие из API к доменной модели.
// Даты хранятся как полночь UTC календарного дня.
func (e Event) toDomain() (domain.Event, error) {
	result := domain.Event{
		ID:          e.ID,
		EventName:   e.EventName,
		EventType:   domain.EventType(e.EventType),
		ClientName:  e.ClientName,
		IsVirtual:   e.IsVirtual,
		Address:     domain.Address{Street: e.Street, City: e.City, State: e.State, PostalCode: e.PostalCode},
		Description: e.Description,
	}

	var err error
	if e.StartDate != "" {
		if result.StartDate, err = types.ParseDate(e.StartDate, time.UTC); err != nil {
			return domain.Event{}, fmt.Errorf("event %s: %w", e.ID, err)
		}
	}
	if e.EndDate != "" {
		if result.EndDate, err = types.ParseDate(e.EndDate, time.UTC); err != nil {
			return domain.Event{}, fmt.Errorf("event %s: %w", e.ID, err)
		}
	}
	if result.StartTime, err = optionalTime(e.StartTime); err != nil {
		return domain.Event{}, fmt.Errorf("event %s: %w", e.ID, err)
	}
	if result.EndTime, err = optionalTime(e.EndTime); err != nil {
		return domain.Event{}, fmt.Errorf("event %s: %w", e.ID, err)
	}

	return result, nil
}

func optionalTime(s string) (types.TimeString, error) {
	if s == "" {
		return "", nil
	}
	return types.NewTimeStringFromString(s)
}
