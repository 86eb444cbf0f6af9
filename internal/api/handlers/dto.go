package handlers

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// AppointmentResponse HTTP модель записи
type AppointmentResponse struct {
	ID             domain.ID `json:"id"`
	UserID         string    `json:"userId"`
	ActivityType   string    `json:"activityType"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Street         *string   `json:"street,omitempty"`
	City           *string   `json:"city,omitempty"`
	State          *string   `json:"state,omitempty"`
	PostalCode     *string   `json:"postalCode,omitempty"`
	Date           string    `json:"date"`
	StartTime      string    `json:"startTime"`
	EndTime        string    `json:"endTime"`
	IsVirtual      bool      `json:"isVirtual"`
	CreatedByAdmin bool      `json:"createdByAdmin"`
}

// EventResponse HTTP модель события
type EventResponse struct {
	ID          domain.ID `json:"id"`
	EventName   string    `json:"eventName"`
	EventType   string    `json:"eventType"`
	ClientName  string    `json:"clientName"`
	StartDate   string    `json:"startDate"`
	EndDate     string    `json:"endDate,omitempty"`
	StartTime   string    `json:"startTime,omitempty"`
	EndTime     string    `json:"endTime,omitempty"`
	IsVirtual   bool      `json:"isVirtual"`
	Street      *string   `json:"street,omitempty"`
	City        *string   `json:"city,omitempty"`
	State       *string   `json:"state,omitempty"`
	PostalCode  *string   `json:"postalCode,omitempty"`
	Description string    `json:"description"`
}

// AddressRequest части адреса во входящих запросах
type AddressRequest struct {
	Street     *string `json:"street,omitempty"`
	City       *string `json:"city,omitempty"`
	State      *string `json:"state,omitempty"`
	PostalCode *string `json:"postalCode,omitempty"`
}

// ToDomain конвертирует адрес в доменную модель
func (a AddressRequest) ToDomain() domain.Address {
	return domain.Address{Street: a.Street, City: a.City, State: a.State, PostalCode: a.PostalCode}
}

// FromAppointment конвертирует запись в HTTP модель
func FromAppointment(a *domain.Appointment) AppointmentResponse {
	return AppointmentResponse{
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
		Date:           a.Date.Format(time.RFC3339),
		StartTime:      a.StartTime.String(),
		EndTime:        a.EndTime.String(),
		IsVirtual:      a.IsVirtual,
		CreatedByAdmin: a.CreatedByAdmin,
	}
}

// FromAppointments конвертирует список записей
func FromAppointments(items []domain.Appointment) []AppointmentResponse {
	result := make([]AppointmentResponse, 0, len(items))
	for i := range items {
		result = append(result, FromAppointment(&items[i]))
	}
	return result
}

// FromEvent конвертирует событие в HTTP модель
func FromEvent(e *domain.Event) EventResponse {
	resp := EventResponse{
		ID:          e.ID,
		EventName:   e.EventName,
		EventType:   string(e.EventType),
		ClientName:  e.ClientName,
		StartDate:   e.StartDate.Format(domain.DateFormat),
		StartTime:   e.StartTime.String(),
		EndTime:     e.EndTime.String(),
		IsVirtual:   e.IsVirtual,
		Street:      e.Address.Street,
		City:        e.Address.City,
		State:       e.Address.State,
		PostalCode:  e.Address.PostalCode,
		Description: e.Description,
	}
	if !e.EndDate.IsZero() {
		resp.EndDate = e.EndDate.Format(domain.DateFormat)
	}
	return resp
}

// FromEvents конвертирует список событий
func FromEvents(items []domain.Event) []EventResponse {
	result := make([]EventResponse, 0, len(items))
	for i := range items {
		result = append(result, FromEvent(&items[i]))
	}
	return result
}

// ConflictWarning предупреждение о пересечении в ответах на сохранение
type ConflictWarning struct {
	Checked       bool            `json:"checked"`
	Conflict      bool            `json:"conflict"`
	ConflictsWith *domain.ItemRef `json:"conflictsWith,omitempty"`
}
