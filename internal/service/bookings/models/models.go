package models

import (
	"errors"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrInvalidFilter возвращается при некорректном фильтре
	ErrInvalidFilter = errors.New("invalid appointment filter")
)

// GetUserAppointmentsRequest запрос на получение записей пользователя
type GetUserAppointmentsRequest struct {
	Actor  *domain.User
	UserID string
	Filter string // "", "past", "upcoming"
}

// ToDomainFilter конвертирует строковый фильтр в domain.AppointmentFilter
func (r *GetUserAppointmentsRequest) ToDomainFilter() (domain.AppointmentFilter, error) {
	filter := domain.AppointmentFilter(r.Filter)
	if !filter.IsValid() {
		return "", ErrInvalidFilter
	}
	return filter, nil
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []domain.Appointment
}
