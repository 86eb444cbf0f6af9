package bookingapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// AppointmentsAPI операции над коллекцией /appointments
type AppointmentsAPI struct {
	client *Client
}

// GetAll получает все записи
func (a *AppointmentsAPI) GetAll(ctx context.Context) ([]domain.Appointment, error) {
	var dtos []Appointment
	if err := a.client.do(ctx, http.MethodGet, "/appointments", nil, &dtos); err != nil {
		return nil, err
	}
	return toDomainAppointments(dtos)
}

// GetByID получает запись по ID
func (a *AppointmentsAPI) GetByID(ctx context.Context, id domain.ID) (*domain.Appointment, error) {
	var dto Appointment
	if err := a.client.do(ctx, http.MethodGet, "/appointments/"+id.String(), nil, &dto); err != nil {
		return nil, err
	}

	result, err := dto.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &result, nil
}

// GetByUserID получает записи пользователя с фильтром по времени.
// Фильтрация и сортировка выполняются на стороне клиента относительно now.
func (a *AppointmentsAPI) GetByUserID(ctx context.Context, userID string, filter domain.AppointmentFilter, now time.Time) ([]domain.Appointment, error) {
	var dtos []Appointment
	path := "/appointments/user/" + url.PathEscape(userID)
	if err := a.client.do(ctx, http.MethodGet, path, nil, &dtos); err != nil {
		return nil, err
	}

	all, err := toDomainAppointments(dtos)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Appointment, 0, len(all))
	for _, appt := range all {
		switch filter {
		case domain.FilterPast:
			if !appt.IsPast(now) {
				continue
			}
		case domain.FilterUpcoming:
			if appt.IsPast(now) {
				continue
			}
		}
		result = append(result, appt)
	}

	ascending := filter == domain.FilterUpcoming
	sort.SliceStable(result, func(i, j int) bool {
		if ascending {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].Date.After(result[j].Date)
	})

	return result, nil
}

// Create создает новую запись
func (a *AppointmentsAPI) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	var dto Appointment
	if err := a.client.do(ctx, http.MethodPost, "/appointments", fromDomainAppointment(appt), &dto); err != nil {
		return nil, err
	}

	created, err := dto.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if created.ID == 0 {
		return nil, fmt.Errorf("%w: created appointment has no id", ErrInvalidResponse)
	}
	return &created, nil
}

// Update обновляет запись целиком
func (a *AppointmentsAPI) Update(ctx context.Context, id domain.ID, appt *domain.Appointment) (*domain.Appointment, error) {
	var dto Appointment
	if err := a.client.do(ctx, http.MethodPut, "/appointments/"+id.String(), fromDomainAppointment(appt), &dto); err != nil {
		return nil, err
	}

	updated, err := dto.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	updated.ID = id
	return &updated, nil
}

// Delete удаляет запись
func (a *AppointmentsAPI) Delete(ctx context.Context, id domain.ID) error {
	return a.client.do(ctx, http.MethodDelete, "/appointments/"+id.String(), nil, nil)
}

func toDomainAppointments(dtos []Appointment) ([]domain.Appointment, error) {
	result := make([]domain.Appointment, 0, len(dtos))
	for _, dto := range dtos {
		appt, err := dto.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
		result = append(result, appt)
	}
	return result, nil
}
