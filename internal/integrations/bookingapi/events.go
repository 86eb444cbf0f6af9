package bookingapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// EventsAPI операции над коллекцией /events
type EventsAPI struct {
	client *Client
}

// GetAll получает все события
func (e *EventsAPI) GetAll(ctx context.Context) ([]domain.Event, error) {
	var dtos []Event
	if err := e.client.do(ctx, http.MethodGet, "/events", nil, &dtos); err != nil {
		return nil, err
	}

	result := make([]domain.Event, 0, len(dtos))
	for _, dto := range dtos {
		ev, err := dto.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
		result = append(result, ev)
	}
	return result, nil
}

// GetByID получает событие по ID
func (e *EventsAPI) GetByID(ctx context.Context, id domain.ID) (*domain.Event, error) {
	var dto Event
	if err := e.client.do(ctx, http.MethodGet, "/events/"+id.String(), nil, &dto); err != nil {
		return nil, err
	}

	ev, err := dto.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &ev, nil
}

// Create создает новое событие
func (e *EventsAPI) Create(ctx context.Context, ev *domain.Event) (*domain.Event, error) {
	var dto Event
	if err := e.client.do(ctx, http.MethodPost, "/events", fromDomainEvent(ev), &dto); err != nil {
		return nil, err
	}

	created, err := dto.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if created.ID == 0 {
		return nil, fmt.Errorf("%w: created event has no id", ErrInvalidResponse)
	}
	return &created, nil
}

// Update обновляет событие целиком
func (e *EventsAPI) Update(ctx context.Context, id domain.ID, ev *domain.Event) (*domain.Event, error) {
	var dto Event
	if err := e.client.do(ctx, http.MethodPut, "/events/"+id.String(), fromDomainEvent(ev), &dto); err != nil {
		return nil, err
	}

	updated, err := dto.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	updated.ID = id
	return &updated, nil
}

// Delete удаляет событие
func (e *EventsAPI) Delete(ctx context.Context, id domain.ID) error {
	return e.client.do(ctx, http.MethodDelete, "/events/"+id.String(), nil, nil)
}
