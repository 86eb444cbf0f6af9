package save_event

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.Actor == nil || req.Actor.UID == "" {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}

	if req.ID != nil && *req.ID <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	if !req.EventType.IsValid() {
		return fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, req.EventType)
	}

	name := strings.TrimSpace(req.EventName)
	if name == "" {
		return fmt.Errorf("%w: eventName is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: eventName is longer than %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	if utf8.RuneCountInString(req.Description) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description is longer than %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
	}

	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}

	if !req.EndDate.IsZero() && req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	if !req.StartTime.IsZero() {
		if _, err := req.StartTime.Minutes(); err != nil {
			return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
		}
	}

	if !req.EndTime.IsZero() {
		if _, err := req.EndTime.Minutes(); err != nil {
			return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
		}
	}

	// Однодневное событие не может закончиться раньше начала
	sameDay := req.EndDate.IsZero() || req.EndDate.Equal(req.StartDate)
	if sameDay && !req.StartTime.IsZero() && !req.EndTime.IsZero() && !req.EndTime.IsAfter(req.StartTime) {
		return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}

	return nil
}
