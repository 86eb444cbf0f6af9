package calendar

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Window календарное окно [From, To], обе границы включительно
type Window struct {
	From string // YYYY-MM-DD
	To   string // YYYY-MM-DD
}

// Contains проверяет, попадает ли ключ даты в окно.
// Ключи в формате YYYY-MM-DD сравниваются как строки.
func (w Window) Contains(key string) bool {
	return key >= w.From && key <= w.To
}

// RangeWindow вычисляет окно для daysRange относительно сегодняшней даты в loc:
// будущее [today, today+daysRange], прошлое [today-daysRange, today]
func RangeWindow(daysRange int, isPast bool, now time.Time, loc *time.Location) (Window, error) {
	if daysRange < 0 {
		return Window{}, fmt.Errorf("%w: window requires a non-negative range, got %d", ErrInvalidRange, daysRange)
	}
	if loc == nil {
		loc = time.UTC
	}

	today := types.StartOfDay(now.In(loc))

	if isPast {
		return Window{
			From: today.AddDate(0, 0, -daysRange).Format(domain.DateFormat),
			To:   today.Format(domain.DateFormat),
		}, nil
	}
	return Window{
		From: today.Format(domain.DateFormat),
		To:   today.AddDate(0, 0, daysRange).Format(domain.DateFormat),
	}, nil
}

// FilterByRange оставляет только дни, попадающие в окно daysRange.
// daysRange = domain.UnboundedDaysRange возвращает grouped без изменений.
// Входная карта не изменяется; списки элементов разделяются с результатом.
func FilterByRange[T any](
	grouped domain.GroupedByDate[T],
	daysRange int,
	isPast bool,
	now time.Time,
	loc *time.Location,
) (domain.GroupedByDate[T], error) {
	if daysRange == domain.UnboundedDaysRange {
		return grouped, nil
	}
	if err := validateRange(daysRange); err != nil {
		return nil, err
	}

	window, err := RangeWindow(daysRange, isPast, now, loc)
	if err != nil {
		return nil, err
	}

	result := make(domain.GroupedByDate[T])
	for key, items := range grouped {
		if window.Contains(key) {
			result[key] = items
		}
	}
	return result, nil
}

func validateRange(daysRange int) error {
	if daysRange < domain.UnboundedDaysRange {
		return fmt.Errorf("%w: %d", ErrInvalidRange, daysRange)
	}
	if daysRange > domain.MaxDaysRange {
		return fmt.Errorf("%w: %d exceeds %d", ErrInvalidRange, daysRange, domain.MaxDaysRange)
	}
	return nil
}
