package check_conflicts

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// occupancy занятый интервал существующей записи или события
type occupancy struct {
	ref       domain.ItemRef
	start     time.Time
	typeLabel string
	isVirtual bool
	location  string
}

// window возвращает интервал занятости, расширенный собственным буфером записи:
// [start - buffer, start + duration + buffer)
func (o occupancy) window() (time.Time, time.Time) {
	buffer := domain.Buffer(o.isVirtual, o.location)
	return o.start.Add(-buffer), o.start.Add(domain.Duration(o.typeLabel)).Add(buffer)
}

// collectOccupancies сводит записи и события в единый список интервалов.
// Запись из exclude (редактируемая) пропускается.
func collectOccupancies(
	appointments []domain.Appointment,
	events []domain.Event,
	loc *time.Location,
	exclude *domain.ItemRef,
) ([]occupancy, error) {
	items := make([]domain.Item, 0, len(appointments)+len(events))
	for i := range appointments {
		items = append(items, domain.AppointmentItem(&appointments[i]))
	}
	for i := range events {
		items = append(items, domain.EventItem(&events[i]))
	}

	result := make([]occupancy, 0, len(items))
	for _, item := range items {
		if exclude != nil && item.Ref() == *exclude {
			continue
		}

		start, err := item.StartInstant(loc)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidItem, item.Ref(), err)
		}

		result = append(result, occupancy{
			ref:       item.Ref(),
			start:     start,
			typeLabel: item.TypeLabel(),
			isVirtual: item.IsVirtual(),
			location:  item.Location(),
		})
	}

	return result, nil
}

// findConflict ищет первый интервал, пересекающийся с кандидатом [candidateStart, candidateEnd).
//
// Пересечение полуоткрытое: кандидат, начинающийся ровно в конце расширенного
// интервала (start + duration + buffer), конфликтом НЕ считается.
// Буфер кандидата к его собственному интервалу не применяется.
func findConflict(candidateStart, candidateEnd time.Time, existing []occupancy) (*domain.ItemRef, bool) {
	for _, o := range existing {
		existingStart, existingEnd := o.window()
		if overlaps(candidateStart, candidateEnd, existingStart, existingEnd) {
			ref := o.ref
			return &ref, true
		}
	}
	return nil, false
}

// overlaps проверяет пересечение полуоткрытых интервалов
func overlaps(candidateStart, candidateEnd, existingStart, existingEnd time.Time) bool {
	return candidateStart.Before(existingEnd) && candidateEnd.After(existingStart)
}
