package calendar

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// DateFunc возвращает дату, под которой элемент попадает в календарь.
// ok=false означает, что даты нет и элемент пропускается.
type DateFunc[T any] func(item T) (time.Time, bool)

// GroupByDate группирует элементы по календарной дате в loc.
// Порядок элементов внутри дня совпадает с порядком во входном списке.
// Элементы без даты отбрасываются без ошибки.
func GroupByDate[T any](items []T, dateOf DateFunc[T], loc *time.Location) domain.GroupedByDate[T] {
	grouped := make(domain.GroupedByDate[T])
	for _, item := range items {
		date, ok := dateOf(item)
		if !ok {
			continue
		}
		key := domain.DateKey(date, loc)
		grouped[key] = append(grouped[key], item)
	}
	return grouped
}

// AppointmentDate дата записи (поле date)
func AppointmentDate(a domain.Appointment) (time.Time, bool) {
	return a.Date, !a.Date.IsZero()
}

// EventDate дата начала события (поле startDate) в loc
func EventDate(loc *time.Location) DateFunc[domain.Event] {
	return func(e domain.Event) (time.Time, bool) {
		return e.CalendarDay(loc)
	}
}

// GroupAppointments группирует записи по дате
func GroupAppointments(items []domain.Appointment, loc *time.Location) domain.GroupedByDate[domain.Appointment] {
	return GroupByDate(items, AppointmentDate, loc)
}

// GroupEvents группирует события по дате начала
func GroupEvents(items []domain.Event, loc *time.Location) domain.GroupedByDate[domain.Event] {
	return GroupByDate(items, EventDate(loc), loc)
}
