package calendar

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// ProductID идентификатор календаря в iCalendar (PRODID)
const ProductID = "-//SMC//SchedulingService//EN"

// ExportICS сериализует представление в iCalendar.
// Включаются ближайшие дни и, если показ прошедших включен, прошедшие.
func ExportICS(view *View) (string, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(ProductID)

	loc := view.Location()
	stamp := view.Now.UTC()

	add := func(appointments domain.GroupedByDate[domain.Appointment], events domain.GroupedByDate[domain.Event], keys []string) error {
		for _, key := range keys {
			for i := range appointments[key] {
				if err := addItem(cal, domain.AppointmentItem(&appointments[key][i]), loc, stamp); err != nil {
					return err
				}
			}
			for i := range events[key] {
				if err := addItem(cal, domain.EventItem(&events[key][i]), loc, stamp); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if view.Settings.IncludePast {
		if err := add(view.PastAppointments, view.PastEvents, view.PastKeys()); err != nil {
			return "", err
		}
	}
	if err := add(view.FutureAppointments, view.FutureEvents, view.FutureKeys()); err != nil {
		return "", err
	}

	return cal.Serialize(), nil
}

func addItem(cal *ics.Calendar, item domain.Item, loc *time.Location, stamp time.Time) error {
	start, end, err := itemInterval(item, loc)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrExport, item.Ref(), err)
	}

	vevent := cal.AddEvent(fmt.Sprintf("%s-%d@smc-scheduling", item.Kind(), item.Ref().ID))
	vevent.SetDtStampTime(stamp)
	vevent.SetStartAt(start)
	vevent.SetEndAt(end)
	vevent.SetSummary(item.Title())
	if location := item.Location(); location != "" {
		vevent.SetLocation(location)
	} else if item.IsVirtual() {
		vevent.SetLocation("Online")
	}
	if e := item.Event(); e != nil && e.Description != "" {
		vevent.SetDescription(e.Description)
	}
	return nil
}

// itemInterval начало и конец элемента для экспорта.
// Для записей конец = начало + длительность типа (30 мин для неизвестных),
// для событий - дата окончания + endTime, если они заданы.
func itemInterval(item domain.Item, loc *time.Location) (time.Time, time.Time, error) {
	start, err := item.StartInstant(loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if a := item.Appointment(); a != nil {
		return start, start.Add(time.Duration(a.DurationMinutes()) * time.Minute), nil
	}

	e := item.Event()
	if !e.EndTime.IsZero() {
		end, err := types.MergeDateTime(e.LastDate(), e.EndTime, loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if end.After(start) {
			return start, end, nil
		}
	}
	return start, start.Add(domain.Duration(item.TypeLabel())), nil
}
