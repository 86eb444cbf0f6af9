package get_calendar

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/calendar"
)

// SettingsResponse примененные настройки окна
type SettingsResponse struct {
	DaysRange   int  `json:"daysRange"`
	IncludePast bool `json:"includePast"`
}

// CalendarResponse HTTP response model: записи и события, сгруппированные по дате "YYYY-MM-DD"
type CalendarResponse struct {
	Settings           SettingsResponse                          `json:"settings"`
	Now                string                                    `json:"now"`
	Timezone           string                                    `json:"timezone"`
	FutureKeys         []string                                  `json:"futureKeys"`
	PastKeys           []string                                  `json:"pastKeys"`
	FutureAppointments map[string][]handlers.AppointmentResponse `json:"futureAppointments"`
	PastAppointments   map[string][]handlers.AppointmentResponse `json:"pastAppointments"`
	FutureEvents       map[string][]handlers.EventResponse       `json:"futureEvents"`
	PastEvents         map[string][]handlers.EventResponse       `json:"pastEvents"`
}

// FromView конвертирует представление календаря в HTTP response
func FromView(view *calendar.View) *CalendarResponse {
	return &CalendarResponse{
		Settings: SettingsResponse{
			DaysRange:   view.Settings.DaysRange,
			IncludePast: view.Settings.IncludePast,
		},
		Now:                view.Now.In(view.Location()).Format(time.RFC3339),
		Timezone:           view.Location().String(),
		FutureKeys:         view.FutureKeys(),
		PastKeys:           view.PastKeys(),
		FutureAppointments: groupedAppointments(view.FutureAppointments),
		PastAppointments:   groupedAppointments(view.PastAppointments),
		FutureEvents:       groupedEvents(view.FutureEvents),
		PastEvents:         groupedEvents(view.PastEvents),
	}
}

func groupedAppointments(grouped domain.GroupedByDate[domain.Appointment]) map[string][]handlers.AppointmentResponse {
	result := make(map[string][]handlers.AppointmentResponse, len(grouped))
	for key, items := range grouped {
		result[key] = handlers.FromAppointments(items)
	}
	return result
}

func groupedEvents(grouped domain.GroupedByDate[domain.Event]) map[string][]handlers.EventResponse {
	result := make(map[string][]handlers.EventResponse, len(grouped))
	for key, items := range grouped {
		result[key] = handlers.FromEvents(items)
	}
	return result
}
