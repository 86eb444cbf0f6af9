package calendar

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// RangeSettings настройки отображения календаря: окно в днях и показ прошедших дней.
// Значение неизменяемое: With* возвращают новую копию.
type RangeSettings struct {
	DaysRange   int
	IncludePast bool
}

// DefaultRangeSettings настройки по умолчанию: 3 дня, без прошедших
func DefaultRangeSettings() RangeSettings {
	return RangeSettings{DaysRange: domain.DefaultDaysRange}
}

// WithRange возвращает настройки с новым окном
func (s RangeSettings) WithRange(daysRange int) (RangeSettings, error) {
	if err := validateRange(daysRange); err != nil {
		return s, err
	}
	s.DaysRange = daysRange
	return s, nil
}

// WithIncludePast возвращает настройки с новым флагом показа прошедших дней
func (s RangeSettings) WithIncludePast(include bool) RangeSettings {
	s.IncludePast = include
	return s
}

// Validate проверяет окно
func (s RangeSettings) Validate() error {
	return validateRange(s.DaysRange)
}

// Sources сгруппированные по дате записи и события
type Sources struct {
	Appointments domain.GroupedByDate[domain.Appointment]
	Events       domain.GroupedByDate[domain.Event]
}

// NewSources группирует снимки записей и событий
func NewSources(appointments []domain.Appointment, events []domain.Event, loc *time.Location) Sources {
	return Sources{
		Appointments: GroupAppointments(appointments, loc),
		Events:       GroupEvents(events, loc),
	}
}

// View результат фильтрации: четыре карты (будущее/прошлое x записи/события).
// Пересчитывается целиком при любом изменении настроек; исходные карты не изменяются.
type View struct {
	Settings RangeSettings
	Now      time.Time

	FutureAppointments domain.GroupedByDate[domain.Appointment]
	PastAppointments   domain.GroupedByDate[domain.Appointment]
	FutureEvents       domain.GroupedByDate[domain.Event]
	PastEvents         domain.GroupedByDate[domain.Event]

	sources  Sources
	location *time.Location
}

// NewView вычисляет все четыре отфильтрованные карты
func NewView(sources Sources, settings RangeSettings, now time.Time, loc *time.Location) (*View, error) {
	if loc == nil {
		loc = time.UTC
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	v := &View{
		Settings: settings,
		Now:      now,
		sources:  sources,
		location: loc,
	}

	var err error
	if v.FutureAppointments, err = FilterByRange(sources.Appointments, settings.DaysRange, false, now, loc); err != nil {
		return nil, err
	}
	if v.PastAppointments, err = FilterByRange(sources.Appointments, settings.DaysRange, true, now, loc); err != nil {
		return nil, err
	}
	if v.FutureEvents, err = FilterByRange(sources.Events, settings.DaysRange, false, now, loc); err != nil {
		return nil, err
	}
	if v.PastEvents, err = FilterByRange(sources.Events, settings.DaysRange, true, now, loc); err != nil {
		return nil, err
	}

	return v, nil
}

// SetRange переход состояния: новое окно, все карты пересчитываются
func (v *View) SetRange(daysRange int) (*View, error) {
	settings, err := v.Settings.WithRange(daysRange)
	if err != nil {
		return nil, err
	}
	return NewView(v.sources, settings, v.Now, v.location)
}

// SetIncludePast переход состояния: новый флаг, все карты пересчитываются
func (v *View) SetIncludePast(include bool) (*View, error) {
	return NewView(v.sources, v.Settings.WithIncludePast(include), v.Now, v.location)
}

// FutureKeys даты ближайших дней с записями или событиями, по возрастанию
func (v *View) FutureKeys() []string {
	return UnifiedSortedKeys(v.FutureAppointments, v.FutureEvents)
}

// PastKeys даты прошедших дней; пусто, если показ прошедших выключен
func (v *View) PastKeys() []string {
	if !v.Settings.IncludePast {
		return []string{}
	}
	return UnifiedSortedPastKeys(v.PastAppointments, v.PastEvents)
}

// Location часовой пояс, в котором построены ключи дат
func (v *View) Location() *time.Location {
	return v.location
}

// VisibleTo возвращает копию представления для пользователя.
// Администратор видит все; остальные только свои записи и все события.
func (v *View) VisibleTo(user *domain.User) *View {
	if user.IsAdmin() {
		return v
	}

	uid := ""
	if user != nil {
		uid = user.UID
	}

	visible := *v
	visible.FutureAppointments = ownAppointments(v.FutureAppointments, uid)
	visible.PastAppointments = ownAppointments(v.PastAppointments, uid)
	return &visible
}

// ownAppointments оставляет записи владельца uid; пустые дни удаляются
func ownAppointments(grouped domain.GroupedByDate[domain.Appointment], uid string) domain.GroupedByDate[domain.Appointment] {
	result := make(domain.GroupedByDate[domain.Appointment], len(grouped))
	for key, items := range grouped {
		var own []domain.Appointment
		for _, a := range items {
			if a.IsOwnedBy(uid) {
				own = append(own, a)
			}
		}
		if len(own) > 0 {
			result[key] = own
		}
	}
	return result
}
