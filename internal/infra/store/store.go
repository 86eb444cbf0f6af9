package store

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// subscriberBuffer размер буфера канала подписчика.
// Если подписчик не успевает читать, уведомление отбрасывается.
const subscriberBuffer = 16

// Store in-memory кэш текущих записей и событий.
// Идентичность элемента определяется только id: после любой последовательности
// Upsert/Remove в списке не больше одного элемента с данным id.
type Store struct {
	mu           sync.RWMutex
	appointments []domain.Appointment
	events       []domain.Event

	// локальные изменения с номером ревизии; сбрасываются при полной замене списка
	rev              uint64
	appointmentTouch map[domain.ID]touch
	eventTouch       map[domain.ID]touch

	subMu       sync.Mutex
	subscribers map[int]chan domain.Change
	nextSubID   int

	metrics MetricsRecorder
}

// New создает пустое хранилище
func New(metrics MetricsRecorder) *Store {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Store{
		appointmentTouch: make(map[domain.ID]touch),
		eventTouch:       make(map[domain.ID]touch),
		subscribers:      make(map[int]chan domain.Change),
		metrics:          metrics,
	}
}

// touch локальное изменение элемента
type touch struct {
	rev     uint64
	removed bool
}

// Revision номер последнего локального изменения (Upsert/Remove)
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rev
}

// SetAppointments полностью заменяет список записей
func (s *Store) SetAppointments(items []domain.Appointment) {
	s.mu.Lock()
	s.appointments = append([]domain.Appointment(nil), items...)
	s.appointmentTouch = make(map[domain.ID]touch)
	n := len(s.appointments)
	s.mu.Unlock()

	s.metrics.SetStoreItems(string(domain.KindAppointment), n)
	s.publish(domain.Change{Kind: domain.KindAppointment, Op: domain.OpReplace})
}

// SetEvents полностью заменяет список событий
func (s *Store) SetEvents(items []domain.Event) {
	s.mu.Lock()
	s.events = append([]domain.Event(nil), items...)
	s.eventTouch = make(map[domain.ID]touch)
	n := len(s.events)
	s.mu.Unlock()

	s.metrics.SetStoreItems(string(domain.KindEvent), n)
	s.publish(domain.Change{Kind: domain.KindEvent, Op: domain.OpReplace})
}

// ReplaceAppointmentsSince заменяет список записей снимком, прочитанным после ревизии since.
// Локальные изменения новее since накладываются поверх снимка.
func (s *Store) ReplaceAppointmentsSince(items []domain.Appointment, since uint64) {
	s.mu.Lock()
	s.appointments = reconcile(items, s.appointments, s.appointmentTouch, since, func(a domain.Appointment) domain.ID { return a.ID })
	s.appointmentTouch = make(map[domain.ID]touch)
	n := len(s.appointments)
	s.mu.Unlock()

	s.metrics.SetStoreItems(string(domain.KindAppointment), n)
	s.publish(domain.Change{Kind: domain.KindAppointment, Op: domain.OpReplace})
}

// ReplaceEventsSince заменяет список событий снимком, прочитанным после ревизии since
func (s *Store) ReplaceEventsSince(items []domain.Event, since uint64) {
	s.mu.Lock()
	s.events = reconcile(items, s.events, s.eventTouch, since, func(e domain.Event) domain.ID { return e.ID })
	s.eventTouch = make(map[domain.ID]touch)
	n := len(s.events)
	s.mu.Unlock()

	s.metrics.SetStoreItems(string(domain.KindEvent), n)
	s.publish(domain.Change{Kind: domain.KindEvent, Op: domain.OpReplace})
}

// UpsertAppointment заменяет запись с тем же id на ее месте или добавляет в конец
func (s *Store) UpsertAppointment(item domain.Appointment) {
	s.mu.Lock()
	s.appointments = upsert(s.appointments, item, func(a domain.Appointment) domain.ID { return a.ID })
	s.rev++
	s.appointmentTouch[item.ID] = touch{rev: s.rev}
	n := len(s.appointments)
	s.mu.Unlock()

	s.metrics.SetStoreItems(string(domain.KindAppointment), n)
	s.publish(domain.Change{Kind: domain.KindAppointment, Op: domain.OpUpsert, ID: item.ID})
}

// UpsertEvent заменяет событие с тем же id на его месте или добавляет в конец
func (s *Store) UpsertEvent(item domain.Event) {
	s.mu.Lock()
	s.events = upsert(s.events, item, func(e domain.Event) domain.ID { return e.ID })
	s.rev++
	s.eventTouch[item.ID] = touch{rev: s.rev}
	n := len(s.events)
	s.mu.Unlock()

	s.metrics.SetStoreItems(string(domain.KindEvent), n)
	s.publish(domain.Change{Kind: domain.KindEvent, Op: domain.OpUpsert, ID: item.ID})
}

// removeAppointmentByID удаляет все записи с id и возвращает их количество.
// Удаление несуществующего id ничего не меняет и уведомлений не отправляет.
func (s *Store) removeAppointmentByID(id domain.ID) int {
	s.mu.Lock()
	var removed int
	s.appointments, removed = removeByID(s.appointments, id, func(a domain.Appointment) domain.ID { return a.ID })
	s.rev++
	s.appointmentTouch[id] = touch{rev: s.rev, removed: true}
	n := len(s.appointments)
	s.mu.Unlock()

	if removed > 0 {
		s.metrics.SetStoreItems(string(domain.KindAppointment), n)
		s.publish(domain.Change{Kind: domain.KindAppointment, Op: domain.OpRemove, ID: id})
	}
	return removed
}

// removeEventByID удаляет все события с id и возвращает их количество
func (s *Store) removeEventByID(id domain.ID) int {
	s.mu.Lock()
	var removed int
	s.events, removed = removeByID(s.events, id, func(e domain.Event) domain.ID { return e.ID })
	s.rev++
	s.eventTouch[id] = touch{rev: s.rev, removed: true}
	n := len(s.events)
	s.mu.Unlock()

	if removed > 0 {
		s.metrics.SetStoreItems(string(domain.KindEvent), n)
		s.publish(domain.Change{Kind: domain.KindEvent, Op: domain.OpRemove, ID: id})
	}
	return removed
}

// RemoveAppointment удаляет запись по id в любом представлении (число или строка)
func (s *Store) RemoveAppointment(rawID interface{}) (int, error) {
	id, err := domain.NormalizeID(rawID)
	if err != nil {
		return 0, err
	}
	return s.removeAppointmentByID(id), nil
}

// RemoveEvent удаляет событие по id в любом представлении (число или строка)
func (s *Store) RemoveEvent(rawID interface{}) (int, error) {
	id, err := domain.NormalizeID(rawID)
	if err != nil {
		return 0, err
	}
	return s.removeEventByID(id), nil
}

// Appointments копия текущего списка записей
func (s *Store) Appointments() []domain.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Appointment(nil), s.appointments...)
}

// Events копия текущего списка событий
func (s *Store) Events() []domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Event(nil), s.events...)
}

// Subscribe возвращает канал уведомлений об изменениях и функцию отписки
func (s *Store) Subscribe() (<-chan domain.Change, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	ch := make(chan domain.Change, subscriberBuffer)
	s.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			delete(s.subscribers, id)
			close(ch)
		})
	}
}

func (s *Store) publish(change domain.Change) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for _, ch := range s.subscribers {
		select {
		case ch <- change:
		default:
		}
	}
}

// AppointmentsView источник записей для проверки пересечений (GetAll по снимку)
type AppointmentsView struct{ store *Store }

// AppointmentsView возвращает адаптер GetAll поверх снимка записей
func (s *Store) AppointmentsView() AppointmentsView {
	return AppointmentsView{store: s}
}

func (v AppointmentsView) GetAll(context.Context) ([]domain.Appointment, error) {
	return v.store.Appointments(), nil
}

// EventsView источник событий для проверки пересечений (GetAll по снимку)
type EventsView struct{ store *Store }

// EventsView возвращает адаптер GetAll поверх снимка событий
func (s *Store) EventsView() EventsView {
	return EventsView{store: s}
}

func (v EventsView) GetAll(context.Context) ([]domain.Event, error) {
	return v.store.Events(), nil
}

func upsert[T any](items []T, item T, idOf func(T) domain.ID) []T {
	id := idOf(item)
	for i := range items {
		if idOf(items[i]) == id {
			next := append([]T(nil), items...)
			next[i] = item
			return dedupeAfter(next, i, id, idOf)
		}
	}
	next := make([]T, 0, len(items)+1)
	next = append(next, items...)
	return append(next, item)
}

// dedupeAfter убирает повторы id после позиции keep (список мог прийти из Set с дубликатами)
func dedupeAfter[T any](items []T, keep int, id domain.ID, idOf func(T) domain.ID) []T {
	result := items[:keep+1]
	for _, it := range items[keep+1:] {
		if idOf(it) != id {
			result = append(result, it)
		}
	}
	return result
}

func removeByID[T any](items []T, id domain.ID, idOf func(T) domain.ID) ([]T, int) {
	next := make([]T, 0, len(items))
	for _, it := range items {
		if idOf(it) != id {
			next = append(next, it)
		}
	}
	return next, len(items) - len(next)
}

// reconcile накладывает локальные изменения новее since на загруженный снимок.
// Удаленные локально id выбрасываются, обновленные берутся из текущего кэша,
// созданные локально и отсутствующие в снимке добавляются в конец.
func reconcile[T any](loaded, current []T, touches map[domain.ID]touch, since uint64, idOf func(T) domain.ID) []T {
	local := make(map[domain.ID]T)
	for _, it := range current {
		id := idOf(it)
		if t, ok := touches[id]; ok && t.rev > since && !t.removed {
			if _, seen := local[id]; !seen {
				local[id] = it
			}
		}
	}

	result := make([]T, 0, len(loaded)+len(local))
	used := make(map[domain.ID]bool, len(local))
	for _, it := range loaded {
		id := idOf(it)
		if t, ok := touches[id]; ok && t.rev > since {
			if t.removed || used[id] {
				continue
			}
			if l, ok := local[id]; ok {
				result = append(result, l)
				used[id] = true
				continue
			}
		}
		result = append(result, it)
	}

	for _, it := range current {
		id := idOf(it)
		if l, ok := local[id]; ok && !used[id] {
			result = append(result, l)
			used[id] = true
		}
	}
	return result
}
