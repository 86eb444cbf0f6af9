package calendar

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/debounce"
)

// DefaultDebounce период тишины перед перегруппировкой после изменений хранилища
const DefaultDebounce = 100 * time.Millisecond

// Service держит карты записей и событий, сгруппированные по дате,
// и строит по ним отфильтрованные представления календаря.
// Карты перестраиваются по уведомлениям хранилища, пачки изменений схлопываются.
type Service struct {
	source       SnapshotSource
	location     *time.Location
	defaults     RangeSettings
	debounceWait time.Duration
	timeProvider TimeProvider
	logger       Logger

	regroupMu sync.Mutex
	mu        sync.RWMutex
	sources   Sources
}

// NewService создает новый экземпляр сервиса календаря
func NewService(
	source SnapshotSource,
	location *time.Location,
	defaults RangeSettings,
	debounceWait time.Duration,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	if debounceWait <= 0 {
		debounceWait = DefaultDebounce
	}
	return &Service{
		source:       source,
		location:     location,
		defaults:     defaults,
		debounceWait: debounceWait,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// DefaultSettings настройки окна, применяемые, если клиент их не передал
func (s *Service) DefaultSettings() RangeSettings {
	return s.defaults
}

// Location часовой пояс календаря
func (s *Service) Location() *time.Location {
	return s.location
}

// Regroup перестраивает сгруппированные карты из текущего снимка хранилища.
// Вызовы выполняются по одному: снимок, прочитанный позже, присваивается последним.
func (s *Service) Regroup() {
	s.regroupMu.Lock()
	defer s.regroupMu.Unlock()

	appointments := s.source.Appointments()
	events := s.source.Events()
	sources := NewSources(appointments, events, s.location)

	s.mu.Lock()
	s.sources = sources
	s.mu.Unlock()

	s.logger.Info("Regroup: %d appointments on %d days, %d events on %d days",
		sources.Appointments.Count(), len(sources.Appointments),
		sources.Events.Count(), len(sources.Events))
}

// Run подписывается на изменения хранилища и перестраивает карты до отмены ctx
func (s *Service) Run(ctx context.Context) error {
	changes, unsubscribe := s.source.Subscribe()
	defer unsubscribe()

	s.Regroup()

	debouncer := debounce.New(s.debounceWait, s.Regroup)
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-changes:
			if !ok {
				debouncer.Flush()
				return nil
			}
			s.logger.Info("Run: store changed: %s %s #%d", change.Op, change.Kind, change.ID)
			debouncer.Trigger()
		}
	}
}

// View строит представление календаря для настроек
func (s *Service) View(settings RangeSettings) (*View, error) {
	s.mu.RLock()
	sources := s.sources
	s.mu.RUnlock()

	view, err := NewView(sources, settings, s.timeProvider.Now(), s.location)
	if err != nil {
		s.logger.Warn("View: invalid settings %+v: %v", settings, err)
		return nil, err
	}
	return view, nil
}
