package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// ErrReload ошибка загрузки снимка из источника
var ErrReload = errors.New("store: reload failed")

// DefaultRefreshSpec расписание перезагрузки по умолчанию
const DefaultRefreshSpec = "@every 1m"

// Refresher периодически перечитывает записи и события из источника и заменяет ими кэш
type Refresher struct {
	store        *Store
	appointments AppointmentLoader
	events       EventLoader
	spec         string
	timeout      time.Duration
	logger       Logger

	cron *cron.Cron
}

// NewRefresher создает новый экземпляр. spec - выражение cron или дескриптор (@every 1m)
func NewRefresher(
	store *Store,
	appointments AppointmentLoader,
	events EventLoader,
	spec string,
	timeout time.Duration,
	logger Logger,
) *Refresher {
	if spec == "" {
		spec = DefaultRefreshSpec
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Refresher{
		store:        store,
		appointments: appointments,
		events:       events,
		spec:         spec,
		timeout:      timeout,
		logger:       logger,
	}
}

// Reload читает оба списка параллельно и заменяет кэш, только если оба чтения успешны.
// Изменения, внесенные в кэш во время чтения, не теряются.
func (r *Refresher) Reload(ctx context.Context) error {
	since := r.store.Revision()

	var (
		appointments []domain.Appointment
		events       []domain.Event
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		appointments, err = r.appointments.GetAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		events, err = r.events.GetAll(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		r.logger.Error("Reload: failed, cache left unchanged: %v", err)
		return fmt.Errorf("%w: %v", ErrReload, err)
	}

	r.store.ReplaceAppointmentsSince(appointments, since)
	r.store.ReplaceEventsSince(events, since)

	r.logger.Info("Reload: loaded %d appointments and %d events", len(appointments), len(events))
	return nil
}

// Start регистрирует перезагрузку по расписанию и запускает планировщик
func (r *Refresher) Start() error {
	// следующая перезагрузка пропускается, пока не закончилась текущая
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := c.AddFunc(r.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		_ = r.Reload(ctx)
	})
	if err != nil {
		return fmt.Errorf("store: invalid refresh schedule %q: %w", r.spec, err)
	}

	r.cron = c
	c.Start()
	r.logger.Info("Refresher: scheduled reload %q", r.spec)
	return nil
}

// Stop останавливает планировщик и дожидается текущей перезагрузки
func (r *Refresher) Stop() {
	if r.cron == nil {
		return
	}
	<-r.cron.Stop().Done()
}
