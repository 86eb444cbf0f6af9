package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	checkConflictsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/check_conflicts"
	deleteAppointmentHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/delete_appointment"
	deleteEventHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/delete_event"
	exportCalendarHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/export_calendar"
	getAppointmentHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_appointment"
	getCalendarHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_calendar"
	getEventHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_event"
	getUserAppointmentsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_user_appointments"
	saveAppointmentHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/save_appointment"
	saveEventHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/save_event"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/config"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	eventRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/event"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/store"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/firebaseauth"
	bookingsService "github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	calendarService "github.com/m04kA/SMC-SchedulingService/internal/service/calendar"
	checkConflictsUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/check_conflicts"
	deleteBookingUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/delete_booking"
	saveAppointmentUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/save_appointment"
	saveEventUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/save_event"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

// appointmentStorage общий интерфейс репозитория PostgreSQL и REST клиента записей
type appointmentStorage interface {
	GetAll(ctx context.Context) ([]domain.Appointment, error)
	GetByID(ctx context.Context, id domain.ID) (*domain.Appointment, error)
	GetByUserID(ctx context.Context, userID string, filter domain.AppointmentFilter, now time.Time) ([]domain.Appointment, error)
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	Update(ctx context.Context, id domain.ID, appointment *domain.Appointment) (*domain.Appointment, error)
	Delete(ctx context.Context, id domain.ID) error
}

// eventStorage общий интерфейс репозитория PostgreSQL и REST клиента событий
type eventStorage interface {
	GetAll(ctx context.Context) ([]domain.Event, error)
	GetByID(ctx context.Context, id domain.ID) (*domain.Event, error)
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
	Update(ctx context.Context, id domain.ID, event *domain.Event) (*domain.Event, error)
	Delete(ctx context.Context, id domain.ID) error
}

type txManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-SchedulingService...")
	log.Info("Configuration loaded from config.toml (storage=%s, auth=%s)", cfg.Storage.Backend, cfg.Auth.Provider)

	location, err := cfg.Schedule.Location()
	if err != nil {
		log.Fatal("Invalid schedule timezone %q: %v", cfg.Schedule.Timezone, err)
	}

	// Инициализируем метрики (если включены).
	// Получатели метрик - интерфейсы: при выключенных метриках остаются nil и заменяются noop
	var (
		metricsCollector *metrics.Metrics
		conflictMetrics  checkConflictsUC.MetricsRecorder
		storeMetrics     store.MetricsRecorder
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		conflictMetrics = metricsCollector
		storeMetrics = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем хранилище записей и событий
	var (
		appointments appointmentStorage
		events       eventStorage
		txMgr        txManager
	)

	switch cfg.Storage.Backend {
	case config.StoragePostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		if cfg.Metrics.Enabled {
			wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
			log.Info("Database metrics collection started")

			appointments = appointmentRepo.NewRepository(wrappedDB)
			events = eventRepo.NewRepository(wrappedDB)
			txMgr = txmanager.NewTransactionManager(wrappedDB)
		} else {
			appointments = appointmentRepo.NewRepository(db)
			events = eventRepo.NewRepository(db)
			txMgr = txmanager.NewTransactionManager(dbmetrics.SQLDB{DB: db})
		}

	case config.StorageREST:
		client := bookingapi.NewClient(
			cfg.BookingAPI.URL,
			time.Duration(cfg.BookingAPI.Timeout)*time.Second,
			log,
		)
		appointments = client.Appointments()
		events = client.Events()
		txMgr = txmanager.Noop{}
		log.Info("Booking API client initialized (url=%s, timeout=%ds)", cfg.BookingAPI.URL, cfg.BookingAPI.Timeout)
	}

	// Инициализируем провайдер аутентификации
	var identity middleware.IdentityProvider
	switch cfg.Auth.Provider {
	case config.AuthFirebase:
		provider, err := firebaseauth.New(context.Background(),
			cfg.Auth.CredentialsFile, cfg.Auth.ProjectID, cfg.Auth.RoleClaim, log)
		if err != nil {
			log.Fatal("Failed to initialize Firebase auth: %v", err)
		}
		identity = provider
		log.Info("Firebase auth initialized (project=%s)", cfg.Auth.ProjectID)
	case config.AuthHeader:
		identity = middleware.HeaderIdentity{}
		log.Warn("Header auth enabled: X-User-ID / X-User-Role are trusted as is, use only for development")
	}

	// In-memory кэш и его периодическая перезагрузка
	cache := store.New(storeMetrics)
	refresher := store.NewRefresher(
		cache,
		appointments,
		events,
		cfg.Schedule.RefreshCron,
		time.Duration(cfg.Schedule.RefreshTimeout)*time.Second,
		log,
	)

	loadCtx, loadCancel := context.WithTimeout(context.Background(), time.Duration(cfg.Schedule.RefreshTimeout)*time.Second)
	if err := refresher.Reload(loadCtx); err != nil {
		// Сервис стартует с пустым кэшем, следующая перезагрузка по расписанию
		log.Error("Initial reload failed: %v", err)
	}
	loadCancel()

	if err := refresher.Start(); err != nil {
		log.Fatal("Failed to start refresher: %v", err)
	}

	// Календарь перестраивается по уведомлениям кэша
	calendarSvc := calendarService.NewService(
		cache,
		location,
		calendarService.RangeSettings{DaysRange: cfg.Schedule.DefaultDaysRange},
		cfg.Schedule.Debounce(),
		log,
	)
	calendarCtx, calendarCancel := context.WithCancel(context.Background())
	calendarDone := make(chan struct{})
	go func() {
		defer close(calendarDone)
		_ = calendarSvc.Run(calendarCtx)
	}()

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(appointments, events, log)

	// Инициализируем use cases.
	// Проверка пересечений читает хранилище напрямую: внутри транзакции сохранения строки блокируются FOR SHARE
	checkConflictsUseCase := checkConflictsUC.NewUseCase(appointments, events, location, conflictMetrics, log)

	// Эндпоинт проверки может читать снимок кэша вместо хранилища
	conflictEndpointUseCase := checkConflictsUseCase
	if cfg.Schedule.ConflictSource == config.ConflictSourceCache {
		log.Info("Conflict check endpoint reads the in-memory cache")
		conflictEndpointUseCase = checkConflictsUC.NewUseCase(
			cache.AppointmentsView(),
			cache.EventsView(),
			location,
			conflictMetrics,
			log,
		)
	}

	saveAppointmentUseCase := saveAppointmentUC.NewUseCase(
		appointments,
		checkConflictsUseCase,
		cache,
		txMgr,
		location,
		log,
	)

	saveEventUseCase := saveEventUC.NewUseCase(
		events,
		checkConflictsUseCase,
		cache,
		txMgr,
		location,
		log,
	)

	deleteBookingUseCase := deleteBookingUC.NewUseCase(appointments, events, cache, nil, log)

	// Инициализируем handlers
	checkConflicts := checkConflictsHandler.NewHandler(conflictEndpointUseCase, location, log)
	getCalendar := getCalendarHandler.NewHandler(calendarSvc, log)
	exportCalendar := exportCalendarHandler.NewHandler(calendarSvc, log)
	saveAppointment := saveAppointmentHandler.NewHandler(saveAppointmentUseCase, location, log)
	getAppointment := getAppointmentHandler.NewHandler(bookingSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(deleteBookingUseCase, cache,
		cfg.Schedule.RequireDeleteConfirmation, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(bookingSvc, log)
	saveEvent := saveEventHandler.NewHandler(saveEventUseCase, log)
	getEvent := getEventHandler.NewHandler(bookingSvc, log)
	deleteEvent := deleteEventHandler.NewHandler(deleteBookingUseCase, cache,
		cfg.Schedule.RequireDeleteConfirmation, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PROTECTED ROUTES (требуют аутентификации)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(identity, log))

	// --- Календарь ---
	protected.HandleFunc("/calendar", getCalendar.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/calendar.ics", exportCalendar.Handle).Methods(http.MethodGet)

	// Проверка пересечения времени
	protected.HandleFunc("/conflicts/check", checkConflicts.Handle).Methods(http.MethodPost)

	// --- Записи на прием ---
	protected.HandleFunc("/appointments", saveAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", saveAppointment.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/appointments/{appointmentId}", deleteAppointment.Handle).Methods(http.MethodDelete)

	// История записей пользователя
	protected.HandleFunc("/users/{userId}/appointments", getUserAppointments.Handle).Methods(http.MethodGet)

	// --- События (изменение только для администратора) ---
	protected.HandleFunc("/events", saveEvent.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/events/{eventId}", getEvent.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/events/{eventId}", saveEvent.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/events/{eventId}", deleteEvent.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем фоновые задачи
	refresher.Stop()
	calendarCancel()
	<-calendarDone

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
