package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Бэкенды хранения
const (
	StoragePostgres = "postgres"
	StorageREST     = "rest"
)

// Источники данных для проверки пересечений
const (
	ConflictSourceStorage = "storage"
	ConflictSourceCache   = "cache"
)

// Провайдеры аутентификации
const (
	AuthFirebase = "firebase"
	AuthHeader   = "header"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("invalid config")

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Storage    StorageConfig    `toml:"storage"`
	BookingAPI BookingAPIConfig `toml:"bookingapi"`
	Auth       AuthConfig       `toml:"auth"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Schedule   ScheduleConfig   `toml:"schedule"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// StorageConfig выбор бэкенда хранения
type StorageConfig struct {
	Backend string `toml:"backend"` // postgres | rest
}

// BookingAPIConfig внешнее REST API хранилища
type BookingAPIConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// AuthConfig настройки аутентификации
type AuthConfig struct {
	Provider        string `toml:"provider"` // firebase | header
	CredentialsFile string `toml:"credentials_file"`
	ProjectID       string `toml:"project_id"`
	RoleClaim       string `toml:"role_claim"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ScheduleConfig настройки календаря и кэша
type ScheduleConfig struct {
	Timezone                  string `toml:"timezone"`
	DefaultDaysRange          int    `toml:"default_days_range"`
	RefreshCron               string `toml:"refresh_cron"`
	RefreshTimeout            int    `toml:"refresh_timeout"` // секунды
	DebounceMS                int    `toml:"debounce_ms"`
	RequireDeleteConfirmation bool   `toml:"require_delete_confirmation"`
	ConflictSource            string `toml:"conflict_source"` // storage | cache
}

// Location загружает часовой пояс расписания
func (c ScheduleConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Debounce период тишины перед перегруппировкой календаря
func (c ScheduleConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// Load читает TOML файл, затем .env (если есть) и переменные окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	// .env необязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Storage:    StorageConfig{Backend: StoragePostgres},
		BookingAPI: BookingAPIConfig{Timeout: 10},
		Auth:       AuthConfig{Provider: AuthFirebase, RoleClaim: "role"},
		Logs:       LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "scheduling_service",
		},
		Schedule: ScheduleConfig{
			Timezone:         "UTC",
			DefaultDaysRange: 3,
			RefreshCron:      "@every 1m",
			RefreshTimeout:   30,
			DebounceMS:       100,
			ConflictSource:   ConflictSourceStorage,
		},
	}
}

// applyEnv переопределяет значения из файла переменными окружения
func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv("DB_PASSWORD"); ok {
		c.Database.Password = v
	}
	if v, ok := os.LookupEnv("FIREBASE_CREDENTIALS_FILE"); ok {
		c.Auth.CredentialsFile = v
	}
	if v, ok := os.LookupEnv("BOOKING_API_URL"); ok {
		c.BookingAPI.URL = v
	}
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok {
		c.Logs.Level = v
	}
	if v, ok := os.LookupEnv("HTTP_PORT"); ok {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: HTTP_PORT=%q: %v", ErrInvalidConfig, v, err)
		}
		c.Server.HTTPPort = port
	}
	return nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: server timeouts must be positive", ErrInvalidConfig)
	}

	switch c.Storage.Backend {
	case StoragePostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
		}
	case StorageREST:
		if c.BookingAPI.URL == "" {
			return fmt.Errorf("%w: bookingapi.url is required for rest storage", ErrInvalidConfig)
		}
		if c.BookingAPI.Timeout <= 0 {
			return fmt.Errorf("%w: bookingapi.timeout must be positive", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage.backend %q", ErrInvalidConfig, c.Storage.Backend)
	}

	switch c.Auth.Provider {
	case AuthFirebase, AuthHeader:
	default:
		return fmt.Errorf("%w: unknown auth.provider %q", ErrInvalidConfig, c.Auth.Provider)
	}

	if _, err := c.Schedule.Location(); err != nil {
		return fmt.Errorf("%w: schedule.timezone: %v", ErrInvalidConfig, err)
	}
	if c.Schedule.DefaultDaysRange < -1 {
		return fmt.Errorf("%w: schedule.default_days_range must be >= -1", ErrInvalidConfig)
	}
	if c.Schedule.RefreshTimeout <= 0 {
		return fmt.Errorf("%w: schedule.refresh_timeout must be positive", ErrInvalidConfig)
	}
	if c.Schedule.DebounceMS < 0 {
		return fmt.Errorf("%w: schedule.debounce_ms must not be negative", ErrInvalidConfig)
	}
	switch c.Schedule.ConflictSource {
	case ConflictSourceStorage, ConflictSourceCache:
	default:
		return fmt.Errorf("%w: unknown schedule.conflict_source %q", ErrInvalidConfig, c.Schedule.ConflictSource)
	}

	return nil
}
