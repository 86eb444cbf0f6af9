package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db"
dbname = "scheduling"
user = "smc"

[auth]
provider = "header"

[schedule]
timezone = "America/Los_Angeles"
require_delete_confirmation = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, StoragePostgres, cfg.Storage.Backend)
	assert.Equal(t, "host=db port=5432 user=smc password= dbname=scheduling sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, 3, cfg.Schedule.DefaultDaysRange)
	assert.Equal(t, "@every 1m", cfg.Schedule.RefreshCron)
	assert.Equal(t, 100*time.Millisecond, cfg.Schedule.Debounce())
	assert.True(t, cfg.Schedule.RequireDeleteConfirmation)
	assert.Equal(t, ConflictSourceStorage, cfg.Schedule.ConflictSource)

	loc, err := cfg.Schedule.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Los_Angeles", loc.String())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[storage]
backend = "rest"

[bookingapi]
url = "http://file-value"
`)

	t.Setenv("BOOKING_API_URL", "http://env-value")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("HTTP_PORT", "7000")
	t.Setenv("FIREBASE_CREDENTIALS_FILE", "/etc/firebase.json")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://env-value", cfg.BookingAPI.URL)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.Equal(t, 7000, cfg.Server.HTTPPort)
	assert.Equal(t, "/etc/firebase.json", cfg.Auth.CredentialsFile)
}

func TestLoad_InvalidHTTPPortEnv(t *testing.T) {
	path := writeConfig(t, "")
	t.Setenv("HTTP_PORT", "eighty")

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "unknown backend", mutate: func(c *Config) { c.Storage.Backend = "mongo" }},
		{name: "rest without url", mutate: func(c *Config) { c.Storage.Backend = StorageREST }},
		{name: "rest zero timeout", mutate: func(c *Config) {
			c.Storage.Backend = StorageREST
			c.BookingAPI.URL = "http://api"
			c.BookingAPI.Timeout = 0
		}},
		{name: "unknown auth", mutate: func(c *Config) { c.Auth.Provider = "jwt" }},
		{name: "bad timezone", mutate: func(c *Config) { c.Schedule.Timezone = "Mars/Olympus" }},
		{name: "zero read timeout", mutate: func(c *Config) { c.Server.ReadTimeout = 0 }},
		{name: "days range below unbounded", mutate: func(c *Config) { c.Schedule.DefaultDaysRange = -2 }},
		{name: "bad port", mutate: func(c *Config) { c.Server.HTTPPort = 70000 }},
		{name: "unknown conflict source", mutate: func(c *Config) { c.Schedule.ConflictSource = "redis" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Database.DBName = "scheduling"
			require.NoError(t, cfg.Validate())

			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
