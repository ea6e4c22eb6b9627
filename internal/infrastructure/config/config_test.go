package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.HTTP.Port)
	assert.Equal(t, "0.0.0.0:8000", cfg.Server.HTTP.Addr())
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "users.db", cfg.Database.DSN)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Telemetry.TracingEnabled)
	assert.Equal(t, []string{"*"}, cfg.Server.CORS.AllowOrigins)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  http:
    port: 9000
    shutdown_timeout: 5s
  cors:
    allow_origins: ["https://example.com"]
database:
  driver: postgres
  dsn: postgres://app:app@db:5432/users?sslmode=disable
  auto_migrate: false
log:
  level: debug
telemetry:
  tracing_enabled: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.HTTP.ShutdownTimeout)
	assert.Equal(t, []string{"https://example.com"}, cfg.Server.CORS.AllowOrigins)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://app:app@db:5432/users?sslmode=disable", cfg.Database.DSN)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Telemetry.TracingEnabled)
	// untouched keys keep their defaults
	assert.Equal(t, 30*time.Second, cfg.Server.HTTP.ReadTimeout)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server:\n  http:\n    port: 9000\n"), 0o600))

	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("DATABASE_DSN", "file::memory:")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.test,https://b.test")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.HTTP.Port)
	assert.Equal(t, "file::memory:", cfg.Database.DSN)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.Server.CORS.AllowOrigins)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	t.Run("port", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "eighty")
		_, err := LoadConfig(t.TempDir())
		assert.Error(t, err)
	})

	t.Run("driver", func(t *testing.T) {
		t.Setenv("DATABASE_DRIVER", "mysql")
		_, err := LoadConfig(t.TempDir())
		assert.ErrorContains(t, err, "unsupported database driver")
	})

	t.Run("malformed file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [\n"), 0o600))
		_, err := LoadConfig(dir)
		assert.ErrorContains(t, err, "failed to read config file")
	})
}
