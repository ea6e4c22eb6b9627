package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// HTTPServerConfig represents HTTP server configuration
type HTTPServerConfig struct {
	Host               string        `yaml:"host" json:"host"`
	Port               int           `yaml:"port" json:"port"`
	ReadTimeout        time.Duration `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout       time.Duration `yaml:"write_timeout" json:"write_timeout"`
	IdleTimeout        time.Duration `yaml:"idle_timeout" json:"idle_timeout"`
	ReadHeaderTimeout  time.Duration `yaml:"read_header_timeout" json:"read_header_timeout"`
	MaxHeaderBytes     int           `yaml:"max_header_bytes" json:"max_header_bytes"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
	HealthCheckPath    string        `yaml:"health_check_path" json:"health_check_path"`
	ReadinessCheckPath string        `yaml:"readiness_check_path" json:"readiness_check_path"`
	MetricsPath        string        `yaml:"metrics_path" json:"metrics_path"`
}

// Addr returns the listen address of the HTTP server.
func (c HTTPServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ServerConfig represents server configuration
type ServerConfig struct {
	HTTP HTTPServerConfig `yaml:"http" json:"http"`
	CORS CORSConfig       `yaml:"cors" json:"cors"`
}

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins" json:"allow_origins"`
}

// DatabaseConfig selects the gorm driver and tunes its pool.
type DatabaseConfig struct {
	Driver          string        `yaml:"driver" json:"driver"` // postgres or sqlite
	DSN             string        `yaml:"dsn" json:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns" json:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns" json:"max_idle_conns"`
	ConnMaxLifetime int           `yaml:"conn_max_lifetime" json:"conn_max_lifetime"` // seconds
	AutoMigrate     bool          `yaml:"auto_migrate" json:"auto_migrate"`
	LogLevel        string        `yaml:"log_level" json:"log_level"` // silent, error, warn, info
	StatsInterval   time.Duration `yaml:"stats_interval" json:"stats_interval"`
}

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" json:"server"`
	Database DatabaseConfig `yaml:"database" json:"database"`
	Log      struct {
		Level string `yaml:"level" json:"level"`
	} `yaml:"log" json:"log"`
	Telemetry struct {
		TracingEnabled bool   `yaml:"tracing_enabled" json:"tracing_enabled"`
		ServiceName    string `yaml:"service_name" json:"service_name"`
	} `yaml:"telemetry" json:"telemetry"`
}

// DefaultConfigPaths are searched for config.yaml when LoadConfig gets no paths.
var DefaultConfigPaths = []string{".", "./config", "/etc/usercrud"}

// Default returns the configuration used when neither a file nor the
// environment override a value.
func Default() *Config {
	config := &Config{}

	config.Server.HTTP = HTTPServerConfig{
		Host:               "0.0.0.0",
		Port:               8000,
		ReadTimeout:        30 * time.Second,
		WriteTimeout:       30 * time.Second,
		IdleTimeout:        120 * time.Second,
		ReadHeaderTimeout:  10 * time.Second,
		MaxHeaderBytes:     1 << 20, // 1MB
		ShutdownTimeout:    30 * time.Second,
		HealthCheckPath:    "/health",
		ReadinessCheckPath: "/ready",
		MetricsPath:        "/metrics",
	}
	config.Server.CORS.AllowOrigins = []string{"*"}

	config.Database = DatabaseConfig{
		Driver:          "sqlite",
		DSN:             "users.db",
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 3600,
		AutoMigrate:     true,
		LogLevel:        "warn",
		StatsInterval:   30 * time.Second,
	}

	config.Log.Level = "info"
	config.Telemetry.ServiceName = "usercrud"

	return config
}

// LoadConfig loads the application configuration: defaults, then config.yaml
// from the first of paths (DefaultConfigPaths when empty) that has one, then
// environment variables.
func LoadConfig(paths ...string) (*Config, error) {
	config := Default()

	if len(paths) == 0 {
		paths = DefaultConfigPaths
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found, use default and environment values
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		applyFile(v, config)
	}

	if err := applyEnv(config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func applyFile(v *viper.Viper, config *Config) {
	if v.IsSet("server.http.host") {
		config.Server.HTTP.Host = v.GetString("server.http.host")
	}
	if v.IsSet("server.http.port") {
		config.Server.HTTP.Port = v.GetInt("server.http.port")
	}
	if v.IsSet("server.http.read_timeout") {
		config.Server.HTTP.ReadTimeout = v.GetDuration("server.http.read_timeout")
	}
	if v.IsSet("server.http.write_timeout") {
		config.Server.HTTP.WriteTimeout = v.GetDuration("server.http.write_timeout")
	}
	if v.IsSet("server.http.idle_timeout") {
		config.Server.HTTP.IdleTimeout = v.GetDuration("server.http.idle_timeout")
	}
	if v.IsSet("server.http.shutdown_timeout") {
		config.Server.HTTP.ShutdownTimeout = v.GetDuration("server.http.shutdown_timeout")
	}
	if v.IsSet("server.cors.allow_origins") {
		config.Server.CORS.AllowOrigins = v.GetStringSlice("server.cors.allow_origins")
	}

	if v.IsSet("database.driver") {
		config.Database.Driver = v.GetString("database.driver")
	}
	if v.IsSet("database.dsn") {
		config.Database.DSN = v.GetString("database.dsn")
	}
	if v.IsSet("database.max_open_conns") {
		config.Database.MaxOpenConns = v.GetInt("database.max_open_conns")
	}
	if v.IsSet("database.max_idle_conns") {
		config.Database.MaxIdleConns = v.GetInt("database.max_idle_conns")
	}
	if v.IsSet("database.conn_max_lifetime") {
		config.Database.ConnMaxLifetime = v.GetInt("database.conn_max_lifetime")
	}
	if v.IsSet("database.auto_migrate") {
		config.Database.AutoMigrate = v.GetBool("database.auto_migrate")
	}
	if v.IsSet("database.log_level") {
		config.Database.LogLevel = v.GetString("database.log_level")
	}
	if v.IsSet("database.stats_interval") {
		config.Database.StatsInterval = v.GetDuration("database.stats_interval")
	}

	if v.IsSet("log.level") {
		config.Log.Level = v.GetString("log.level")
	}
	if v.IsSet("telemetry.tracing_enabled") {
		config.Telemetry.TracingEnabled = v.GetBool("telemetry.tracing_enabled")
	}
	if v.IsSet("telemetry.service_name") {
		config.Telemetry.ServiceName = v.GetString("telemetry.service_name")
	}
}

func applyEnv(config *Config) error {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.HTTP.Host = host
	}
	if raw := os.Getenv("SERVER_PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid SERVER_PORT %q: %w", raw, err)
		}
		config.Server.HTTP.Port = port
	}
	if origins := os.Getenv("CORS_ALLOW_ORIGINS"); origins != "" {
		config.Server.CORS.AllowOrigins = strings.Split(origins, ",")
	}

	if driver := os.Getenv("DATABASE_DRIVER"); driver != "" {
		config.Database.Driver = driver
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		config.Database.DSN = dsn
	}
	if maxOpen, err := strconv.Atoi(os.Getenv("DATABASE_MAX_OPEN_CONNS")); err == nil {
		config.Database.MaxOpenConns = maxOpen
	}
	if maxIdle, err := strconv.Atoi(os.Getenv("DATABASE_MAX_IDLE_CONNS")); err == nil {
		config.Database.MaxIdleConns = maxIdle
	}
	if migrate := os.Getenv("DATABASE_AUTO_MIGRATE"); migrate != "" {
		config.Database.AutoMigrate = migrate == "true"
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Log.Level = level
	}
	if tracing := os.Getenv("TRACING_ENABLED"); tracing != "" {
		config.Telemetry.TracingEnabled = tracing == "true"
	}

	return nil
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database dsn is required")
	}
	if c.Server.HTTP.Port <= 0 || c.Server.HTTP.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.HTTP.Port)
	}
	return nil
}
