package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"symrand/internal"
	apperrors "symrand/internal/errors"
)

// Store drivers
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config represents the complete application configuration
type Config struct {
	Log    LogConfig
	Store  StoreConfig
	Server ServerConfig
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"INFO"`
}

// StoreConfig selects where random states are persisted
type StoreConfig struct {
	Driver      string `env:"STORE_DRIVER" envDefault:"memory"`
	DatabaseURL string `env:"DATABASE_URL"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"symrand.db"`
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port       string `env:"PORT" envDefault:"8080"`
	GinMode    string `env:"GIN_MODE" envDefault:"release"`
	DocsPrefix string `env:"DOCS_PREFIX" envDefault:"/docs"`
}

// Load reads .env when present, then the process environment, and
// validates the result
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, apperrors.Wrap(apperrors.WithCode(apperrors.CodeConfigInvalid, err), "failed to read .env")
	}
	return parse(env.Options{})
}

// LoadEnvironment parses configuration from environ instead of the
// process environment
func LoadEnvironment(environ map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	config := &Config{}
	if err := env.ParseWithOptions(config, opts); err != nil {
		return nil, apperrors.Wrap(apperrors.WithCode(apperrors.CodeConfigInvalid, err), "failed to parse environment")
	}
	if err := config.Validate(); err != nil {
		return nil, apperrors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

// Validate checks field values and cross-field requirements
func (c *Config) Validate() error {
	if _, err := internal.ParseLogLevel(c.Log.Level); err != nil {
		return apperrors.ConfigInvalid(err.Error())
	}

	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	switch c.Store.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Store.SQLitePath == "" {
			return apperrors.ConfigInvalid("SQLITE_PATH is required for the sqlite store")
		}
	case DriverPostgres:
		if c.Store.DatabaseURL == "" {
			return apperrors.ConfigInvalid("DATABASE_URL is required for the postgres store")
		}
	default:
		return apperrors.ConfigInvalid("STORE_DRIVER must be memory, sqlite or postgres, got " + c.Store.Driver)
	}

	switch c.Server.GinMode {
	case "debug", "release", "test":
	default:
		return apperrors.ConfigInvalid("GIN_MODE must be debug, release or test, got " + c.Server.GinMode)
	}

	if c.Server.Port == "" {
		return apperrors.ConfigInvalid("PORT is required")
	}
	if !strings.HasPrefix(c.Server.DocsPrefix, "/") {
		return apperrors.ConfigInvalid("DOCS_PREFIX must start with /")
	}
	return nil
}

// LogLevel returns the parsed log level
func (c *Config) LogLevel() internal.LogLevel {
	level, err := internal.ParseLogLevel(c.Log.Level)
	if err != nil {
		return internal.LogLevelInfo
	}
	return level
}
