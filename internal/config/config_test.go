package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symrand/internal"
	apperrors "symrand/internal/errors"
)

func TestLoadEnvironmentDefaults(t *testing.T) {
	cfg, err := LoadEnvironment(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, "symrand.db", cfg.Store.SQLitePath)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, "/docs", cfg.Server.DocsPrefix)
	assert.Equal(t, internal.LogLevelInfo, cfg.LogLevel())
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	cfg, err := LoadEnvironment(map[string]string{
		"LOG_LEVEL":    "trace",
		"STORE_DRIVER": "Postgres",
		"DATABASE_URL": "postgres://localhost/symrand?sslmode=disable",
		"PORT":         "9000",
		"GIN_MODE":     "debug",
	})
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, internal.LogLevelTrace, cfg.LogLevel())
}

func TestLoadEnvironmentRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		environ map[string]string
	}{
		{"unknown driver", map[string]string{"STORE_DRIVER": "redis"}},
		{"postgres without url", map[string]string{"STORE_DRIVER": "postgres"}},
		{"bad log level", map[string]string{"LOG_LEVEL": "loud"}},
		{"bad gin mode", map[string]string{"GIN_MODE": "fast"}},
		{"relative docs prefix", map[string]string{"DOCS_PREFIX": "docs"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadEnvironment(tt.environ)
			require.Error(t, err)
			assert.Equal(t, apperrors.CodeConfigInvalid, apperrors.GetCode(err))
		})
	}
}
