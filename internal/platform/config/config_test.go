package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := fromLookup(lookupFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout)
	assert.Equal(t, DefaultShutdownTimeout, cfg.ShutdownTimeout)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, int64(64<<10), cfg.MaxBodyBytes)
	assert.Equal(t, Bulk{MaxRows: 5000, MaxBytes: 1 << 20, Workers: 8}, cfg.Bulk)
}

func TestOverrides(t *testing.T) {
	cfg, err := fromLookup(lookupFrom(map[string]string{
		"VALIDARFC_ADDR":             "127.0.0.1:9000",
		"VALIDARFC_LOG_LEVEL":        "DEBUG",
		"VALIDARFC_LOG_FORMAT":       "text",
		"VALIDARFC_REQUEST_TIMEOUT":  "5s",
		"VALIDARFC_SHUTDOWN_TIMEOUT": "2s",
		"VALIDARFC_METRICS_ENABLED":  "false",
		"VALIDARFC_MAX_BODY_BYTES":   "512",
		"VALIDARFC_BULK_MAX_ROWS":    "100",
		"VALIDARFC_BULK_MAX_BYTES":   "2048",
		"VALIDARFC_BULK_WORKERS":     "2",
	}))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.MetricsEnabled)
	assert.Equal(t, int64(512), cfg.MaxBodyBytes)
	assert.Equal(t, Bulk{MaxRows: 100, MaxBytes: 2048, Workers: 2}, cfg.Bulk)
}

func TestBlankValuesFallBackToDefaults(t *testing.T) {
	cfg, err := fromLookup(lookupFrom(map[string]string{"VALIDARFC_ADDR": "   "}))
	require.NoError(t, err)
	assert.Equal(t, DefaultAddr, cfg.Addr)
}

func TestInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"bad duration":       {"VALIDARFC_REQUEST_TIMEOUT": "soon"},
		"negative duration":  {"VALIDARFC_SHUTDOWN_TIMEOUT": "-1s"},
		"bad bool":           {"VALIDARFC_METRICS_ENABLED": "maybe"},
		"zero body limit":    {"VALIDARFC_MAX_BODY_BYTES": "0"},
		"zero rows":          {"VALIDARFC_BULK_MAX_ROWS": "0"},
		"non numeric bytes":  {"VALIDARFC_BULK_MAX_BYTES": "1MB"},
		"negative workers":   {"VALIDARFC_BULK_WORKERS": "-3"},
		"unknown log level":  {"VALIDARFC_LOG_LEVEL": "trace"},
		"unknown log format": {"VALIDARFC_LOG_FORMAT": "xml"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := fromLookup(lookupFrom(env))
			assert.Error(t, err)
		})
	}
}
