package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	LogLevel        string
	LogFormat       string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	MetricsEnabled  bool
	MaxBodyBytes    int64
	Bulk            Bulk
}

// Bulk bounds the bulk validation endpoint.
type Bulk struct {
	MaxRows  int
	MaxBytes int64
	Workers  int
}

const (
	DefaultAddr            = ":8000"
	DefaultRequestTimeout  = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMaxBodyBytes    = 64 << 10
	DefaultBulkMaxRows     = 5000
	DefaultBulkMaxBytes    = 1 << 20
	DefaultBulkWorkers     = 8
)

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Server, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := Server{
		Addr:      get("VALIDARFC_ADDR", DefaultAddr),
		LogLevel:  strings.ToLower(get("VALIDARFC_LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(get("VALIDARFC_LOG_FORMAT", "json")),
	}

	var err error
	if cfg.RequestTimeout, err = parseDuration("VALIDARFC_REQUEST_TIMEOUT", get("VALIDARFC_REQUEST_TIMEOUT", ""), DefaultRequestTimeout); err != nil {
		return Server{}, err
	}
	if cfg.ShutdownTimeout, err = parseDuration("VALIDARFC_SHUTDOWN_TIMEOUT", get("VALIDARFC_SHUTDOWN_TIMEOUT", ""), DefaultShutdownTimeout); err != nil {
		return Server{}, err
	}
	if cfg.MetricsEnabled, err = strconv.ParseBool(get("VALIDARFC_METRICS_ENABLED", "true")); err != nil {
		return Server{}, fmt.Errorf("VALIDARFC_METRICS_ENABLED: %w", err)
	}
	maxBody, err := parsePositiveInt("VALIDARFC_MAX_BODY_BYTES", get("VALIDARFC_MAX_BODY_BYTES", ""), DefaultMaxBodyBytes)
	if err != nil {
		return Server{}, err
	}
	cfg.MaxBodyBytes = int64(maxBody)
	if cfg.Bulk.MaxRows, err = parsePositiveInt("VALIDARFC_BULK_MAX_ROWS", get("VALIDARFC_BULK_MAX_ROWS", ""), DefaultBulkMaxRows); err != nil {
		return Server{}, err
	}
	maxBytes, err := parsePositiveInt("VALIDARFC_BULK_MAX_BYTES", get("VALIDARFC_BULK_MAX_BYTES", ""), DefaultBulkMaxBytes)
	if err != nil {
		return Server{}, err
	}
	cfg.Bulk.MaxBytes = int64(maxBytes)
	if cfg.Bulk.Workers, err = parsePositiveInt("VALIDARFC_BULK_WORKERS", get("VALIDARFC_BULK_WORKERS", ""), DefaultBulkWorkers); err != nil {
		return Server{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate checks the enumerated settings.
func (s Server) Validate() error {
	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("VALIDARFC_LOG_LEVEL: unsupported level %q", s.LogLevel)
	}
	switch s.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("VALIDARFC_LOG_FORMAT: unsupported format %q", s.LogFormat)
	}
	return nil
}

func parseDuration(key, raw string, def time.Duration) (time.Duration, error) {
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %s", key, raw)
	}
	return d, nil
}

func parsePositiveInt(key, raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %d", key, n)
	}
	return n, nil
}
