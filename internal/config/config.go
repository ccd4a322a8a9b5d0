/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Database backend selection.
type DatabaseBackend string

const (
	DatabasePostgres DatabaseBackend = "postgres"
	DatabaseMySQL    DatabaseBackend = "mysql"
	DatabaseSQLite   DatabaseBackend = "sqlite"
)

// SessionBackend selects where setup sessions live.
type SessionBackend string

const (
	SessionMemory SessionBackend = "memory"
	SessionRedis  SessionBackend = "redis"
)

// Config covers process level configuration read from environment variables.
type Config struct {
	Environment string
	HTTPBind    string
	HTTPPort    int
	DBBackend   DatabaseBackend
	DBDSN       string
	MetricsBind string

	// Setup sessions
	SessionSecret  string
	SessionTTL     time.Duration
	SessionBackend SessionBackend
	SecureCookies  bool
	DefaultsFile   string // optional YAML file with wizard defaults
	AuditEnabled   bool

	// Redis, used when SessionBackend is redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Tracing configuration
	TracingEnabled    bool
	OTLPEndpoint      string
	TracingSampleRate float64

	LegacyEnvWarnings []string
}

// Load reads environment variables, applies defaults, and validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		Environment: getEnvAny([]string{"BOOKINGS_ENV", "BOOKING_ENV"}, "development"),
		HTTPBind:    getEnvAny([]string{"BOOKINGS_HTTP_BIND", "BOOKING_HTTP_BIND"}, "0.0.0.0"),
		HTTPPort:    getEnvIntAny([]string{"BOOKINGS_HTTP_PORT", "BOOKING_HTTP_PORT"}, 8080),
		DBBackend:   DatabaseBackend(getEnvAny([]string{"BOOKINGS_DB_BACKEND", "BOOKING_DB_BACKEND"}, string(DatabaseSQLite))),
		DBDSN:       getEnvAny([]string{"BOOKINGS_DB_DSN", "BOOKING_DB_DSN"}, "bookingsetup.db"),
		MetricsBind: getEnvAny([]string{"BOOKINGS_METRICS_BIND", "BOOKING_METRICS_BIND"}, ""),

		SessionSecret:  getEnvAny([]string{"BOOKINGS_SESSION_SECRET", "BOOKING_SESSION_SECRET"}, ""),
		SessionTTL:     time.Duration(getEnvIntAny([]string{"BOOKINGS_SESSION_TTL_MINUTES", "BOOKING_SESSION_TTL_MINUTES"}, 120)) * time.Minute,
		SessionBackend: SessionBackend(getEnvAny([]string{"BOOKINGS_SESSION_BACKEND", "BOOKING_SESSION_BACKEND"}, string(SessionMemory))),
		DefaultsFile:   getEnvAny([]string{"BOOKINGS_DEFAULTS_FILE", "BOOKING_DEFAULTS_FILE"}, ""),
		AuditEnabled:   getEnvBoolAny([]string{"BOOKINGS_AUDIT_ENABLED", "BOOKING_AUDIT_ENABLED"}, true),

		RedisAddr:     getEnvAny([]string{"BOOKINGS_REDIS_ADDR", "BOOKING_REDIS_ADDR"}, "localhost:6379"),
		RedisPassword: getEnvAny([]string{"BOOKINGS_REDIS_PASSWORD", "BOOKING_REDIS_PASSWORD"}, ""),
		RedisDB:       getEnvIntAny([]string{"BOOKINGS_REDIS_DB", "BOOKING_REDIS_DB"}, 0),

		TracingEnabled:    getEnvBoolAny([]string{"BOOKINGS_TRACING_ENABLED", "BOOKING_TRACING_ENABLED"}, false),
		OTLPEndpoint:      getEnvAny([]string{"BOOKINGS_OTLP_ENDPOINT", "BOOKING_OTLP_ENDPOINT"}, "localhost:4317"),
		TracingSampleRate: getEnvFloatAny([]string{"BOOKINGS_TRACING_SAMPLE_RATE", "BOOKING_TRACING_SAMPLE_RATE"}, 1.0),
	}
	cfg.SecureCookies = getEnvBoolAny([]string{"BOOKINGS_SECURE_COOKIES", "BOOKING_SECURE_COOKIES"}, cfg.IsProduction())

	if cfg.DBBackend != DatabasePostgres && cfg.DBBackend != DatabaseMySQL && cfg.DBBackend != DatabaseSQLite {
		return nil, fmt.Errorf("unsupported database backend %q", cfg.DBBackend)
	}

	if cfg.AuditEnabled && cfg.DBDSN == "" {
		return nil, fmt.Errorf("BOOKINGS_DB_DSN or BOOKING_DB_DSN must be provided when auditing is enabled")
	}

	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("BOOKINGS_SESSION_SECRET or BOOKING_SESSION_SECRET must be provided")
	}

	if cfg.SessionBackend != SessionMemory && cfg.SessionBackend != SessionRedis {
		return nil, fmt.Errorf("unsupported session backend %q", cfg.SessionBackend)
	}

	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("BOOKINGS_SESSION_TTL_MINUTES must be positive")
	}

	if cfg.TracingSampleRate < 0 || cfg.TracingSampleRate > 1 {
		return nil, fmt.Errorf("BOOKINGS_TRACING_SAMPLE_RATE must be between 0 and 1")
	}

	if cfg.IsProduction() && len(cfg.SessionSecret) < 32 {
		return nil, fmt.Errorf("BOOKINGS_SESSION_SECRET must be at least 32 characters in production")
	}

	cfg.LegacyEnvWarnings = detectLegacyEnvWarnings()

	return cfg, nil
}

// IsProduction reports whether the service runs with production hardening.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.HTTPBind, c.HTTPPort)
}

func detectLegacyEnvWarnings() []string {
	legacy := map[string]string{
		"BOOKING_ENV":            "use BOOKINGS_ENV",
		"BOOKING_DB_DSN":         "use BOOKINGS_DB_DSN",
		"BOOKING_SESSION_SECRET": "use BOOKINGS_SESSION_SECRET",
		"BOOKING_REDIS_ADDR":     "use BOOKINGS_REDIS_ADDR",
		"SESSION_SECRET":         "use BOOKINGS_SESSION_SECRET",
		"TRACING_ENABLED":        "use BOOKINGS_TRACING_ENABLED",
		"OTLP_ENDPOINT":          "use BOOKINGS_OTLP_ENDPOINT",
	}

	warnings := make([]string, 0, len(legacy))
	for key, recommendation := range legacy {
		if os.Getenv(key) != "" {
			warnings = append(warnings, fmt.Sprintf("legacy env key %s is set; %s", key, recommendation))
		}
	}
	return warnings
}

// getEnvAny returns the first non-empty environment variable value from keys, or def if none set.
func getEnvAny(keys []string, def string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return def
}

// getEnvIntAny returns the first set integer environment variable value from keys, or def.
func getEnvIntAny(keys []string, def int) int {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			if parsed, err := strconv.Atoi(v); err == nil {
				return parsed
			}
		}
	}
	return def
}

// getEnvBoolAny returns the first set boolean environment variable value from keys, or def.
func getEnvBoolAny(keys []string, def bool) bool {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			v = strings.ToLower(strings.TrimSpace(v))
			if v == "true" || v == "1" || v == "yes" {
				return true
			}
			if v == "false" || v == "0" || v == "no" {
				return false
			}
		}
	}
	return def
}

// getEnvFloatAny returns the first set float environment variable value from keys, or def.
func getEnvFloatAny(keys []string, def float64) float64 {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				return parsed
			}
		}
	}
	return def
}
