package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/friendsincode/bookingsetup/internal/booking"
	"github.com/friendsincode/bookingsetup/internal/hours"
)

func TestLoadReadsCriticalEnvKeys(t *testing.T) {
	t.Setenv("BOOKINGS_SESSION_SECRET", "supersecret")
	t.Setenv("BOOKINGS_ENV", "development")
	t.Setenv("BOOKINGS_SESSION_TTL_MINUTES", "15")
	t.Setenv("BOOKINGS_DB_BACKEND", "postgres")
	t.Setenv("BOOKINGS_DB_DSN", "host=localhost user=test dbname=test sslmode=disable")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SessionSecret != "supersecret" {
		t.Fatalf("unexpected session secret: %q", cfg.SessionSecret)
	}
	if cfg.SessionTTL != 15*time.Minute {
		t.Fatalf("session ttl = %v", cfg.SessionTTL)
	}
	if cfg.DBBackend != DatabasePostgres {
		t.Fatalf("db backend = %q", cfg.DBBackend)
	}
	if cfg.SessionBackend != SessionMemory {
		t.Fatalf("session backend = %q", cfg.SessionBackend)
	}
	if cfg.SecureCookies {
		t.Fatal("secure cookies should default off outside production")
	}
}

func TestLoadRequiresSessionSecret(t *testing.T) {
	t.Setenv("BOOKINGS_SESSION_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected load to fail without a session secret")
	}
}

func TestLoadAcceptsLegacyKeys(t *testing.T) {
	t.Setenv("BOOKING_SESSION_SECRET", "legacy-secret")
	t.Setenv("BOOKING_HTTP_PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SessionSecret != "legacy-secret" || cfg.HTTPPort != 9090 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if len(cfg.LegacyEnvWarnings) == 0 {
		t.Fatal("expected legacy env warnings")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"db backend", "BOOKINGS_DB_BACKEND", "oracle"},
		{"session backend", "BOOKINGS_SESSION_BACKEND", "memcached"},
		{"ttl", "BOOKINGS_SESSION_TTL_MINUTES", "-5"},
		{"sample rate", "BOOKINGS_TRACING_SAMPLE_RATE", "1.5"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("BOOKINGS_SESSION_SECRET", "supersecret")
			t.Setenv(tc.key, tc.val)
			if _, err := Load(); err == nil {
				t.Fatalf("expected %s=%s to be rejected", tc.key, tc.val)
			}
		})
	}
}

func TestLoadProductionRequiresLongSecret(t *testing.T) {
	t.Setenv("BOOKINGS_ENV", "production")
	t.Setenv("BOOKINGS_SESSION_SECRET", "short")
	if _, err := Load(); err == nil {
		t.Fatal("expected production load to reject a short secret")
	}

	t.Setenv("BOOKINGS_SESSION_SECRET", "0123456789abcdef0123456789abcdef")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected production load to succeed: %v", err)
	}
	if !cfg.SecureCookies {
		t.Fatal("production should default to secure cookies")
	}
}

func TestLoadDefaultsMissingFileUsesBuiltins(t *testing.T) {
	d, err := LoadDefaults(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadDefaults: %v", err)
	}
	if d.ServiceType != booking.ServiceHairSalon || len(d.Blackouts) != 2 {
		t.Fatalf("defaults = %+v", d)
	}
}

func TestLoadDefaultsOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	doc := `
service_type: fitness
business_hours:
  saturday:
    enabled: true
    start: "10:00 AM"
    end: "4:00 PM"
  monday:
    enabled: false
blackouts:
  - label: Dec 25, 2024
partial:
  enabled: true
calendar:
  year: 2025
  month: 2
  selected_day: 14
nav_selection: sell-services
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	d, err := LoadDefaults(path)
	if err != nil {
		t.Fatalf("LoadDefaults: %v", err)
	}
	if d.ServiceType != booking.ServiceFitness {
		t.Fatalf("service type = %q", d.ServiceType)
	}
	if got := d.Week[hours.Saturday].Summary(); got != "10:00 AM - 4:00 PM" {
		t.Fatalf("saturday = %q", got)
	}
	if d.Week[hours.Monday].Enabled || d.Week[hours.Monday].Start != hours.At(9, 0) {
		t.Fatalf("monday = %+v", d.Week[hours.Monday])
	}
	if len(d.Blackouts) != 1 {
		t.Fatalf("blackouts = %+v", d.Blackouts)
	}
	if !d.Partial.Enabled || d.Partial.Window() != "11:00 AM - 1:00 PM" {
		t.Fatalf("partial = %+v", d.Partial)
	}
	if d.Calendar.Month != 1 || d.Calendar.Year != 2025 || d.Calendar.SelectedDay != 14 {
		t.Fatalf("calendar = %+v", d.Calendar)
	}
	if d.NavSelection != "sell-services" {
		t.Fatalf("nav = %q", d.NavSelection)
	}
}

func TestParseDefaultsRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"service", "service_type: bakery\n", booking.ErrUnknownServiceType},
		{"weekday", "business_hours:\n  funday:\n    enabled: true\n", hours.ErrUnknownWeekday},
		{"range", "business_hours:\n  monday:\n    start: \"8:00 PM\"\n", hours.ErrInvalidTimeRange},
		{"slot", "partial:\n  start: \"11:15 AM\"\n", hours.ErrUnknownTime},
		{"partial start not offered", "partial:\n  start: \"8:00 AM\"\n", hours.ErrUnknownTime},
		{"partial end not offered", "partial:\n  end: \"4:00 PM\"\n", hours.ErrUnknownTime},
		{"blackout", "blackouts:\n  - label: \"\"\n", booking.ErrEmptyBlackout},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseDefaults([]byte(tc.doc)); !errors.Is(err, tc.want) {
				t.Fatalf("error = %v, want %v", err, tc.want)
			}
		})
	}

	if _, err := ParseDefaults([]byte("calendar:\n  year: 2024\n  month: 13\n")); err == nil {
		t.Fatal("expected month 13 to be rejected")
	}
	if _, err := ParseDefaults([]byte("service_type: [")); err == nil {
		t.Fatal("expected malformed yaml to be rejected")
	}
}
