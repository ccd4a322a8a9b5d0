/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/friendsincode/bookingsetup/internal/events"
	"github.com/friendsincode/bookingsetup/internal/telemetry"
	"github.com/friendsincode/bookingsetup/internal/wizard"
)

// ActionError is returned when the wizard rejected an action. The session is
// unchanged and still usable.
type ActionError struct {
	Type wizard.ActionType
	Err  error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Type, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// RequestMeta describes the caller for the audit trail.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// Manager loads, mutates and saves wizards. Actions on the same session are
// applied one at a time.
type Manager struct {
	store    Store
	defaults wizard.Defaults
	bus      *events.Bus
	logger   zerolog.Logger
	now      func() time.Time

	locks keyedMutex
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the time source used for the calendar's today marker.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates a session manager. bus may be nil.
func NewManager(store Store, defaults wizard.Defaults, bus *events.Bus, logger zerolog.Logger, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		defaults: defaults,
		bus:      bus,
		logger:   logger.With().Str("component", "session").Logger(),
		now:      time.Now,
		locks:    keyedMutex{locks: make(map[string]*refLock)},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewID returns a fresh session id.
func (m *Manager) NewID() string {
	return uuid.NewString()
}

// Snapshot returns the session's current screen, creating the session on first use.
func (m *Manager) Snapshot(ctx context.Context, id string, meta RequestMeta) (wizard.Snapshot, error) {
	unlock := m.locks.Lock(id)
	defer unlock()

	w, err := m.loadOrCreate(ctx, id, meta)
	if err != nil {
		return wizard.Snapshot{}, err
	}
	return w.Snapshot(), nil
}

// Apply performs a on the session and saves the result. A rejected action is
// reported as *ActionError together with the unchanged snapshot.
func (m *Manager) Apply(ctx context.Context, id string, a wizard.Action, meta RequestMeta) (wizard.Snapshot, error) {
	ctx, span := telemetry.StartSpan(ctx, "wizard.apply",
		attribute.String("session.id", id),
		attribute.String("wizard.action", string(a.Type)),
	)
	defer span.End()

	unlock := m.locks.Lock(id)
	defer unlock()

	w, err := m.loadOrCreate(ctx, id, meta)
	if err != nil {
		telemetry.RecordError(span, err)
		return wizard.Snapshot{}, err
	}

	if err := w.Apply(a); err != nil {
		telemetry.WizardActionsTotal.WithLabelValues(string(a.Type), "rejected").Inc()
		m.logger.Debug().Err(err).Str("session_id", id).Str("action", string(a.Type)).Msg("action rejected")

		payload := m.payload(id, a, meta)
		payload["error"] = err.Error()
		m.publish(events.EventWizardRejected, payload)

		span.SetAttributes(attribute.Bool("wizard.rejected", true))
		return w.Snapshot(), &ActionError{Type: a.Type, Err: err}
	}

	if err := m.store.Save(ctx, id, w); err != nil {
		telemetry.RecordError(span, err)
		return wizard.Snapshot{}, fmt.Errorf("save session: %w", err)
	}

	telemetry.WizardActionsTotal.WithLabelValues(string(a.Type), "applied").Inc()
	m.publish(events.EventWizardAction, m.payload(id, a, meta))

	return w.Snapshot(), nil
}

// Reset discards the session so the next request starts from the defaults.
func (m *Manager) Reset(ctx context.Context, id string, meta RequestMeta) error {
	unlock := m.locks.Lock(id)
	defer unlock()

	if err := m.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	m.publish(events.EventSessionReset, events.Payload{
		"session_id": id,
		"ip_address": meta.IPAddress,
		"user_agent": meta.UserAgent,
	})
	return nil
}

func (m *Manager) loadOrCreate(ctx context.Context, id string, meta RequestMeta) (*wizard.Wizard, error) {
	w, err := m.store.Load(ctx, id)
	if err == nil {
		w.Touch(m.now())
		return w, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("load session: %w", err)
	}

	w = wizard.New(m.defaults, m.now())
	if err := m.store.Save(ctx, id, w); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	telemetry.SessionsStarted.Inc()
	m.logger.Debug().Str("session_id", id).Msg("session started")
	m.publish(events.EventSessionStarted, events.Payload{
		"session_id": id,
		"ip_address": meta.IPAddress,
		"user_agent": meta.UserAgent,
	})
	return w, nil
}

func (m *Manager) payload(id string, a wizard.Action, meta RequestMeta) events.Payload {
	p := events.Payload{
		"session_id":  id,
		"action_type": string(a.Type),
		"ip_address":  meta.IPAddress,
		"user_agent":  meta.UserAgent,
	}
	if a.Weekday != "" {
		p["weekday"] = a.Weekday
	}
	if a.Time != "" {
		p["time"] = a.Time
	}
	if a.Value != "" {
		p["value"] = a.Value
	}
	if a.Direction != "" {
		p["direction"] = a.Direction
	}
	if a.Type == wizard.ActionPickDay {
		p["day"] = a.Day
		p["outside_month"] = a.OutsideMonth
	}
	if a.Type == wizard.ActionRemoveBlackout {
		p["index"] = a.Index
	}
	if a.Label != "" {
		p["label"] = a.Label
	}
	if a.TimeRange != "" {
		p["time_range"] = a.TimeRange
	}
	return p
}

func (m *Manager) publish(t events.EventType, p events.Payload) {
	if m.bus == nil {
		return
	}
	m.bus.Publish(t, p)
}

type refLock struct {
	sync.Mutex
	refs int
}

// keyedMutex hands out one mutex per key and forgets keys nobody holds.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refLock
}

func (k *keyedMutex) Lock(key string) (unlock func()) {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &refLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
