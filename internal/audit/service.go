/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package audit records setup-session activity published on the event bus.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/friendsincode/bookingsetup/internal/events"
	"github.com/friendsincode/bookingsetup/internal/models"
)

// Service handles audit logging by subscribing to events and storing audit entries.
type Service struct {
	db     *gorm.DB
	bus    *events.Bus
	logger zerolog.Logger
	done   chan struct{}
}

// NewService creates a new audit service.
func NewService(db *gorm.DB, bus *events.Bus, logger zerolog.Logger) *Service {
	return &Service{
		db:     db,
		bus:    bus,
		logger: logger.With().Str("component", "audit").Logger(),
		done:   make(chan struct{}),
	}
}

var subscriptions = map[events.EventType]models.AuditAction{
	events.EventWizardAction:   models.AuditActionWizardApply,
	events.EventWizardRejected: models.AuditActionWizardReject,
	events.EventSessionStarted: models.AuditActionSessionStart,
	events.EventSessionReset:   models.AuditActionSessionReset,
}

// Start subscribes to session events and stores them until ctx is cancelled.
// The returned channel is closed once all subscriptions are in place.
func (s *Service) Start(ctx context.Context) <-chan struct{} {
	ready := make(chan struct{})
	go func() {
		defer close(s.done)
		s.run(ctx, ready)
	}()
	return ready
}

// Done is closed once the service started by Start has stopped writing.
func (s *Service) Done() <-chan struct{} {
	return s.done
}

func (s *Service) run(ctx context.Context, ready chan<- struct{}) {
	type entry struct {
		eventType events.EventType
		action    models.AuditAction
		sub       events.Subscriber
	}

	subs := make([]entry, 0, len(subscriptions))
	for et, action := range subscriptions {
		subs = append(subs, entry{eventType: et, action: action, sub: s.bus.Subscribe(et)})
	}
	defer func() {
		for _, e := range subs {
			s.bus.Unsubscribe(e.eventType, e.sub)
		}
	}()

	// One goroutine per subscription fans in to a single writer.
	type item struct {
		action  models.AuditAction
		payload events.Payload
	}
	merged := make(chan item)
	for _, e := range subs {
		go func(e entry) {
			for payload := range e.sub {
				select {
				case merged <- item{action: e.action, payload: payload}:
				case <-ctx.Done():
					return
				}
			}
		}(e)
	}

	s.logger.Info().Int("subscriptions", len(subs)).Msg("audit service started")
	close(ready)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("audit service stopping")
			return
		case it := <-merged:
			s.logAuditEntry(ctx, it.action, it.payload)
		}
	}
}

// logAuditEntry creates an audit log entry from an event payload.
func (s *Service) logAuditEntry(ctx context.Context, action models.AuditAction, payload events.Payload) {
	entry := &models.AuditLog{
		Action:  action,
		Details: make(map[string]any),
	}

	for k, v := range payload {
		str, _ := v.(string)
		switch k {
		case "session_id":
			entry.SessionID = str
		case "action_type":
			entry.ActionType = str
		case "error":
			entry.Error = truncate(str, 255)
		case "ip_address":
			entry.IPAddress = str
		case "user_agent":
			entry.UserAgent = truncate(str, 512)
		default:
			entry.Details[k] = v
		}
	}

	if entry.SessionID == "" {
		s.logger.Warn().Str("action", string(action)).Msg("dropping audit event without session id")
		return
	}

	if err := s.Log(ctx, entry); err != nil {
		s.logger.Error().Err(err).
			Str("action", string(action)).
			Msg("failed to log audit entry")
	}
}

// Log records an audit entry directly.
func (s *Service) Log(ctx context.Context, entry *models.AuditLog) error {
	now := time.Now().UTC()
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = now
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	if entry.Details == nil {
		entry.Details = make(map[string]any)
	}

	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return err
	}

	s.logger.Debug().
		Str("action", string(entry.Action)).
		Str("session_id", entry.SessionID).
		Msg("audit entry logged")

	return nil
}

// QueryFilters defines filters for querying audit logs.
type QueryFilters struct {
	SessionID *string
	Action    *models.AuditAction
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int
	Offset    int
}

// Query retrieves audit logs with filters, newest first.
func (s *Service) Query(ctx context.Context, filters QueryFilters) ([]models.AuditLog, int64, error) {
	var logs []models.AuditLog
	var total int64

	query := s.db.WithContext(ctx).Model(&models.AuditLog{})

	if filters.SessionID != nil {
		query = query.Where("session_id = ?", *filters.SessionID)
	}
	if filters.Action != nil {
		query = query.Where("action = ?", *filters.Action)
	}
	if filters.StartTime != nil {
		query = query.Where("timestamp >= ?", *filters.StartTime)
	}
	if filters.EndTime != nil {
		query = query.Where("timestamp <= ?", *filters.EndTime)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	} else {
		query = query.Limit(100)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Order("timestamp DESC").Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
