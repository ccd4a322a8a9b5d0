/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/friendsincode/bookingsetup/internal/telemetry"
	"github.com/friendsincode/bookingsetup/internal/wizard"
)

// KeyPrefix namespaces session keys in Redis.
const KeyPrefix = "bookings:session:"

// RedisConfig contains Redis session store configuration.
type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	TTL         time.Duration
	DialTimeout time.Duration

	// DisableOnError switches to the in-memory fallback after the first Redis error.
	DisableOnError bool
}

// DefaultRedisConfig returns default Redis store configuration.
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:           "localhost:6379",
		TTL:            2 * time.Hour,
		DialTimeout:    5 * time.Second,
		DisableOnError: true,
	}
}

// RedisStore keeps sessions in Redis and falls back to process memory while
// Redis is unreachable.
type RedisStore struct {
	client   *redis.Client
	logger   zerolog.Logger
	config   RedisConfig
	fallback *MemoryStore

	mu       sync.RWMutex
	disabled bool // Circuit breaker state
}

// NewRedisStore connects to Redis. A failed ping does not fail startup; the
// store runs on the fallback until restarted.
func NewRedisStore(cfg RedisConfig, logger zerolog.Logger) *RedisStore {
	logger = logger.With().Str("component", "session_store").Logger()
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 5 * time.Second
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	s := &RedisStore{
		client:   client,
		logger:   logger,
		config:   cfg,
		fallback: NewMemoryStore(cfg.TTL),
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Str("addr", cfg.Addr).Msg("Redis unavailable, keeping sessions in memory")
		s.disabled = true
		return s
	}

	logger.Info().Str("addr", cfg.Addr).Msg("Redis session store initialized")
	return s
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// IsAvailable returns true if Redis is serving sessions.
func (s *RedisStore) IsAvailable() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.disabled && s.client != nil
}

// handleError handles Redis errors with circuit breaker logic.
func (s *RedisStore) handleError(err error, operation string) {
	if err == nil || errors.Is(err, redis.Nil) {
		return
	}

	telemetry.SessionStoreErrors.WithLabelValues("redis", operation).Inc()
	s.logger.Debug().Err(err).Str("operation", operation).Msg("session store operation failed")

	if s.config.DisableOnError {
		s.mu.Lock()
		s.disabled = true
		s.mu.Unlock()
		s.logger.Warn().Msg("disabling Redis session store due to error")
	}
}

// Load fetches a session.
func (s *RedisStore) Load(ctx context.Context, id string) (*wizard.Wizard, error) {
	if !s.IsAvailable() {
		return s.fallback.Load(ctx, id)
	}

	data, err := s.client.Get(ctx, KeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.handleError(err, "load")
		if !s.IsAvailable() {
			return s.fallback.Load(ctx, id)
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	w, err := decode(data)
	if err != nil {
		s.logger.Debug().Err(err).Str("session_id", id).Msg("discarding unreadable session")
		return nil, ErrNotFound
	}
	return w, nil
}

// Save stores a session with the configured TTL.
func (s *RedisStore) Save(ctx context.Context, id string, w *wizard.Wizard) error {
	if !s.IsAvailable() {
		return s.fallback.Save(ctx, id, w)
	}

	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := s.client.Set(ctx, KeyPrefix+id, data, s.config.TTL).Err(); err != nil {
		s.handleError(err, "save")
		if !s.IsAvailable() {
			return s.fallback.Save(ctx, id, w)
		}
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Delete removes a session from Redis and the fallback.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	_ = s.fallback.Delete(ctx, id)
	if !s.IsAvailable() {
		return nil
	}

	if err := s.client.Del(ctx, KeyPrefix+id).Err(); err != nil {
		s.handleError(err, "delete")
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Sweep drops expired sessions held by the in-memory fallback. Redis expires
// its own keys.
func (s *RedisStore) Sweep() int {
	removed := s.fallback.Sweep()
	if removed > 0 {
		s.logger.Debug().Int("removed", removed).Msg("swept expired fallback sessions")
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *RedisStore) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
