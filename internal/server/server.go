/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/friendsincode/bookingsetup/internal/api"
	"github.com/friendsincode/bookingsetup/internal/audit"
	"github.com/friendsincode/bookingsetup/internal/config"
	"github.com/friendsincode/bookingsetup/internal/db"
	"github.com/friendsincode/bookingsetup/internal/events"
	"github.com/friendsincode/bookingsetup/internal/session"
	"github.com/friendsincode/bookingsetup/internal/telemetry"
	"github.com/friendsincode/bookingsetup/internal/web"
)

const (
	sweepInterval       = time.Minute
	poolMetricsInterval = 15 * time.Second
)

// Server bundles HTTP and supporting services.
type Server struct {
	cfg           *config.Config
	logger        zerolog.Logger
	router        chi.Router
	httpServer    *http.Server
	metricsServer *http.Server
	closers       []func() error

	db         *gorm.DB
	bus        *events.Bus
	auditSvc   *audit.Service
	store      session.Store
	memory     *session.MemoryStore
	redis      *session.RedisStore
	manager    *session.Manager
	api        *api.API
	webHandler *web.Handler

	sessionOpts []session.Option

	bgCancel context.CancelFunc
	bgWG     sync.WaitGroup
}

// Option adjusts server construction.
type Option func(*Server)

// WithSessionClock overrides the clock used by the session manager.
func WithSessionClock(now func() time.Time) Option {
	return func(s *Server) {
		s.sessionOpts = append(s.sessionOpts, session.WithClock(now))
	}
}

// New constructs the server and wires dependencies.
func New(cfg *config.Config, logger zerolog.Logger, opts ...Option) (*Server, error) {
	for _, warn := range cfg.LegacyEnvWarnings {
		logger.Warn().Msg(warn)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(securityHeadersMiddleware)
	router.Use(telemetry.TracingMiddleware)
	router.Use(telemetry.MetricsMiddleware)
	router.Use(middleware.Timeout(30 * time.Second))

	srv := &Server{
		cfg:    cfg,
		logger: logger,
		router: router,
		bus:    events.NewBus(),
	}
	for _, opt := range opts {
		opt(srv)
	}

	if err := srv.initDependencies(); err != nil {
		_ = srv.Close()
		return nil, err
	}

	if cfg.MetricsBind != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", telemetry.Handler())
		srv.metricsServer = &http.Server{
			Addr:              cfg.MetricsBind,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	srv.configureRoutes()
	srv.startBackgroundWorkers()

	srv.httpServer = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return srv, nil
}

func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy",
			"default-src 'self'; script-src 'self'; style-src 'self'; img-src 'self' data:; form-action 'self'; frame-ancestors 'none'; base-uri 'self'")

		// Only advertise HSTS for requests served over HTTPS.
		if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) initDependencies() error {
	if s.cfg.AuditEnabled {
		database, err := db.Connect(s.cfg)
		if err != nil {
			return err
		}
		s.db = database
		s.DeferClose(func() error { return db.Close(database) })

		if err := db.Migrate(database); err != nil {
			return err
		}
		s.auditSvc = audit.NewService(database, s.bus, s.logger)
	} else {
		s.logger.Info().Msg("audit trail disabled")
	}

	switch s.cfg.SessionBackend {
	case config.SessionRedis:
		redisCfg := session.DefaultRedisConfig()
		redisCfg.Addr = s.cfg.RedisAddr
		redisCfg.Password = s.cfg.RedisPassword
		redisCfg.DB = s.cfg.RedisDB
		redisCfg.TTL = s.cfg.SessionTTL
		store := session.NewRedisStore(redisCfg, s.logger)
		s.store = store
		s.redis = store
		s.DeferClose(store.Close)
	default:
		store := session.NewMemoryStore(s.cfg.SessionTTL)
		s.store = store
		s.memory = store
		s.DeferClose(store.Close)
	}

	defaults, err := config.LoadDefaults(s.cfg.DefaultsFile)
	if err != nil {
		return fmt.Errorf("load wizard defaults: %w", err)
	}
	if s.cfg.DefaultsFile != "" {
		s.logger.Info().Str("path", s.cfg.DefaultsFile).Msg("wizard defaults loaded")
	}

	s.manager = session.NewManager(s.store, defaults, s.bus, s.logger, s.sessionOpts...)

	webHandler, err := web.NewHandler(s.manager, web.Config{
		SessionSecret: []byte(s.cfg.SessionSecret),
		SessionTTL:    s.cfg.SessionTTL,
		SecureCookies: s.cfg.SecureCookies,
	}, s.logger)
	if err != nil {
		return fmt.Errorf("initialize web handler: %w", err)
	}
	s.webHandler = webHandler

	s.api = api.New(s.manager, s.auditSvc, s.logger, webHandler.SessionMiddleware, web.SameOriginMiddleware)

	return nil
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// HTTPServer exposes the underlying net/http server.
func (s *Server) HTTPServer() *http.Server {
	return s.httpServer
}

// MetricsServer is the dedicated metrics listener, or nil when metrics are
// served on the main router.
func (s *Server) MetricsServer() *http.Server {
	return s.metricsServer
}

// Close releases owned resources in reverse order.
func (s *Server) Close() error {
	s.stopBackgroundWorkers()
	var firstErr error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.closers = nil
	return firstErr
}

// DeferClose registers a cleanup hook.
func (s *Server) DeferClose(fn func() error) {
	s.closers = append(s.closers, fn)
}

func (s *Server) startBackgroundWorkers() {
	ctx, cancel := context.WithCancel(context.Background())
	s.bgCancel = cancel

	if s.auditSvc != nil {
		<-s.auditSvc.Start(ctx)
		s.bgWG.Add(1)
		go func() {
			defer s.bgWG.Done()
			<-s.auditSvc.Done()
		}()
	}

	if s.memory != nil {
		s.bgWG.Add(1)
		go func() {
			defer s.bgWG.Done()
			s.memory.RunSweeper(ctx, sweepInterval)
		}()
	}

	if s.redis != nil {
		s.bgWG.Add(1)
		go func() {
			defer s.bgWG.Done()
			s.redis.RunSweeper(ctx, sweepInterval)
		}()
	}

	if s.db != nil {
		s.bgWG.Add(1)
		go func() {
			defer s.bgWG.Done()
			ticker := time.NewTicker(poolMetricsInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					db.UpdateConnectionMetrics(s.db)
				}
			}
		}()
	}
}

func (s *Server) stopBackgroundWorkers() {
	if s.bgCancel == nil {
		return
	}
	s.bgCancel()
	s.bgWG.Wait()
	s.bgCancel = nil
}

func (s *Server) configureRoutes() {
	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		response := `{"status":"ok","session_backend":"` + string(s.cfg.SessionBackend) + `"`
		if rs, ok := s.store.(*session.RedisStore); ok {
			if rs.IsAvailable() {
				response += `,"redis":true`
			} else {
				response += `,"redis":false`
			}
		}
		response += `}`
		_, _ = w.Write([]byte(response))
	})

	if s.metricsServer == nil {
		s.router.Handle("/metrics", telemetry.Handler())
	}

	s.api.Routes(s.router)

	// Web UI routes
	s.webHandler.Routes(s.router)
}
