/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/friendsincode/bookingsetup/internal/audit"
	"github.com/friendsincode/bookingsetup/internal/session"
	"github.com/friendsincode/bookingsetup/internal/wizard"
)

// maxActionBody caps a JSON action request.
const maxActionBody = 64 << 10

// API exposes HTTP handlers.
type API struct {
	manager  *session.Manager
	auditSvc *audit.Service
	logger   zerolog.Logger

	sessionMiddleware []func(http.Handler) http.Handler
}

// New creates the API router wrapper. auditSvc may be nil when the audit
// trail is disabled. mw runs in front of every session-bound route and must
// put the session id into the request context.
func New(manager *session.Manager, auditSvc *audit.Service, logger zerolog.Logger, mw ...func(http.Handler) http.Handler) *API {
	return &API{
		manager:           manager,
		auditSvc:          auditSvc,
		logger:            logger.With().Str("component", "api").Logger(),
		sessionMiddleware: mw,
	}
}

// Routes mounts API routes on provided router.
func (a *API) Routes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", a.handleHealth)

		// Stateless lookups
		r.Get("/calendar/{year}/{month}", a.handleCalendar)
		r.Get("/time-slots", a.handleTimeSlots)
		r.Get("/service-types", a.handleServiceTypes)
		r.Get("/navigation", a.handleNavigation)

		r.Group(func(sr chi.Router) {
			sr.Use(a.sessionMiddleware...)

			sr.Route("/wizard", func(r chi.Router) {
				r.Get("/", a.handleWizardGet)
				r.Post("/actions", a.handleWizardAction)
				r.Post("/reset", a.handleWizardReset)
				r.Get("/history", a.handleWizardHistory)
			})
		})
	})
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) handleWizardGet(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := session.IDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no_session")
		return
	}

	snap, err := a.manager.Snapshot(r.Context(), sessionID, session.MetaFromRequest(r))
	if err != nil {
		a.logger.Error().Err(err).Str("session_id", sessionID).Msg("load session failed")
		writeError(w, http.StatusInternalServerError, "session_error")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (a *API) handleWizardAction(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := session.IDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no_session")
		return
	}

	var action wizard.Action
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxActionBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&action); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	snap, err := a.manager.Apply(r.Context(), sessionID, action, session.MetaFromRequest(r))
	var actionErr *session.ActionError
	switch {
	case errors.As(err, &actionErr):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":    wizard.ErrorCode(actionErr),
			"message":  actionErr.Err.Error(),
			"snapshot": snap,
		})
		return
	case err != nil:
		a.logger.Error().Err(err).Str("session_id", sessionID).Msg("apply action failed")
		writeError(w, http.StatusInternalServerError, "session_error")
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

func (a *API) handleWizardReset(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := session.IDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no_session")
		return
	}

	meta := session.MetaFromRequest(r)
	if err := a.manager.Reset(r.Context(), sessionID, meta); err != nil {
		a.logger.Error().Err(err).Str("session_id", sessionID).Msg("reset session failed")
		writeError(w, http.StatusInternalServerError, "session_error")
		return
	}

	snap, err := a.manager.Snapshot(r.Context(), sessionID, meta)
	if err != nil {
		a.logger.Error().Err(err).Str("session_id", sessionID).Msg("load session failed")
		writeError(w, http.StatusInternalServerError, "session_error")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
