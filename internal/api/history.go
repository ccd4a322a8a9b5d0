/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/friendsincode/bookingsetup/internal/audit"
	"github.com/friendsincode/bookingsetup/internal/models"
	"github.com/friendsincode/bookingsetup/internal/session"
)

// historyEntry is the JSON response for an audit log entry.
type historyEntry struct {
	ID         string         `json:"id"`
	Timestamp  time.Time      `json:"timestamp"`
	Action     string         `json:"action"`
	ActionType string         `json:"action_type,omitempty"`
	Error      string         `json:"error,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
}

// handleWizardHistory returns the audit trail of the caller's own session.
func (a *API) handleWizardHistory(w http.ResponseWriter, r *http.Request) {
	if a.auditSvc == nil {
		writeError(w, http.StatusNotFound, "audit_disabled")
		return
	}

	sessionID, ok := session.IDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no_session")
		return
	}

	filters := parseHistoryFilters(r)
	filters.SessionID = &sessionID

	logs, total, err := a.auditSvc.Query(r.Context(), filters)
	if err != nil {
		a.logger.Error().Err(err).Msg("failed to query audit logs")
		writeError(w, http.StatusInternalServerError, "query_failed")
		return
	}

	response := make([]historyEntry, len(logs))
	for i, log := range logs {
		response[i] = toHistoryEntry(log)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"entries": response,
		"total":   total,
		"limit":   filters.Limit,
		"offset":  filters.Offset,
	})
}

// parseHistoryFilters extracts query filters from the request.
func parseHistoryFilters(r *http.Request) audit.QueryFilters {
	filters := audit.QueryFilters{
		Limit:  50,
		Offset: 0,
	}

	if action := r.URL.Query().Get("action"); action != "" {
		a := models.AuditAction(action)
		filters.Action = &a
	}

	if since := r.URL.Query().Get("since"); since != "" {
		if t, err := time.Parse(time.RFC3339, since); err == nil {
			filters.StartTime = &t
		}
	}

	if limit := r.URL.Query().Get("limit"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 && n <= 500 {
			filters.Limit = n
		}
	}

	if offset := r.URL.Query().Get("offset"); offset != "" {
		if n, err := strconv.Atoi(offset); err == nil && n >= 0 {
			filters.Offset = n
		}
	}

	return filters
}

func toHistoryEntry(log models.AuditLog) historyEntry {
	return historyEntry{
		ID:         log.ID,
		Timestamp:  log.Timestamp,
		Action:     string(log.Action),
		ActionType: log.ActionType,
		Error:      log.Error,
		Details:    log.Details,
	}
}
