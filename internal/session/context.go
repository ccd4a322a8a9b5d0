/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package session

import (
	"context"
	"net"
	"net/http"
)

type ctxKey string

const ctxKeySessionID ctxKey = "session_id"

// WithID returns a context carrying the session id.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeySessionID, id)
}

// IDFromContext returns the session id set by WithID.
func IDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKeySessionID).(string)
	return id, ok && id != ""
}

// MetaFromRequest describes the caller of r for the audit trail.
func MetaFromRequest(r *http.Request) RequestMeta {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	return RequestMeta{IPAddress: ip, UserAgent: r.UserAgent()}
}
