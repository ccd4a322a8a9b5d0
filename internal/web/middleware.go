/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package web

import (
	"crypto/sha256"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/csrf"

	"github.com/friendsincode/bookingsetup/internal/session"
)

const (
	csrfCookieName  = "bookings_csrf"
	csrfHeaderName  = "X-CSRF-Token"
	csrfFormField   = "csrf_token"
	flashCookieName = "bookings_flash"
)

// SessionMiddleware binds every request to a setup session. A missing or
// invalid token starts a new session and sets a fresh cookie.
func (h *Handler) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var tokenStr string

		// Check cookie first (browser sessions)
		if cookie, err := r.Cookie(session.CookieName); err == nil {
			tokenStr = cookie.Value
		}

		// Fall back to Authorization header
		if tokenStr == "" {
			auth := r.Header.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				tokenStr = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		var sessionID string
		if tokenStr != "" {
			sid, err := session.ParseToken(h.sessionSecret, tokenStr)
			if err != nil {
				h.logger.Debug().Err(err).Msg("discarding invalid session token")
			} else {
				sessionID = sid
			}
		}

		if sessionID == "" {
			sessionID = h.manager.NewID()
			token, err := session.IssueToken(h.sessionSecret, sessionID, h.sessionTTL)
			if err != nil {
				h.logger.Error().Err(err).Msg("failed to sign session token")
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			h.setCookie(w, session.CookieName, token, int(h.sessionTTL.Seconds()), true)
		}

		next.ServeHTTP(w, r.WithContext(session.WithID(r.Context(), sessionID)))
	})
}

// CSRFMiddleware checks the form or header token on mutating requests and
// makes the token available to templates through csrf.Token.
func (h *Handler) CSRFMiddleware(next http.Handler) http.Handler {
	protected := h.csrfProtect(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isSafeMethod(r.Method) && !sameOrigin(r) {
			http.Error(w, "Cross-origin request rejected", http.StatusForbidden)
			return
		}
		if r.TLS == nil && r.Header.Get("X-Forwarded-Proto") != "https" {
			r = csrf.PlaintextHTTPRequest(r)
		}
		protected.ServeHTTP(w, r)
	})
}

func (h *Handler) csrfFailure(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug().Err(csrf.FailureReason(r)).Str("path", r.URL.Path).Msg("CSRF check failed")
	http.Error(w, "Invalid CSRF token", http.StatusForbidden)
}

// csrfKey derives the 32-byte token key from the session secret.
func csrfKey(secret []byte) []byte {
	sum := sha256.Sum256(append([]byte("bookings-csrf:"), secret...))
	return sum[:]
}

// SameOriginMiddleware rejects mutating requests whose Origin or Referer
// names another host. JSON clients use it instead of the form token.
func SameOriginMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isSafeMethod(r.Method) && !sameOrigin(r) {
			http.Error(w, "Cross-origin request rejected", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// sameOrigin accepts requests without Origin or Referer (non-browser clients).
func sameOrigin(r *http.Request) bool {
	source := r.Header.Get("Origin")
	if source == "" {
		source = r.Header.Get("Referer")
	}
	if source == "" {
		return true
	}
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

// setFlash stores a one-shot message shown on the next page render.
func (h *Handler) setFlash(w http.ResponseWriter, kind, message string) {
	h.setCookie(w, flashCookieName, url.QueryEscape(kind+"|"+message), 60, true)
}

// popFlash reads and clears the flash cookie.
func (h *Handler) popFlash(w http.ResponseWriter, r *http.Request) *FlashMessage {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	h.setCookie(w, flashCookieName, "", -1, true)

	raw, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return nil
	}
	kind, message, ok := strings.Cut(raw, "|")
	if !ok || message == "" {
		return nil
	}
	return &FlashMessage{Type: kind, Message: message}
}

func (h *Handler) setCookie(w http.ResponseWriter, name, value string, maxAge int, httpOnly bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: httpOnly,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secureCookies,
	})
}
