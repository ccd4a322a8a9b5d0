/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes registers all web UI routes on the given router.
func (h *Handler) Routes(r chi.Router) {
	// Static files (no session needed)
	r.Handle("/static/*", h.StaticHandler())

	r.Get("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		_, _ = w.Write([]byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 32 32"><rect x="4" y="6" width="24" height="22" rx="3" fill="#072AC8"/><rect x="8" y="12" width="16" height="12" rx="1" fill="white"/></svg>`))
	})

	r.Group(func(r chi.Router) {
		r.Use(h.SessionMiddleware)
		r.Use(h.CSRFMiddleware)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, setupPath, http.StatusSeeOther)
		})

		r.Get(setupPath, h.BookingsSetup)
		r.Post(setupPath+"/actions", h.BookingsSetupAction)
		r.Post(setupPath+"/reset", h.BookingsSetupReset)
	})
}
