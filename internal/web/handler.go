/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package web

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/csrf"
	"github.com/rs/zerolog"

	"github.com/friendsincode/bookingsetup/internal/navigation"
	"github.com/friendsincode/bookingsetup/internal/session"
	"github.com/friendsincode/bookingsetup/internal/version"
)

// Config holds the cookie settings for the web UI.
type Config struct {
	SessionSecret []byte
	SessionTTL    time.Duration
	SecureCookies bool
}

// Handler provides web UI endpoints with server-rendered templates.
type Handler struct {
	manager *session.Manager
	logger  zerolog.Logger

	sessionSecret []byte
	sessionTTL    time.Duration
	secureCookies bool
	csrfProtect   func(http.Handler) http.Handler

	templates map[string]*template.Template // Each page gets its own template set
}

// PageData holds common data passed to all templates.
type PageData struct {
	Title       string
	Flash       *FlashMessage
	CurrentPath string
	CSRFToken   string
	Version     string
	Menu        []navigation.Item
	Footer      []navigation.Item
	Data        any
}

// FlashMessage for toast notifications
type FlashMessage struct {
	Type    string // success, error, warning, info
	Message string
}

// NewHandler creates a new web handler.
func NewHandler(manager *session.Manager, cfg Config, logger zerolog.Logger) (*Handler, error) {
	h := &Handler{
		manager:       manager,
		logger:        logger.With().Str("component", "web").Logger(),
		sessionSecret: cfg.SessionSecret,
		sessionTTL:    cfg.SessionTTL,
		secureCookies: cfg.SecureCookies,
	}
	h.csrfProtect = csrf.Protect(csrfKey(cfg.SessionSecret),
		csrf.CookieName(csrfCookieName),
		csrf.FieldName(csrfFormField),
		csrf.RequestHeader(csrfHeaderName),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.Secure(cfg.SecureCookies),
		csrf.ErrorHandler(http.HandlerFunc(h.csrfFailure)),
	)

	if err := h.loadTemplates(); err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	return h, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"dict":    dict,
		"iterate": iterate,
		"icon":    newIcon,
	}
}

func (h *Handler) loadTemplates() error {
	funcMap := templateFuncs()

	h.templates = make(map[string]*template.Template)

	// First, collect all layout and partial templates
	var layoutFiles []string
	var partialFiles []string
	var pageFiles []string

	err := fs.WalkDir(TemplateFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}
		switch {
		case strings.HasPrefix(path, "templates/layouts/"):
			layoutFiles = append(layoutFiles, path)
		case strings.HasPrefix(path, "templates/partials/"):
			partialFiles = append(partialFiles, path)
		case strings.HasPrefix(path, "templates/pages/"):
			pageFiles = append(pageFiles, path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Each page is parsed together with every layout and partial
	shared := append(append([]string{}, layoutFiles...), partialFiles...)
	for _, pagePath := range pageFiles {
		tmpl := template.New("").Funcs(funcMap)

		for _, path := range append(shared, pagePath) {
			content, err := fs.ReadFile(TemplateFS, path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			if _, err := tmpl.New(templateName(path)).Parse(string(content)); err != nil {
				return fmt.Errorf("parse %s: %w", path, err)
			}
		}

		pageName := templateName(pagePath)
		h.templates[pageName] = tmpl
		h.logger.Debug().Str("template", pageName).Msg("loaded template")
	}

	return nil
}

func templateName(path string) string {
	return strings.TrimSuffix(strings.TrimPrefix(path, "templates/"), ".html")
}

// Render renders a template with the given data.
func (h *Handler) Render(w http.ResponseWriter, r *http.Request, name string, data PageData) {
	data.CurrentPath = r.URL.Path
	data.Version = version.Version
	data.Menu = navigation.Menu()
	data.Footer = navigation.Footer()

	tmpl, ok := h.templates[name]
	if !ok {
		h.logger.Error().Str("template", name).Msg("template not found")
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	var buf strings.Builder
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error().Err(err).Str("template", name).Msg("template render failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(buf.String()))
}

// staticResponseWriter wraps http.ResponseWriter to force correct MIME types
type staticResponseWriter struct {
	http.ResponseWriter
	contentType string
	wroteHeader bool
}

func (w *staticResponseWriter) WriteHeader(code int) {
	if !w.wroteHeader && w.contentType != "" {
		w.Header().Set("Content-Type", w.contentType)
	}
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *staticResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// StaticHandler returns an http.Handler for static files.
func (h *Handler) StaticHandler() http.Handler {
	fsys, _ := fs.Sub(StaticFS, "static")
	fileServer := http.FileServer(http.FS(fsys))
	return http.StripPrefix("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var contentType string
		switch path := r.URL.Path; {
		case strings.HasSuffix(path, ".css"):
			contentType = "text/css; charset=utf-8"
		case strings.HasSuffix(path, ".js"):
			contentType = "application/javascript; charset=utf-8"
		case strings.HasSuffix(path, ".svg"):
			contentType = "image/svg+xml"
		case strings.HasSuffix(path, ".ico"):
			contentType = "image/x-icon"
		}

		w.Header().Set("Cache-Control", "public, max-age=3600")
		sw := &staticResponseWriter{ResponseWriter: w, contentType: contentType}
		fileServer.ServeHTTP(sw, r)
	}))
}

// Template helper functions

func dict(values ...any) map[string]any {
	if len(values)%2 != 0 {
		return nil
	}
	m := make(map[string]any, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			return nil
		}
		m[key] = values[i+1]
	}
	return m
}

// iterate returns 0..n-1 for range loops.
func iterate(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
