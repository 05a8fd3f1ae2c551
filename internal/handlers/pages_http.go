package handlers

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"feedback-prioritizer/internal/models"
	"feedback-prioritizer/internal/service"
	"feedback-prioritizer/internal/utils"
)

type DashboardSource interface {
	Dashboard(ctx context.Context) (service.DashboardView, error)
}

type Renderer interface {
	Render(w io.Writer, page string, data any) error
}

// PagesHTTP serves the server-rendered HTML pages.
type PagesHTTP struct {
	src         DashboardSource
	render      Renderer
	authEnabled bool
	log         zerolog.Logger
}

func NewPagesHTTP(src DashboardSource, render Renderer, authEnabled bool, log zerolog.Logger) *PagesHTTP {
	return &PagesHTTP{src: src, render: render, authEnabled: authEnabled, log: log}
}

// GET /
func (h *PagesHTTP) Form() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.page(w, http.StatusOK, "form.html", map[string]any{"Categories": models.Categories})
	}
}

// GET /test
func (h *PagesHTTP) Test() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.page(w, http.StatusOK, "test.html", nil)
	}
}

// GET /internal/dashboard
func (h *PagesHTTP) Dashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := h.src.Dashboard(r.Context())
		if err != nil {
			h.log.Error().Err(err).Msg("load dashboard")
			http.Error(w, "failed to load dashboard", http.StatusInternalServerError)
			return
		}
		admin, _ := utils.SessionAdmin(r.Context())
		h.page(w, http.StatusOK, "dashboard.html", struct {
			service.DashboardView
			AuthEnabled bool
			Admin       *models.Admin
		}{v, h.authEnabled, admin})
	}
}

// page renders into a buffer first so a template error never leaves a
// half-written 200 behind.
func (h *PagesHTTP) page(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.render.Render(&buf, name, data); err != nil {
		h.log.Error().Err(err).Str("page", name).Msg("render")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
