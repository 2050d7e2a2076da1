package ui

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the page and the short-lived session routes.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/", h.Index)
	r.Post("/ui/sessions", h.CreatePage)
	r.Post("/ui/sessions/{id}/submit", h.Submit)
	r.Get("/ui/sessions/{id}/export", h.Export)
}

// RegisterStreamRoutes registers the event stream. It is long-lived and must
// not sit behind a request timeout.
func RegisterStreamRoutes(r chi.Router, h *Handler) {
	r.Get("/ui/sessions/{id}/events", h.Events)
}
