// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/pixelflame/internal/middleware"
)

// RouterConfig carries the middleware settings of the /rest/v1 subtree.
type RouterConfig struct {
	AnonKey        string
	CORSOrigins    []string
	APILimiter     *middleware.IPRateLimiter
	ContactLimiter *middleware.IPRateLimiter
	CSRF           middleware.CSRFConfig
}

// Router builds the /rest/v1 subtree. Mount it with r.Mount("/rest/v1", h.Router(cfg)).
func (h *Handler) Router(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORS(cfg.CORSOrigins, 0))
	r.Use(middleware.AnonKeyAuth(cfg.AnonKey))
	if cfg.APILimiter != nil {
		r.Use(cfg.APILimiter.Middleware())
	}

	r.Get("/", h.Status)

	r.Get("/projects", h.ListProjects)
	r.Get("/projects/{slug}", h.GetProject)

	r.Get("/blog_posts", h.ListBlogPosts)
	r.Get("/blog_posts/{slug}", h.GetBlogPost)

	r.Group(func(r chi.Router) {
		r.Use(middleware.CSRF(cfg.CSRF))
		if cfg.ContactLimiter != nil {
			r.Use(cfg.ContactLimiter.Middleware())
		}
		r.Post("/contact_submissions", h.CreateContactSubmission)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		WriteNotFound(w, "Resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed", nil)
	})

	return r
}
