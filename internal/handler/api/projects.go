// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/pixelflame/internal/model"
	"github.com/olegiv/pixelflame/internal/store"
)

// MaxListLimit caps the limit query parameter.
const MaxListLimit = 100

// ListProjects handles GET /rest/v1/projects.
// Query: featured=true restricts to featured projects; limit=N caps the count.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	featured := false
	if v := r.URL.Query().Get("featured"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			WriteBadRequest(w, "Invalid featured parameter", map[string]string{"featured": "must be true or false"})
			return
		}
		featured = b
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > MaxListLimit {
			WriteBadRequest(w, "Invalid limit parameter", map[string]string{"limit": "must be between 1 and " + strconv.Itoa(MaxListLimit)})
			return
		}
		limit = n
	}

	h.serveCached(w, r, "projects", func() (any, *Meta, error) {
		var (
			rows []store.Project
			err  error
		)
		switch {
		case featured:
			n := limit
			if n == 0 {
				n = MaxListLimit
			}
			rows, err = h.queries.ListFeaturedProjects(r.Context(), int64(n))
		default:
			rows, err = h.queries.ListProjects(r.Context())
			if err == nil && limit > 0 && len(rows) > limit {
				rows = rows[:limit]
			}
		}
		if err != nil {
			return nil, nil, err
		}

		projects := make([]model.Project, len(rows))
		for i, row := range rows {
			projects[i] = row.ToModel()
		}
		return projects, &Meta{Total: len(projects)}, nil
	})
}

// GetProject handles GET /rest/v1/projects/{slug}.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	h.serveCached(w, r, "project", func() (any, *Meta, error) {
		row, err := h.queries.GetProjectBySlug(r.Context(), slug)
		if err != nil {
			return nil, nil, err
		}
		return row.ToModel(), nil, nil
	})
}
