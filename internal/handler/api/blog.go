// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/pixelflame/internal/model"
)

// ListBlogPosts handles GET /rest/v1/blog_posts. Drafts are never listed.
func (h *Handler) ListBlogPosts(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, "blog posts", func() (any, *Meta, error) {
		rows, err := h.queries.ListPublishedBlogPosts(r.Context())
		if err != nil {
			return nil, nil, err
		}

		posts := make([]model.BlogPost, len(rows))
		for i, row := range rows {
			posts[i] = row.ToModel()
		}
		return posts, &Meta{Total: len(posts)}, nil
	})
}

// GetBlogPost handles GET /rest/v1/blog_posts/{slug}. A draft answers 404.
func (h *Handler) GetBlogPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	h.serveCached(w, r, "blog post", func() (any, *Meta, error) {
		row, err := h.queries.GetPublishedBlogPostBySlug(r.Context(), slug)
		if err != nil {
			return nil, nil, err
		}
		if !row.Published {
			return nil, nil, errNotFound
		}
		return row.ToModel(), nil, nil
	})
}
