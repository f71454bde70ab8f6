// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/olegiv/pixelflame/internal/cache"
	"github.com/olegiv/pixelflame/internal/handler/api"
	"github.com/olegiv/pixelflame/internal/seo"
	"github.com/olegiv/pixelflame/internal/store"
)

// SitemapCacheKey is stored under the REST cache prefix so the scheduler's
// publish invalidation refreshes it too.
const SitemapCacheKey = api.CacheKeyPrefix + "/sitemap.xml"

// SEOConfig configures the crawler endpoints.
type SEOConfig struct {
	SiteURL     string // empty derives the origin from each request
	DisallowAll bool
	Cache       cache.Cache
	CacheTTL    time.Duration
}

// SEOHandler serves sitemap.xml and robots.txt.
type SEOHandler struct {
	queries *store.Queries
	cfg     SEOConfig
}

// NewSEOHandler creates a handler reading content from db.
func NewSEOHandler(db *sql.DB, cfg SEOConfig) *SEOHandler {
	return &SEOHandler{queries: store.New(db), cfg: cfg}
}

// Sitemap lists every client page, project and published post.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	siteURL := h.siteURL(r)
	key := SitemapCacheKey + "?" + siteURL

	if h.cfg.Cache != nil {
		if body, err := h.cfg.Cache.Get(r.Context(), key); err == nil {
			writeXML(w, body)
			return
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			slog.Warn("cache read failed", "key", key, "error", err)
		}
	}

	body, err := h.buildSitemap(r.Context(), siteURL)
	if err != nil {
		slog.Error("failed to build sitemap", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if h.cfg.Cache != nil {
		if err := h.cfg.Cache.Set(r.Context(), key, body, h.cfg.CacheTTL); err != nil {
			slog.Warn("cache write failed", "key", key, "error", err)
		}
	}
	writeXML(w, body)
}

func (h *SEOHandler) buildSitemap(ctx context.Context, siteURL string) ([]byte, error) {
	projects, err := h.queries.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	posts, err := h.queries.ListPublishedBlogPosts(ctx)
	if err != nil {
		return nil, err
	}

	b := seo.NewSitemapBuilder(siteURL)
	b.AddStaticPages()

	entries := make([]seo.Entry, 0, len(projects))
	for _, p := range projects {
		entries = append(entries, seo.Entry{Slug: p.Slug, UpdatedAt: p.UpdatedAt})
	}
	b.AddProjects(entries)

	entries = make([]seo.Entry, 0, len(posts))
	for _, p := range posts {
		entries = append(entries, seo.Entry{Slug: p.Slug, UpdatedAt: p.UpdatedAt})
	}
	b.AddPosts(entries)

	return b.Build()
}

// Robots serves robots.txt.
func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(seo.Robots(seo.RobotsConfig{
		SiteURL:     h.siteURL(r),
		DisallowAll: h.cfg.DisallowAll,
	})))
}

func (h *SEOHandler) siteURL(r *http.Request) string {
	if h.cfg.SiteURL != "" {
		return strings.TrimSuffix(h.cfg.SiteURL, "/")
	}
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func writeXML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(body)
}
