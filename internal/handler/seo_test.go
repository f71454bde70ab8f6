// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/olegiv/pixelflame/internal/cache"
	"github.com/olegiv/pixelflame/internal/testutil"
)

func TestSEOHandler_Sitemap(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)
	testutil.CreateProject(t, db, testutil.ProjectFixture{Slug: "harbor-commerce"})
	testutil.CreateBlogPost(t, db, testutil.BlogPostFixture{Slug: "live-post", Published: true})
	testutil.CreateBlogPost(t, db, testutil.BlogPostFixture{Slug: "draft-post"})

	c := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = c.Close() })

	h := NewSEOHandler(db, SEOConfig{SiteURL: "https://pixelflame.dev/", Cache: c, CacheTTL: time.Minute})

	w := httptest.NewRecorder()
	h.Sitemap(w, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))

	assertStatus(t, w.Code, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/xml") {
		t.Errorf("Content-Type = %q", ct)
	}
	body := w.Body.String()
	for _, want := range []string{
		"<loc>https://pixelflame.dev/</loc>",
		"<loc>https://pixelflame.dev/services</loc>",
		"<loc>https://pixelflame.dev/projects/harbor-commerce</loc>",
		"<loc>https://pixelflame.dev/blog/live-post</loc>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("sitemap missing %s", want)
		}
	}
	if strings.Contains(body, "draft-post") {
		t.Error("sitemap must not list unpublished posts")
	}

	// Cached until the REST prefix is cleared.
	testutil.CreateProject(t, db, testutil.ProjectFixture{Slug: "later-project"})
	w = httptest.NewRecorder()
	h.Sitemap(w, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))
	if strings.Contains(w.Body.String(), "later-project") {
		t.Error("second request should be served from cache")
	}

	if err := c.DeleteByPrefix(context.Background(), "rest:"); err != nil {
		t.Fatal(err)
	}
	w = httptest.NewRecorder()
	h.Sitemap(w, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))
	if !strings.Contains(w.Body.String(), "later-project") {
		t.Error("sitemap not rebuilt after invalidation")
	}
}

func TestSEOHandler_RobotsUsesRequestHost(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)
	h := NewSEOHandler(db, SEOConfig{})

	req := httptest.NewRequest(http.MethodGet, "/robots.txt", nil)
	req.Host = "agency.example"
	req.Header.Set("X-Forwarded-Proto", "https")
	w := httptest.NewRecorder()
	h.Robots(w, req)

	assertStatus(t, w.Code, http.StatusOK)
	if !strings.Contains(w.Body.String(), "Sitemap: https://agency.example/sitemap.xml") {
		t.Errorf("robots.txt = %q", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Disallow: /rest/") {
		t.Error("robots.txt should keep crawlers off the API")
	}
}

func TestSEOHandler_RobotsDisallowAll(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)
	h := NewSEOHandler(db, SEOConfig{SiteURL: "https://staging.pixelflame.dev", DisallowAll: true})

	w := httptest.NewRecorder()
	h.Robots(w, httptest.NewRequest(http.MethodGet, "/robots.txt", nil))

	if got := w.Body.String(); got != "User-agent: *\nDisallow: /\n" {
		t.Errorf("robots.txt = %q", got)
	}
}
