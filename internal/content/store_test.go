// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/pixelflame/internal/content"
	"github.com/olegiv/pixelflame/internal/handler/api"
	"github.com/olegiv/pixelflame/internal/middleware"
	"github.com/olegiv/pixelflame/internal/model"
	"github.com/olegiv/pixelflame/internal/testutil"
)

const anonKey = "test-anon-key-0123456789"

// newStoreClient runs the real REST API over a temp database and returns a client for it.
func newStoreClient(t *testing.T) (*content.Client, func(testutil.BlogPostFixture), func(testutil.ProjectFixture)) {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	h := api.NewHandler(db, nil, 0)
	r := chi.NewRouter()
	r.Mount("/rest/v1", h.Router(api.RouterConfig{
		AnonKey: anonKey,
		CSRF:    middleware.NewCSRFConfig(nil, nil, false),
	}))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	c, err := content.NewClient(content.Config{StoreURL: srv.URL, AnonKey: anonKey, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	addPost := func(f testutil.BlogPostFixture) { testutil.CreateBlogPost(t, db, f) }
	addProject := func(f testutil.ProjectFixture) { testutil.CreateProject(t, db, f) }
	return c, addPost, addProject
}

func TestStore_UnpublishedPostIsAbsent(t *testing.T) {
	c, addPost, _ := newStoreClient(t)
	ctx := context.Background()

	addPost(testutil.BlogPostFixture{Slug: "draft", Content: "draft body", Published: false})
	addPost(testutil.BlogPostFixture{Slug: "live", Content: "live body", Published: true})

	post, err := c.GetPublishedBlogPostBySlug(ctx, "draft")
	if err != nil {
		t.Fatalf("GetPublishedBlogPostBySlug(draft): %v", err)
	}
	if post != nil {
		t.Errorf("GetPublishedBlogPostBySlug(draft) = %+v, want nil", post)
	}

	post, err = c.GetPublishedBlogPostBySlug(ctx, "live")
	if err != nil || post == nil {
		t.Fatalf("GetPublishedBlogPostBySlug(live) = %v, %v", post, err)
	}
	if post.Content != "live body" {
		t.Errorf("Content = %q, want %q", post.Content, "live body")
	}

	posts, err := c.ListPublishedBlogPosts(ctx)
	if err != nil {
		t.Fatalf("ListPublishedBlogPosts: %v", err)
	}
	if len(posts) != 1 || posts[0].Slug != "live" {
		t.Errorf("posts = %+v, want only live", posts)
	}
}

func TestStore_ProjectsOrderAndFeatured(t *testing.T) {
	c, _, addProject := newStoreClient(t)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, slug := range []string{"oldest", "middle", "newest", "newest-plain"} {
		addProject(testutil.ProjectFixture{
			Slug:      slug,
			Featured:  slug != "newest-plain",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}

	all, err := c.ListProjects(ctx)
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(all) != 4 || all[0].Slug != "newest-plain" || all[3].Slug != "oldest" {
		t.Errorf("ListProjects order = %v", slugs(all))
	}

	featured, err := c.ListFeaturedProjects(ctx, 2)
	if err != nil {
		t.Fatalf("ListFeaturedProjects: %v", err)
	}
	if len(featured) != 2 || featured[0].Slug != "newest" || featured[1].Slug != "middle" {
		t.Errorf("ListFeaturedProjects = %v, want [newest middle]", slugs(featured))
	}

	missing, err := c.GetProjectBySlug(ctx, "nope")
	if err != nil || missing != nil {
		t.Errorf("GetProjectBySlug(nope) = %v, %v; want nil, nil", missing, err)
	}
}

func TestStore_ContactSubmission(t *testing.T) {
	c, _, _ := newStoreClient(t)

	err := c.SubmitContactMessage(context.Background(), content.ContactMessage{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Message: "We need a new site.",
	})
	if err != nil {
		t.Fatalf("SubmitContactMessage: %v", err)
	}

	err = c.SubmitContactMessage(context.Background(), content.ContactMessage{
		Name:    "Ada",
		Email:   "not-an-email",
		Message: "Hi",
	})
	var storeErr *content.StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("err = %v, want *content.StoreError", err)
	}
	if storeErr.Status != 422 || storeErr.Message == "" {
		t.Errorf("storeErr = %+v, want 422 with message", storeErr)
	}
}

func slugs(projects []model.Project) []string {
	out := make([]string, len(projects))
	for i, p := range projects {
		out[i] = p.Slug
	}
	return out
}
