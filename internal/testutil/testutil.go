// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for the Pixel Flame server.
package testutil

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/pixelflame/internal/store"
)

// TestLogger creates a silent test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestLoggerSilent creates a completely silent test logger (error level only).
func TestLoggerSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// TestDB creates a temporary test database with migrations applied.
// Returns the database and a cleanup function that should be deferred.
func TestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "pixelflame-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		_ = os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		_ = os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	return db, func() {
		_ = db.Close()
		_ = os.Remove(dbPath)
	}
}

// ProjectFixture describes a project inserted by CreateProject.
type ProjectFixture struct {
	Title     string
	Slug      string
	Category  string
	TechStack []string
	Featured  bool
	CreatedAt time.Time
}

// CreateProject inserts a project row and fails the test on error.
func CreateProject(t *testing.T, db *sql.DB, f ProjectFixture) store.Project {
	t.Helper()

	if f.Title == "" {
		f.Title = f.Slug
	}
	if f.Category == "" {
		f.Category = "web"
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}

	p, err := store.New(db).CreateProject(context.Background(), store.CreateProjectParams{
		ID:          uuid.NewString(),
		Title:       f.Title,
		Slug:        f.Slug,
		Category:    f.Category,
		Description: "Description of " + f.Title,
		TechStack:   store.EncodeList(f.TechStack),
		ImageURL:    "https://images.example.com/" + f.Slug + ".jpg",
		Featured:    f.Featured,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.CreatedAt,
	})
	if err != nil {
		t.Fatalf("CreateProject(%q): %v", f.Slug, err)
	}
	return p
}

// BlogPostFixture describes a blog post inserted by CreateBlogPost.
type BlogPostFixture struct {
	Title     string
	Slug      string
	Content   string
	Tags      []string
	Published bool
	PublishAt time.Time
	CreatedAt time.Time
}

// CreateBlogPost inserts a blog post row and fails the test on error.
func CreateBlogPost(t *testing.T, db *sql.DB, f BlogPostFixture) store.BlogPost {
	t.Helper()

	if f.Title == "" {
		f.Title = f.Slug
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	var publishAt sql.NullTime
	if !f.PublishAt.IsZero() {
		publishAt = sql.NullTime{Time: f.PublishAt, Valid: true}
	}

	b, err := store.New(db).CreateBlogPost(context.Background(), store.CreateBlogPostParams{
		ID:        uuid.NewString(),
		Title:     f.Title,
		Slug:      f.Slug,
		Excerpt:   "Excerpt of " + f.Title,
		Content:   f.Content,
		Author:    "Test Author",
		Tags:      store.EncodeList(f.Tags),
		Published: f.Published,
		PublishAt: publishAt,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.CreatedAt,
	})
	if err != nil {
		t.Fatalf("CreateBlogPost(%q): %v", f.Slug, err)
	}
	return b
}
