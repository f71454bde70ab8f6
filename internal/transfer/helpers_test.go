// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/olegiv/pixelflame/internal/store"
	"github.com/olegiv/pixelflame/internal/testutil"
)

// testSetup contains common test dependencies.
type testSetup struct {
	DB      *sql.DB
	Queries *store.Queries
	Ctx     context.Context
	Now     time.Time
	Cleanup func()
}

// setupTest creates common test dependencies: database, queries and context.
func setupTest(t *testing.T) *testSetup {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	return &testSetup{
		DB:      db,
		Queries: store.New(db),
		Ctx:     context.Background(),
		Now:     time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
		Cleanup: cleanup,
	}
}

func validProject(slug string) ExportProject {
	return ExportProject{
		Title:       "Project " + slug,
		Slug:        slug,
		Category:    "web",
		Description: "A project",
		TechStack:   []string{"Go", "SQLite"},
		ImageURL:    "https://images.example.com/" + slug + ".jpg",
	}
}

func validPost(slug string) ExportBlogPost {
	return ExportBlogPost{
		Title:     "Post " + slug,
		Slug:      slug,
		Excerpt:   "Excerpt",
		Content:   "# Heading\n\nBody text",
		Author:    "Pixel Flame",
		Tags:      []string{"go"},
		Published: true,
	}
}
