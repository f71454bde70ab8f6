// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/pixelflame/internal/testutil"
)

func TestDefaultExportOptions(t *testing.T) {
	opts := DefaultExportOptions()
	assert.True(t, opts.IncludeProjects)
	assert.True(t, opts.IncludeBlogPosts)
	assert.Equal(t, PostStatusAll, opts.PostStatus)
}

func TestExporter_Export(t *testing.T) {
	ts := setupTest(t)
	defer ts.Cleanup()

	testutil.CreateProject(t, ts.DB, testutil.ProjectFixture{Slug: "harbor", TechStack: []string{"Go"}, Featured: true})
	testutil.CreateBlogPost(t, ts.DB, testutil.BlogPostFixture{Slug: "live", Content: "x", Published: true})
	testutil.CreateBlogPost(t, ts.DB, testutil.BlogPostFixture{Slug: "draft", Content: "y",
		PublishAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)})

	exporter := NewExporter(ts.DB, testutil.TestLoggerSilent())
	exporter.now = func() time.Time { return ts.Now }

	data, err := exporter.Export(ts.Ctx, DefaultExportOptions())
	require.NoError(t, err)
	assert.Equal(t, ExportVersion, data.Version)
	assert.True(t, data.ExportedAt.Equal(ts.Now))
	require.Len(t, data.Projects, 1)
	assert.Equal(t, []string{"Go"}, data.Projects[0].TechStack)
	assert.Len(t, data.BlogPosts, 2)

	opts := DefaultExportOptions()
	opts.PostStatus = PostStatusDraft
	opts.IncludeProjects = false
	data, err = exporter.Export(ts.Ctx, opts)
	require.NoError(t, err)
	assert.Empty(t, data.Projects)
	require.Len(t, data.BlogPosts, 1)
	assert.Equal(t, "draft", data.BlogPosts[0].Slug)
	require.NotNil(t, data.BlogPosts[0].PublishAt)
}

func TestExporter_RoundTrip(t *testing.T) {
	src := setupTest(t)
	defer src.Cleanup()

	testutil.CreateProject(t, src.DB, testutil.ProjectFixture{Slug: "harbor", Category: "backend", TechStack: []string{"Go", "Redis"}})
	testutil.CreateBlogPost(t, src.DB, testutil.BlogPostFixture{Slug: "live", Content: "# Title", Tags: []string{"go"}, Published: true})

	var buf bytes.Buffer
	require.NoError(t, NewExporter(src.DB, nil).ExportToWriter(src.Ctx, DefaultExportOptions(), &buf))

	dst := setupTest(t)
	defer dst.Cleanup()

	result, err := NewImporter(dst.DB, testutil.TestLoggerSilent()).ImportFromReader(dst.Ctx, &buf, DefaultImportOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created[EntityProjects])
	assert.Equal(t, 1, result.Created[EntityBlogPosts])

	p, err := dst.Queries.GetProjectBySlug(dst.Ctx, "harbor")
	require.NoError(t, err)
	assert.Equal(t, "backend", p.Category)
}

func TestExporter_ExportToFile(t *testing.T) {
	ts := setupTest(t)
	defer ts.Cleanup()

	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, NewExporter(ts.DB, nil).ExportToFile(ts.Ctx, DefaultExportOptions(), path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var data ExportData
	require.NoError(t, json.Unmarshal(raw, &data))
	assert.Equal(t, ExportVersion, data.Version)
}
