// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/olegiv/pixelflame/internal/store"
)

// Exporter handles exporting content to the JSON bundle.
type Exporter struct {
	store  *store.Queries
	logger *slog.Logger
	now    func() time.Time
}

// NewExporter creates a new Exporter instance.
func NewExporter(db *sql.DB, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{
		store:  store.New(db),
		logger: logger,
		now:    time.Now,
	}
}

// Export collects the selected content.
func (e *Exporter) Export(ctx context.Context, opts ExportOptions) (*ExportData, error) {
	data := &ExportData{
		Version:    ExportVersion,
		ExportedAt: e.now().UTC(),
	}

	if opts.IncludeProjects {
		if err := e.exportProjects(ctx, data); err != nil {
			return nil, fmt.Errorf("exporting projects: %w", err)
		}
	}

	if opts.IncludeBlogPosts {
		if err := e.exportBlogPosts(ctx, data, opts.PostStatus); err != nil {
			return nil, fmt.Errorf("exporting blog posts: %w", err)
		}
	}

	e.logger.Info("content exported",
		"projects", len(data.Projects),
		"blog_posts", len(data.BlogPosts),
	)
	return data, nil
}

// ExportToWriter writes the bundle as indented JSON.
func (e *Exporter) ExportToWriter(ctx context.Context, opts ExportOptions, w io.Writer) error {
	data, err := e.Export(ctx, opts)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportToFile writes the bundle to path.
func (e *Exporter) ExportToFile(ctx context.Context, opts ExportOptions, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := e.ExportToWriter(ctx, opts, f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (e *Exporter) exportProjects(ctx context.Context, data *ExportData) error {
	rows, err := e.store.ListProjects(ctx)
	if err != nil {
		return err
	}

	data.Projects = make([]ExportProject, 0, len(rows))
	for _, row := range rows {
		data.Projects = append(data.Projects, ExportProject{
			Title:       row.Title,
			Slug:        row.Slug,
			Category:    row.Category,
			Description: row.Description,
			Problem:     row.Problem,
			Solution:    row.Solution,
			TechStack:   store.DecodeList(row.TechStack),
			ImageURL:    row.ImageURL,
			Screenshots: store.DecodeList(row.Screenshots),
			Timeline:    row.Timeline,
			Results:     row.Results,
			Featured:    row.Featured,
			CreatedAt:   row.CreatedAt.UTC(),
		})
	}
	return nil
}

func (e *Exporter) exportBlogPosts(ctx context.Context, data *ExportData, status string) error {
	rows, err := e.store.ListAllBlogPosts(ctx)
	if err != nil {
		return err
	}

	data.BlogPosts = make([]ExportBlogPost, 0, len(rows))
	for _, row := range rows {
		switch status {
		case PostStatusPublished:
			if !row.Published {
				continue
			}
		case PostStatusDraft:
			if row.Published {
				continue
			}
		}

		post := ExportBlogPost{
			Title:     row.Title,
			Slug:      row.Slug,
			Excerpt:   row.Excerpt,
			Content:   row.Content,
			ImageURL:  row.ImageURL,
			Author:    row.Author,
			Tags:      store.DecodeList(row.Tags),
			Published: row.Published,
			CreatedAt: row.CreatedAt.UTC(),
			UpdatedAt: row.UpdatedAt.UTC(),
		}
		if row.PublishAt.Valid {
			t := row.PublishAt.Time.UTC()
			post.PublishAt = &t
		}
		data.BlogPosts = append(data.BlogPosts, post)
	}
	return nil
}
