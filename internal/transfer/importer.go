// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/pixelflame/internal/model"
	"github.com/olegiv/pixelflame/internal/store"
	"github.com/olegiv/pixelflame/internal/util"
)

// ErrValidation is returned by Import when the bundle fails validation.
var ErrValidation = errors.New("validation failed")

// Importer handles importing content from the JSON bundle.
type Importer struct {
	store  *store.Queries
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// NewImporter creates a new Importer instance. db may be nil for validation-only use.
func NewImporter(db *sql.DB, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	i := &Importer{db: db, logger: logger, now: time.Now}
	if db != nil {
		i.store = store.New(db)
	}
	return i
}

// Import validates the bundle and upserts it by slug inside one transaction.
// On a dry run nothing is written; the result reports what would happen.
func (i *Importer) Import(ctx context.Context, data *ExportData, opts ImportOptions) (*ImportResult, error) {
	result := NewImportResult(opts.DryRun)

	if opts.ConflictStrategy == "" {
		opts.ConflictStrategy = ConflictOverwrite
	}
	if !opts.ConflictStrategy.Valid() {
		return nil, fmt.Errorf("unknown conflict strategy %q", opts.ConflictStrategy)
	}

	Normalize(data)

	if validationErrors := i.Validate(data); len(validationErrors) > 0 {
		for _, err := range validationErrors {
			result.AddError(err.Entity, err.ID, err.Message)
		}
		return result, ErrValidation
	}

	if opts.DryRun {
		i.countEntities(ctx, data, opts, result)
		return result, nil
	}

	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	queries := i.store.WithTx(tx)
	now := i.now().UTC()

	if opts.ImportProjects {
		for _, p := range data.Projects {
			if err := i.importProject(ctx, queries, p, opts, now, result); err != nil {
				return result, err
			}
		}
	}

	if opts.ImportBlogPosts {
		for _, p := range data.BlogPosts {
			if err := i.importBlogPost(ctx, queries, p, opts, now, result); err != nil {
				return result, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	i.logger.Info("content imported",
		"created", result.TotalCreated(),
		"updated", result.TotalUpdated(),
		"skipped", result.TotalSkipped(),
	)
	return result, nil
}

// ImportFromReader reads and imports from an io.Reader.
func (i *Importer) ImportFromReader(ctx context.Context, r io.Reader, opts ImportOptions) (*ImportResult, error) {
	var data ExportData
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return i.Import(ctx, &data, opts)
}

// ImportFromFile reads and imports from a file path.
func (i *Importer) ImportFromFile(ctx context.Context, path string, opts ImportOptions) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return i.ImportFromReader(ctx, f, opts)
}

// Normalize trims text fields and derives missing slugs from titles.
func Normalize(data *ExportData) {
	for idx := range data.Projects {
		p := &data.Projects[idx]
		p.Title = strings.TrimSpace(p.Title)
		p.Slug = strings.TrimSpace(p.Slug)
		p.Category = strings.ToLower(strings.TrimSpace(p.Category))
		if p.Slug == "" {
			p.Slug = util.Slugify(p.Title)
		}
		p.TechStack = compact(p.TechStack)
		p.Screenshots = compact(p.Screenshots)
	}
	for idx := range data.BlogPosts {
		p := &data.BlogPosts[idx]
		p.Title = strings.TrimSpace(p.Title)
		p.Slug = strings.TrimSpace(p.Slug)
		p.Author = strings.TrimSpace(p.Author)
		if p.Slug == "" {
			p.Slug = util.Slugify(p.Title)
		}
		p.Tags = compact(p.Tags)
	}
}

func compact(items []string) []string {
	out := items[:0:0]
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate validates the import data without making changes.
func (i *Importer) Validate(data *ExportData) []ImportError {
	var importErrors []ImportError
	add := func(entity, id, msg string) {
		importErrors = append(importErrors, ImportError{Entity: entity, ID: id, Message: msg})
	}

	if data.Version == "" {
		add("export", "", "missing version field")
	} else if major, _, _ := strings.Cut(data.Version, "."); major != "1" {
		add("export", "", "unsupported version "+data.Version)
	}

	seen := make(map[string]bool)
	for idx, p := range data.Projects {
		id := p.Slug
		if id == "" {
			id = strconv.Itoa(idx)
		}
		if p.Title == "" {
			add("project", id, "missing title")
		}
		switch {
		case p.Slug == "":
			add("project", id, "missing slug")
		case !util.IsValidSlug(p.Slug):
			add("project", id, "invalid slug format")
		case seen[p.Slug]:
			add("project", id, "duplicate slug in bundle")
		}
		seen[p.Slug] = true
		if !model.Category(p.Category).Valid() {
			add("project", id, fmt.Sprintf("invalid category %q", p.Category))
		}
		if strings.TrimSpace(p.Description) == "" {
			add("project", id, "missing description")
		}
		if !util.IsHTTPURL(p.ImageURL) {
			add("project", id, "image_url must be an http(s) URL")
		}
		for _, s := range p.Screenshots {
			if !util.IsHTTPURL(s) {
				add("project", id, "screenshot must be an http(s) URL: "+s)
			}
		}
	}

	seen = make(map[string]bool)
	for idx, p := range data.BlogPosts {
		id := p.Slug
		if id == "" {
			id = strconv.Itoa(idx)
		}
		if p.Title == "" {
			add("blog_post", id, "missing title")
		}
		switch {
		case p.Slug == "":
			add("blog_post", id, "missing slug")
		case !util.IsValidSlug(p.Slug):
			add("blog_post", id, "invalid slug format")
		case seen[p.Slug]:
			add("blog_post", id, "duplicate slug in bundle")
		}
		seen[p.Slug] = true
		if strings.TrimSpace(p.Content) == "" {
			add("blog_post", id, "missing content")
		}
		if p.Author == "" {
			add("blog_post", id, "missing author")
		}
		if p.ImageURL != "" && !util.IsHTTPURL(p.ImageURL) {
			add("blog_post", id, "image_url must be an http(s) URL")
		}
		if p.Published && p.PublishAt != nil {
			add("blog_post", id, "publish_at is only allowed on drafts")
		}
	}

	return importErrors
}

// countEntities fills a dry-run result from slug lookups.
func (i *Importer) countEntities(ctx context.Context, data *ExportData, opts ImportOptions, result *ImportResult) {
	classify := func(entity string, exists bool) {
		switch {
		case !exists, opts.ConflictStrategy == ConflictRename:
			result.IncrementCreated(entity)
		case opts.ConflictStrategy == ConflictSkip:
			result.IncrementSkipped(entity)
		default:
			result.IncrementUpdated(entity)
		}
	}

	if opts.ImportProjects {
		for _, p := range data.Projects {
			exists := false
			if i.store != nil {
				_, err := i.store.GetProjectBySlug(ctx, p.Slug)
				exists = err == nil
			}
			classify(EntityProjects, exists)
		}
	}
	if opts.ImportBlogPosts {
		for _, p := range data.BlogPosts {
			exists := false
			if i.store != nil {
				_, err := i.store.GetBlogPostBySlug(ctx, p.Slug)
				exists = err == nil
			}
			classify(EntityBlogPosts, exists)
		}
	}
}

func (i *Importer) importProject(ctx context.Context, queries *store.Queries, p ExportProject, opts ImportOptions, now time.Time, result *ImportResult) error {
	_, err := queries.GetProjectBySlug(ctx, p.Slug)
	exists := err == nil
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("looking up project %s: %w", p.Slug, err)
	}

	if exists {
		switch opts.ConflictStrategy {
		case ConflictSkip:
			result.IncrementSkipped(EntityProjects)
			return nil
		case ConflictOverwrite:
			_, err := queries.UpdateProject(ctx, store.UpdateProjectParams{
				Title:       p.Title,
				Category:    p.Category,
				Description: p.Description,
				Problem:     p.Problem,
				Solution:    p.Solution,
				TechStack:   store.EncodeList(p.TechStack),
				ImageURL:    p.ImageURL,
				Screenshots: store.EncodeList(p.Screenshots),
				Timeline:    p.Timeline,
				Results:     p.Results,
				Featured:    p.Featured,
				UpdatedAt:   now,
				Slug:        p.Slug,
			})
			if err != nil {
				return fmt.Errorf("updating project %s: %w", p.Slug, err)
			}
			result.IncrementUpdated(EntityProjects)
			return nil
		case ConflictRename:
			p.Slug, err = uniqueSlug(p.Slug, func(s string) (bool, error) {
				_, err := queries.GetProjectBySlug(ctx, s)
				return existsResult(err)
			})
			if err != nil {
				return err
			}
		}
	}

	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	_, err = queries.CreateProject(ctx, store.CreateProjectParams{
		ID:          uuid.NewString(),
		Title:       p.Title,
		Slug:        p.Slug,
		Category:    p.Category,
		Description: p.Description,
		Problem:     p.Problem,
		Solution:    p.Solution,
		TechStack:   store.EncodeList(p.TechStack),
		ImageURL:    p.ImageURL,
		Screenshots: store.EncodeList(p.Screenshots),
		Timeline:    p.Timeline,
		Results:     p.Results,
		Featured:    p.Featured,
		CreatedAt:   createdAt,
		UpdatedAt:   now,
	})
	if err != nil {
		return fmt.Errorf("creating project %s: %w", p.Slug, err)
	}
	result.IncrementCreated(EntityProjects)
	return nil
}

func (i *Importer) importBlogPost(ctx context.Context, queries *store.Queries, p ExportBlogPost, opts ImportOptions, now time.Time, result *ImportResult) error {
	_, err := queries.GetBlogPostBySlug(ctx, p.Slug)
	exists := err == nil
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("looking up blog post %s: %w", p.Slug, err)
	}

	var publishAt sql.NullTime
	if p.PublishAt != nil {
		publishAt = sql.NullTime{Time: *p.PublishAt, Valid: true}
	}

	if exists {
		switch opts.ConflictStrategy {
		case ConflictSkip:
			result.IncrementSkipped(EntityBlogPosts)
			return nil
		case ConflictOverwrite:
			_, err := queries.UpdateBlogPost(ctx, store.UpdateBlogPostParams{
				Title:     p.Title,
				Excerpt:   p.Excerpt,
				Content:   p.Content,
				ImageURL:  p.ImageURL,
				Author:    p.Author,
				Tags:      store.EncodeList(p.Tags),
				Published: p.Published,
				PublishAt: publishAt,
				UpdatedAt: now,
				Slug:      p.Slug,
			})
			if err != nil {
				return fmt.Errorf("updating blog post %s: %w", p.Slug, err)
			}
			result.IncrementUpdated(EntityBlogPosts)
			return nil
		case ConflictRename:
			p.Slug, err = uniqueSlug(p.Slug, func(s string) (bool, error) {
				_, err := queries.GetBlogPostBySlug(ctx, s)
				return existsResult(err)
			})
			if err != nil {
				return err
			}
		}
	}

	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	updatedAt := p.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = now
	}

	_, err = queries.CreateBlogPost(ctx, store.CreateBlogPostParams{
		ID:        uuid.NewString(),
		Title:     p.Title,
		Slug:      p.Slug,
		Excerpt:   p.Excerpt,
		Content:   p.Content,
		ImageURL:  p.ImageURL,
		Author:    p.Author,
		Tags:      store.EncodeList(p.Tags),
		Published: p.Published,
		PublishAt: publishAt,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	})
	if err != nil {
		return fmt.Errorf("creating blog post %s: %w", p.Slug, err)
	}
	result.IncrementCreated(EntityBlogPosts)
	return nil
}

func existsResult(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	default:
		return false, err
	}
}

// uniqueSlug appends -2, -3, ... to base until exists reports a free slug.
func uniqueSlug(base string, exists func(string) (bool, error)) (string, error) {
	for n := 2; n < 1000; n++ {
		suffix := "-" + strconv.Itoa(n)
		candidate := base
		if len(candidate)+len(suffix) > util.MaxSlugLength {
			candidate = strings.TrimRight(candidate[:util.MaxSlugLength-len(suffix)], "-")
		}
		candidate += suffix

		taken, err := exists(candidate)
		if err != nil {
			return "", fmt.Errorf("checking slug %s: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free slug for %s", base)
}
