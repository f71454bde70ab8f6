// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package transfer provides import/export of Pixel Flame content as a JSON bundle.
package transfer

import "time"

// ExportVersion is the current version of the export format.
const ExportVersion = "1.0"

// Entity names used in results and errors.
const (
	EntityProjects  = "projects"
	EntityBlogPosts = "blog_posts"
)

// ExportData represents the complete export structure.
type ExportData struct {
	Version    string           `json:"version"`
	ExportedAt time.Time        `json:"exported_at"`
	Projects   []ExportProject  `json:"projects,omitempty"`
	BlogPosts  []ExportBlogPost `json:"blog_posts,omitempty"`
}

// ExportProject represents a portfolio project. Slug may be omitted on import;
// it is derived from the title.
type ExportProject struct {
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Problem     string    `json:"problem,omitempty"`
	Solution    string    `json:"solution,omitempty"`
	TechStack   []string  `json:"tech_stack,omitempty"`
	ImageURL    string    `json:"image_url"`
	Screenshots []string  `json:"screenshots,omitempty"`
	Timeline    string    `json:"timeline,omitempty"`
	Results     string    `json:"results,omitempty"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
}

// ExportBlogPost represents a blog post, drafts included.
type ExportBlogPost struct {
	Title     string     `json:"title"`
	Slug      string     `json:"slug"`
	Excerpt   string     `json:"excerpt"`
	Content   string     `json:"content"`
	ImageURL  string     `json:"image_url,omitempty"`
	Author    string     `json:"author"`
	Tags      []string   `json:"tags,omitempty"`
	Published bool       `json:"published"`
	PublishAt *time.Time `json:"publish_at,omitempty"`
	CreatedAt time.Time  `json:"created_at,omitzero"`
	UpdatedAt time.Time  `json:"updated_at,omitzero"`
}

// Post status filters for export.
const (
	PostStatusAll       = "all"
	PostStatusPublished = "published"
	PostStatusDraft     = "draft"
)

// ExportOptions configures what to include in the export.
type ExportOptions struct {
	IncludeProjects  bool   `json:"include_projects"`
	IncludeBlogPosts bool   `json:"include_blog_posts"`
	PostStatus       string `json:"post_status"` // "all", "published", "draft"
}

// DefaultExportOptions returns options that include everything.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		IncludeProjects:  true,
		IncludeBlogPosts: true,
		PostStatus:       PostStatusAll,
	}
}

// ConflictStrategy decides what happens when an imported slug already exists.
type ConflictStrategy string

// Conflict strategies
const (
	ConflictOverwrite ConflictStrategy = "overwrite"
	ConflictSkip      ConflictStrategy = "skip"
	ConflictRename    ConflictStrategy = "rename"
)

// Valid reports whether s is a known strategy.
func (s ConflictStrategy) Valid() bool {
	switch s {
	case ConflictOverwrite, ConflictSkip, ConflictRename:
		return true
	}
	return false
}

// ImportOptions configures an import.
type ImportOptions struct {
	DryRun           bool             `json:"dry_run"`
	ConflictStrategy ConflictStrategy `json:"conflict_strategy"`
	ImportProjects   bool             `json:"import_projects"`
	ImportBlogPosts  bool             `json:"import_blog_posts"`
}

// DefaultImportOptions upserts everything by slug.
func DefaultImportOptions() ImportOptions {
	return ImportOptions{
		ConflictStrategy: ConflictOverwrite,
		ImportProjects:   true,
		ImportBlogPosts:  true,
	}
}

// ImportError describes a single failed entity.
type ImportError struct {
	Entity  string `json:"entity"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

func (e ImportError) Error() string {
	if e.ID == "" {
		return e.Entity + ": " + e.Message
	}
	return e.Entity + " " + e.ID + ": " + e.Message
}

// ImportResult reports what an import did, or would do in a dry run.
type ImportResult struct {
	Success bool           `json:"success"`
	DryRun  bool           `json:"dry_run"`
	Created map[string]int `json:"created"`
	Updated map[string]int `json:"updated"`
	Skipped map[string]int `json:"skipped"`
	Errors  []ImportError  `json:"errors,omitempty"`
}

// NewImportResult creates an empty, successful result.
func NewImportResult(dryRun bool) *ImportResult {
	return &ImportResult{
		Success: true,
		DryRun:  dryRun,
		Created: make(map[string]int),
		Updated: make(map[string]int),
		Skipped: make(map[string]int),
	}
}

// IncrementCreated counts a created entity.
func (r *ImportResult) IncrementCreated(entity string) { r.Created[entity]++ }

// IncrementUpdated counts an updated entity.
func (r *ImportResult) IncrementUpdated(entity string) { r.Updated[entity]++ }

// IncrementSkipped counts a skipped entity.
func (r *ImportResult) IncrementSkipped(entity string) { r.Skipped[entity]++ }

// AddError records an error and marks the result as failed.
func (r *ImportResult) AddError(entity, id, message string) {
	r.Success = false
	r.Errors = append(r.Errors, ImportError{Entity: entity, ID: id, Message: message})
}

// TotalCreated sums created entities.
func (r *ImportResult) TotalCreated() int { return sum(r.Created) }

// TotalUpdated sums updated entities.
func (r *ImportResult) TotalUpdated() int { return sum(r.Updated) }

// TotalSkipped sums skipped entities.
func (r *ImportResult) TotalSkipped() int { return sum(r.Skipped) }

func sum(m map[string]int) int {
	n := 0
	for _, v := range m {
		n += v
	}
	return n
}
