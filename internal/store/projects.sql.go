// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const projectColumns = `id, title, slug, category, description, problem, solution, tech_stack,
    image_url, screenshots, timeline, results, featured, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProject(row rowScanner) (Project, error) {
	var i Project
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Slug,
		&i.Category,
		&i.Description,
		&i.Problem,
		&i.Solution,
		&i.TechStack,
		&i.ImageURL,
		&i.Screenshots,
		&i.Timeline,
		&i.Results,
		&i.Featured,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func (q *Queries) queryProjects(ctx context.Context, query string, args ...interface{}) ([]Project, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := []Project{}
	for rows.Next() {
		i, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listProjects = `SELECT ` + projectColumns + `
FROM projects
ORDER BY created_at DESC, id`

// ListProjects returns every project, newest first.
func (q *Queries) ListProjects(ctx context.Context) ([]Project, error) {
	return q.queryProjects(ctx, listProjects)
}

const listFeaturedProjects = `SELECT ` + projectColumns + `
FROM projects
WHERE featured = ?
ORDER BY created_at DESC, id
LIMIT ?`

// ListFeaturedProjects returns at most limit featured projects, newest first.
func (q *Queries) ListFeaturedProjects(ctx context.Context, limit int64) ([]Project, error) {
	return q.queryProjects(ctx, listFeaturedProjects, true, limit)
}

const getProjectBySlug = `SELECT ` + projectColumns + `
FROM projects
WHERE slug = ?`

// GetProjectBySlug returns sql.ErrNoRows when no project has the slug.
func (q *Queries) GetProjectBySlug(ctx context.Context, slug string) (Project, error) {
	return scanProject(q.db.QueryRowContext(ctx, getProjectBySlug, slug))
}

const getProjectByID = `SELECT ` + projectColumns + `
FROM projects
WHERE id = ?`

func (q *Queries) GetProjectByID(ctx context.Context, id string) (Project, error) {
	return scanProject(q.db.QueryRowContext(ctx, getProjectByID, id))
}

const countProjects = `SELECT COUNT(*) FROM projects`

func (q *Queries) CountProjects(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countProjects)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createProject = `INSERT INTO projects (` + projectColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

type CreateProjectParams struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Problem     string    `json:"problem"`
	Solution    string    `json:"solution"`
	TechStack   string    `json:"tech_stack"`
	ImageURL    string    `json:"image_url"`
	Screenshots string    `json:"screenshots"`
	Timeline    string    `json:"timeline"`
	Results     string    `json:"results"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateProject inserts a project and reads it back.
func (q *Queries) CreateProject(ctx context.Context, arg CreateProjectParams) (Project, error) {
	_, err := q.db.ExecContext(ctx, createProject,
		arg.ID,
		arg.Title,
		arg.Slug,
		arg.Category,
		arg.Description,
		arg.Problem,
		arg.Solution,
		jsonOrEmpty(arg.TechStack),
		arg.ImageURL,
		jsonOrEmpty(arg.Screenshots),
		arg.Timeline,
		arg.Results,
		arg.Featured,
		arg.CreatedAt.UTC(),
		arg.UpdatedAt.UTC(),
	)
	if err != nil {
		return Project{}, err
	}
	return q.GetProjectByID(ctx, arg.ID)
}

const updateProject = `UPDATE projects SET
    title = ?, category = ?, description = ?, problem = ?, solution = ?, tech_stack = ?,
    image_url = ?, screenshots = ?, timeline = ?, results = ?, featured = ?, updated_at = ?
WHERE slug = ?`

type UpdateProjectParams struct {
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Problem     string    `json:"problem"`
	Solution    string    `json:"solution"`
	TechStack   string    `json:"tech_stack"`
	ImageURL    string    `json:"image_url"`
	Screenshots string    `json:"screenshots"`
	Timeline    string    `json:"timeline"`
	Results     string    `json:"results"`
	Featured    bool      `json:"featured"`
	UpdatedAt   time.Time `json:"updated_at"`
	Slug        string    `json:"slug"`
}

// UpdateProject rewrites every mutable column of the project with the given slug.
func (q *Queries) UpdateProject(ctx context.Context, arg UpdateProjectParams) (Project, error) {
	_, err := q.db.ExecContext(ctx, updateProject,
		arg.Title,
		arg.Category,
		arg.Description,
		arg.Problem,
		arg.Solution,
		jsonOrEmpty(arg.TechStack),
		arg.ImageURL,
		jsonOrEmpty(arg.Screenshots),
		arg.Timeline,
		arg.Results,
		arg.Featured,
		arg.UpdatedAt.UTC(),
		arg.Slug,
	)
	if err != nil {
		return Project{}, err
	}
	return q.GetProjectBySlug(ctx, arg.Slug)
}

const deleteProject = `DELETE FROM projects WHERE slug = ?`

func (q *Queries) DeleteProject(ctx context.Context, slug string) error {
	_, err := q.db.ExecContext(ctx, deleteProject, slug)
	return err
}

func jsonOrEmpty(s string) string {
	if s == "" {
		return "[]"
	}
	return s
}
