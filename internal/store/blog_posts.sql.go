// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const blogPostColumns = `id, title, slug, excerpt, content, image_url, author, tags,
    published, publish_at, created_at, updated_at`

func scanBlogPost(row rowScanner) (BlogPost, error) {
	var i BlogPost
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Slug,
		&i.Excerpt,
		&i.Content,
		&i.ImageURL,
		&i.Author,
		&i.Tags,
		&i.Published,
		&i.PublishAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func (q *Queries) queryBlogPosts(ctx context.Context, query string, args ...interface{}) ([]BlogPost, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := []BlogPost{}
	for rows.Next() {
		i, err := scanBlogPost(rows)
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

const listPublishedBlogPosts = `SELECT ` + blogPostColumns + `
FROM blog_posts
WHERE published = ?
ORDER BY created_at DESC, id`

// ListPublishedBlogPosts returns published posts, newest first.
func (q *Queries) ListPublishedBlogPosts(ctx context.Context) ([]BlogPost, error) {
	return q.queryBlogPosts(ctx, listPublishedBlogPosts, true)
}

const listAllBlogPosts = `SELECT ` + blogPostColumns + `
FROM blog_posts
ORDER BY created_at DESC, id`

// ListAllBlogPosts includes drafts; it backs content export.
func (q *Queries) ListAllBlogPosts(ctx context.Context) ([]BlogPost, error) {
	return q.queryBlogPosts(ctx, listAllBlogPosts)
}

const getPublishedBlogPostBySlug = `SELECT ` + blogPostColumns + `
FROM blog_posts
WHERE slug = ? AND published = ?`

// GetPublishedBlogPostBySlug returns sql.ErrNoRows for unknown slugs and for drafts.
func (q *Queries) GetPublishedBlogPostBySlug(ctx context.Context, slug string) (BlogPost, error) {
	return scanBlogPost(q.db.QueryRowContext(ctx, getPublishedBlogPostBySlug, slug, true))
}

const getBlogPostBySlug = `SELECT ` + blogPostColumns + `
FROM blog_posts
WHERE slug = ?`

func (q *Queries) GetBlogPostBySlug(ctx context.Context, slug string) (BlogPost, error) {
	return scanBlogPost(q.db.QueryRowContext(ctx, getBlogPostBySlug, slug))
}

const countBlogPosts = `SELECT COUNT(*) FROM blog_posts`

func (q *Queries) CountBlogPosts(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countBlogPosts)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createBlogPost = `INSERT INTO blog_posts (` + blogPostColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

type CreateBlogPostParams struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Slug      string       `json:"slug"`
	Excerpt   string       `json:"excerpt"`
	Content   string       `json:"content"`
	ImageURL  string       `json:"image_url"`
	Author    string       `json:"author"`
	Tags      string       `json:"tags"`
	Published bool         `json:"published"`
	PublishAt sql.NullTime `json:"publish_at"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (q *Queries) CreateBlogPost(ctx context.Context, arg CreateBlogPostParams) (BlogPost, error) {
	_, err := q.db.ExecContext(ctx, createBlogPost,
		arg.ID,
		arg.Title,
		arg.Slug,
		arg.Excerpt,
		arg.Content,
		arg.ImageURL,
		arg.Author,
		jsonOrEmpty(arg.Tags),
		arg.Published,
		utcNullTime(arg.PublishAt),
		arg.CreatedAt.UTC(),
		arg.UpdatedAt.UTC(),
	)
	if err != nil {
		return BlogPost{}, err
	}
	return q.GetBlogPostBySlug(ctx, arg.Slug)
}

const updateBlogPost = `UPDATE blog_posts SET
    title = ?, excerpt = ?, content = ?, image_url = ?, author = ?, tags = ?,
    published = ?, publish_at = ?, updated_at = ?
WHERE slug = ?`

type UpdateBlogPostParams struct {
	Title     string       `json:"title"`
	Excerpt   string       `json:"excerpt"`
	Content   string       `json:"content"`
	ImageURL  string       `json:"image_url"`
	Author    string       `json:"author"`
	Tags      string       `json:"tags"`
	Published bool         `json:"published"`
	PublishAt sql.NullTime `json:"publish_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Slug      string       `json:"slug"`
}

func (q *Queries) UpdateBlogPost(ctx context.Context, arg UpdateBlogPostParams) (BlogPost, error) {
	_, err := q.db.ExecContext(ctx, updateBlogPost,
		arg.Title,
		arg.Excerpt,
		arg.Content,
		arg.ImageURL,
		arg.Author,
		jsonOrEmpty(arg.Tags),
		arg.Published,
		utcNullTime(arg.PublishAt),
		arg.UpdatedAt.UTC(),
		arg.Slug,
	)
	if err != nil {
		return BlogPost{}, err
	}
	return q.GetBlogPostBySlug(ctx, arg.Slug)
}

const listDueScheduledBlogPosts = `SELECT ` + blogPostColumns + `
FROM blog_posts
WHERE published = ? AND publish_at IS NOT NULL AND publish_at <= ?
ORDER BY publish_at, id`

// ListDueScheduledBlogPosts returns drafts whose publish_at is at or before now.
func (q *Queries) ListDueScheduledBlogPosts(ctx context.Context, now time.Time) ([]BlogPost, error) {
	return q.queryBlogPosts(ctx, listDueScheduledBlogPosts, false, now.UTC())
}

const publishBlogPost = `UPDATE blog_posts
SET published = ?, publish_at = NULL, updated_at = ?
WHERE id = ? AND published = ?`

// PublishBlogPost flips a draft to published. It reports whether a row changed.
func (q *Queries) PublishBlogPost(ctx context.Context, id string, now time.Time) (bool, error) {
	res, err := q.db.ExecContext(ctx, publishBlogPost, true, now.UTC(), id, false)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

const deleteBlogPost = `DELETE FROM blog_posts WHERE slug = ?`

func (q *Queries) DeleteBlogPost(ctx context.Context, slug string) error {
	_, err := q.db.ExecContext(ctx, deleteBlogPost, slug)
	return err
}

func utcNullTime(t sql.NullTime) sql.NullTime {
	if t.Valid {
		t.Time = t.Time.UTC()
	}
	return t
}
