// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"time"
)

// Project is a row of the projects table.
// TechStack and Screenshots hold JSON-encoded string arrays.
type Project struct {
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

// BlogPost is a row of the blog_posts table. Tags holds a JSON-encoded string array.
type BlogPost struct {
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

// ContactSubmission is a row of the contact_submissions table.
type ContactSubmission struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Subject   sql.NullString `json:"subject"`
	Message   string         `json:"message"`
	Status    string         `json:"status"`
	IP        string         `json:"ip"`
	CreatedAt time.Time      `json:"created_at"`
}

// Event is a row of the events table.
type Event struct {
	ID        int64     `json:"id"`
	Level     string    `json:"level"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	Metadata  string    `json:"metadata"`
	CreatedAt time.Time `json:"created_at"`
}
