// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"encoding/json"

	"github.com/olegiv/pixelflame/internal/model"
)

// EncodeList serializes a string list for a JSON text column.
func EncodeList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// DecodeList parses a JSON text column. Malformed values decode to nil.
func DecodeList(s string) []string {
	if s == "" {
		return nil
	}
	var items []string
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil
	}
	if len(items) == 0 {
		return nil
	}
	return items
}

// ToModel converts the row to its API representation.
func (p Project) ToModel() model.Project {
	techStack := DecodeList(p.TechStack)
	if techStack == nil {
		techStack = []string{}
	}
	return model.Project{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Category:    model.Category(p.Category),
		Description: p.Description,
		Problem:     p.Problem,
		Solution:    p.Solution,
		TechStack:   techStack,
		ImageURL:    p.ImageURL,
		Screenshots: DecodeList(p.Screenshots),
		Timeline:    p.Timeline,
		Results:     p.Results,
		Featured:    p.Featured,
		CreatedAt:   p.CreatedAt.UTC(),
	}
}

// ToModel converts the row to its API representation.
func (b BlogPost) ToModel() model.BlogPost {
	return model.BlogPost{
		ID:        b.ID,
		Title:     b.Title,
		Slug:      b.Slug,
		Excerpt:   b.Excerpt,
		Content:   b.Content,
		ImageURL:  b.ImageURL,
		Author:    b.Author,
		Tags:      DecodeList(b.Tags),
		Published: b.Published,
		CreatedAt: b.CreatedAt.UTC(),
		UpdatedAt: b.UpdatedAt.UTC(),
	}
}

// ToModel converts the row to its API representation.
func (c ContactSubmission) ToModel() model.ContactSubmission {
	var subject *string
	if c.Subject.Valid {
		s := c.Subject.String
		subject = &s
	}
	return model.ContactSubmission{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Subject:   subject,
		Message:   c.Message,
		Status:    c.Status,
		CreatedAt: c.CreatedAt.UTC(),
	}
}

// NullString maps nil and "" to NULL.
func NullString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
