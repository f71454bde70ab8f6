// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the content entities shared by the store server and the browser client.
package model

import (
	"strings"
	"time"
)

// Category classifies a portfolio project.
type Category string

// Project categories
const (
	CategoryWeb     Category = "web"
	CategoryMobile  Category = "mobile"
	CategoryBackend Category = "backend"
	CategoryUIUX    Category = "uiux"
)

// Categories lists every project category in display order.
var Categories = []Category{CategoryWeb, CategoryMobile, CategoryBackend, CategoryUIUX}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryWeb, CategoryMobile, CategoryBackend, CategoryUIUX:
		return true
	}
	return false
}

// Label returns the human-readable category name.
func (c Category) Label() string {
	switch c {
	case CategoryWeb:
		return "Web"
	case CategoryMobile:
		return "Mobile"
	case CategoryBackend:
		return "Backend"
	case CategoryUIUX:
		return "UI/UX"
	}
	return string(c)
}

// Project is a portfolio entry. Optional narrative fields are empty when absent.
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Category    Category  `json:"category"`
	Description string    `json:"description"`
	Problem     string    `json:"problem,omitempty"`
	Solution    string    `json:"solution,omitempty"`
	TechStack   []string  `json:"tech_stack"`
	ImageURL    string    `json:"image_url"`
	Screenshots []string  `json:"screenshots,omitempty"`
	Timeline    string    `json:"timeline,omitempty"`
	Results     string    `json:"results,omitempty"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
}

// ResultItems splits the newline-delimited results text into bullet items,
// skipping blank lines.
func (p *Project) ResultItems() []string {
	if p.Results == "" {
		return nil
	}
	var items []string
	for _, line := range strings.Split(p.Results, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			items = append(items, line)
		}
	}
	return items
}
