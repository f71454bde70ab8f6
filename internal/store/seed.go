// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Seed fills an empty database with demo projects and blog posts.
// It does nothing when any project already exists.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	count, err := queries.CountProjects(ctx)
	if err != nil {
		return fmt.Errorf("counting projects: %w", err)
	}
	if count > 0 {
		slog.Info("content already present, skipping seed", "projects", count)
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	qtx := queries.WithTx(tx)
	now := time.Now().UTC()

	for i, p := range demoProjects {
		p.ID = uuid.NewString()
		p.CreatedAt = now.Add(-time.Duration(i) * 24 * time.Hour)
		p.UpdatedAt = p.CreatedAt
		if _, err := qtx.CreateProject(ctx, p); err != nil {
			return fmt.Errorf("creating project %q: %w", p.Slug, err)
		}
	}

	for i, b := range demoPosts {
		b.ID = uuid.NewString()
		b.CreatedAt = now.Add(-time.Duration(i) * 72 * time.Hour)
		b.UpdatedAt = b.CreatedAt
		if _, err := qtx.CreateBlogPost(ctx, b); err != nil {
			return fmt.Errorf("creating blog post %q: %w", b.Slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}

	slog.Info("seeded demo content", "projects", len(demoProjects), "blog_posts", len(demoPosts))
	return nil
}

var demoProjects = []CreateProjectParams{
	{
		Title:       "Harbor Commerce",
		Slug:        "harbor-commerce",
		Category:    "web",
		Description: "A headless storefront for a regional outdoor retailer.",
		Problem:     "Checkout took six steps and abandoned carts were above 70%.",
		Solution:    "A single-page checkout backed by a cached product catalog.",
		TechStack:   EncodeList([]string{"Go", "PostgreSQL", "Redis", "TypeScript", "Stripe"}),
		ImageURL:    "https://images.example.com/harbor/cover.jpg",
		Screenshots: EncodeList([]string{
			"https://images.example.com/harbor/checkout.jpg",
			"https://images.example.com/harbor/catalog.jpg",
		}),
		Timeline: "4 months",
		Results:  "Cart abandonment down 31%\nPage load under 1s on 4G\nZero downtime since launch",
		Featured: true,
	},
	{
		Title:       "Trailmate",
		Slug:        "trailmate",
		Category:    "mobile",
		Description: "Offline-first hiking companion with route sharing.",
		TechStack:   EncodeList([]string{"Kotlin", "Swift", "SQLite"}),
		ImageURL:    "https://images.example.com/trailmate/cover.jpg",
		Timeline:    "6 months",
		Results:     "4.8 store rating\n120k downloads in the first quarter",
		Featured:    true,
	},
	{
		Title:       "Ledgerline",
		Slug:        "ledgerline",
		Category:    "backend",
		Description: "Event-sourced billing platform processing two million invoices a month.",
		Problem:     "Nightly batch billing failed silently and blocked month-end close.",
		Solution:    "Streaming invoice pipeline with idempotent workers and an audit trail.",
		TechStack:   EncodeList([]string{"Go", "Kafka", "MySQL", "gRPC"}),
		ImageURL:    "https://images.example.com/ledgerline/cover.jpg",
		Results:     "Month-end close shortened from 5 days to 1",
		Featured:    true,
	},
	{
		Title:       "Clinic Flow",
		Slug:        "clinic-flow",
		Category:    "uiux",
		Description: "Redesigned patient intake for a network of dental clinics.",
		TechStack:   EncodeList([]string{"Figma", "Design Tokens"}),
		ImageURL:    "https://images.example.com/clinic/cover.jpg",
		Timeline:    "8 weeks",
	},
}

var demoPosts = []CreateBlogPostParams{
	{
		Title:     "Shipping a headless storefront in four months",
		Slug:      "shipping-a-headless-storefront",
		Excerpt:   "What we learned rebuilding checkout for a retailer with a seasonal peak.",
		Content:   "# Background\nThe retailer sells most of its stock in eight weeks.\n\n## Approach\nWe started from the checkout and worked outwards.\n\n### Caching\nCatalog reads are cached at the edge.\n\nThe rest is in the case study.",
		ImageURL:  "https://images.example.com/blog/storefront.jpg",
		Author:    "Pixel Flame Team",
		Tags:      EncodeList([]string{"commerce", "performance"}),
		Published: true,
	},
	{
		Title:     "Offline-first is a product decision",
		Slug:      "offline-first-is-a-product-decision",
		Excerpt:   "Why sync strategy belongs in the first design review.",
		Content:   "## The question\nWhat should the app do on a mountain with no signal?\n\nAnswer it before writing code.",
		Author:    "Pixel Flame Team",
		Tags:      EncodeList([]string{"mobile"}),
		Published: true,
	},
	{
		Title:   "Draft: pricing our discovery sprints",
		Slug:    "pricing-discovery-sprints",
		Excerpt: "Work in progress.",
		Content: "Not ready yet.",
		Author:  "Pixel Flame Team",
	},
}
