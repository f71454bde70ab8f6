// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package pages

import (
	"context"

	"golang.org/x/net/html"

	"github.com/olegiv/pixelflame/internal/model"
	r "github.com/olegiv/pixelflame/internal/render"
	"github.com/olegiv/pixelflame/internal/view"
)

// FilterAll shows every category.
const FilterAll = "all"

type filter struct {
	id    string
	label string
}

var filters = []filter{
	{FilterAll, "All Projects"},
	{string(model.CategoryWeb), model.CategoryWeb.Label()},
	{string(model.CategoryMobile), model.CategoryMobile.Label()},
	{string(model.CategoryBackend), model.CategoryBackend.Label()},
	{string(model.CategoryUIUX), model.CategoryUIUX.Label()},
}

// FilterProjects returns the projects in category id, keeping their order. "all"
// and unknown ids return the full list.
func FilterProjects(projects []model.Project, id string) []model.Project {
	if id == FilterAll || !model.Category(id).Valid() {
		return projects
	}
	var out []model.Project
	for _, p := range projects {
		if string(p.Category) == id {
			out = append(out, p)
		}
	}
	return out
}

// Projects is the portfolio listing with a local category filter.
type Projects struct {
	base
	deps     Deps
	loaded   bool
	projects []model.Project
	filter   string
}

// NewProjects creates the listing controller with the "all" filter.
func NewProjects(deps Deps) *Projects {
	return &Projects{base: base{page: view.Projects}, deps: deps.withDefaults(), filter: FilterAll}
}

// Load fetches every project. A failed read shows an empty listing.
func (p *Projects) Load(string) Job {
	store, logger := p.deps.Store, p.deps.Logger
	return func(ctx context.Context) any {
		projects, err := store.ListProjects(ctx)
		if err != nil {
			logger.Warn("failed to load projects", "error", err)
			return []model.Project(nil)
		}
		return projects
	}
}

// Receive stores the fetched projects.
func (p *Projects) Receive(_ string, result any) {
	projects, _ := result.([]model.Project)
	p.projects = projects
	p.loaded = true
}

// SetFilter selects a category. It never re-queries the store.
func (p *Projects) SetFilter(id string) {
	for _, f := range filters {
		if f.id == id {
			p.filter = id
			return
		}
	}
}

// Filter returns the active filter id.
func (p *Projects) Filter() string { return p.filter }

// Shown returns the projects under the active filter.
func (p *Projects) Shown() []model.Project {
	return FilterProjects(p.projects, p.filter)
}

func (p *Projects) Render() *html.Node {
	buttons := r.Each(filters, func(_ int, f filter) *html.Node {
		attrs := r.Attrs("type", "button", AttrFilter, f.id)
		if f.id == p.filter {
			attrs = append(attrs,
				html.Attribute{Key: "class", Val: "active"},
				html.Attribute{Key: "aria-pressed", Val: "true"})
		}
		return r.El("button", attrs, r.Text(f.label))
	})

	var body *html.Node
	shown := p.Shown()
	switch {
	case !p.loaded:
		body = placeholder("loading", "Loading projects...")
	case len(shown) == 0:
		body = placeholder("empty", "No projects found in this category.")
	default:
		body = r.El("div", r.Attrs("class", "grid"), r.Each(shown, func(i int, pr model.Project) *html.Node {
			return projectCard(pr, i, 100, true)
		})...)
	}

	return r.Fragment(
		r.El("section", r.Attrs("class", p.mountClass("hero")),
			r.El("div", r.Attrs("class", "container"),
				r.El("h1", animate(nil, "fadeInUp", "", "hero:title"), r.Text("Our Projects")),
				r.El("p", animate(nil, "fadeInUp", "0.2s", "hero:lead"),
					r.Text("Explore our portfolio of successful projects across web, mobile, and backend development")),
			),
		),
		section("section",
			r.El("div", r.Attrs("class", "filters", "role", "group", "aria-label", "Filter by category"), buttons...),
			body,
		),
	)
}
