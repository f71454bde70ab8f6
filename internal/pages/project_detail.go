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

// DetailStatus is where a detail page is in resolving its slug.
type DetailStatus int

// Detail statuses.
const (
	DetailLoading DetailStatus = iota
	DetailFound
	DetailNotFound
)

// ProjectDetail shows one project.
type ProjectDetail struct {
	base
	deps    Deps
	slug    string
	status  DetailStatus
	project *model.Project
}

// NewProjectDetail creates the project detail controller.
func NewProjectDetail(deps Deps) *ProjectDetail {
	return &ProjectDetail{base: base{page: view.ProjectDetail}, deps: deps.withDefaults()}
}

// Load fetches the project with slug. A failed read resolves to not found.
func (d *ProjectDetail) Load(slug string) Job {
	d.slug = slug
	d.status = DetailLoading
	d.project = nil

	store, logger := d.deps.Store, d.deps.Logger
	return func(ctx context.Context) any {
		p, err := store.GetProjectBySlug(ctx, slug)
		if err != nil {
			logger.Warn("failed to load project", "slug", slug, "error", err)
			return (*model.Project)(nil)
		}
		return p
	}
}

// Receive records the project for slug. Results for another slug are ignored.
func (d *ProjectDetail) Receive(slug string, result any) {
	if slug != d.slug {
		return
	}
	if p, _ := result.(*model.Project); p != nil {
		d.project = p
		d.status = DetailFound
		return
	}
	d.project = nil
	d.status = DetailNotFound
}

// Status returns the lookup status.
func (d *ProjectDetail) Status() DetailStatus { return d.status }

func (d *ProjectDetail) Render() *html.Node {
	back := navLink(view.To(view.Projects), "", r.Text("← Back to Projects"))

	switch d.status {
	case DetailLoading:
		return section("section", placeholder("loading", "Loading project..."))
	case DetailNotFound:
		return section("section",
			r.El("div", r.Attrs("class", "not-found"),
				r.El("h1", nil, r.Text("Project not found")),
				r.El("p", nil, r.Text("The project you are looking for does not exist or has been removed.")),
				r.El("p", nil, back),
			),
		)
	}

	p := d.project
	var meta []*html.Node
	if p.Timeline != "" {
		meta = append(meta, r.El("div", nil,
			r.El("h3", nil, r.Text("Timeline")),
			r.El("p", nil, r.Text(p.Timeline)),
		))
	}
	meta = append(meta, r.El("div", nil,
		r.El("h3", nil, r.Text("Tech Stack")),
		r.El("div", nil, tags("tech", p.TechStack)...),
	))

	var problem, solution, gallery, results *html.Node
	if p.Problem != "" {
		problem = r.El("div", animate(nil, "fadeInLeft", "", "problem"),
			r.El("h2", nil, r.Text("The Challenge")),
			r.El("p", nil, r.Text(p.Problem)),
		)
	}
	if p.Solution != "" {
		solution = r.El("div", animate(nil, "fadeInRight", "", "solution"),
			r.El("h2", nil, r.Text("The Solution")),
			r.El("p", nil, r.Text(p.Solution)),
		)
	}
	if len(p.Screenshots) > 0 {
		shots := r.Each(p.Screenshots, func(i int, src string) *html.Node {
			return r.El("div", animate(nil, "zoomIn", stagger(i, 100), "shot:"+src), image(src, p.Title+" screenshot"))
		})
		gallery = section("section",
			r.El("h2", nil, r.Text("Project Screenshots")),
			r.El("div", r.Attrs("class", "gallery"), shots...),
		)
	}
	if items := p.ResultItems(); len(items) > 0 {
		results = section("section",
			r.El("h2", animate(nil, "fadeIn", "", "results"), r.Text("Results & Impact")),
			r.El("ul", nil, listItems(items)...),
		)
	}

	return r.Fragment(
		r.El("section", r.Attrs("class", d.mountClass("hero")),
			r.El("div", r.Attrs("class", "container"),
				r.El("p", nil, back),
				r.El("span", r.Attrs("class", "tag"), r.Text(p.Category.Label())),
				r.El("h1", animate(nil, "fadeInUp", "", "hero:title"), r.Text(p.Title)),
				r.El("p", animate(nil, "fadeInUp", "0.2s", "hero:lead"), r.Text(p.Description)),
				r.El("div", r.Attrs("class", "grid"), meta...),
			),
		),
		section("section", image(p.ImageURL, p.Title)),
		section("section", r.El("div", r.Attrs("class", "grid"), problem, solution)),
		gallery,
		results,
		cta("cta:project", "Have a Similar Project in Mind?",
			"Let's discuss how we can bring your vision to life with the same excellence.",
			navLink(view.To(view.Contact), "btn", r.Text("Start Your Project"))),
	)
}
