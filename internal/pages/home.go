// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package pages

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/olegiv/pixelflame/internal/model"
	r "github.com/olegiv/pixelflame/internal/render"
	"github.com/olegiv/pixelflame/internal/view"
)

// FeaturedLimit is the number of featured projects on the landing page.
const FeaturedLimit = 3

type block struct {
	title string
	text  string
}

var homeServices = []block{
	{"Frontend Development", "Beautiful, responsive interfaces built with React, Next.js, and modern web technologies."},
	{"Backend Development", "Scalable, secure server-side solutions with Node.js, APIs, and cloud infrastructure."},
	{"Mobile Apps", "Native-quality mobile applications using React Native for iOS and Android."},
	{"UI/UX Design", "User-centered designs that combine aesthetics with exceptional usability."},
}

var homeFeatures = []block{
	{"Clean Code", "Maintainable, well-documented code following best practices"},
	{"Scalable Solutions", "Architecture designed to grow with your business"},
	{"UX-Driven", "Every decision focused on user experience and satisfaction"},
	{"On-Time Delivery", "Reliable timelines and consistent communication"},
}

type testimonial struct {
	name    string
	company string
	text    string
	rating  int
}

var testimonials = []testimonial{
	{
		name:    "Sarah Johnson",
		company: "TechStart Inc.",
		text:    "Pixel Flame transformed our vision into a stunning reality. Their attention to detail and technical expertise is unmatched.",
		rating:  5,
	},
	{
		name:    "Michael Chen",
		company: "Digital Ventures",
		text:    "Working with Pixel Flame was a game-changer for our business. They delivered beyond our expectations.",
		rating:  5,
	},
}

// Home is the landing page.
type Home struct {
	base
	deps     Deps
	featured []model.Project
}

// NewHome creates the landing page controller.
func NewHome(deps Deps) *Home {
	return &Home{base: base{page: view.Home}, deps: deps.withDefaults()}
}

// Load fetches the featured projects. A failed read leaves the section hidden.
func (h *Home) Load(string) Job {
	store, logger := h.deps.Store, h.deps.Logger
	return func(ctx context.Context) any {
		projects, err := store.ListFeaturedProjects(ctx, FeaturedLimit)
		if err != nil {
			logger.Warn("failed to load featured projects", "error", err)
			return []model.Project(nil)
		}
		return projects
	}
}

// Receive stores the featured projects.
func (h *Home) Receive(_ string, result any) {
	if projects, ok := result.([]model.Project); ok {
		if len(projects) > FeaturedLimit {
			projects = projects[:FeaturedLimit]
		}
		h.featured = projects
	}
}

// Featured returns the loaded featured projects.
func (h *Home) Featured() []model.Project { return h.featured }

func (h *Home) Render() *html.Node {
	services := r.Each(homeServices, func(i int, b block) *html.Node {
		return r.El("div", animate(r.Attrs("class", "card card-body"), "fadeInUp", stagger(i, 100), "service:"+b.title),
			r.El("h3", nil, r.Text(b.title)),
			r.El("p", nil, r.Text(b.text)),
		)
	})

	features := r.Each(homeFeatures, func(_ int, b block) *html.Node {
		return r.El("div", nil,
			r.El("h3", nil, r.Text(b.title)),
			r.El("p", r.Attrs("class", "card-meta"), r.Text(b.text)),
		)
	})

	quotes := r.Each(testimonials, func(_ int, t testimonial) *html.Node {
		return r.El("blockquote", r.Attrs("class", "card card-body"),
			r.El("p", r.Attrs("aria-label", fmt.Sprintf("%d out of 5", t.rating)), r.Text(strings.Repeat("★", t.rating))),
			r.El("p", nil, r.Text("\u201c"+t.text+"\u201d")),
			r.El("footer", nil,
				r.El("strong", nil, r.Text(t.name)),
				r.El("p", r.Attrs("class", "card-meta"), r.Text(t.company)),
			),
		)
	})

	var featured *html.Node
	if len(h.featured) > 0 {
		cards := r.Each(h.featured, func(i int, p model.Project) *html.Node {
			return projectCard(p, i, 150, false)
		})
		featured = section("section",
			r.El("h2", nil, r.Text("Featured Projects")),
			r.El("p", r.Attrs("class", "card-meta"), r.Text("Showcase of our recent work and client success stories")),
			r.El("div", r.Attrs("class", "grid"), cards...),
			r.El("p", nil, navLink(view.To(view.Projects), "btn", r.Text("View All Projects"))),
		)
	}

	return r.Fragment(
		r.El("section", r.Attrs("class", h.mountClass("hero")),
			r.El("div", r.Attrs("class", "container"),
				r.El("h1", animate(nil, "fadeInUp", "", "hero:title"), r.Text("Ignite Your Digital Presence")),
				r.El("p", animate(nil, "fadeInUp", "0.2s", "hero:lead"),
					r.Text("We craft exceptional digital experiences that combine stunning design with powerful technology. "+
						"Your vision, our expertise, infinite possibilities.")),
				r.El("p", animate(nil, "fadeInUp", "0.4s", "hero:actions"),
					navLink(view.To(view.Contact), "btn", r.Text("Get a Quote")),
					r.Text(" "),
					navLink(view.To(view.Projects), "btn btn-outline", r.Text("View Our Work")),
				),
			),
		),
		section("section",
			r.El("h2", animate(nil, "fadeIn", "", "services:title"), r.Text("Our Services")),
			r.El("p", r.Attrs("class", "card-meta"), r.Text("From concept to deployment, we deliver comprehensive solutions tailored to your needs")),
			r.El("div", r.Attrs("class", "grid"), services...),
			r.El("p", nil, navLink(view.To(view.Services), "", r.Text("Explore All Services →"))),
		),
		featured,
		section("section",
			r.El("h2", nil, r.Text("Why Choose Pixel Flame?")),
			r.El("div", r.Attrs("class", "grid"), features...),
		),
		section("section",
			r.El("h2", nil, r.Text("Client Testimonials")),
			r.El("div", r.Attrs("class", "grid"), quotes...),
		),
		cta("cta:home", "Ready to Start Your Project?",
			"Let's turn your vision into reality. Get in touch with us today for a free consultation.",
			navLink(view.To(view.Contact), "btn", r.Text("Get Started Now"))),
	)
}

// projectCard renders a project summary linking to its detail page. full adds the
// category badge and the "+N more" tech counter used on the listing.
func projectCard(p model.Project, i, stepMs int, full bool) *html.Node {
	techs := p.TechStack
	var more *html.Node
	if len(techs) > 3 {
		if full {
			more = r.El("span", r.Attrs("class", "tech"), r.Textf("+%d more", len(techs)-3))
		}
		techs = techs[:3]
	}

	var badge *html.Node
	if full {
		badge = r.El("span", r.Attrs("class", "tag"), r.Text(p.Category.Label()))
	}

	attrs := animate(navAttrs(view.ToProject(p.Slug)), "fadeInUp", stagger(i, stepMs), "project:"+p.Slug)
	attrs = append(attrs, html.Attribute{Key: "class", Val: "card"})
	return r.El("a", attrs,
		image(p.ImageURL, p.Title),
		r.El("div", r.Attrs("class", "card-body"),
			badge,
			r.El("div", nil, append(tags("tech", techs), more)...),
			r.El("h3", nil, r.Text(p.Title)),
			r.El("p", r.Attrs("class", "card-meta"), r.Text(p.Description)),
		),
	)
}
