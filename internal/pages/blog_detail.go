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

// BlogDetail shows one published post.
type BlogDetail struct {
	base
	deps   Deps
	slug   string
	status DetailStatus
	post   *model.BlogPost
}

// NewBlogDetail creates the post controller.
func NewBlogDetail(deps Deps) *BlogDetail {
	return &BlogDetail{base: base{page: view.BlogDetail}, deps: deps.withDefaults()}
}

// Load fetches the published post with slug. Drafts and failed reads resolve to
// not found.
func (d *BlogDetail) Load(slug string) Job {
	d.slug = slug
	d.status = DetailLoading
	d.post = nil

	store, logger := d.deps.Store, d.deps.Logger
	return func(ctx context.Context) any {
		p, err := store.GetPublishedBlogPostBySlug(ctx, slug)
		if err != nil {
			logger.Warn("failed to load blog post", "slug", slug, "error", err)
			return (*model.BlogPost)(nil)
		}
		return p
	}
}

// Receive records the post for slug. Results for another slug are ignored.
func (d *BlogDetail) Receive(slug string, result any) {
	if slug != d.slug {
		return
	}
	if p, _ := result.(*model.BlogPost); p != nil && p.Published {
		d.post = p
		d.status = DetailFound
		return
	}
	d.post = nil
	d.status = DetailNotFound
}

// Status returns the lookup status.
func (d *BlogDetail) Status() DetailStatus { return d.status }

func (d *BlogDetail) Render() *html.Node {
	back := navLink(view.To(view.Blog), "", r.Text("← Back to Blog"))

	switch d.status {
	case DetailLoading:
		return section("section", placeholder("loading", "Loading article..."))
	case DetailNotFound:
		return section("section",
			r.El("div", r.Attrs("class", "not-found"),
				r.El("h1", nil, r.Text("Article not found")),
				r.El("p", nil, r.Text("The article you are looking for does not exist or is no longer available.")),
				r.El("p", nil, back),
			),
		)
	}

	p := d.post
	author := p.Author
	if author == "" {
		author = "Pixel Flame Team"
	}

	return r.Fragment(
		r.El("section", r.Attrs("class", d.mountClass("hero")),
			r.El("div", r.Attrs("class", "container article"),
				r.El("p", nil, back),
				r.El("div", nil, tags("tag", p.Tags)...),
				r.El("h1", animate(nil, "fadeInUp", "", "hero:title"), r.Text(p.Title)),
				r.El("p", r.Attrs("class", "card-meta"),
					r.Text(author+" · "),
					r.El("time", r.Attrs("datetime", p.CreatedAt.Format("2006-01-02")), r.Text(FormatDate(p.CreatedAt))),
					r.Text(" · "+ReadTime(p.Content)),
				),
			),
		),
		section("section", image(p.ImageURL, p.Title)),
		section("section",
			r.El("article", r.Attrs("class", "article"), Markdown(p.Content)...),
		),
		section("section",
			r.El("div", animate(r.Attrs("class", "card card-body article"), "fadeInUp", "", "author"),
				r.El("h3", nil, r.Text("About the Author")),
				r.El("p", nil, r.El("strong", nil, r.Text(author))),
				r.El("p", r.Attrs("class", "card-meta"),
					r.Text("Part of the Pixel Flame team, passionate about creating exceptional digital experiences")),
			),
		),
		cta("cta:post", "Enjoyed This Article?",
			"Check out more insights and updates from the Pixel Flame team.",
			navLink(view.To(view.Blog), "btn", r.Text("Read More Articles"))),
	)
}
