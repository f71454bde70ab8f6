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

// cardTags is the number of tags shown on a post card.
const cardTags = 3

// Blog lists published posts.
type Blog struct {
	base
	deps   Deps
	loaded bool
	posts  []model.BlogPost
}

// NewBlog creates the blog listing controller.
func NewBlog(deps Deps) *Blog {
	return &Blog{base: base{page: view.Blog}, deps: deps.withDefaults()}
}

// Load fetches published posts. A failed read shows an empty listing.
func (b *Blog) Load(string) Job {
	store, logger := b.deps.Store, b.deps.Logger
	return func(ctx context.Context) any {
		posts, err := store.ListPublishedBlogPosts(ctx)
		if err != nil {
			logger.Warn("failed to load blog posts", "error", err)
			return []model.BlogPost(nil)
		}
		return posts
	}
}

// Receive stores the fetched posts.
func (b *Blog) Receive(_ string, result any) {
	posts, _ := result.([]model.BlogPost)
	b.posts = posts
	b.loaded = true
}

// Posts returns the loaded posts.
func (b *Blog) Posts() []model.BlogPost { return b.posts }

func (b *Blog) Render() *html.Node {
	var body *html.Node
	switch {
	case !b.loaded:
		body = placeholder("loading", "Loading articles...")
	case len(b.posts) == 0:
		body = placeholder("empty", "No blog posts yet.")
	default:
		body = r.El("div", r.Attrs("class", "grid"), r.Each(b.posts, postCard)...)
	}

	return r.Fragment(
		r.El("section", r.Attrs("class", b.mountClass("hero")),
			r.El("div", r.Attrs("class", "container"),
				r.El("h1", animate(nil, "fadeInUp", "", "hero:title"), r.Text("Our Blog")),
				r.El("p", animate(nil, "fadeInUp", "0.2s", "hero:lead"),
					r.Text("Insights, tutorials, and industry trends from the Pixel Flame team")),
			),
		),
		section("section", body),
	)
}

func postCard(i int, p model.BlogPost) *html.Node {
	shown := p.Tags
	if len(shown) > cardTags {
		shown = shown[:cardTags]
	}

	attrs := animate(navAttrs(view.ToPost(p.Slug)), "fadeInUp", stagger(i, 100), "post:"+p.Slug)
	attrs = append(attrs, html.Attribute{Key: "class", Val: "card"})
	return r.El("a", attrs,
		image(p.ImageURL, p.Title),
		r.El("div", r.Attrs("class", "card-body"),
			r.El("p", r.Attrs("class", "card-meta"),
				r.El("time", r.Attrs("datetime", p.CreatedAt.Format("2006-01-02")), r.Text(FormatDate(p.CreatedAt))),
				r.Text(" · "+ReadTime(p.Content)),
			),
			r.El("h3", nil, r.Text(p.Title)),
			r.El("p", nil, r.Text(p.Excerpt)),
			r.El("div", nil, tags("tag", shown)...),
			r.El("span", r.Attrs("class", "card-meta"), r.Text("Read More →")),
		),
	)
}
