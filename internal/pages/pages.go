// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package pages holds one controller per page of the site. Controllers keep
// page-local state and render it to an HTML tree; the app loop owns them and is
// the only caller, so none of them lock.
package pages

import (
	"context"
	"log/slog"

	"github.com/benbjohnson/clock"
	"golang.org/x/net/html"

	"github.com/olegiv/pixelflame/internal/content"
	"github.com/olegiv/pixelflame/internal/view"
)

// Deps are the collaborators shared by every controller.
type Deps struct {
	Store  content.Store
	Clock  clock.Clock
	Logger *slog.Logger

	// Dispatch schedules fn on the app loop. Timer callbacks go through it.
	Dispatch func(fn func())
}

func (d Deps) withDefaults() Deps {
	if d.Clock == nil {
		d.Clock = clock.New()
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Dispatch == nil {
		d.Dispatch = func(fn func()) { fn() }
	}
	return d
}

// Job is work that runs off the app loop, usually a store round trip. Its result
// is handed back to the controller that produced it.
type Job func(ctx context.Context) any

// Controller renders one page.
type Controller interface {
	Page() view.Page
	// Visible reports whether the page has been rendered once. It flips exactly once.
	Visible() bool
	MarkVisible()
	Render() *html.Node
}

// Loader is a controller backed by the store. Load is called on activation and
// again when the detail slug changes; the result of the job goes to Receive.
type Loader interface {
	Controller
	Load(slug string) Job
	Receive(slug string, result any)
}

// Filterer is a controller with a category filter.
type Filterer interface {
	Controller
	SetFilter(id string)
}

// Form is a controller with an editable form.
type Form interface {
	Controller
	SetField(name, value string)
	// Submit returns nil when there is nothing to send.
	Submit() Job
	Finish(result any)
}

// Closer is implemented by controllers that hold timers.
type Closer interface {
	Close()
}

// New returns a fresh controller for p.
func New(p view.Page, deps Deps) Controller {
	deps = deps.withDefaults()
	switch p {
	case view.Home:
		return NewHome(deps)
	case view.About:
		return &About{base: base{page: view.About}}
	case view.Services:
		return &Services{base: base{page: view.Services}}
	case view.Projects:
		return NewProjects(deps)
	case view.ProjectDetail:
		return NewProjectDetail(deps)
	case view.Blog:
		return NewBlog(deps)
	case view.BlogDetail:
		return NewBlogDetail(deps)
	case view.Contact:
		return NewContact(deps)
	}
	return NewHome(deps)
}

type base struct {
	page    view.Page
	visible bool
}

func (b *base) Page() view.Page { return b.page }
func (b *base) Visible() bool   { return b.visible }
func (b *base) MarkVisible()    { b.visible = true }

// mountClass is the entrance transition class for a page's hero block.
func (b *base) mountClass(classes string) string {
	if b.visible {
		return classes + " mount is-visible"
	}
	return classes + " mount"
}
