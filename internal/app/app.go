// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package app runs the browser client: one event loop goroutine owns the view
// state, the active page controller and the scroll-reveal trigger. Everything
// else talks to it through events.
package app

import (
	"context"
	"log/slog"

	"github.com/benbjohnson/clock"

	"github.com/olegiv/pixelflame/internal/content"
	"github.com/olegiv/pixelflame/internal/pages"
	"github.com/olegiv/pixelflame/internal/render"
	"github.com/olegiv/pixelflame/internal/reveal"
	"github.com/olegiv/pixelflame/internal/view"
)

// eventBuffer bounds the queue between callbacks and the loop.
const eventBuffer = 128

// Platform is the document the app renders into.
type Platform interface {
	// Mount replaces the rendered document with markup.
	Mount(markup string)
	ScrollToTop()
	PushPath(path string)
	ReplacePath(path string)
	PrefersReducedMotion() bool
	// Elements returns the reveal-marked elements currently mounted.
	Elements() []reveal.Element
	Watcher(opts reveal.Options, onEntries func([]reveal.Entry)) reveal.Watcher
}

// Config holds the app's collaborators.
type Config struct {
	Platform Platform
	Store    content.Store
	Clock    clock.Clock
	Logger   *slog.Logger
}

// App is the client runtime.
type App struct {
	platform Platform
	deps     pages.Deps
	logger   *slog.Logger
	clock    clock.Clock

	events chan Event
	done   chan struct{}

	nav     *view.Navigator
	trigger *reveal.Trigger
	chrome  pages.Chrome

	ctrl     pages.Controller
	active   view.Page // requested page, before the listing fallback
	rendered view.Page
	slug     string
	gen      uint64
	cancel   context.CancelFunc
	ctx      context.Context
}

// New creates an App. Run starts it.
func New(cfg Config) *App {
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	a := &App{
		platform: cfg.Platform,
		logger:   cfg.Logger,
		clock:    cfg.Clock,
		events:   make(chan Event, eventBuffer),
		done:     make(chan struct{}),
		nav:      view.NewNavigator(),
		ctx:      context.Background(),
	}
	a.deps = pages.Deps{
		Store:    cfg.Store,
		Clock:    cfg.Clock,
		Logger:   cfg.Logger,
		Dispatch: func(fn func()) { a.Send(callEvent{fn: fn}) },
	}
	a.trigger = reveal.New(func(opts reveal.Options, onEntries func([]reveal.Entry)) reveal.Watcher {
		return a.platform.Watcher(opts, onEntries)
	}, func(entries []reveal.Entry) {
		a.Send(revealEvent{entries: entries})
	})
	return a
}

// Send queues ev for the loop without blocking; browser callbacks call it and must
// return promptly. A full queue hands ev to a goroutine. Events sent after the loop
// has stopped are dropped.
func (a *App) Send(ev Event) {
	select {
	case a.events <- ev:
	case <-a.done:
	default:
		go a.send(ev)
	}
}

func (a *App) send(ev Event) {
	select {
	case a.events <- ev:
	case <-a.done:
	}
}

// Run renders the initial page and processes events until ctx is done.
func (a *App) Run(ctx context.Context) error {
	a.ctx = ctx
	defer close(a.done)
	defer a.teardown()

	a.start()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-a.events:
			a.handle(ev)
		}
	}
}

// start shows the initial page. A fresh load always begins at home.
func (a *App) start() {
	a.platform.ReplacePath(a.nav.Current().Path())
	a.activate()
	a.render()
	a.logger.Info("client started", "page", a.rendered.String())
}

// Current returns the view state. It must only be called from the loop or after Run returns.
func (a *App) Current() view.State {
	return a.nav.Current()
}

func (a *App) handle(ev Event) {
	switch e := ev.(type) {
	case NavigateEvent:
		a.navigate(e.State, e.Origin)

	case FilterEvent:
		if f, ok := a.ctrl.(pages.Filterer); ok {
			f.SetFilter(e.ID)
			a.render()
		}

	case FieldEvent:
		// No re-render: the input already shows the value and keeps focus.
		if f, ok := a.ctrl.(pages.Form); ok {
			f.SetField(e.Name, e.Value)
		}

	case SubmitEvent:
		a.submit()

	case MenuEvent:
		a.chrome.MenuOpen = !a.chrome.MenuOpen
		a.render()

	case ScrollEvent:
		if scrolled := e.Y > pages.ScrollShadowY; scrolled != a.chrome.Scrolled {
			a.chrome.Scrolled = scrolled
			a.render()
		}

	case fetchResult:
		if e.gen != a.gen || e.page != a.rendered || e.slug != a.slug {
			a.logger.Debug("discarding stale result", "page", e.page.String(), "slug", e.slug)
			return
		}
		if l, ok := a.ctrl.(pages.Loader); ok {
			l.Receive(e.slug, e.result)
			a.render()
		}

	case submitResult:
		if e.ctrl != a.ctrl {
			return
		}
		if f, ok := a.ctrl.(pages.Form); ok {
			f.Finish(e.result)
			a.render()
		}

	case revealEvent:
		a.trigger.Handle(e.entries)

	case callEvent:
		e.fn()
		a.render()
	}
}

func (a *App) navigate(requested view.State, origin view.Origin) {
	scrollTop := a.nav.Go(requested, origin)
	if origin == view.OriginClick {
		a.platform.PushPath(a.nav.Current().Path())
	}
	a.chrome.MenuOpen = false
	a.activate()
	a.render()
	if scrollTop {
		a.platform.ScrollToTop()
	}
}

// activate matches the controller to the current state. A new page identifier gets
// a fresh controller and a fresh reveal activation, even when it falls back to the
// page already shown; a new slug on the same page refetches; anything else keeps
// the controller as is.
func (a *App) activate() {
	s := a.nav.Current()
	page, slug := view.Resolve(s), s.Slug()

	if a.ctrl != nil && s.Page == a.active && page == a.rendered {
		if slug != a.slug {
			a.slug = slug
			a.load()
		}
		return
	}

	a.closeController()
	a.trigger.Reset()
	a.ctrl = pages.New(page, a.deps)
	a.active = s.Page
	a.rendered = page
	a.slug = slug
	a.load()
}

func (a *App) load() {
	a.gen++
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}

	l, ok := a.ctrl.(pages.Loader)
	if !ok {
		return
	}

	ctx, cancel := context.WithCancel(a.ctx)
	a.cancel = cancel
	gen, page, slug := a.gen, a.rendered, a.slug
	job := l.Load(slug)
	go func() {
		result := job(ctx)
		a.Send(fetchResult{gen: gen, page: page, slug: slug, result: result})
	}()
}

func (a *App) submit() {
	f, ok := a.ctrl.(pages.Form)
	if !ok {
		return
	}
	job := f.Submit()
	if job == nil {
		return
	}
	a.render()

	// A submission outlives navigation; its result is dropped if the page changed.
	ctx, ctrl := a.ctx, a.ctrl
	go func() {
		result := job(ctx)
		a.Send(submitResult{ctrl: ctrl, result: result})
	}()
}

func (a *App) render() {
	if a.ctrl == nil {
		return
	}

	a.mount()
	if !a.ctrl.Visible() {
		a.ctrl.MarkVisible()
		a.mount()
	}
	a.trigger.Attach(a.platform.Elements(), a.platform.PrefersReducedMotion())
}

func (a *App) mount() {
	markup, err := render.String(pages.Layout(a.rendered, a.chrome, a.clock.Now(), a.ctrl.Render()))
	if err != nil {
		a.logger.Error("failed to render page", "page", a.rendered.String(), "error", err)
		return
	}
	a.platform.Mount(markup)
}

func (a *App) closeController() {
	if c, ok := a.ctrl.(pages.Closer); ok {
		c.Close()
	}
}

func (a *App) teardown() {
	if a.cancel != nil {
		a.cancel()
	}
	a.closeController()
	a.trigger.Reset()
}
