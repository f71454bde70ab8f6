// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package reveal plays a one-shot entrance animation on marked elements the first
// time they scroll into view.
//
// Elements opt in with data-animate="<animate.css name>" and may add
// data-animate-delay="<css time>". On first intersection the element gets the
// classes "animate__animated animate__<name>" and is never animated again during
// the same page activation.
package reveal

import "strings"

// Marker attributes and classes.
const (
	AttrAnimate  = "data-animate"
	AttrDelay    = "data-animate-delay"
	AttrRevealed = "data-revealed"
	AttrKey      = "data-animate-key"
	ClassBase    = "animate__animated"
	ClassPrefix  = "animate__"
)

// Options configures the intersection watcher.
type Options struct {
	Threshold  float64
	RootMargin string
}

// DefaultOptions reveals an element once a tenth of it is visible.
func DefaultOptions() Options {
	return Options{Threshold: 0.1, RootMargin: "0px"}
}

// Element is a marked element in the mounted page. Key is stable across re-renders
// of the same page; implementations must be comparable (pointer types).
type Element interface {
	Key() string
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	RemoveAttr(name string)
	SetStyle(property, value string)
	AddClass(classes ...string)
	RemoveClass(classes ...string)
	OnceAnimationEnd(fn func())
}

// Entry reports a change in an element's visibility.
type Entry struct {
	Target       Element
	Intersecting bool
}

// Watcher observes elements and reports intersections to the callback it was created with.
type Watcher interface {
	Observe(el Element)
	Unobserve(el Element)
	Disconnect()
}

// WatcherFactory creates a Watcher delivering entries to onEntries.
type WatcherFactory func(opts Options, onEntries func([]Entry)) Watcher

// Status is an element's position in its one-way lifecycle.
type Status int

// Element statuses.
const (
	Pending Status = iota + 1
	Revealed
)

type slot struct {
	status Status
	el     Element
}

// Trigger tracks marked elements for one page activation. It is not safe for
// concurrent use.
type Trigger struct {
	newWatcher WatcherFactory
	onEntries  func([]Entry)
	opts       Options

	watcher Watcher
	arena   map[string]*slot
}

// New creates a Trigger. onEntries is handed to every watcher it creates; the caller
// routes those entries back into Handle.
func New(newWatcher WatcherFactory, onEntries func([]Entry)) *Trigger {
	return &Trigger{
		newWatcher: newWatcher,
		onEntries:  onEntries,
		opts:       DefaultOptions(),
		arena:      make(map[string]*slot),
	}
}

// Attach registers the marked elements of a freshly mounted page. It may be called
// again after a re-render of the same page: revealed elements stay revealed and pending
// ones are re-observed.
func (t *Trigger) Attach(elements []Element, reducedMotion bool) {
	if reducedMotion {
		for _, el := range elements {
			el.RemoveAttr(AttrAnimate)
			el.RemoveAttr(AttrDelay)
		}
		return
	}

	for _, el := range elements {
		if _, ok := el.Attr(AttrAnimate); !ok {
			continue
		}

		s, seen := t.arena[el.Key()]
		switch {
		case seen && s.status == Revealed:
			el.SetAttr(AttrRevealed, "")
			continue
		case seen && s.el != el:
			if t.watcher != nil {
				t.watcher.Unobserve(s.el)
			}
			s.el = el
		case !seen:
			s = &slot{status: Pending, el: el}
			t.arena[el.Key()] = s
		default:
			continue
		}

		if t.watcher == nil {
			t.watcher = t.newWatcher(t.opts, t.onEntries)
		}
		t.watcher.Observe(el)
	}
}

// Handle processes watcher entries. Entries for elements that are no longer the
// registered instance of their key are ignored.
func (t *Trigger) Handle(entries []Entry) {
	for _, e := range entries {
		if !e.Intersecting || e.Target == nil {
			continue
		}
		s, ok := t.arena[e.Target.Key()]
		if !ok || s.status != Pending || s.el != e.Target {
			continue
		}
		t.reveal(s)
	}
}

func (t *Trigger) reveal(s *slot) {
	el := s.el
	s.status = Revealed

	name, _ := el.Attr(AttrAnimate)
	name = strings.TrimSpace(name)
	if name != "" {
		if delay, ok := el.Attr(AttrDelay); ok && delay != "" {
			el.SetStyle("animation-delay", delay)
		}
		classes := []string{ClassBase, ClassPrefix + name}
		el.AddClass(classes...)
		el.OnceAnimationEnd(func() {
			el.RemoveClass(classes...)
		})
	}
	el.SetAttr(AttrRevealed, "")

	if t.watcher != nil {
		t.watcher.Unobserve(el)
	}
}

// Reset disconnects the watcher and forgets every element.
func (t *Trigger) Reset() {
	if t.watcher != nil {
		t.watcher.Disconnect()
		t.watcher = nil
	}
	clear(t.arena)
}

// Status returns the status recorded for key.
func (t *Trigger) Status(key string) (Status, bool) {
	s, ok := t.arena[key]
	if !ok {
		return 0, false
	}
	return s.status, true
}

// Len returns the number of tracked elements.
func (t *Trigger) Len() int {
	return len(t.arena)
}
