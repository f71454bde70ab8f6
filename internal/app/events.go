// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package app

import (
	"github.com/olegiv/pixelflame/internal/pages"
	"github.com/olegiv/pixelflame/internal/reveal"
	"github.com/olegiv/pixelflame/internal/view"
)

// Event is something the loop reacts to.
type Event interface {
	event()
}

// NavigateEvent requests a new view state.
type NavigateEvent struct {
	State  view.State
	Origin view.Origin
}

// FilterEvent selects a project category.
type FilterEvent struct {
	ID string
}

// FieldEvent reports a contact form input.
type FieldEvent struct {
	Name  string
	Value string
}

// SubmitEvent submits the contact form.
type SubmitEvent struct{}

// MenuEvent opens or closes the small-screen menu.
type MenuEvent struct{}

// ScrollEvent reports the window's vertical scroll offset.
type ScrollEvent struct {
	Y float64
}

type fetchResult struct {
	gen    uint64
	page   view.Page
	slug   string
	result any
}

type submitResult struct {
	ctrl   pages.Controller
	result any
}

type revealEvent struct {
	entries []reveal.Entry
}

type callEvent struct {
	fn func()
}

func (NavigateEvent) event() {}
func (FilterEvent) event()   {}
func (FieldEvent) event()    {}
func (SubmitEvent) event()   {}
func (MenuEvent) event()     {}
func (ScrollEvent) event()   {}
func (fetchResult) event()   {}
func (submitResult) event()  {}
func (revealEvent) event()   {}
func (callEvent) event()     {}
