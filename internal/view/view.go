// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package view holds the client's view state: which page is active and with which
// slug, how it maps to a URL path, and the navigator that owns the current value.
package view

import (
	"net/url"
	"strings"
)

// Page identifies one of the site's pages.
type Page int

// Pages. The zero value is Home.
const (
	Home Page = iota
	About
	Services
	Projects
	ProjectDetail
	Blog
	BlogDetail
	Contact
)

// AllPages lists every page identifier.
var AllPages = []Page{Home, About, Services, Projects, ProjectDetail, Blog, BlogDetail, Contact}

var pageNames = [...]string{
	Home:          "home",
	About:         "about",
	Services:      "services",
	Projects:      "projects",
	ProjectDetail: "project-detail",
	Blog:          "blog",
	BlogDetail:    "blog-detail",
	Contact:       "contact",
}

// String returns the stable page name.
func (p Page) String() string {
	if p < 0 || int(p) >= len(pageNames) {
		return "unknown"
	}
	return pageNames[p]
}

// ParsePage returns the page named s.
func ParsePage(s string) (Page, bool) {
	for i, name := range pageNames {
		if name == s {
			return Page(i), true
		}
	}
	return Home, false
}

// State is the complete view state. ProjectSlug is meaningful only on ProjectDetail
// and BlogSlug only on BlogDetail; the type does not enforce either.
type State struct {
	Page        Page
	ProjectSlug string
	BlogSlug    string
}

// Initial is the state every session starts in.
func Initial() State {
	return State{Page: Home}
}

// To builds a state for a page without parameters.
func To(p Page) State {
	return State{Page: p}
}

// ToProject builds a project detail state.
func ToProject(slug string) State {
	return State{Page: ProjectDetail, ProjectSlug: slug}
}

// ToPost builds a blog detail state.
func ToPost(slug string) State {
	return State{Page: BlogDetail, BlogSlug: slug}
}

// Navigate returns the next state. Every transition is accepted as requested.
func Navigate(_ State, requested State) State {
	return requested
}

// Resolve returns the page that renders s. A detail page without its slug renders
// the corresponding listing.
func Resolve(s State) Page {
	switch {
	case s.Page == ProjectDetail && s.ProjectSlug == "":
		return Projects
	case s.Page == BlogDetail && s.BlogSlug == "":
		return Blog
	}
	return s.Page
}

// Slug returns the parameter relevant to the rendered page, if any.
func (s State) Slug() string {
	switch Resolve(s) {
	case ProjectDetail:
		return s.ProjectSlug
	case BlogDetail:
		return s.BlogSlug
	}
	return ""
}

// Path returns the URL path for s.
func (s State) Path() string {
	switch Resolve(s) {
	case Home:
		return "/"
	case ProjectDetail:
		return "/projects/" + url.PathEscape(s.ProjectSlug)
	case BlogDetail:
		return "/blog/" + url.PathEscape(s.BlogSlug)
	default:
		return "/" + Resolve(s).String()
	}
}

// ParsePath maps a URL path back to a state. Unknown paths report false.
func ParsePath(path string) (State, bool) {
	path = strings.Trim(path, "/")
	if path == "" {
		return Initial(), true
	}

	head, rest, hasRest := strings.Cut(path, "/")
	if hasRest {
		slug, err := url.PathUnescape(rest)
		if err != nil || slug == "" || strings.Contains(slug, "/") {
			return State{}, false
		}
		switch head {
		case "projects":
			return ToProject(slug), true
		case "blog":
			return ToPost(slug), true
		}
		return State{}, false
	}

	switch head {
	case "about":
		return To(About), true
	case "services":
		return To(Services), true
	case "projects":
		return To(Projects), true
	case "blog":
		return To(Blog), true
	case "contact":
		return To(Contact), true
	}
	return State{}, false
}

// Origin says what caused a navigation.
type Origin int

// Navigation origins.
const (
	// OriginClick is an in-page link or button.
	OriginClick Origin = iota
	// OriginHistory is a browser back/forward step.
	OriginHistory
	// OriginDeepLink is the initial load.
	OriginDeepLink
)

// Navigator owns the current state. It is not safe for concurrent use; the app loop
// is its only writer.
type Navigator struct {
	current State
}

// NewNavigator starts at the initial state.
func NewNavigator() *Navigator {
	return &Navigator{current: Initial()}
}

// Current returns the current state.
func (n *Navigator) Current() State {
	return n.current
}

// Go applies requested and reports whether the viewport should scroll to the top.
func (n *Navigator) Go(requested State, origin Origin) (scrollTop bool) {
	n.current = Navigate(n.current, requested)
	return origin == OriginClick
}
