// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package pages

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/net/html"

	"github.com/olegiv/pixelflame/internal/content"
	"github.com/olegiv/pixelflame/internal/model"
	r "github.com/olegiv/pixelflame/internal/render"
	"github.com/olegiv/pixelflame/internal/reveal"
	"github.com/olegiv/pixelflame/internal/testutil"
	"github.com/olegiv/pixelflame/internal/view"
)

type fakeStore struct {
	mu        sync.Mutex
	projects  []model.Project
	posts     []model.BlogPost
	err       error
	submitErr error
	submitted []content.ContactMessage
	calls     []string
}

func (s *fakeStore) record(call string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
}

func (s *fakeStore) ListFeaturedProjects(_ context.Context, limit int) ([]model.Project, error) {
	s.record("featured")
	if s.err != nil {
		return nil, s.err
	}
	var out []model.Project
	for _, p := range s.projects {
		if p.Featured && len(out) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeStore) ListProjects(context.Context) ([]model.Project, error) {
	s.record("projects")
	return s.projects, s.err
}

func (s *fakeStore) GetProjectBySlug(_ context.Context, slug string) (*model.Project, error) {
	s.record("project:" + slug)
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.projects {
		if s.projects[i].Slug == slug {
			return &s.projects[i], nil
		}
	}
	return nil, nil
}

func (s *fakeStore) ListPublishedBlogPosts(context.Context) ([]model.BlogPost, error) {
	s.record("posts")
	if s.err != nil {
		return nil, s.err
	}
	var out []model.BlogPost
	for _, p := range s.posts {
		if p.Published {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeStore) GetPublishedBlogPostBySlug(_ context.Context, slug string) (*model.BlogPost, error) {
	s.record("post:" + slug)
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.posts {
		if s.posts[i].Slug == slug && s.posts[i].Published {
			return &s.posts[i], nil
		}
	}
	return nil, nil
}

func (s *fakeStore) SubmitContactMessage(_ context.Context, msg content.ContactMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitted = append(s.submitted, msg)
	return s.submitErr
}

func testDeps(store content.Store) Deps {
	return Deps{Store: store, Logger: testutil.TestLoggerSilent()}
}

func load(t *testing.T, l Loader, slug string) {
	t.Helper()
	job := l.Load(slug)
	if job == nil {
		t.Fatal("Load returned nil job")
	}
	l.Receive(slug, job(context.Background()))
}

func renderString(t *testing.T, c Controller) string {
	t.Helper()
	s, err := r.String(c.Render())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return s
}

func project(slug string, cat model.Category) model.Project {
	return model.Project{
		ID:        slug,
		Title:     strings.ToUpper(slug),
		Slug:      slug,
		Category:  cat,
		TechStack: []string{"Go"},
	}
}

func TestNewReturnsControllerForEveryPage(t *testing.T) {
	for _, p := range view.AllPages {
		c := New(p, testDeps(&fakeStore{}))
		if c.Page() != p {
			t.Errorf("New(%s).Page() = %s", p, c.Page())
		}
		if c.Visible() {
			t.Errorf("New(%s) starts visible", p)
		}
		c.MarkVisible()
		if !c.Visible() {
			t.Errorf("%s: MarkVisible did not flip", p)
		}
		if c.Render() == nil {
			t.Errorf("%s: Render() = nil", p)
		}
	}
}

func TestLoaders(t *testing.T) {
	loaders := map[view.Page]bool{
		view.Home:          true,
		view.About:         false,
		view.Services:      false,
		view.Projects:      true,
		view.ProjectDetail: true,
		view.Blog:          true,
		view.BlogDetail:    true,
		view.Contact:       false,
	}
	for p, want := range loaders {
		_, got := New(p, testDeps(&fakeStore{})).(Loader)
		if got != want {
			t.Errorf("%s is Loader = %v, want %v", p, got, want)
		}
	}
}

func TestMountClassFollowsVisible(t *testing.T) {
	c := New(view.About, testDeps(nil))

	hero := r.Find(c.Render(), r.ByClass("mount"))
	if hero == nil || r.HasClass(hero, "is-visible") {
		t.Fatal("first render should carry the hidden mount class")
	}

	c.MarkVisible()
	hero = r.Find(c.Render(), r.ByClass("mount"))
	if hero == nil || !r.HasClass(hero, "is-visible") {
		t.Error("render after MarkVisible should carry is-visible")
	}
}

func TestHomeShowsUpToThreeFeatured(t *testing.T) {
	store := &fakeStore{}
	for _, slug := range []string{"a", "b", "c", "d"} {
		p := project(slug, model.CategoryWeb)
		p.Featured = true
		store.projects = append(store.projects, p)
	}
	h := NewHome(testDeps(store))

	if strings.Contains(renderString(t, h), "Featured Projects") {
		t.Error("featured section shown before load")
	}

	load(t, h, "")

	if len(h.Featured()) != FeaturedLimit {
		t.Fatalf("Featured() = %d, want %d", len(h.Featured()), FeaturedLimit)
	}
	cards := r.FindAll(h.Render(), func(n *html.Node) bool {
		v, ok := r.Attr(n, reveal.AttrKey)
		return ok && strings.HasPrefix(v, "project:")
	})
	if len(cards) != 3 {
		t.Fatalf("project cards = %d, want 3", len(cards))
	}
	if nav, _ := r.Attr(cards[0], AttrNav); nav != "/projects/a" {
		t.Errorf("card nav = %q, want /projects/a", nav)
	}
}

func TestHomeReadFailureHidesFeatured(t *testing.T) {
	h := NewHome(testDeps(&fakeStore{err: errors.New("boom")}))
	load(t, h, "")

	if len(h.Featured()) != 0 {
		t.Errorf("Featured() = %v, want none", h.Featured())
	}
	if strings.Contains(renderString(t, h), "Featured Projects") {
		t.Error("featured section shown after failed read")
	}
}

func TestFilterProjects(t *testing.T) {
	all := []model.Project{
		project("w1", model.CategoryWeb),
		project("w2", model.CategoryWeb),
		project("m1", model.CategoryMobile),
		project("b1", model.CategoryBackend),
		project("u1", model.CategoryUIUX),
	}

	tests := []struct {
		filter string
		want   []string
	}{
		{FilterAll, []string{"w1", "w2", "m1", "b1", "u1"}},
		{"web", []string{"w1", "w2"}},
		{"mobile", []string{"m1"}},
		{"backend", []string{"b1"}},
		{"uiux", []string{"u1"}},
		{"unknown", []string{"w1", "w2", "m1", "b1", "u1"}},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			got := FilterProjects(all, tt.filter)
			if slugs := projectSlugs(got); !slices.Equal(slugs, tt.want) {
				t.Errorf("FilterProjects(%q) = %v, want %v", tt.filter, slugs, tt.want)
			}
		})
	}
}

func projectSlugs(ps []model.Project) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Slug
	}
	return out
}

func TestProjectsFilterDoesNotRequery(t *testing.T) {
	store := &fakeStore{projects: []model.Project{
		project("w1", model.CategoryWeb),
		project("m1", model.CategoryMobile),
	}}
	p := NewProjects(testDeps(store))

	if !strings.Contains(renderString(t, p), "Loading projects...") {
		t.Error("listing should show loading before the fetch resolves")
	}

	load(t, p, "")
	p.SetFilter("mobile")

	if got := projectSlugs(p.Shown()); !slices.Equal(got, []string{"m1"}) {
		t.Errorf("Shown() = %v, want [m1]", got)
	}
	p.SetFilter("uiux")
	if !strings.Contains(renderString(t, p), "No projects found in this category.") {
		t.Error("empty category message missing")
	}
	p.SetFilter("bogus")
	if p.Filter() != "uiux" {
		t.Errorf("Filter() = %q after unknown id, want uiux", p.Filter())
	}

	if len(store.calls) != 1 {
		t.Errorf("store calls = %v, want one list call", store.calls)
	}

	active := r.Find(p.Render(), func(n *html.Node) bool {
		return r.HasClass(n, "active") && n.Data == "button"
	})
	if v, _ := r.Attr(active, AttrFilter); v != "uiux" {
		t.Errorf("active filter button = %q, want uiux", v)
	}
}

func TestProjectCardTechOverflow(t *testing.T) {
	pr := project("big", model.CategoryBackend)
	pr.TechStack = []string{"Go", "Postgres", "Redis", "Kafka", "Docker"}
	p := NewProjects(testDeps(&fakeStore{projects: []model.Project{pr}}))
	load(t, p, "")

	techs := r.FindAll(p.Render(), r.ByClass("tech"))
	var labels []string
	for _, n := range techs {
		labels = append(labels, r.TextContent(n))
	}
	want := []string{"Go", "Postgres", "Redis", "+2 more"}
	if !slices.Equal(labels, want) {
		t.Errorf("tech labels = %v, want %v", labels, want)
	}
}

func TestProjectDetail(t *testing.T) {
	pr := project("shop", model.CategoryWeb)
	pr.Results = "Faster checkout\n\n  Higher conversion  \n"
	pr.Screenshots = []string{"/s1.png", "/s2.png"}
	d := NewProjectDetail(testDeps(&fakeStore{projects: []model.Project{pr}}))

	job := d.Load("shop")
	if d.Status() != DetailLoading || !strings.Contains(renderString(t, d), "Loading project...") {
		t.Fatal("detail should show loading while the fetch is in flight")
	}
	d.Receive("shop", job(context.Background()))

	if d.Status() != DetailFound {
		t.Fatalf("Status() = %v, want found", d.Status())
	}
	root := d.Render()
	var items []string
	for _, li := range r.FindAll(root, r.ByTag("li")) {
		items = append(items, r.TextContent(li))
	}
	if !slices.Equal(items, []string{"Faster checkout", "Higher conversion"}) {
		t.Errorf("result items = %v", items)
	}
	if got := len(r.FindAll(r.Find(root, r.ByClass("gallery")), r.ByTag("img"))); got != 2 {
		t.Errorf("screenshots = %d, want 2", got)
	}
	out := renderString(t, d)
	for _, s := range []string{"Have a Similar Project in Mind?", "Back to Projects", "Results &amp; Impact"} {
		if !strings.Contains(out, s) {
			t.Errorf("detail missing %q", s)
		}
	}
}

func TestProjectDetailNotFound(t *testing.T) {
	d := NewProjectDetail(testDeps(&fakeStore{}))
	load(t, d, "missing")

	if d.Status() != DetailNotFound {
		t.Fatalf("Status() = %v, want not found", d.Status())
	}
	back := r.Find(d.Render(), r.ByAttr(AttrNav))
	if v, _ := r.Attr(back, AttrNav); v != "/projects" {
		t.Errorf("not-found link = %q, want /projects", v)
	}
}

func TestProjectDetailIgnoresOtherSlug(t *testing.T) {
	store := &fakeStore{projects: []model.Project{project("a", model.CategoryWeb), project("b", model.CategoryWeb)}}
	d := NewProjectDetail(testDeps(store))

	jobA := d.Load("a")
	jobB := d.Load("b")
	d.Receive("a", jobA(context.Background()))
	if d.Status() != DetailLoading {
		t.Fatal("result for a previous slug was applied")
	}
	d.Receive("b", jobB(context.Background()))
	if d.Status() != DetailFound {
		t.Errorf("Status() = %v, want found", d.Status())
	}
}

func TestBlogListing(t *testing.T) {
	created := time.Date(2025, time.March, 4, 10, 0, 0, 0, time.UTC)
	store := &fakeStore{posts: []model.BlogPost{
		{Slug: "live", Title: "Live", Content: "one two", Tags: []string{"a", "b", "c", "d"}, Published: true, CreatedAt: created},
		{Slug: "draft", Title: "Draft", Published: false, CreatedAt: created},
	}}
	b := NewBlog(testDeps(store))
	load(t, b, "")

	if len(b.Posts()) != 1 || b.Posts()[0].Slug != "live" {
		t.Fatalf("Posts() = %v", b.Posts())
	}
	out := renderString(t, b)
	for _, s := range []string{"March 4, 2025", "1 min read"} {
		if !strings.Contains(out, s) {
			t.Errorf("card missing %q", s)
		}
	}
	if got := len(r.FindAll(b.Render(), r.ByClass("tag"))); got != 3 {
		t.Errorf("card tags = %d, want 3", got)
	}
	if strings.Contains(out, "Draft") {
		t.Error("draft leaked into listing")
	}
}

func TestBlogEmpty(t *testing.T) {
	b := NewBlog(testDeps(&fakeStore{err: errors.New("down")}))
	load(t, b, "")

	if !strings.Contains(renderString(t, b), "No blog posts yet.") {
		t.Error("empty message missing after failed read")
	}
}

func TestBlogDetail(t *testing.T) {
	store := &fakeStore{posts: []model.BlogPost{
		{Slug: "hello", Title: "Hello", Author: "Ada", Content: "# Intro\n\nBody text", Published: true},
		{Slug: "secret", Title: "Secret", Content: "draft", Published: false},
	}}

	d := NewBlogDetail(testDeps(store))
	load(t, d, "hello")
	if d.Status() != DetailFound {
		t.Fatalf("Status() = %v, want found", d.Status())
	}
	article := r.Find(d.Render(), r.ByTag("article"))
	if h := r.Find(article, r.ByTag("h1")); h == nil || r.TextContent(h) != "Intro" {
		t.Error("markdown heading not rendered")
	}
	if !strings.Contains(renderString(t, d), "About the Author") {
		t.Error("author block missing")
	}

	d = NewBlogDetail(testDeps(store))
	load(t, d, "secret")
	if d.Status() != DetailNotFound {
		t.Errorf("draft Status() = %v, want not found", d.Status())
	}
}

func TestLayoutChrome(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		chrome   Chrome
		header   string
		expanded string
	}{
		{"top of page", Chrome{}, `<header class="site-header">`, `aria-expanded="false" aria-label="Open menu"`},
		{"scrolled", Chrome{Scrolled: true}, `<header class="site-header scrolled">`, `aria-expanded="false"`},
		{"menu open", Chrome{MenuOpen: true}, `<header class="site-header menu-open">`, `aria-expanded="true" aria-label="Close menu"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.String(Layout(view.Home, tt.chrome, now, r.Text("body")))
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if !strings.Contains(out, tt.header) {
				t.Errorf("missing %s in %s", tt.header, out)
			}
			if !strings.Contains(out, AttrMenu+`=""`) || !strings.Contains(out, tt.expanded) {
				t.Errorf("menu toggle missing %s", tt.expanded)
			}
		})
	}
}
