// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const testKey = "test-anon-key-0123456789"

// fakeStore answers with canned bodies keyed by "METHOD path?query" and records requests.
type fakeStore struct {
	responses map[string]fakeResponse
	requests  []*http.Request
	bodies    []string
}

type fakeResponse struct {
	status int
	body   string
}

func newFakeStore(t *testing.T, responses map[string]fakeResponse) (*fakeStore, *Client) {
	t.Helper()

	fs := &fakeStore{responses: responses}
	srv := httptest.NewServer(fs)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{StoreURL: srv.URL + "/", AnonKey: testKey, Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return fs, c
}

func (f *fakeStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.requests = append(f.requests, r)
	f.bodies = append(f.bodies, string(body))

	key := r.Method + " " + r.URL.Path
	if r.URL.RawQuery != "" {
		key += "?" + r.URL.RawQuery
	}
	resp, ok := f.responses[key]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":{"code":"not_found","message":"Resource not found"}}`)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_, _ = io.WriteString(w, resp.body)
}

func TestListFeaturedProjects(t *testing.T) {
	fs, c := newFakeStore(t, map[string]fakeResponse{
		"GET /rest/v1/projects?featured=true&limit=3": {200, `{"data":[
			{"id":"1","slug":"a","title":"A","category":"web","tech_stack":["Go"],"featured":true},
			{"id":"2","slug":"b","title":"B","category":"mobile","tech_stack":[],"featured":true}
		],"meta":{"total":2}}`},
	})

	projects, err := c.ListFeaturedProjects(context.Background(), 3)
	if err != nil {
		t.Fatalf("ListFeaturedProjects: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("len(projects) = %d, want 2", len(projects))
	}
	if projects[0].Slug != "a" || projects[0].TechStack[0] != "Go" {
		t.Errorf("projects[0] = %+v", projects[0])
	}

	if got := fs.requests[0].Header.Get("apikey"); got != testKey {
		t.Errorf("apikey header = %q, want %q", got, testKey)
	}
}

func TestListProjects_Error(t *testing.T) {
	_, c := newFakeStore(t, map[string]fakeResponse{
		"GET /rest/v1/projects": {500, `{"error":{"code":"internal_error","message":"boom"}}`},
	})

	_, err := c.ListProjects(context.Background())
	var storeErr *StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("err = %v, want *StoreError", err)
	}
	if storeErr.Status != 500 || storeErr.Code != "internal_error" || storeErr.Message != "boom" {
		t.Errorf("storeErr = %+v", storeErr)
	}
}

func TestGetProjectBySlug(t *testing.T) {
	_, c := newFakeStore(t, map[string]fakeResponse{
		"GET /rest/v1/projects/acme":  {200, `{"data":{"id":"1","slug":"acme","title":"Acme","results":"Up 20%\n\nDown 5%"}}`},
		"GET /rest/v1/projects/empty": {200, `{"data":null}`},
		"GET /rest/v1/projects/other": {200, `{"data":{"id":"2","slug":"acme","title":"Acme"}}`},
	})

	p, err := c.GetProjectBySlug(context.Background(), "acme")
	if err != nil {
		t.Fatalf("GetProjectBySlug: %v", err)
	}
	if p == nil || p.Title != "Acme" {
		t.Fatalf("project = %+v, want Acme", p)
	}
	if items := p.ResultItems(); len(items) != 2 {
		t.Errorf("ResultItems() = %v, want 2 items", items)
	}

	missing, err := c.GetProjectBySlug(context.Background(), "missing")
	if err != nil {
		t.Fatalf("GetProjectBySlug(missing): %v", err)
	}
	if missing != nil {
		t.Errorf("GetProjectBySlug(missing) = %+v, want nil", missing)
	}

	for _, slug := range []string{"empty", "other"} {
		p, err := c.GetProjectBySlug(context.Background(), slug)
		if err != nil {
			t.Fatalf("GetProjectBySlug(%s): %v", slug, err)
		}
		if p != nil {
			t.Errorf("GetProjectBySlug(%s) = %+v, want nil", slug, p)
		}
	}
}

func TestPublishedBlogPosts_DraftsNeverLeak(t *testing.T) {
	_, c := newFakeStore(t, map[string]fakeResponse{
		"GET /rest/v1/blog_posts": {200, `{"data":[
			{"slug":"live","title":"Live","published":true},
			{"slug":"draft","title":"Draft","published":false}
		]}`},
		"GET /rest/v1/blog_posts/draft": {200, `{"data":{"slug":"draft","title":"Draft","published":false}}`},
		"GET /rest/v1/blog_posts/live":  {200, `{"data":{"slug":"live","title":"Live","published":true}}`},
	})

	posts, err := c.ListPublishedBlogPosts(context.Background())
	if err != nil {
		t.Fatalf("ListPublishedBlogPosts: %v", err)
	}
	if len(posts) != 1 || posts[0].Slug != "live" {
		t.Errorf("posts = %+v, want only live", posts)
	}

	draft, err := c.GetPublishedBlogPostBySlug(context.Background(), "draft")
	if err != nil {
		t.Fatalf("GetPublishedBlogPostBySlug(draft): %v", err)
	}
	if draft != nil {
		t.Errorf("GetPublishedBlogPostBySlug(draft) = %+v, want nil", draft)
	}

	live, err := c.GetPublishedBlogPostBySlug(context.Background(), "live")
	if err != nil || live == nil {
		t.Fatalf("GetPublishedBlogPostBySlug(live) = %v, %v", live, err)
	}
}

func TestSubmitContactMessage(t *testing.T) {
	tests := []struct {
		name        string
		subject     string
		wantSubject any
	}{
		{"empty subject is null", "", nil},
		{"blank subject is null", "   ", nil},
		{"subject kept", "Hello", "Hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, c := newFakeStore(t, map[string]fakeResponse{
				"POST /rest/v1/contact_submissions": {201, `{"data":{"id":"x","status":"new"}}`},
			})

			err := c.SubmitContactMessage(context.Background(), ContactMessage{
				Name: "Ada", Email: "ada@example.com", Subject: tt.subject, Message: "Hi",
			})
			if err != nil {
				t.Fatalf("SubmitContactMessage: %v", err)
			}

			var body map[string]any
			if err := json.Unmarshal([]byte(fs.bodies[0]), &body); err != nil {
				t.Fatalf("decoding body: %v", err)
			}
			subject, present := body["subject"]
			if !present {
				t.Fatal("subject key missing, want explicit value or null")
			}
			if subject != tt.wantSubject {
				t.Errorf("subject = %#v, want %#v", subject, tt.wantSubject)
			}
			if ct := fs.requests[0].Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
		})
	}
}

func TestSubmitContactMessage_StoreError(t *testing.T) {
	_, c := newFakeStore(t, map[string]fakeResponse{
		"POST /rest/v1/contact_submissions": {422, `{"error":{"code":"validation_error","message":"Email is invalid","details":{"email":"Email is invalid"}}}`},
	})

	err := c.SubmitContactMessage(context.Background(), ContactMessage{Name: "A", Email: "bad", Message: "m"})
	var storeErr *StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("err = %v, want *StoreError", err)
	}
	if storeErr.Message != "Email is invalid" {
		t.Errorf("Message = %q", storeErr.Message)
	}
	if storeErr.Details["email"] != "Email is invalid" {
		t.Errorf("Details = %v", storeErr.Details)
	}
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{StoreURL: srv.URL, AnonKey: testKey, Timeout: 50 * time.Millisecond})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if _, err := c.ListProjects(context.Background()); err == nil {
		t.Fatal("ListProjects() error = nil, want timeout")
	}
}

func TestNewClient_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"relative url", Config{StoreURL: "/rest", AnonKey: testKey}},
		{"empty url", Config{AnonKey: testKey}},
		{"missing key", Config{StoreURL: "https://store.example"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewClient(tt.cfg); err == nil {
				t.Error("NewClient() error = nil, want error")
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("PIXELFLAME_STORE_URL", "https://store.example")
	t.Setenv("PIXELFLAME_ANON_KEY", testKey)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}

	t.Setenv("PIXELFLAME_ANON_KEY", "")
	if _, err := LoadConfig(); err == nil || !strings.Contains(err.Error(), "PIXELFLAME_ANON_KEY") {
		t.Errorf("LoadConfig() error = %v, want missing PIXELFLAME_ANON_KEY", err)
	}
}
