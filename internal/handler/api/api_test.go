// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/olegiv/pixelflame/internal/cache"
	"github.com/olegiv/pixelflame/internal/middleware"
	"github.com/olegiv/pixelflame/internal/model"
	"github.com/olegiv/pixelflame/internal/store"
	"github.com/olegiv/pixelflame/internal/testutil"
)

const testAnonKey = "test-anon-key-0123456789"

// assertStatusCode checks that the response has the expected status code.
func assertStatusCode(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("expected status %d, got %d (body %s)", expected, w.Code, w.Body.String())
	}
}

// assertErrorResponse unmarshals and validates an error response.
func assertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedCode string) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Error.Code != expectedCode {
		t.Errorf("expected code '%s', got %s", expectedCode, resp.Error.Code)
	}
	return resp
}

type testServer struct {
	handler http.Handler
	api     *Handler
	cache   *cache.MemoryCache
}

func newTestServer(t *testing.T) (*testServer, func()) {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	c := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	h := NewHandler(db, c, time.Minute)

	router := h.Router(RouterConfig{
		AnonKey: testAnonKey,
		CSRF:    middleware.NewCSRFConfig([]byte("0123456789abcdef0123456789abcdef"), nil, false),
	})

	return &testServer{handler: router, api: h, cache: c}, func() {
		_ = c.Close()
		cleanup()
	}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set(middleware.AnonKeyHeader, testAnonKey)

	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) (T, *Meta) {
	t.Helper()
	var resp struct {
		Data T     `json:"data"`
		Meta *Meta `json:"meta"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response %q: %v", w.Body.String(), err)
	}
	return resp.Data, resp.Meta
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusOK, map[string]string{"key": "value"})

	assertStatusCode(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type 'application/json', got %s", ct)
	}
}

func TestWriteValidationError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteValidationError(w, map[string]string{"email": "Email is required"})

	assertStatusCode(t, w, http.StatusUnprocessableEntity)
	resp := assertErrorResponse(t, w, "validation_error")
	if resp.Error.Details["email"] != "Email is required" {
		t.Errorf("expected details.email, got %v", resp.Error.Details)
	}
}

func TestCapitalizeFirst(t *testing.T) {
	tests := map[string]string{
		"":           "",
		"project":    "Project",
		"blog posts": "Blog posts",
		"Already":    "Already",
	}
	for in, want := range tests {
		if got := capitalizeFirst(in); got != want {
			t.Errorf("capitalizeFirst(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRouter_RequiresAnonKey(t *testing.T) {
	s, cleanup := newTestServer(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	assertStatusCode(t, w, http.StatusUnauthorized)

	req = httptest.NewRequest(http.MethodGet, "/projects", nil)
	req.Header.Set("Authorization", "Bearer "+testAnonKey)
	w = httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	assertStatusCode(t, w, http.StatusOK)
}

func TestRouter_UnknownRoute(t *testing.T) {
	s, cleanup := newTestServer(t)
	defer cleanup()

	w := s.do(t, http.MethodGet, "/widgets", "")
	assertStatusCode(t, w, http.StatusNotFound)
	assertErrorResponse(t, w, "not_found")
}

func TestStatus(t *testing.T) {
	s, cleanup := newTestServer(t)
	defer cleanup()

	w := s.do(t, http.MethodGet, "/", "")
	assertStatusCode(t, w, http.StatusOK)

	status, _ := decodeData[StatusResponse](t, w)
	if status.Status != "ok" {
		t.Errorf("Status = %q, want ok", status.Status)
	}
}

func TestListProjects(t *testing.T) {
	s, cleanup := newTestServer(t)
	defer cleanup()

	db := s.api.db
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	testutil.CreateProject(t, db, testutil.ProjectFixture{Slug: "oldest", Featured: true, CreatedAt: base})
	testutil.CreateProject(t, db, testutil.ProjectFixture{Slug: "middle", CreatedAt: base.Add(time.Hour)})
	testutil.CreateProject(t, db, testutil.ProjectFixture{Slug: "newest", Featured: true, CreatedAt: base.Add(2 * time.Hour),
		TechStack: []string{"Go", "WASM"}})

	t.Run("all newest first", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/projects", "")
		assertStatusCode(t, w, http.StatusOK)

		projects, meta := decodeData[[]model.Project](t, w)
		if len(projects) != 3 {
			t.Fatalf("expected 3 projects, got %d", len(projects))
		}
		if projects[0].Slug != "newest" || projects[2].Slug != "oldest" {
			t.Errorf("unexpected order: %s, %s, %s", projects[0].Slug, projects[1].Slug, projects[2].Slug)
		}
		if meta == nil || meta.Total != 3 {
			t.Errorf("expected meta.total 3, got %+v", meta)
		}
		if len(projects[0].TechStack) != 2 || projects[0].TechStack[1] != "WASM" {
			t.Errorf("TechStack = %v", projects[0].TechStack)
		}
	})

	t.Run("featured with limit", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/projects?featured=true&limit=1", "")
		assertStatusCode(t, w, http.StatusOK)

		projects, _ := decodeData[[]model.Project](t, w)
		if len(projects) != 1 || projects[0].Slug != "newest" {
			t.Fatalf("expected [newest], got %+v", projects)
		}
	})

	t.Run("limit without featured", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/projects?limit=2", "")
		projects, _ := decodeData[[]model.Project](t, w)
		if len(projects) != 2 {
			t.Errorf("expected 2 projects, got %d", len(projects))
		}
	})

	t.Run("invalid parameters", func(t *testing.T) {
		for _, path := range []string{"/projects?limit=0", "/projects?limit=abc", "/projects?limit=101", "/projects?featured=maybe"} {
			w := s.do(t, http.MethodGet, path, "")
			assertStatusCode(t, w, http.StatusBadRequest)
			assertErrorResponse(t, w, "bad_request")
		}
	})
}

func TestGetProject(t *testing.T) {
	s, cleanup := newTestServer(t)
	defer cleanup()

	testutil.CreateProject(t, s.api.db, testutil.ProjectFixture{Title: "Harbor", Slug: "harbor"})

	w := s.do(t, http.MethodGet, "/projects/harbor", "")
	assertStatusCode(t, w, http.StatusOK)
	project, _ := decodeData[model.Project](t, w)
	if project.Title != "Harbor" {
		t.Errorf("Title = %q, want Harbor", project.Title)
	}

	w = s.do(t, http.MethodGet, "/projects/missing", "")
	assertStatusCode(t, w, http.StatusNotFound)
	resp := assertErrorResponse(t, w, "not_found")
	if resp.Error.Message != "Project not found" {
		t.Errorf("message = %q", resp.Error.Message)
	}
}

func TestBlogPosts_HideDrafts(t *testing.T) {
	s, cleanup := newTestServer(t)
	defer cleanup()

	db := s.api.db
	testutil.CreateBlogPost(t, db, testutil.BlogPostFixture{Slug: "live", Content: "# Hi", Published: true})
	testutil.CreateBlogPost(t, db, testutil.BlogPostFixture{Slug: "draft", Content: "wip"})

	w := s.do(t, http.MethodGet, "/blog_posts", "")
	assertStatusCode(t, w, http.StatusOK)
	posts, meta := decodeData[[]model.BlogPost](t, w)
	if len(posts) != 1 || posts[0].Slug != "live" {
		t.Fatalf("expected only the published post, got %+v", posts)
	}
	if meta.Total != 1 {
		t.Errorf("meta.total = %d, want 1", meta.Total)
	}

	w = s.do(t, http.MethodGet, "/blog_posts/live", "")
	assertStatusCode(t, w, http.StatusOK)

	w = s.do(t, http.MethodGet, "/blog_posts/draft", "")
	assertStatusCode(t, w, http.StatusNotFound)
	assertErrorResponse(t, w, "not_found")
}

func TestServeCached(t *testing.T) {
	s, cleanup := newTestServer(t)
	defer cleanup()

	testutil.CreateProject(t, s.api.db, testutil.ProjectFixture{Slug: "first"})

	w := s.do(t, http.MethodGet, "/projects", "")
	if got := w.Header().Get("X-Cache"); got != "MISS" {
		t.Errorf("first X-Cache = %q, want MISS", got)
	}

	// A row added after the first read is invisible until the cache is cleared.
	testutil.CreateProject(t, s.api.db, testutil.ProjectFixture{Slug: "second"})

	w = s.do(t, http.MethodGet, "/projects", "")
	if got := w.Header().Get("X-Cache"); got != "HIT" {
		t.Errorf("second X-Cache = %q, want HIT", got)
	}
	projects, _ := decodeData[[]model.Project](t, w)
	if len(projects) != 1 {
		t.Errorf("expected cached single project, got %d", len(projects))
	}

	if err := s.cache.DeleteByPrefix(context.Background(), CacheKeyPrefix); err != nil {
		t.Fatalf("DeleteByPrefix: %v", err)
	}
	w = s.do(t, http.MethodGet, "/projects", "")
	projects, _ = decodeData[[]model.Project](t, w)
	if len(projects) != 2 {
		t.Errorf("expected 2 projects after invalidation, got %d", len(projects))
	}

	// Not-found answers are never cached.
	s.do(t, http.MethodGet, "/projects/nope", "")
	if ok, _ := s.cache.Has(context.Background(), CacheKeyPrefix+"/projects/nope"); ok {
		t.Error("404 response was cached")
	}
}

func TestCreateContactSubmission(t *testing.T) {
	s, cleanup := newTestServer(t)
	defer cleanup()

	t.Run("valid without subject", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/contact_submissions",
			`{"name":"Ada","email":"ada@example.com","message":"Hello there"}`)
		assertStatusCode(t, w, http.StatusCreated)

		created, _ := decodeData[ContactCreatedResponse](t, w)
		if created.ID == "" || created.Status != model.ContactStatusNew {
			t.Fatalf("unexpected response %+v", created)
		}

		row, err := store.New(s.api.db).GetContactSubmission(context.Background(), created.ID)
		if err != nil {
			t.Fatalf("GetContactSubmission: %v", err)
		}
		if row.Subject.Valid {
			t.Errorf("expected NULL subject, got %q", row.Subject.String)
		}
	})

	t.Run("text stored as typed", func(t *testing.T) {
		message := "if x<y and y>z then use a List<String> &lt;script&gt;"
		w := s.do(t, http.MethodPost, "/contact_submissions",
			`{"name":"Bob","email":"bob@example.com","subject":"  a<b  ","message":"  `+message+`  "}`)
		assertStatusCode(t, w, http.StatusCreated)

		created, _ := decodeData[ContactCreatedResponse](t, w)
		row, err := store.New(s.api.db).GetContactSubmission(context.Background(), created.ID)
		if err != nil {
			t.Fatalf("GetContactSubmission: %v", err)
		}
		if row.Message != message {
			t.Errorf("Message = %q, want %q", row.Message, message)
		}
		if row.Subject.String != "a<b" {
			t.Errorf("Subject = %q, want %q", row.Subject.String, "a<b")
		}
	})

	t.Run("markup in name rejected", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/contact_submissions",
			`{"name":"<b>Bob</b>","email":"bob@example.com","message":"Hi"}`)
		assertStatusCode(t, w, http.StatusUnprocessableEntity)
		resp := assertErrorResponse(t, w, "validation_error")
		if resp.Error.Details["name"] == "" {
			t.Errorf("expected name detail, got %v", resp.Error.Details)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/contact_submissions", `{"name":"","email":"not-an-email","message":""}`)
		assertStatusCode(t, w, http.StatusUnprocessableEntity)
		resp := assertErrorResponse(t, w, "validation_error")
		for _, field := range []string{"name", "email", "message"} {
			if resp.Error.Details[field] == "" {
				t.Errorf("expected detail for %s, got %v", field, resp.Error.Details)
			}
		}
	})

	t.Run("message too long", func(t *testing.T) {
		body, _ := json.Marshal(model.ContactRequest{
			Name:    "Ada",
			Email:   "ada@example.com",
			Message: strings.Repeat("x", MaxMessageLength+1),
		})
		w := s.do(t, http.MethodPost, "/contact_submissions", string(body))
		assertStatusCode(t, w, http.StatusUnprocessableEntity)
	})

	t.Run("malformed json", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/contact_submissions", `{"name":`)
		assertStatusCode(t, w, http.StatusBadRequest)
	})

	t.Run("cross-site browser post rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/contact_submissions",
			strings.NewReader(`{"name":"Ada","email":"ada@example.com","message":"Hi"}`))
		req.Header.Set(middleware.AnonKeyHeader, testAnonKey)
		req.Header.Set("Sec-Fetch-Site", "cross-site")
		req.Header.Set("Origin", "https://evil.example.com")
		w := httptest.NewRecorder()
		s.handler.ServeHTTP(w, req)
		assertStatusCode(t, w, http.StatusForbidden)
	})
}

type recordingNotifier struct {
	got []model.ContactSubmission
}

func (n *recordingNotifier) ContactSubmitted(_ context.Context, c model.ContactSubmission) {
	n.got = append(n.got, c)
}

func TestCreateContactSubmission_Notifies(t *testing.T) {
	s, cleanup := newTestServer(t)
	defer cleanup()
	n := &recordingNotifier{}
	s.api.SetNotifier(n)

	w := s.do(t, http.MethodPost, "/contact_submissions",
		`{"name":"Ada","email":"ada@example.com","subject":"Quote","message":"Hello"}`)
	assertStatusCode(t, w, http.StatusCreated)
	created, _ := decodeData[ContactCreatedResponse](t, w)

	if len(n.got) != 1 {
		t.Fatalf("notifier called %d times, want 1", len(n.got))
	}
	if n.got[0].ID != created.ID || n.got[0].Subject == nil || *n.got[0].Subject != "Quote" {
		t.Errorf("notified %+v", n.got[0])
	}

	w = s.do(t, http.MethodPost, "/contact_submissions", `{"name":"","email":"","message":""}`)
	assertStatusCode(t, w, http.StatusUnprocessableEntity)
	if len(n.got) != 1 {
		t.Error("rejected submissions must not notify")
	}
}

func TestValidateContact(t *testing.T) {
	subject := strings.Repeat("s", MaxSubjectLength+1)
	errs := validateContact(model.ContactRequest{
		Name:    strings.Repeat("é", MaxNameLength),
		Email:   "Ada <ada@example.com>",
		Subject: &subject,
		Message: "ok",
	})

	if _, ok := errs["name"]; ok {
		t.Error("name at the limit counted in characters should pass")
	}
	if errs["email"] == "" {
		t.Error("display-name address should be rejected")
	}
	if errs["subject"] == "" {
		t.Error("long subject should be rejected")
	}
}

func TestContainsMarkup(t *testing.T) {
	h := NewHandler(nil, nil, 0)
	tests := []struct {
		in   string
		want bool
	}{
		{"Ada Lovelace", false},
		{"Tom & Jerry's", false},
		{`O"Brien`, false},
		{"&lt;script&gt;", false},
		{"<b>Bob</b>", true},
		{"Bob<script>alert(1)</script>", true},
	}
	for _, tt := range tests {
		if got := h.containsMarkup(tt.in); got != tt.want {
			t.Errorf("containsMarkup(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTrimContact(t *testing.T) {
	blank := "   "
	got := trimContact(model.ContactRequest{Name: " Ada ", Message: "  x<y  ", Subject: &blank})
	if got.Name != "Ada" || got.Message != "x<y" {
		t.Errorf("trimContact = %+v", got)
	}
	if got.Subject != nil {
		t.Errorf("blank subject = %q, want nil", *got.Subject)
	}
}
