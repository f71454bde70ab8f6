// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content is the browser client's view of the hosted content store:
// published projects and blog posts, and the contact form endpoint.
package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/olegiv/pixelflame/internal/model"
)

// Client configuration defaults.
const (
	DefaultTimeout = 10 * time.Second
	APIPrefix      = "/rest/v1"
	MaxResponseLen = 4 << 20 // 4MB
)

// Config locates the content store. Every field is read from the environment.
type Config struct {
	StoreURL string        `env:"PIXELFLAME_STORE_URL,required,notEmpty"`
	AnonKey  string        `env:"PIXELFLAME_ANON_KEY,required,notEmpty"`
	Timeout  time.Duration `env:"PIXELFLAME_STORE_TIMEOUT" envDefault:"10s"`
}

// LoadConfig parses Config from the environment. A missing store URL or key is an error.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing store config: %w", err)
	}
	return cfg, nil
}

// ContactMessage is what the contact form submits. An empty Subject is sent as null.
type ContactMessage struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Store is the read/submit contract the page controllers depend on.
type Store interface {
	ListFeaturedProjects(ctx context.Context, limit int) ([]model.Project, error)
	ListProjects(ctx context.Context) ([]model.Project, error)
	GetProjectBySlug(ctx context.Context, slug string) (*model.Project, error)
	ListPublishedBlogPosts(ctx context.Context) ([]model.BlogPost, error)
	GetPublishedBlogPostBySlug(ctx context.Context, slug string) (*model.BlogPost, error)
	SubmitContactMessage(ctx context.Context, msg ContactMessage) error
}

// StoreError is an error answer from the store.
type StoreError struct {
	Status  int
	Code    string
	Message string
	Details map[string]string // per-field validation messages
}

func (e *StoreError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("store returned %d", e.Status)
	}
	return fmt.Sprintf("store returned %d: %s", e.Status, e.Message)
}

// errNotFound marks a 404 answer; lookups turn it into an absent result.
var errNotFound = errors.New("not found")

// Client talks to the store REST API over HTTP. It keeps no local cache.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
}

var _ Store = (*Client)(nil)

// NewClient returns a Client for cfg.
func NewClient(cfg Config) (*Client, error) {
	u, err := url.Parse(cfg.StoreURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid store url %q", cfg.StoreURL)
	}
	if cfg.AnonKey == "" {
		return nil, errors.New("anon key is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.StoreURL, "/") + APIPrefix,
		anonKey: cfg.AnonKey,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// ListFeaturedProjects returns up to limit featured projects, newest first.
func (c *Client) ListFeaturedProjects(ctx context.Context, limit int) ([]model.Project, error) {
	q := url.Values{}
	q.Set("featured", "true")
	q.Set("limit", strconv.Itoa(limit))

	var projects []model.Project
	if err := c.get(ctx, "/projects", q, &projects); err != nil {
		return nil, fmt.Errorf("listing featured projects: %w", err)
	}
	return projects, nil
}

// ListProjects returns every project, newest first.
func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := c.get(ctx, "/projects", nil, &projects); err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

// GetProjectBySlug returns the project with slug, or nil when there is none.
func (c *Client) GetProjectBySlug(ctx context.Context, slug string) (*model.Project, error) {
	var p model.Project
	err := c.get(ctx, "/projects/"+url.PathEscape(slug), nil, &p)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting project %q: %w", slug, err)
	}
	if p.Slug != slug {
		return nil, nil
	}
	return &p, nil
}

// ListPublishedBlogPosts returns published posts, newest first.
func (c *Client) ListPublishedBlogPosts(ctx context.Context) ([]model.BlogPost, error) {
	var posts []model.BlogPost
	if err := c.get(ctx, "/blog_posts", nil, &posts); err != nil {
		return nil, fmt.Errorf("listing blog posts: %w", err)
	}

	published := posts[:0]
	for _, p := range posts {
		if p.Published {
			published = append(published, p)
		}
	}
	return published, nil
}

// GetPublishedBlogPostBySlug returns the published post with slug. A draft with a
// matching slug resolves to nil, the same as a missing one.
func (c *Client) GetPublishedBlogPostBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	var p model.BlogPost
	err := c.get(ctx, "/blog_posts/"+url.PathEscape(slug), nil, &p)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting blog post %q: %w", slug, err)
	}
	if !p.Published || p.Slug != slug {
		return nil, nil
	}
	return &p, nil
}

// SubmitContactMessage creates a contact submission with status "new".
func (c *Client) SubmitContactMessage(ctx context.Context, msg ContactMessage) error {
	body := model.ContactRequest{
		Name:    msg.Name,
		Email:   msg.Email,
		Message: msg.Message,
	}
	if s := strings.TrimSpace(msg.Subject); s != "" {
		body.Subject = &s
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding contact message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/contact_submissions", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, nil)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, out)
}

// do sends req and decodes the data member of the response envelope into out.
func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseLen))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound && req.Method == http.MethodGet {
		return errNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeStoreError(resp.StatusCode, body)
	}

	if out == nil {
		return nil
	}

	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decoding response data: %w", err)
	}
	return nil
}

func decodeStoreError(status int, body []byte) error {
	var e struct {
		Error struct {
			Code    string            `json:"code"`
			Message string            `json:"message"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	storeErr := &StoreError{Status: status}
	if json.Unmarshal(body, &e) == nil {
		storeErr.Code = e.Error.Code
		storeErr.Message = e.Error.Message
		storeErr.Details = e.Error.Details
	}
	return storeErr
}
