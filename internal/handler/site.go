// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler serves the HTML shell, static assets, client bundle and health endpoints.
// The REST API lives in the api subpackage.
package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/olegiv/pixelflame/internal/seo"
)

// SiteName is the brand used in titles and Open Graph tags.
const SiteName = "Pixel Flame"

// Client paths served by the shell. The client maps each to a view state.
var ShellRoutes = []string{
	"/",
	"/about",
	"/services",
	"/projects",
	"/projects/{slug}",
	"/blog",
	"/blog/{slug}",
	"/contact",
}

func init() {
	// Some minimal base images ship without a MIME entry for wasm.
	_ = mime.AddExtensionType(".wasm", "application/wasm")
}

// SiteConfig configures the shell page.
type SiteConfig struct {
	TemplatesFS  fs.FS // must contain templates/shell.html
	Title        string
	Description  string
	SiteURL      string // public origin for canonical and og:url; may be empty
	NoIndex      bool
	StoreURL     string // empty means the page origin
	AnonKey      string
	StoreTimeout time.Duration
	Version      string
}

// ClientConfig is embedded in the shell as a JSON data block and read by boot.js.
type ClientConfig struct {
	StoreURL     string `json:"store_url"`
	AnonKey      string `json:"anon_key"`
	StoreTimeout string `json:"store_timeout,omitempty"`
	Bundle       string `json:"bundle"`
}

// shellData is passed to the shell template.
type shellData struct {
	Meta    seo.Meta
	Version string
	Config  ClientConfig
}

// SiteHandler renders the static shell that boots the browser client.
type SiteHandler struct {
	page []byte
}

// NewSiteHandler parses the shell template and renders it once; the page never varies per request.
func NewSiteHandler(cfg SiteConfig) (*SiteHandler, error) {
	tmpl, err := template.ParseFS(cfg.TemplatesFS, "templates/shell.html")
	if err != nil {
		return nil, fmt.Errorf("parsing shell template: %w", err)
	}

	if cfg.Title == "" {
		cfg.Title = "Pixel Flame | Digital agency"
	}

	data := shellData{
		Meta: seo.BuildMeta(seo.Site{
			Name:        SiteName,
			Title:       cfg.Title,
			Description: cfg.Description,
			URL:         cfg.SiteURL,
			NoIndex:     cfg.NoIndex,
		}),
		Version: cfg.Version,
		Config: ClientConfig{
			StoreURL: cfg.StoreURL,
			AnonKey:  cfg.AnonKey,
			Bundle:   "/app/app.wasm",
		},
	}
	if cfg.StoreTimeout > 0 {
		data.Config.StoreTimeout = cfg.StoreTimeout.String()
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, data); err != nil {
		return nil, fmt.Errorf("executing shell template: %w", err)
	}

	return &SiteHandler{page: buf.Bytes()}, nil
}

// Shell handles every client path with the same HTML document.
func (h *SiteHandler) Shell(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(h.page)
}

// NotFound answers unknown paths outside the client routes.
func (h *SiteHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	slog.Debug("unknown path", "path", r.URL.Path)
	http.Error(w, "Not Found", http.StatusNotFound)
}

// Static serves the embedded static assets rooted at "static".
func Static(staticFS fs.FS) (http.Handler, error) {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("opening static assets: %w", err)
	}
	return http.StripPrefix("/static/", http.FileServerFS(sub)), nil
}

// ClientBundle serves app.wasm and wasm_exec.js from dir. A missing directory is logged
// and every request answers 404 until the client is built.
func ClientBundle(dir string) http.Handler {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	if _, err := os.Stat(filepath.Join(abs, "app.wasm")); err != nil {
		slog.Warn("client bundle not found; run `make wasm`", "dir", abs)
	}

	return http.StripPrefix("/app/", http.FileServer(http.Dir(abs)))
}
