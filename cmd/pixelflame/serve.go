// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/olegiv/pixelflame/internal/cache"
	"github.com/olegiv/pixelflame/internal/handler"
	"github.com/olegiv/pixelflame/internal/handler/api"
	"github.com/olegiv/pixelflame/internal/middleware"
	"github.com/olegiv/pixelflame/internal/scheduler"
	"github.com/olegiv/pixelflame/internal/store"
	"github.com/olegiv/pixelflame/internal/version"
	"github.com/olegiv/pixelflame/internal/webhook"
	"github.com/olegiv/pixelflame/web"
)

// staticMaxAge is the Cache-Control max-age for embedded assets, in seconds.
const staticMaxAge = 86400

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := setup(os.Stdout)
	if err != nil {
		return err
	}
	defer a.close()
	cfg := a.cfg

	if cfg.DoSeed {
		if err := store.Seed(ctx, a.db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	// Read cache; a nil cache serves every read straight from the store.
	var (
		readCache    cache.Cache
		cacheBackend = "disabled"
	)
	if cfg.CacheEnabled() {
		readCache, cacheBackend = cache.New(cache.Config{
			RedisURL:        cfg.RedisURL,
			Prefix:          cfg.CachePrefix,
			DefaultTTL:      time.Duration(cfg.CacheTTL) * time.Second,
			MaxSize:         cfg.CacheMaxSize,
			CleanupInterval: time.Minute,
		}, a.logger)
		defer func() { _ = readCache.Close() }()
	}
	slog.Info("read cache initialized", "backend", cacheBackend)

	apiLimiter := middleware.NewIPRateLimiter("api", cfg.APIRate, cfg.APIBurst)
	contactLimiter := middleware.NewIPRateLimiter("contact", cfg.ContactRate, cfg.ContactBurst)

	hooks := webhook.New(webhook.Config{
		URLs:    cfg.WebhookURLs,
		Secret:  cfg.WebhookSecret,
		Workers: cfg.WebhookWorkers,
		DB:      a.db,
	}, a.logger)
	var publishNotifier scheduler.PublishNotifier
	if hooks.Enabled() {
		hooks.Start(ctx)
		defer hooks.Stop()
		publishNotifier = hooks
	}

	sched := scheduler.New(a.db, a.logger, scheduler.Options{
		Cache:          readCache,
		CacheKeyPrefix: api.CacheKeyPrefix,
		Limiters:       []scheduler.Sweeper{apiLimiter, contactLimiter},
		EventRetention: cfg.EventRetention,
		Notifier:       publishNotifier,
	})
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	// The CSRF key is required by the gorilla-compatible constructor only.
	csrfKey := make([]byte, 32)
	if _, err := rand.Read(csrfKey); err != nil {
		return fmt.Errorf("generating csrf key: %w", err)
	}

	apiHandler := api.NewHandler(a.db, readCache, time.Duration(cfg.CacheTTL)*time.Second)
	if hooks.Enabled() {
		apiHandler.SetNotifier(hooks)
	}
	seoHandler := handler.NewSEOHandler(a.db, handler.SEOConfig{
		SiteURL:     cfg.SiteURL,
		DisallowAll: cfg.IsDevelopment(),
		Cache:       readCache,
		CacheTTL:    time.Duration(cfg.CacheTTL) * time.Second,
	})
	healthHandler := handler.NewHealthHandler(a.db, readCache, cacheBackend)

	siteHandler, err := handler.NewSiteHandler(handler.SiteConfig{
		TemplatesFS:  web.Templates,
		Description:  "Pixel Flame designs and builds websites, brands and digital products.",
		SiteURL:      cfg.SiteURL,
		NoIndex:      cfg.IsDevelopment(),
		StoreURL:     cfg.PublicStoreURL,
		AnonKey:      cfg.AnonKey,
		StoreTimeout: cfg.StoreTimeout,
		Version:      version.Version,
	})
	if err != nil {
		return fmt.Errorf("initializing site shell: %w", err)
	}

	staticHandler, err := handler.Static(web.Static)
	if err != nil {
		return err
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment(), cfg.PublicStoreURL)))

	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	r.Get("/sitemap.xml", seoHandler.Sitemap)
	r.Get("/robots.txt", seoHandler.Robots)

	r.With(middleware.NoStore).Mount("/rest/v1", apiHandler.Router(api.RouterConfig{
		AnonKey:        cfg.AnonKey,
		CORSOrigins:    cfg.CORSOrigins,
		APILimiter:     apiLimiter,
		ContactLimiter: contactLimiter,
		CSRF:           middleware.NewCSRFConfig(csrfKey, cfg.CORSOrigins, cfg.IsDevelopment()),
	}))

	r.With(middleware.StaticCache(staticMaxAge)).Handle("/static/*", staticHandler)
	r.With(middleware.NoStore).Handle("/app/*", handler.ClientBundle(cfg.ClientDir))

	for _, route := range handler.ShellRoutes {
		r.Get(route, siteHandler.Shell)
	}
	r.NotFound(siteHandler.NotFound)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", version.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-quit:
	case <-ctx.Done():
	}

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
