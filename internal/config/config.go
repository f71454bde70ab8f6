// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the content store server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Supported database drivers.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// knownWeakKeys contains example anon keys that must be rejected in production.
var knownWeakKeys = []string{
	"change-me-public-anon-key",
	"REPLACE_WITH_YOUR_ANON_KEY",
}

// Config holds the server configuration loaded from environment variables.
type Config struct {
	DBDriver   string `env:"PIXELFLAME_DB_DRIVER" envDefault:"sqlite"`
	DBPath     string `env:"PIXELFLAME_DB_PATH" envDefault:"./data/pixelflame.db"`
	DBDSN      string `env:"PIXELFLAME_DB_DSN"`
	AnonKey    string `env:"PIXELFLAME_ANON_KEY,required"`
	ServerHost string `env:"PIXELFLAME_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"PIXELFLAME_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"PIXELFLAME_ENV" envDefault:"development"`
	LogLevel   string `env:"PIXELFLAME_LOG_LEVEL" envDefault:"info"`

	// Client bundle
	PublicStoreURL string `env:"PIXELFLAME_PUBLIC_STORE_URL"`               // Store URL handed to the browser; empty means same origin
	ClientDir      string `env:"PIXELFLAME_CLIENT_DIR" envDefault:"./dist"` // Holds app.wasm and wasm_exec.js
	SiteURL        string `env:"PIXELFLAME_SITE_URL"`                       // Public origin for sitemap and canonical links; empty uses the request host

	// Contact notifications
	WebhookURLs    []string `env:"PIXELFLAME_WEBHOOK_URLS" envSeparator:","`
	WebhookSecret  string   `env:"PIXELFLAME_WEBHOOK_SECRET"` // HMAC-SHA256 key for X-Pixelflame-Signature
	WebhookWorkers int      `env:"PIXELFLAME_WEBHOOK_WORKERS" envDefault:"2"`

	// Read cache
	RedisURL     string `env:"PIXELFLAME_REDIS_URL"`
	CachePrefix  string `env:"PIXELFLAME_CACHE_PREFIX" envDefault:"pixelflame:"`
	CacheTTL     int    `env:"PIXELFLAME_CACHE_TTL" envDefault:"60"` // seconds; 0 disables the read cache
	CacheMaxSize int    `env:"PIXELFLAME_CACHE_MAX_SIZE" envDefault:"1000"`

	// Cross-origin access to the REST API
	CORSOrigins []string `env:"PIXELFLAME_CORS_ORIGINS" envSeparator:","`

	// Rate limits (requests per second, burst) per client IP
	APIRate        float64       `env:"PIXELFLAME_API_RATE" envDefault:"20"`
	APIBurst       int           `env:"PIXELFLAME_API_BURST" envDefault:"40"`
	ContactRate    float64       `env:"PIXELFLAME_CONTACT_RATE" envDefault:"0.1"`
	ContactBurst   int           `env:"PIXELFLAME_CONTACT_BURST" envDefault:"3"`
	RequestTimeout time.Duration `env:"PIXELFLAME_REQUEST_TIMEOUT" envDefault:"30s"`

	// Maintenance
	EventRetention time.Duration `env:"PIXELFLAME_EVENT_RETENTION" envDefault:"720h"` // 0 keeps events forever
	StoreTimeout   time.Duration `env:"PIXELFLAME_STORE_TIMEOUT" envDefault:"10s"`    // Client request timeout

	DoSeed bool `env:"PIXELFLAME_DO_SEED" envDefault:"false"` // Seed demo content into an empty database
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// CacheEnabled reports whether read responses should be cached at all.
func (c Config) CacheEnabled() bool {
	return c.CacheTTL > 0
}

// SlogLevel maps LogLevel to a slog.Level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MinAnonKeyLength is the minimum accepted length of the public API key.
const MinAnonKeyLength = 20

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverSQLite:
	case DriverMySQL:
		if c.DBDSN == "" {
			return errors.New("PIXELFLAME_DB_DSN is required when PIXELFLAME_DB_DRIVER=mysql")
		}
	default:
		return fmt.Errorf("unsupported PIXELFLAME_DB_DRIVER %q (use %q or %q)", c.DBDriver, DriverSQLite, DriverMySQL)
	}

	if len(c.AnonKey) < MinAnonKeyLength {
		return fmt.Errorf("PIXELFLAME_ANON_KEY must be at least %d bytes long, got %d bytes",
			MinAnonKeyLength, len(c.AnonKey))
	}

	if !c.IsDevelopment() {
		for _, weak := range knownWeakKeys {
			if c.AnonKey == weak {
				return errors.New("PIXELFLAME_ANON_KEY is a known example value and must not be used in production")
			}
		}
	}

	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("PIXELFLAME_SERVER_PORT out of range: %d", c.ServerPort)
	}

	if c.SiteURL != "" {
		u, err := url.Parse(c.SiteURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("PIXELFLAME_SITE_URL must be an absolute http(s) URL, got %q", c.SiteURL)
		}
	}

	for _, raw := range c.WebhookURLs {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("PIXELFLAME_WEBHOOK_URLS contains an invalid URL %q", raw)
		}
	}
	if len(c.WebhookURLs) > 0 && c.WebhookWorkers <= 0 {
		return fmt.Errorf("PIXELFLAME_WEBHOOK_WORKERS must be positive, got %d", c.WebhookWorkers)
	}

	if c.EventRetention < 0 {
		return fmt.Errorf("PIXELFLAME_EVENT_RETENTION must not be negative: %s", c.EventRetention)
	}

	return nil
}
