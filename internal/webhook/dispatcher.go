// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/olegiv/pixelflame/internal/model"
	"github.com/olegiv/pixelflame/internal/store"
)

// ErrNotRunning is returned by Dispatch before Start or after Stop.
var ErrNotRunning = errors.New("webhook dispatcher is not running")

// Config holds dispatcher configuration.
type Config struct {
	URLs      []string
	Secret    string // signs every payload when set
	Workers   int
	QueueSize int

	// DB, when set, receives an events row for every delivery that gives up.
	DB     *sql.DB
	Client *http.Client
	Clock  clock.Clock
}

// delivery is one event bound for one endpoint.
type delivery struct {
	id       string
	url      string
	event    string
	payload  []byte
	attempts int
}

// Dispatcher fans events out to the configured endpoints.
type Dispatcher struct {
	cfg     Config
	queries *store.Queries
	logger  *slog.Logger
	client  *http.Client
	clock   clock.Clock

	queue chan *delivery
	done  chan struct{}
	wg    sync.WaitGroup

	mu      sync.Mutex
	running bool
	retries map[*delivery]*clock.Timer
}

// New creates a dispatcher. It does nothing until Start.
func New(cfg Config, logger *slog.Logger) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 100
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: RequestTimeout}
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if logger == nil {
		logger = slog.Default()
	}

	var queries *store.Queries
	if cfg.DB != nil {
		queries = store.New(cfg.DB)
	}

	return &Dispatcher{
		cfg:     cfg,
		queries: queries,
		logger:  logger,
		client:  cfg.Client,
		clock:   cfg.Clock,
		queue:   make(chan *delivery, cfg.QueueSize),
		done:    make(chan struct{}),
		retries: make(map[*delivery]*clock.Timer),
	}
}

// Enabled reports whether any endpoint is configured.
func (d *Dispatcher) Enabled() bool {
	return len(d.cfg.URLs) > 0
}

// Start launches the delivery workers.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return
	}
	d.running = true

	d.logger.Info("starting webhook dispatcher", "workers", d.cfg.Workers, "endpoints", len(d.cfg.URLs))
	for i := range d.cfg.Workers {
		d.wg.Add(1)
		go d.worker(ctx, i)
	}
}

// Stop cancels pending retries and waits for in-flight deliveries.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	for dl, t := range d.retries {
		t.Stop()
		delete(d.retries, dl)
	}
	d.mu.Unlock()

	close(d.done)
	d.wg.Wait()
	d.logger.Info("webhook dispatcher stopped")
}

// Pending returns the number of deliveries waiting for a retry.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.retries)
}

func (d *Dispatcher) worker(ctx context.Context, id int) {
	defer d.wg.Done()
	for {
		select {
		case <-d.done:
			return
		case <-ctx.Done():
			return
		case dl := <-d.queue:
			d.logger.Debug("webhook worker processing delivery", "worker_id", id, "delivery_id", dl.id, "event", dl.event)
			d.process(ctx, dl)
		}
	}
}

// Dispatch queues event for every endpoint. It never blocks: a full queue drops
// the delivery and records it as failed.
func (d *Dispatcher) Dispatch(ctx context.Context, event *Event) error {
	d.mu.Lock()
	running := d.running
	d.mu.Unlock()
	if !running {
		return ErrNotRunning
	}
	if !d.Enabled() {
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	for _, u := range d.cfg.URLs {
		dl := &delivery{id: event.ID, url: u, event: event.Type, payload: payload}
		select {
		case d.queue <- dl:
			d.logger.Debug("webhook delivery queued", "delivery_id", dl.id, "url", u)
		default:
			d.logger.Warn("webhook queue full, dropping delivery", "delivery_id", dl.id, "url", u)
			d.recordFailure(ctx, dl, "queue full")
		}
	}
	return nil
}

// ContactSubmitted dispatches a contact.submitted event.
func (d *Dispatcher) ContactSubmitted(ctx context.Context, c model.ContactSubmission) {
	err := d.Dispatch(ctx, NewEvent(EventContactSubmitted, ContactEventData{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		Subject:     c.Subject,
		Message:     c.Message,
		SubmittedAt: c.CreatedAt,
	}, d.clock.Now()))
	if err != nil {
		d.logger.Warn("failed to dispatch contact webhook", "submission_id", c.ID, "error", err)
	}
}

// PostPublished dispatches a blog_post.published event.
func (d *Dispatcher) PostPublished(ctx context.Context, p model.BlogPost, at time.Time) {
	err := d.Dispatch(ctx, NewEvent(EventPostPublished, PostEventData{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		PublishedAt: at,
	}, d.clock.Now()))
	if err != nil {
		d.logger.Warn("failed to dispatch publish webhook", "post_id", p.ID, "error", err)
	}
}

// scheduleRetry re-queues dl after its backoff. It reports false once the
// dispatcher has stopped.
func (d *Dispatcher) scheduleRetry(dl *delivery) (time.Duration, bool) {
	backoff := calculateBackoff(dl.attempts)

	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.running {
		return 0, false
	}
	d.retries[dl] = d.clock.AfterFunc(backoff, func() {
		d.mu.Lock()
		_, live := d.retries[dl]
		delete(d.retries, dl)
		d.mu.Unlock()
		if !live {
			return
		}
		select {
		case d.queue <- dl:
		case <-d.done:
		}
	})
	return backoff, true
}

// recordFailure writes a warning event for a delivery that will not be retried.
func (d *Dispatcher) recordFailure(ctx context.Context, dl *delivery, reason string) {
	if d.queries == nil {
		return
	}
	metadata, _ := json.Marshal(map[string]any{
		"delivery_id": dl.id,
		"event":       dl.event,
		"url":         dl.url,
		"attempts":    dl.attempts,
		"reason":      reason,
	})
	err := d.queries.CreateEvent(context.WithoutCancel(ctx), store.CreateEventParams{
		Level:     model.EventLevelWarning,
		Category:  model.EventCategoryWebhook,
		Message:   "Webhook delivery failed: " + dl.event,
		Metadata:  string(metadata),
		CreatedAt: d.clock.Now(),
	})
	if err != nil {
		d.logger.Warn("failed to log webhook failure event", "error", err)
	}
}

// GenerateSignature returns the hex HMAC-SHA256 of payload under secret.
func GenerateSignature(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a signature produced by GenerateSignature.
func VerifySignature(payload []byte, signature, secret string) bool {
	return hmac.Equal([]byte(signature), []byte(GenerateSignature(payload, secret)))
}
