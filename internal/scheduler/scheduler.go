// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the periodic store jobs: scheduled blog publishing,
// rate-limiter sweeping and event log pruning.
package scheduler

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/robfig/cron/v3"

	"github.com/olegiv/pixelflame/internal/cache"
	"github.com/olegiv/pixelflame/internal/model"
	"github.com/olegiv/pixelflame/internal/store"
)

// Job names
const (
	JobPublishPosts  = "publish-scheduled-posts"
	JobSweepLimiters = "sweep-rate-limiters"
	JobPruneEvents   = "prune-events"
)

// Default schedules
const (
	PublishSchedule = "* * * * *"
	SweepSchedule   = "*/10 * * * *"
	PruneSchedule   = "@daily"
)

// Sweeper is a size-capped table swept by the scheduler, such as a per-IP rate limiter.
type Sweeper interface {
	Name() string
	Size() int
	Sweep(maxSize int) bool
}

// PublishNotifier is told about every post the scheduler publishes.
type PublishNotifier interface {
	PostPublished(ctx context.Context, p model.BlogPost, at time.Time)
}

// Options configures the scheduler. Zero values disable the optional jobs.
type Options struct {
	// Cache is cleared under CacheKeyPrefix after a post is published.
	Cache          cache.Cache
	CacheKeyPrefix string

	Limiters          []Sweeper
	MaxLimiterEntries int

	// EventRetention enables the prune job; events older than this are deleted.
	EventRetention time.Duration

	Notifier PublishNotifier

	Clock clock.Clock
}

// JobInfo is the public view of a registered job.
type JobInfo struct {
	Name        string
	Description string
	Schedule    string
	LastRun     time.Time
	NextRun     time.Time
}

type registeredJob struct {
	name        string
	description string
	schedule    string
	entryID     cron.EntryID
}

// Scheduler handles scheduled tasks like publishing posts.
type Scheduler struct {
	queries *store.Queries
	cron    *cron.Cron
	logger  *slog.Logger
	opts    Options
	clock   clock.Clock

	mu   sync.RWMutex
	jobs map[string]*registeredJob
}

// New creates a new scheduler instance.
func New(db *sql.DB, logger *slog.Logger, opts Options) *Scheduler {
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.MaxLimiterEntries <= 0 {
		opts.MaxLimiterEntries = 10000
	}

	var queries *store.Queries
	if db != nil {
		queries = store.New(db)
	}

	return &Scheduler{
		queries: queries,
		cron:    cron.New(cron.WithLocation(time.UTC), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger,
		opts:    opts,
		clock:   opts.Clock,
		jobs:    make(map[string]*registeredJob),
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	if s.queries != nil {
		if err := s.add(JobPublishPosts, "Publish blog posts whose publish_at is due", PublishSchedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if _, err := s.PublishDuePosts(ctx); err != nil {
				s.logger.Error("failed to process scheduled blog posts", "error", err)
			}
		}); err != nil {
			return err
		}
	}

	if len(s.opts.Limiters) > 0 {
		if err := s.add(JobSweepLimiters, "Reset rate-limiter tables above their size cap", SweepSchedule, func() {
			s.SweepLimiters()
		}); err != nil {
			return err
		}
	}

	if s.queries != nil && s.opts.EventRetention > 0 {
		if err := s.add(JobPruneEvents, "Delete event log entries past retention", PruneSchedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if _, err := s.PruneEvents(ctx); err != nil {
				s.logger.Error("failed to prune events", "error", err)
			}
		}); err != nil {
			return err
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) add(name, description, schedule string, fn func()) error {
	id, err := s.cron.AddFunc(schedule, fn)
	if err != nil {
		return fmt.Errorf("adding job %s: %w", name, err)
	}

	s.mu.Lock()
	s.jobs[name] = &registeredJob{
		name:        name,
		description: description,
		schedule:    schedule,
		entryID:     id,
	}
	s.mu.Unlock()
	return nil
}

// Jobs returns the registered jobs sorted by name.
func (s *Scheduler) Jobs() []JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make([]JobInfo, 0, len(s.jobs))
	for _, j := range s.jobs {
		entry := s.cron.Entry(j.entryID)
		jobs = append(jobs, JobInfo{
			Name:        j.name,
			Description: j.description,
			Schedule:    j.schedule,
			LastRun:     entry.Prev,
			NextRun:     entry.Next,
		})
	}
	sort.Slice(jobs, func(a, b int) bool { return jobs[a].Name < jobs[b].Name })
	return jobs
}

// PublishDuePosts publishes every draft whose publish_at has passed and returns how many
// were published. The read cache is cleared when at least one post changed.
func (s *Scheduler) PublishDuePosts(ctx context.Context) (int, error) {
	now := s.clock.Now().UTC()

	posts, err := s.queries.ListDueScheduledBlogPosts(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("listing scheduled posts: %w", err)
	}
	if len(posts) == 0 {
		return 0, nil
	}

	s.logger.Info("processing scheduled blog posts", "count", len(posts))

	published := 0
	for _, post := range posts {
		ok, err := s.queries.PublishBlogPost(ctx, post.ID, now)
		if err != nil {
			s.logger.Error("failed to publish scheduled blog post",
				"post_id", post.ID,
				"post_slug", post.Slug,
				"error", err,
			)
			continue
		}
		if !ok {
			continue
		}
		published++

		s.logger.Info("published scheduled blog post",
			"post_id", post.ID,
			"post_slug", post.Slug,
			"publish_at", post.PublishAt.Time,
		)
		s.recordPublish(ctx, post, now)
		if s.opts.Notifier != nil {
			s.opts.Notifier.PostPublished(ctx, post.ToModel(), now)
		}
	}

	if published > 0 {
		s.invalidateCache(ctx)
	}

	return published, nil
}

// recordPublish writes an info event for a published post.
func (s *Scheduler) recordPublish(ctx context.Context, post store.BlogPost, now time.Time) {
	metadata := map[string]any{
		"post_id":      post.ID,
		"post_title":   post.Title,
		"post_slug":    post.Slug,
		"publish_at":   post.PublishAt.Time.UTC().Format(time.RFC3339),
		"published_at": now.Format(time.RFC3339),
	}
	metadataJSON, _ := json.Marshal(metadata)

	err := s.queries.CreateEvent(ctx, store.CreateEventParams{
		Level:     model.EventLevelInfo,
		Category:  model.EventCategoryContent,
		Message:   "Blog post published automatically by scheduler: " + post.Title,
		Metadata:  string(metadataJSON),
		CreatedAt: now,
	})
	if err != nil {
		s.logger.Warn("failed to log scheduled publish event", "error", err)
	}
}

func (s *Scheduler) invalidateCache(ctx context.Context) {
	if s.opts.Cache == nil {
		return
	}

	var err error
	if s.opts.CacheKeyPrefix != "" {
		err = s.opts.Cache.DeleteByPrefix(ctx, s.opts.CacheKeyPrefix)
	} else {
		err = s.opts.Cache.Clear(ctx)
	}
	if err != nil {
		s.logger.Warn("failed to clear cache after publishing", "error", err)
	}
}

// SweepLimiters resets every limiter table above the configured cap and returns
// how many were reset.
func (s *Scheduler) SweepLimiters() int {
	swept := 0
	for _, l := range s.opts.Limiters {
		size := l.Size()
		if l.Sweep(s.opts.MaxLimiterEntries) {
			swept++
			s.logger.Info("rate limiter table reset", "limiter", l.Name(), "entries", size)
		}
	}
	return swept
}

// PruneEvents deletes events older than the retention window.
func (s *Scheduler) PruneEvents(ctx context.Context) (int64, error) {
	cutoff := s.clock.Now().UTC().Add(-s.opts.EventRetention)
	n, err := s.queries.DeleteEventsBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("deleting events: %w", err)
	}
	if n > 0 {
		s.logger.Info("pruned event log", "deleted", n, "before", cutoff)
	}
	return n, nil
}
