// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package webhook notifies external endpoints about new contact submissions and
// published blog posts. Deliveries are signed, queued in memory and retried with
// exponential backoff.
package webhook

import (
	"time"

	"github.com/google/uuid"
)

// Event types.
const (
	EventContactSubmitted = "contact.submitted"
	EventPostPublished    = "blog_post.published"
)

// Event is the JSON body posted to every endpoint.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// NewEvent creates an event with a fresh ID.
func NewEvent(eventType string, data any, now time.Time) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: now.UTC(),
		Data:      data,
	}
}

// ContactEventData describes an accepted contact submission.
type ContactEventData struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Subject     *string   `json:"subject"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// PostEventData describes a blog post that went live.
type PostEventData struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	PublishedAt time.Time `json:"published_at"`
}
