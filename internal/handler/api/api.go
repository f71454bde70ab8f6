// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the REST API of the content store under /rest/v1.
package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/olegiv/pixelflame/internal/cache"
	"github.com/olegiv/pixelflame/internal/model"
	"github.com/olegiv/pixelflame/internal/store"
)

// CacheKeyPrefix namespaces read-response cache entries.
const CacheKeyPrefix = "rest:"

// ContactNotifier is told about every stored contact submission.
type ContactNotifier interface {
	ContactSubmitted(ctx context.Context, c model.ContactSubmission)
}

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	db        *sql.DB
	queries   *store.Queries
	cache     cache.Cache
	cacheTTL  time.Duration
	sanitizer *bluemonday.Policy
	notifier  ContactNotifier
	now       func() time.Time
}

// NewHandler creates a new API handler. A nil cache disables response caching.
func NewHandler(db *sql.DB, c cache.Cache, cacheTTL time.Duration) *Handler {
	return &Handler{
		db:        db,
		queries:   store.New(db),
		cache:     c,
		cacheTTL:  cacheTTL,
		sanitizer: bluemonday.StrictPolicy(),
		now:       time.Now,
	}
}

// SetNotifier registers n for contact submissions. A nil n disables notifications.
func (h *Handler) SetNotifier(n ContactNotifier) {
	h.notifier = n
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta carries list metadata.
type Meta struct {
	Total int `json:"total"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, details)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// WriteValidationError writes a 422 Unprocessable Entity response with field errors.
func WriteValidationError(w http.ResponseWriter, fieldErrors map[string]string) {
	WriteError(w, http.StatusUnprocessableEntity, "validation_error", "Validation failed", fieldErrors)
}

// StatusResponse contains API status information.
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Status returns the API status.
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, StatusResponse{
		Status:  "ok",
		Version: "v1",
	}, nil)
}

// errNotFound signals a missing resource from inside a cached fetch.
var errNotFound = errors.New("not found")

// serveCached answers from the read cache when possible. On a miss it calls fetch,
// writes the result and stores the encoded body. Fetch errors are not cached.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, entity string, fetch func() (any, *Meta, error)) {
	key := CacheKeyPrefix + r.URL.Path
	if q := r.URL.Query().Encode(); q != "" {
		key += "?" + q
	}

	if h.cache != nil {
		if body, err := h.cache.Get(r.Context(), key); err == nil {
			w.Header().Set("X-Cache", "HIT")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(body)
			return
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			slog.Warn("cache read failed", "key", key, "error", err)
		}
	}

	data, meta, err := fetch()
	if err != nil {
		if errors.Is(err, errNotFound) || errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, capitalizeFirst(entity)+" not found")
			return
		}
		slog.Error("failed to load "+entity, "path", r.URL.Path, "error", err)
		WriteInternalError(w, "Failed to retrieve "+entity)
		return
	}

	body, err := json.Marshal(Response{Data: data, Meta: meta})
	if err != nil {
		slog.Error("failed to encode response", "path", r.URL.Path, "error", err)
		WriteInternalError(w, "Failed to encode response")
		return
	}
	body = append(body, '\n')

	if h.cache != nil {
		if err := h.cache.Set(r.Context(), key, body, h.cacheTTL); err != nil {
			slog.Warn("cache write failed", "key", key, "error", err)
		}
		w.Header().Set("X-Cache", "MISS")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
