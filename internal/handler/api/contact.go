// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"html"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/olegiv/pixelflame/internal/middleware"
	"github.com/olegiv/pixelflame/internal/model"
	"github.com/olegiv/pixelflame/internal/store"
)

// Field length limits for contact submissions, in characters.
const (
	MaxNameLength    = 200
	MaxEmailLength   = 254
	MaxSubjectLength = 200
	MaxMessageLength = 5000

	maxContactBodyBytes = 64 << 10
)

// ContactCreatedResponse is returned after a submission is stored.
type ContactCreatedResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// CreateContactSubmission handles POST /rest/v1/contact_submissions.
func (h *Handler) CreateContactSubmission(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxContactBodyBytes)

	var req model.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, http.StatusRequestEntityTooLarge, "bad_request", "Request body too large", nil)
			return
		}
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	req = trimContact(req)
	fieldErrors := validateContact(req)
	if _, bad := fieldErrors["name"]; !bad && h.containsMarkup(req.Name) {
		fieldErrors["name"] = "Name must not contain markup"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	row, err := h.queries.CreateContactSubmission(r.Context(), store.CreateContactSubmissionParams{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Subject:   store.NullString(req.Subject),
		Message:   req.Message,
		Status:    model.ContactStatusNew,
		IP:        middleware.ClientIP(r),
		CreatedAt: h.now(),
	})
	if err != nil {
		slog.Error("failed to store contact submission", "error", err)
		WriteInternalError(w, "Failed to submit form")
		return
	}

	slog.Info("contact submission received", "id", row.ID)
	if h.notifier != nil {
		h.notifier.ContactSubmitted(r.Context(), row.ToModel())
	}
	WriteCreated(w, ContactCreatedResponse{ID: row.ID, Status: row.Status})
}

// trimContact trims surrounding whitespace. Text is stored as typed; the client
// renders it through text nodes.
func trimContact(req model.ContactRequest) model.ContactRequest {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if req.Subject != nil {
		s := strings.TrimSpace(*req.Subject)
		if s == "" {
			req.Subject = nil
		} else {
			req.Subject = &s
		}
	}
	return req
}

// containsMarkup reports whether the strict policy would remove anything from s.
// The policy entity-escapes the text it keeps, so both sides are unescaped.
func (h *Handler) containsMarkup(s string) bool {
	return html.UnescapeString(h.sanitizer.Sanitize(s)) != html.UnescapeString(s)
}

func validateContact(req model.ContactRequest) map[string]string {
	errs := map[string]string{}

	switch {
	case req.Name == "":
		errs["name"] = "Name is required"
	case utf8.RuneCountInString(req.Name) > MaxNameLength:
		errs["name"] = "Name is too long"
	}

	switch {
	case req.Email == "":
		errs["email"] = "Email is required"
	case len(req.Email) > MaxEmailLength:
		errs["email"] = "Email is too long"
	default:
		if addr, err := mail.ParseAddress(req.Email); err != nil || addr.Address != req.Email {
			errs["email"] = "Email is invalid"
		}
	}

	if req.Subject != nil && utf8.RuneCountInString(*req.Subject) > MaxSubjectLength {
		errs["subject"] = "Subject is too long"
	}

	switch {
	case req.Message == "":
		errs["message"] = "Message is required"
	case utf8.RuneCountInString(req.Message) > MaxMessageLength:
		errs["message"] = "Message is too long"
	}

	return errs
}
