// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const createContactSubmission = `INSERT INTO contact_submissions (
    id, name, email, subject, message, status, ip, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

type CreateContactSubmissionParams struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Subject   sql.NullString `json:"subject"`
	Message   string         `json:"message"`
	Status    string         `json:"status"`
	IP        string         `json:"ip"`
	CreatedAt time.Time      `json:"created_at"`
}

func (q *Queries) CreateContactSubmission(ctx context.Context, arg CreateContactSubmissionParams) (ContactSubmission, error) {
	_, err := q.db.ExecContext(ctx, createContactSubmission,
		arg.ID,
		arg.Name,
		arg.Email,
		arg.Subject,
		arg.Message,
		arg.Status,
		arg.IP,
		arg.CreatedAt.UTC(),
	)
	if err != nil {
		return ContactSubmission{}, err
	}
	return q.GetContactSubmission(ctx, arg.ID)
}

const getContactSubmission = `SELECT id, name, email, subject, message, status, ip, created_at
FROM contact_submissions
WHERE id = ?`

func (q *Queries) GetContactSubmission(ctx context.Context, id string) (ContactSubmission, error) {
	row := q.db.QueryRowContext(ctx, getContactSubmission, id)
	var i ContactSubmission
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Email,
		&i.Subject,
		&i.Message,
		&i.Status,
		&i.IP,
		&i.CreatedAt,
	)
	return i, err
}

const countContactSubmissionsByStatus = `SELECT COUNT(*) FROM contact_submissions WHERE status = ?`

func (q *Queries) CountContactSubmissionsByStatus(ctx context.Context, status string) (int64, error) {
	row := q.db.QueryRowContext(ctx, countContactSubmissionsByStatus, status)
	var count int64
	err := row.Scan(&count)
	return count, err
}
