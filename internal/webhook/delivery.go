// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package webhook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Delivery settings.
const (
	MaxAttempts    = 5
	InitialBackoff = 30 * time.Second
	MaxBackoff     = 30 * time.Minute
	RequestTimeout = 15 * time.Second
	MaxResponseLen = 10 * 1024
	UserAgent      = "Pixelflame-Webhook/1.0"
)

// Request headers.
const (
	HeaderSignature = "X-Pixelflame-Signature"
	HeaderEvent     = "X-Pixelflame-Event"
	HeaderDelivery  = "X-Pixelflame-Delivery"
)

// result is the outcome of one attempt.
type result struct {
	statusCode  int
	err         error
	shouldRetry bool
}

func (d *Dispatcher) process(ctx context.Context, dl *delivery) {
	dl.attempts++
	res := d.attempt(ctx, dl)

	if res.err == nil {
		d.logger.Info("webhook delivered",
			"delivery_id", dl.id,
			"event", dl.event,
			"url", dl.url,
			"status_code", res.statusCode,
			"attempts", dl.attempts)
		return
	}

	if res.shouldRetry && dl.attempts < MaxAttempts {
		if backoff, ok := d.scheduleRetry(dl); ok {
			d.logger.Info("webhook delivery scheduled for retry",
				"delivery_id", dl.id,
				"url", dl.url,
				"attempt", dl.attempts,
				"backoff", backoff.String(),
				"error", res.err)
			return
		}
	}

	d.logger.Warn("webhook delivery failed",
		"delivery_id", dl.id,
		"event", dl.event,
		"url", dl.url,
		"attempts", dl.attempts,
		"error", res.err)
	d.recordFailure(ctx, dl, res.err.Error())
}

// attempt performs one signed POST.
func (d *Dispatcher) attempt(ctx context.Context, dl *delivery) result {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, dl.url, bytes.NewReader(dl.payload))
	if err != nil {
		return result{err: fmt.Errorf("creating request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set(HeaderEvent, dl.event)
	req.Header.Set(HeaderDelivery, dl.id)
	if d.cfg.Secret != "" {
		req.Header.Set(HeaderSignature, "sha256="+GenerateSignature(dl.payload, d.cfg.Secret))
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return result{err: fmt.Errorf("request failed: %w", err), shouldRetry: ctx.Err() == nil}
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, MaxResponseLen))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return result{statusCode: resp.StatusCode}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return result{
			statusCode:  resp.StatusCode,
			err:         fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
			shouldRetry: resp.StatusCode == http.StatusRequestTimeout || resp.StatusCode == http.StatusTooManyRequests,
		}
	default:
		return result{
			statusCode:  resp.StatusCode,
			err:         fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
			shouldRetry: true,
		}
	}
}

// calculateBackoff doubles InitialBackoff per failed attempt, capped at MaxBackoff.
func calculateBackoff(attempts int) time.Duration {
	if attempts <= 0 {
		attempts = 1
	}
	if attempts > 16 {
		return MaxBackoff
	}
	backoff := InitialBackoff << (attempts - 1)
	if backoff <= 0 || backoff > MaxBackoff {
		return MaxBackoff
	}
	return backoff
}
