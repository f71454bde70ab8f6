// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// AnonKeyHeader carries the public API key sent by the browser client.
const AnonKeyHeader = "apikey"

// requestKey returns the key from the apikey header, or from a Bearer Authorization header.
func requestKey(r *http.Request) string {
	if key := r.Header.Get(AnonKeyHeader); key != "" {
		return key
	}

	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// AnonKeyAuth rejects requests that do not present the configured anon key.
// Preflight requests pass through so CORS can answer them.
func AnonKeyAuth(anonKey string) func(http.Handler) http.Handler {
	expected := []byte(anonKey)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			key := requestKey(r)
			if key == "" {
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Missing API key", nil)
				return
			}
			if subtle.ConstantTimeCompare([]byte(key), expected) != 1 {
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Invalid API key", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
