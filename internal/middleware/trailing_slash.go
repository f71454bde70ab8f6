// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"strings"
)

// StripTrailingSlash redirects /projects/ to /projects with 301, keeping the query.
// GET and HEAD only; the root path is left alone.
func StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if len(path) > 1 && strings.HasSuffix(path, "/") &&
			(r.Method == http.MethodGet || r.Method == http.MethodHead) {
			target := *r.URL
			target.Path = strings.TrimRight(path, "/")
			if target.Path == "" {
				target.Path = "/"
			}
			target.RawPath = ""
			http.Redirect(w, r, target.RequestURI(), http.StatusMovedPermanently)
			return
		}
		next.ServeHTTP(w, r)
	})
}
