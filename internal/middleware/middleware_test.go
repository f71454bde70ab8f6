// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
})

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) APIError {
	t.Helper()
	var apiErr APIError
	if err := json.Unmarshal(rec.Body.Bytes(), &apiErr); err != nil {
		t.Fatalf("decoding error body %q: %v", rec.Body.String(), err)
	}
	return apiErr
}

func TestSecurityHeaders(t *testing.T) {
	tests := []struct {
		name     string
		isDev    bool
		wantHSTS bool
	}{
		{"production mode enables HSTS", false, true},
		{"development mode disables HSTS", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSecurityHeadersConfig(tt.isDev, "https://store.example.com")
			rec := httptest.NewRecorder()
			SecurityHeaders(cfg)(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			hsts := rec.Header().Get("Strict-Transport-Security")
			if tt.wantHSTS && !strings.Contains(hsts, "includeSubDomains") {
				t.Errorf("Strict-Transport-Security = %q, want includeSubDomains", hsts)
			}
			if !tt.wantHSTS && hsts != "" {
				t.Errorf("Strict-Transport-Security = %q, want none", hsts)
			}

			csp := rec.Header().Get("Content-Security-Policy")
			if !strings.Contains(csp, "'wasm-unsafe-eval'") {
				t.Errorf("CSP = %q, want wasm-unsafe-eval", csp)
			}
			if !strings.Contains(csp, "connect-src 'self' https://store.example.com") {
				t.Errorf("CSP = %q, want store origin in connect-src", csp)
			}
			if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
				t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
			}
			if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
				t.Errorf("X-Frame-Options = %q, want DENY", got)
			}
		})
	}
}

func TestAnonKeyAuth(t *testing.T) {
	const key = "public-anon-key-0123456789"

	tests := []struct {
		name       string
		method     string
		header     string
		value      string
		wantStatus int
	}{
		{"apikey header", http.MethodGet, "apikey", key, http.StatusOK},
		{"bearer token", http.MethodGet, "Authorization", "Bearer " + key, http.StatusOK},
		{"lowercase bearer", http.MethodGet, "Authorization", "bearer " + key, http.StatusOK},
		{"missing", http.MethodGet, "", "", http.StatusUnauthorized},
		{"wrong key", http.MethodGet, "apikey", "nope", http.StatusUnauthorized},
		{"basic auth", http.MethodGet, "Authorization", "Basic " + key, http.StatusUnauthorized},
		{"preflight passes", http.MethodOptions, "", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/rest/v1/projects", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			rec := httptest.NewRecorder()
			AnonKeyAuth(key)(okHandler).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusUnauthorized {
				if apiErr := decodeAPIError(t, rec); apiErr.Error.Code != "unauthorized" {
					t.Errorf("code = %q, want unauthorized", apiErr.Error.Code)
				}
			}
		})
	}
}

func TestIPRateLimiter(t *testing.T) {
	rl := NewIPRateLimiter("api", 0.001, 2)
	handler := rl.Middleware()(okHandler)

	do := func(remote string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 2; i++ {
		if code := do("10.0.0.1:1234"); code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i, code)
		}
	}
	if code := do("10.0.0.1:5678"); code != http.StatusTooManyRequests {
		t.Errorf("third request status = %d, want 429", code)
	}
	if code := do("10.0.0.2:1234"); code != http.StatusOK {
		t.Errorf("other client status = %d, want 200", code)
	}

	if rl.Size() != 2 {
		t.Errorf("Size() = %d, want 2", rl.Size())
	}
	if rl.Sweep(5) {
		t.Error("Sweep(5) = true with 2 entries")
	}
	if !rl.Sweep(1) {
		t.Error("Sweep(1) = false with 2 entries")
	}
	if rl.Size() != 0 {
		t.Errorf("Size() after sweep = %d, want 0", rl.Size())
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"remote addr", nil, "192.0.2.1:4000", "192.0.2.1"},
		{"x-real-ip", map[string]string{"X-Real-IP": "198.51.100.7"}, "192.0.2.1:4000", "198.51.100.7"},
		{"first forwarded", map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1"}, "192.0.2.1:4000", "203.0.113.5"},
		{"no port", nil, "192.0.2.9", "192.0.2.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := ClientIP(req); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	handler := CORS([]string{"https://site.example.com"}, 0)(okHandler)

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/rest/v1/projects", nil)
		req.Header.Set("Origin", "https://site.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://site.example.com" {
			t.Errorf("Access-Control-Allow-Origin = %q", got)
		}
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/rest/v1/contact_submissions", nil)
		req.Header.Set("Origin", "https://site.example.com")
		req.Header.Set("Access-Control-Request-Method", "POST")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
		if got := rec.Header().Get("Access-Control-Allow-Headers"); !strings.Contains(got, "apikey") {
			t.Errorf("Access-Control-Allow-Headers = %q, want apikey", got)
		}
		if got := rec.Header().Get("Access-Control-Max-Age"); got != "3600" {
			t.Errorf("Access-Control-Max-Age = %q, want 3600", got)
		}
	})

	t.Run("other origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/rest/v1/projects", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Access-Control-Allow-Origin = %q, want empty", got)
		}
	})
}

func TestNewCSRFConfig(t *testing.T) {
	cfg := NewCSRFConfig(nil, []string{"https://site.example.com", "*", "http://localhost:3000"}, false)

	want := []string{"site.example.com", "localhost:3000"}
	if len(cfg.TrustedOrigins) != len(want) {
		t.Fatalf("TrustedOrigins = %v, want %v", cfg.TrustedOrigins, want)
	}
	for i := range want {
		if cfg.TrustedOrigins[i] != want[i] {
			t.Errorf("TrustedOrigins[%d] = %q, want %q", i, cfg.TrustedOrigins[i], want[i])
		}
	}

	dev := NewCSRFConfig(nil, nil, true)
	if len(dev.TrustedOrigins) != 2 {
		t.Errorf("dev TrustedOrigins = %v, want localhost entries", dev.TrustedOrigins)
	}
}

func TestCSRF(t *testing.T) {
	handler := CSRF(NewCSRFConfig([]byte("0123456789abcdef0123456789abcdef"), nil, false))(okHandler)

	t.Run("cross-site POST rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "http://store.example.com/rest/v1/contact_submissions", nil)
		req.Header.Set("Sec-Fetch-Site", "cross-site")
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("same-origin POST allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "http://store.example.com/rest/v1/contact_submissions", nil)
		req.Header.Set("Sec-Fetch-Site", "same-origin")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("non-browser POST allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "http://store.example.com/rest/v1/contact_submissions", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("GET always allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://store.example.com/rest/v1/projects", nil)
		req.Header.Set("Sec-Fetch-Site", "cross-site")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})
}

func TestTimeout(t *testing.T) {
	t.Run("fast handler", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Timeout(time.Second)(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
			t.Errorf("got %d %q, want 200 ok", rec.Code, rec.Body.String())
		}
	})

	t.Run("slow handler", func(t *testing.T) {
		release := make(chan struct{})
		slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
			<-release
			_, _ = w.Write([]byte("late"))
		})

		rec := httptest.NewRecorder()
		Timeout(20*time.Millisecond)(slow).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		close(release)

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", rec.Code)
		}
		if apiErr := decodeAPIError(t, rec); apiErr.Error.Code != "timeout" {
			t.Errorf("code = %q, want timeout", apiErr.Error.Code)
		}
	})
}

func TestTimeoutWriter_DiscardsAfterTimeout(t *testing.T) {
	rec := httptest.NewRecorder()
	tw := &timeoutWriter{ResponseWriter: rec, timedOut: true}

	if _, err := tw.Write([]byte("x")); err != http.ErrHandlerTimeout {
		t.Errorf("Write error = %v, want ErrHandlerTimeout", err)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}
}

func TestStripTrailingSlash(t *testing.T) {
	tests := []struct {
		method   string
		path     string
		wantCode int
		wantLoc  string
	}{
		{http.MethodGet, "/", http.StatusOK, ""},
		{http.MethodGet, "/projects", http.StatusOK, ""},
		{http.MethodGet, "/projects/", http.StatusMovedPermanently, "/projects"},
		{http.MethodGet, "/blog/?page=2", http.StatusMovedPermanently, "/blog?page=2"},
		{http.MethodPost, "/rest/v1/contact_submissions/", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			StripTrailingSlash(okHandler).ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if got := rec.Header().Get("Location"); got != tt.wantLoc {
				t.Errorf("Location = %q, want %q", got, tt.wantLoc)
			}
		})
	}
}

func TestStaticCacheAndNoStore(t *testing.T) {
	rec := httptest.NewRecorder()
	StaticCache(86400)(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/site.css", nil))
	if got := rec.Header().Get("Cache-Control"); got != "public, max-age=86400" {
		t.Errorf("Cache-Control = %q", got)
	}

	rec = httptest.NewRecorder()
	NoStore(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control = %q", got)
	}
}
