package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func hit(h http.Handler, remote, user string) int {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = remote
	if user != "" {
		req.Header.Set("X-User", user)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiter_AllowsBurst(t *testing.T) {
	rl := NewRateLimiter(1, 3, nil) // 1/s, burst 3
	now := time.Now()
	rl.now = func() time.Time { return now }
	handler := rl.Middleware(okHandler())

	for i := 0; i < 3; i++ {
		if code := hit(handler, "1.2.3.4:1234", ""); code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, code)
		}
	}

	// 4th request should be rate limited
	if code := hit(handler, "1.2.3.4:5678", ""); code != http.StatusTooManyRequests {
		t.Fatalf("4th request: expected 429, got %d", code)
	}

	// One token back after a second.
	now = now.Add(time.Second)
	if code := hit(handler, "1.2.3.4:1234", ""); code != http.StatusOK {
		t.Fatalf("after refill: expected 200, got %d", code)
	}
}

func TestRateLimiter_DifferentIPs(t *testing.T) {
	rl := NewRateLimiter(1, 1, nil)
	handler := rl.Middleware(okHandler())

	if code := hit(handler, "1.1.1.1:1234", ""); code != http.StatusOK {
		t.Fatalf("IP1 first: expected 200, got %d", code)
	}
	if code := hit(handler, "2.2.2.2:1234", ""); code != http.StatusOK {
		t.Fatalf("IP2 first: expected 200, got %d", code)
	}
}

func TestRateLimiter_CustomKey(t *testing.T) {
	rl := NewRateLimiter(0.001, 1, func(r *http.Request) string { return r.Header.Get("X-User") })
	handler := rl.Middleware(okHandler())

	if code := hit(handler, "1.1.1.1:1", "alice"); code != http.StatusOK {
		t.Fatalf("alice first: expected 200, got %d", code)
	}
	// Same user from another address shares the bucket.
	if code := hit(handler, "2.2.2.2:1", "alice"); code != http.StatusTooManyRequests {
		t.Fatalf("alice second: expected 429, got %d", code)
	}
	if code := hit(handler, "1.1.1.1:1", "bob"); code != http.StatusOK {
		t.Fatalf("bob first: expected 200, got %d", code)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:4444"
	if got := ClientIP(req); got != "10.0.0.1" {
		t.Fatalf("expected remote host, got %q", got)
	}
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := ClientIP(req); got != "203.0.113.7" {
		t.Fatalf("expected first forwarded hop, got %q", got)
	}
}
