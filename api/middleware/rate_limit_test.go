package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/qitaat/seller-dashboard-backend/pkg/logger"
)

type countingLimiter struct {
	counts map[string]int64
	err    error
}

func (c *countingLimiter) FixedWindowAllow(_ context.Context, scope string, limit int64, _ time.Duration) (bool, int64, error) {
	if c.err != nil {
		return false, 0, c.err
	}
	if c.counts == nil {
		c.counts = map[string]int64{}
	}
	c.counts[scope]++
	return c.counts[scope] <= limit, c.counts[scope], nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
}

func TestIPRateLimitBlocksAfterLimit(t *testing.T) {
	limiter := &countingLimiter{}
	handler := IPRateLimit("seller-events", 2, time.Minute, limiter, logger.Nop())(okHandler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
		if i == 2 && rec.Header().Get("Retry-After") != "60" {
			t.Fatalf("expected Retry-After 60, got %q", rec.Header().Get("Retry-After"))
		}
	}
	if codes[0] != http.StatusAccepted || codes[1] != http.StatusAccepted || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence %v", codes)
	}
	if limiter.counts["seller-events:ip:203.0.113.9"] != 3 {
		t.Fatalf("expected counter keyed by first forwarded ip, got %v", limiter.counts)
	}
}

func TestIPRateLimitSeparatesClients(t *testing.T) {
	limiter := &countingLimiter{}
	handler := IPRateLimit("seller-events", 1, time.Minute, limiter, nil)(okHandler())

	for _, addr := range []string{"198.51.100.1:4000", "198.51.100.2:4000"} {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusAccepted {
			t.Fatalf("client %s should be allowed, got %d", addr, rec.Code)
		}
	}
}

func TestIPRateLimitStoreError(t *testing.T) {
	handler := IPRateLimit("seller-events", 1, time.Minute, &countingLimiter{err: errors.New("redis down")}, nil)(okHandler())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestIPRateLimitDisabled(t *testing.T) {
	limiter := &countingLimiter{}
	handler := IPRateLimit("seller-events", 0, time.Minute, limiter, nil)(okHandler())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusAccepted || len(limiter.counts) != 0 {
		t.Fatalf("disabled limiter should pass through")
	}
}
