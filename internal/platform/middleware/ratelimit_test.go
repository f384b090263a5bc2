package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestTokenBucket_AllowsWithinBurst(t *testing.T) {
	b := newTokenBucket(10, 5)
	for i := 0; i < 5; i++ {
		if !b.allow() {
			t.Fatalf("request %d should be allowed within burst", i)
		}
	}
}

func TestTokenBucket_RejectsWhenExhausted(t *testing.T) {
	b := newTokenBucket(0.001, 1)
	if !b.allow() {
		t.Fatal("first request should be allowed")
	}
	if b.allow() {
		t.Fatal("second request should be rejected")
	}
	if b.retryAfter() < 1 {
		t.Errorf("retryAfter should be at least 1 second, got %d", b.retryAfter())
	}
}

func TestRateLimit_TooManyRequests(t *testing.T) {
	e := echo.New()
	mw := RateLimit(RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 1})
	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := handler(c); err != nil {
		t.Fatalf("first request should pass: %v", err)
	}

	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	err := handler(c)
	if err == nil {
		t.Fatal("second request should be rate limited")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %v", err)
	}
}

func TestRateLimit_SeparateBucketsPerClient(t *testing.T) {
	store := newRateLimiterStore(RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 1})
	if !store.getBucket("10.0.0.1").allow() {
		t.Fatal("client A first request should pass")
	}
	if !store.getBucket("10.0.0.2").allow() {
		t.Fatal("client B should have its own bucket")
	}
	if store.getBucket("10.0.0.1").allow() {
		t.Error("client A should be exhausted")
	}
}
