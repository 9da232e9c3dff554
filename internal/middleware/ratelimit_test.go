package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucket_RefillsOverTime(t *testing.T) {
	start := time.Unix(0, 0)
	tb := NewTokenBucket(2, 1, start)

	assert.True(t, tb.Allow(start))
	assert.True(t, tb.Allow(start))
	assert.False(t, tb.Allow(start))
	assert.False(t, tb.Allow(start.Add(500*time.Millisecond)))
	assert.True(t, tb.Allow(start.Add(time.Second)))
	assert.False(t, tb.Allow(start.Add(time.Second)))
}

func TestRateLimiter_PerKeyAndEviction(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()
	now := time.Unix(1000, 0)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"))
	assert.Equal(t, 60, rl.RetryAfter())

	now = now.Add(11 * time.Minute)
	rl.evictIdle()
	rl.mu.RLock()
	assert.Empty(t, rl.buckets)
	rl.mu.RUnlock()
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	call := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/analyze", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusNoContent, call("192.0.2.1:5000").Code)
	// different port, same client
	assert.Equal(t, http.StatusNoContent, call("192.0.2.1:5001").Code)
	rec := call("192.0.2.1:5002")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "30", rec.Header().Get("Retry-After"))
	assert.Equal(t, http.StatusNoContent, call("[2001:db8::1]:443").Code)
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(1, time.Second)
	rl.Stop()
	rl.Stop()
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "[2001:db8::1]:8080"
	assert.Equal(t, "2001:db8::1", ClientIP(r))
	r.RemoteAddr = "unix"
	assert.Equal(t, "unix", ClientIP(r))
}
