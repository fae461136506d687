package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/middleware"
)

func requestFrom(remoteAddr string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/plans", nil)
	req.RemoteAddr = remoteAddr
	return req
}

// TestRateLimiter_BurstThenReject verifies that a client may send burst
// requests back to back and the next one is rejected with 429.
func TestRateLimiter_BurstThenReject(t *testing.T) {
	// A refill rate this low means no token comes back during the test.
	h := middleware.NewRateLimiter(0.001, 2).Handler(trivialHandler)

	for i := range 2 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("203.0.113.7:5001"))
		require.Equal(t, http.StatusOK, rec.Code, "request %d within burst", i+1)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestFrom("203.0.113.7:5002"))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code, "same IP, different port")
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), `"code":"rate_limited"`)
}

// TestRateLimiter_ClientsAreIndependent verifies that one client exhausting
// its budget does not affect another.
func TestRateLimiter_ClientsAreIndependent(t *testing.T) {
	h := middleware.NewRateLimiter(0.001, 1).Handler(trivialHandler)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestFrom("203.0.113.7:5001"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, requestFrom("203.0.113.7:5001"))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, requestFrom("198.51.100.4:6000"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

// TestRateLimiter_RemoteAddrWithoutPort covers RealIP, which rewrites
// RemoteAddr to a bare IP.
func TestRateLimiter_RemoteAddrWithoutPort(t *testing.T) {
	h := middleware.NewRateLimiter(0.001, 1).Handler(trivialHandler)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestFrom("198.51.100.4"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, requestFrom("198.51.100.4"))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

// TestRateLimiter_SweepsIdleClients verifies that a client idle for longer
// than the TTL is forgotten when a new client arrives, while a client seen
// within the TTL keeps its drained bucket.
func TestRateLimiter_SweepsIdleClients(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	rl := middleware.NewRateLimiter(0.001, 1)
	middleware.SetClock(rl, func() time.Time { return now })
	h := rl.Handler(trivialHandler)

	send := func(addr string) int {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom(addr))
		return rec.Code
	}

	// ---- drain two clients at different times ----
	require.Equal(t, http.StatusOK, send("203.0.113.7:1"))
	require.Equal(t, http.StatusTooManyRequests, send("203.0.113.7:1"))

	now = now.Add(middleware.VisitorTTL / 2)
	require.Equal(t, http.StatusOK, send("198.51.100.4:1"))
	require.Equal(t, http.StatusTooManyRequests, send("198.51.100.4:1"))
	require.Equal(t, 2, middleware.Visitors(rl))

	// ---- a new client past the first one's TTL triggers the sweep ----
	now = now.Add(middleware.VisitorTTL/2 + time.Minute)
	require.Equal(t, http.StatusOK, send("192.0.2.9:1"))
	assert.Equal(t, 2, middleware.Visitors(rl), "idle client dropped, new client added")

	// The refill rate alone would not have restored a token, so a 200 here
	// means the idle client got a fresh bucket.
	assert.Equal(t, http.StatusOK, send("203.0.113.7:1"))
	assert.Equal(t, http.StatusTooManyRequests, send("198.51.100.4:1"), "active client keeps its drained bucket")
}
