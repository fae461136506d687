package middleware

import "time"

// VisitorTTL exposes the idle timeout to the external test package.
const VisitorTTL = visitorTTL

// SetClock replaces the limiter's clock.
func SetClock(rl *RateLimiter, now func() time.Time) { rl.now = now }

// Visitors reports how many clients the limiter is tracking.
func Visitors(rl *RateLimiter) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}
