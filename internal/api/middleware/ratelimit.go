package middleware

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// UnknownClientKey buckets requests that carry no address header.
// All such callers share one quota.
const UnknownClientKey = "unknown"

// RateLimiter decides whether a request identified by key may proceed
type RateLimiter interface {
	Allow(key string) bool
}

type window struct {
	count     int
	resetTime time.Time
}

// FixedWindowLimiter admits up to max requests per key within a window
// anchored at the key's first admission. State is process-local and is
// lost on restart.
type FixedWindowLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	max     int
	period  time.Duration
	now     func() time.Time
}

// NewFixedWindowLimiter creates a limiter allowing max requests per period
func NewFixedWindowLimiter(max int, period time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		windows: make(map[string]*window),
		max:     max,
		period:  period,
		now:     time.Now,
	}
}

// Allow reports whether the request is admitted, counting it if so.
// Check and increment happen under one lock so concurrent requests
// never lose counts.
func (l *FixedWindowLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	w, exists := l.windows[key]
	if !exists || now.After(w.resetTime) {
		l.windows[key] = &window{count: 1, resetTime: now.Add(l.period)}
		return true
	}

	if w.count >= l.max {
		return false
	}

	w.count++
	return true
}

// ClientKey derives the rate-limit key for a request: the first address
// in X-Forwarded-For, else X-Real-IP, else the shared unknown bucket.
func ClientKey(c *fiber.Ctx) string {
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return UnknownClientKey
}

// RateLimit wraps a limiter as fiber middleware, rejecting with 429
func RateLimit(limiter RateLimiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !limiter.Allow(ClientKey(c)) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"error":   "Rate limit exceeded. Please try again later.",
			})
		}
		return c.Next()
	}
}
