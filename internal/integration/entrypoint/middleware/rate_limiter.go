package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/personal-finance/backend/internal/domain/error"
	"github.com/personal-finance/backend/internal/integration/entrypoint/dto"
)

const (
	// DefaultMaxRequests is the default number of allowed requests per window.
	DefaultMaxRequests = 100
	// DefaultWindow is the default time window for rate limiting.
	DefaultWindow = 15 * time.Minute
)

// rateLimitEntry tracks rate limit data for a single client.
type rateLimitEntry struct {
	requests  int
	resetTime time.Time
}

// RateLimiter provides fixed-window, IP-based rate limiting.
type RateLimiter struct {
	mu          sync.Mutex
	entries     map[string]*rateLimitEntry
	maxRequests int
	window      time.Duration
	now         func() time.Time
}

// NewRateLimiter creates a new rate limiter with default settings.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(DefaultMaxRequests, DefaultWindow)
}

// NewRateLimiterWithConfig creates a new rate limiter with custom settings.
// Non-positive values fall back to the defaults.
func NewRateLimiterWithConfig(maxRequests int, window time.Duration) *RateLimiter {
	if maxRequests <= 0 {
		maxRequests = DefaultMaxRequests
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &RateLimiter{
		entries:     make(map[string]*rateLimitEntry),
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		allowed, remaining, resetTime := rl.allow(clientIP)
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.maxRequests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			retryAfter := int(math.Ceil(resetTime.Sub(rl.now()).Seconds()))
			c.Header("Retry-After", strconv.Itoa(max(retryAfter, 1)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			return
		}

		c.Next()
	}
}

// allow records a request for key and reports whether it fits the current window,
// the requests left in it and when it resets.
func (rl *RateLimiter) allow(key string) (bool, int, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()

	entry, exists := rl.entries[key]
	if !exists || !now.Before(entry.resetTime) {
		entry = &rateLimitEntry{resetTime: now.Add(rl.window)}
		rl.entries[key] = entry
	}

	if entry.requests >= rl.maxRequests {
		return false, 0, entry.resetTime
	}

	entry.requests++
	return true, rl.maxRequests - entry.requests, entry.resetTime
}

// Reset clears the rate limiter state.
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.entries = make(map[string]*rateLimitEntry)
}

// Cleanup removes expired entries.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, entry := range rl.entries {
		if !now.Before(entry.resetTime) {
			delete(rl.entries, key)
		}
	}
}
