package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Rate limiting defaults.
const (
	DefaultRequestsPerSecond = 5.0
	DefaultBurstSize         = 10

	// defaultBackoff applies when a 429 response has no usable Retry-After.
	defaultBackoff = 5 * time.Second
	// maxBackoff caps server-requested waits so a refresh cannot stall indefinitely.
	maxBackoff = 30 * time.Second
)

// RateLimiter provides rate limiting for API requests.
// It uses a token bucket algorithm with backoff after 429 responses.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
}

// NewRateLimiter creates a rate limiter. Non-positive values use the defaults.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = DefaultRequestsPerSecond
	}
	if burst <= 0 {
		burst = DefaultBurstSize
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Wait blocks until a request can be made without exceeding the rate limit.
// It also respects any backoff period set by Backoff.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if wait := time.Until(retryAt); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return r.limiter.Wait(ctx)
}

// Backoff delays further requests by d, capped at maxBackoff.
// A negative d applies the default backoff.
func (r *RateLimiter) Backoff(d time.Duration) {
	if d < 0 {
		d = defaultBackoff
	}
	if d > maxBackoff {
		d = maxBackoff
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.retryAt = time.Now().Add(d)
}

// retryAfter parses a Retry-After header given in seconds or as an HTTP date.
// Returns -1 when the header is missing or unparseable.
func retryAfter(header string, now time.Time) time.Duration {
	header = strings.TrimSpace(header)
	if header == "" {
		return -1
	}
	if secs, err := strconv.Atoi(header); err == nil {
		if secs < 0 {
			return -1
		}
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		if d := t.Sub(now); d > 0 {
			return d
		}
		return 0
	}
	return -1
}
