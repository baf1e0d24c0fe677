package services

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// OtpThrottle limits how often a single email can request a login code.
type OtpThrottle interface {
	Allow(email string) bool
}

// tbEntry holds one email's token bucket and the last time it was touched.
type tbEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// TokenBucketThrottle is an in-memory per-email token bucket. Buckets are
// created on demand and idle ones are evicted opportunistically during
// lookups to bound memory. Safe for concurrent use. Process-local: scaled-out
// deployments need a shared store to enforce a global limit.
type TokenBucketThrottle struct {
	rps   rate.Limit
	burst int

	mu      sync.Mutex
	buckets map[string]*tbEntry

	ttl      time.Duration
	cleanupN uint64
}

// NewTokenBucketThrottle builds a throttle replenishing rps tokens per second
// with the given burst. burst <= 0 is coerced to 1.
func NewTokenBucketThrottle(rps float64, burst int) *TokenBucketThrottle {
	if burst <= 0 {
		burst = 1
	}
	return &TokenBucketThrottle{
		rps:     rate.Limit(rps),
		burst:   burst,
		buckets: make(map[string]*tbEntry),
		ttl:     30 * time.Minute,
	}
}

// Allow consumes one token for email, reporting whether the request may run.
func (t *TokenBucketThrottle) Allow(email string) bool {
	now := time.Now()

	t.mu.Lock()
	// GC before touching the requested bucket so a stale one can be evicted
	// even when it is the one being fetched.
	t.cleanupN++
	if t.cleanupN >= 5000 {
		for k, e := range t.buckets {
			if now.Sub(e.lastSeen) >= t.ttl {
				delete(t.buckets, k)
			}
		}
		t.cleanupN = 0
	}

	e, ok := t.buckets[email]
	if !ok {
		e = &tbEntry{limiter: rate.NewLimiter(t.rps, t.burst)}
		t.buckets[email] = e
	}
	e.lastSeen = now
	lim := e.limiter
	t.mu.Unlock()

	return lim.Allow()
}
