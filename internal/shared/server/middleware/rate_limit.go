package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"resume-builder/internal/shared/server/respond"
)

// Bucket is a token bucket refilling PerSecond tokens up to Burst.
type Bucket struct {
	PerSecond float64
	Burst     int
}

func (b Bucket) disabled() bool {
	return b.PerSecond <= 0 || b.Burst <= 0
}

// RateLimitPolicy maps a request to a named bucket. Requests classified into
// a name missing from Buckets pass through.
type RateLimitPolicy struct {
	Buckets  map[string]Bucket
	Classify func(*gin.Context) string
}

// idleAfter is how long an untouched principal bucket is kept around.
const idleAfter = 30 * time.Minute

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one bucket per principal and bucket name.
type RateLimiter struct {
	mu        sync.Mutex
	entries   map[string]*limiterEntry
	now       func() time.Time
	lastSweep time.Time
}

// NewRateLimiter builds a limiter; now is injectable for tests.
func NewRateLimiter(now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{entries: make(map[string]*limiterEntry), now: now}
}

// RateLimit enforces policy per signed-in user, falling back to client IP.
func RateLimit(limiter *RateLimiter, policy RateLimitPolicy) gin.HandlerFunc {
	if limiter == nil {
		limiter = NewRateLimiter(nil)
	}
	return func(c *gin.Context) {
		name := ""
		if policy.Classify != nil {
			name = strings.TrimSpace(policy.Classify(c))
		}
		bucket, ok := policy.Buckets[name]
		if !ok {
			c.Next()
			return
		}

		principal := UserIDFromContext(c)
		if principal == "" {
			principal = c.ClientIP()
		}
		wait := limiter.Reserve(principal+"|"+name, bucket)
		if wait == 0 {
			c.Next()
			return
		}

		waitMs := wait.Milliseconds()
		if waitMs < 1 {
			waitMs = 1
		}
		c.Header("Retry-After", strconv.FormatInt((waitMs+999)/1000, 10))
		respond.Error(c, http.StatusTooManyRequests, "rate_limited", "Too many requests. Please slow down.", gin.H{
			"bucket":       name,
			"retryAfterMs": waitMs,
		})
	}
}

// Reserve takes one token from key's bucket. It returns zero when the request
// may proceed and otherwise the time until a token becomes available.
func (l *RateLimiter) Reserve(key string, b Bucket) time.Duration {
	if l == nil || b.disabled() {
		return 0
	}
	now := l.now()

	l.mu.Lock()
	l.sweepLocked(now)
	entry, ok := l.entries[key]
	if !ok {
		entry = &limiterEntry{lim: rate.NewLimiter(rate.Limit(b.PerSecond), b.Burst)}
		l.entries[key] = entry
	}
	entry.lastSeen = now
	l.mu.Unlock()

	r := entry.lim.ReserveN(now, 1)
	if !r.OK() {
		return time.Second
	}
	delay := r.DelayFrom(now)
	if delay > 0 {
		r.CancelAt(now)
	}
	return delay
}

// Len reports how many principal buckets are tracked.
func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *RateLimiter) sweepLocked(now time.Time) {
	if now.Sub(l.lastSweep) < idleAfter {
		return
	}
	l.lastSweep = now
	for key, entry := range l.entries {
		if now.Sub(entry.lastSeen) >= idleAfter {
			delete(l.entries, key)
		}
	}
}
