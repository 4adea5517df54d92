package httpmiddleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ScanLimiter caps how many scans each kiosk may post per minute. Tokens
// refill continuously up to the burst size.
type ScanLimiter struct {
	burst     float64
	perSecond float64
	now       func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	tokens float64
	seen   time.Time
}

// NewScanLimiter allows perMinute scans per kiosk with the given burst.
// perMinute <= 0 disables limiting.
func NewScanLimiter(perMinute, burst int) *ScanLimiter {
	if burst <= 0 {
		burst = perMinute
	}
	return &ScanLimiter{
		burst:     float64(burst),
		perSecond: float64(perMinute) / 60,
		now:       time.Now,
		buckets:   make(map[string]*bucket),
	}
}

// Middleware limits by the key returned from keyFn, falling back to client IP.
func (l *ScanLimiter) Middleware(keyFn func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := ""
		if keyFn != nil {
			key = keyFn(c)
		}
		if key == "" {
			key = c.ClientIP()
		}
		if !l.Allow(key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many scans, slow down"})
			return
		}
		c.Next()
	}
}

// Allow takes one token for key if available.
func (l *ScanLimiter) Allow(key string) bool {
	if l.perSecond <= 0 {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.burst, seen: now}
		l.buckets[key] = b
	}
	b.tokens += now.Sub(b.seen).Seconds() * l.perSecond
	if b.tokens > l.burst {
		b.tokens = l.burst
	}
	b.seen = now
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}
