package mw

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterEntry pairs a limiter with its last use so idle entries can be
// swept.
type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter hands out one token bucket per client IP. Entries idle for
// longer than sweepAfter are dropped by a background sweep, keeping the map
// bounded on a public endpoint.
type IPRateLimiter struct {
	mu         sync.Mutex
	ips        map[string]*limiterEntry
	r          rate.Limit
	b          int
	sweepAfter time.Duration
}

// NewIPRateLimiter creates a new IPRateLimiter and starts its sweep loop.
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	l := &IPRateLimiter{
		ips:        make(map[string]*limiterEntry),
		r:          r,
		b:          b,
		sweepAfter: 10 * time.Minute,
	}
	go l.sweep()
	return l
}

// Limiter returns the rate limiter for an IP, creating it on first sight.
func (l *IPRateLimiter) Limiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.ips[ip]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.r, l.b)}
		l.ips[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

func (l *IPRateLimiter) sweep() {
	ticker := time.NewTicker(l.sweepAfter)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-l.sweepAfter)
		l.mu.Lock()
		for ip, entry := range l.ips {
			if entry.lastSeen.Before(cutoff) {
				delete(l.ips, ip)
			}
		}
		l.mu.Unlock()
	}
}

// RateLimiter is a middleware for IP-based rate limiting.
func RateLimiter(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewIPRateLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.Limiter(c.ClientIP()).Allow() {
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}
		c.Next()
	}
}
