package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig controls the per-client token bucket limiter.
type RateLimitConfig struct {
	// RPS is the sustained number of requests allowed per second per client IP.
	RPS float64

	// Burst is the maximum number of requests allowed in a single burst.
	Burst int
}

// clientLimiter pairs a limiter with its last-seen time so stale entries
// can be evicted.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit returns a gin middleware that limits requests per client IP using
// a token bucket. When the bucket is empty, the request is rejected with:
//
//	429 {"code": 429, "message": "too many requests", "data": null}
//
// Limiters for IPs not seen for ten minutes are evicted to bound memory use.
// The sweep piggybacks on incoming requests, so the middleware owns no
// goroutine and handlers can be constructed and discarded freely.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	var (
		mu        sync.Mutex
		clients   = make(map[string]*clientLimiter)
		lastSweep = time.Now()
	)

	const (
		staleAfter    = 10 * time.Minute
		sweepInterval = time.Minute
	)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		if now.Sub(lastSweep) > sweepInterval {
			for addr, cl := range clients {
				if now.Sub(cl.lastSeen) > staleAfter {
					delete(clients, addr)
				}
			}
			lastSweep = now
		}
		cl, ok := clients[ip]
		if !ok {
			cl = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst)}
			clients[ip] = cl
		}
		cl.lastSeen = now
		mu.Unlock()

		if !cl.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "too many requests",
				"data":    nil,
			})
			return
		}

		c.Next()
	}
}
