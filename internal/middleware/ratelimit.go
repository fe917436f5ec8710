package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jobboard-dev/jobboard/internal/apperrors"
	"golang.org/x/time/rate"
)

// ClientLimiter keeps one token bucket per client key. Buckets that have
// refilled completely are dropped on a periodic sweep, so the map only holds
// clients seen within roughly one refill window.
type ClientLimiter struct {
	mu         sync.Mutex
	m          map[string]*rate.Limiter
	r          rate.Limit
	b          int
	now        func() time.Time
	sweepEvery time.Duration
	lastSweep  time.Time
}

func NewClientLimiter(reqPerSec float64, burst int) *ClientLimiter {
	return &ClientLimiter{
		m:          make(map[string]*rate.Limiter),
		r:          rate.Limit(reqPerSec),
		b:          burst,
		now:        time.Now,
		sweepEvery: time.Minute,
	}
}

func (cl *ClientLimiter) limiterFor(key string, now time.Time) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if now.Sub(cl.lastSweep) >= cl.sweepEvery {
		cl.sweep(now)
	}

	if lim, ok := cl.m[key]; ok {
		return lim
	}
	lim := rate.NewLimiter(cl.r, cl.b)
	cl.m[key] = lim
	return lim
}

// sweep drops full buckets; a fresh limiter behaves identically. Callers hold mu.
func (cl *ClientLimiter) sweep(now time.Time) {
	for key, lim := range cl.m {
		if lim.TokensAt(now) >= float64(cl.b) {
			delete(cl.m, key)
		}
	}
	cl.lastSweep = now
}

func (cl *ClientLimiter) Allow(key string) bool {
	now := cl.now()
	return cl.limiterFor(key, now).AllowN(now, 1)
}

// Len reports how many clients are currently tracked.
func (cl *ClientLimiter) Len() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return len(cl.m)
}

// RateLimit rejects requests over the per-IP budget with 429.
func RateLimit(limiter *ClientLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter != nil && !limiter.Allow(c.ClientIP()) {
			apperrors.HandleError(c, apperrors.New(apperrors.CodeRateLimited, "Too many requests, please try again later", http.StatusTooManyRequests))
			return
		}
		c.Next()
	}
}
