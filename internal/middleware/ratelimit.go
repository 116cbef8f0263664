package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// SlidingWindowLimiter allows at most limit hits per key within window.
type SlidingWindowLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewSlidingWindowLimiter(limit int, window time.Duration) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		hits:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

func prune(times []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(times) && !times[i].After(cutoff) {
		i++
	}
	return times[i:]
}

func (r *SlidingWindowLimiter) Allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	valid := prune(r.hits[key], now.Add(-r.window))
	if len(valid) >= r.limit {
		r.hits[key] = valid
		return false
	}
	r.hits[key] = append(valid, now)
	return true
}

// Sweep drops keys with no hits inside the window.
func (r *SlidingWindowLimiter) Sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-r.window)
	for k, times := range r.hits {
		if valid := prune(times, cutoff); len(valid) == 0 {
			delete(r.hits, k)
		} else {
			r.hits[k] = valid
		}
	}
}

// RunSweeper calls Sweep every interval until ctx is done.
func (r *SlidingWindowLimiter) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			r.Sweep()
		}
	}
}

// RateLimit limits by client IP. Routes listed in exempt are not limited.
func RateLimit(limiter *SlidingWindowLimiter, exempt ...string) gin.HandlerFunc {
	skip := make(map[string]bool, len(exempt))
	for _, p := range exempt {
		skip[p] = true
	}
	return func(c *gin.Context) {
		if skip[c.FullPath()] {
			c.Next()
			return
		}
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"success": false, "message": "Muitas requisições, tente novamente em instantes"})
			return
		}
		c.Next()
	}
}
