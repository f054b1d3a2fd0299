package httpapi

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// chatLimiter rate-limits webhook traffic per chat.
type chatLimiter struct {
	mu          sync.Mutex
	limiters    map[string]*rate.Limiter
	lastCleanup time.Time
	limit       rate.Limit
	burst       int
}

func newChatLimiter(perSecond float64, burst int) *chatLimiter {
	return &chatLimiter{
		limiters:    make(map[string]*rate.Limiter),
		lastCleanup: time.Now(),
		limit:       rate.Limit(perSecond),
		burst:       burst,
	}
}

func (c *chatLimiter) Allow(chat string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	// drop idle limiters once an hour
	if time.Since(c.lastCleanup) > time.Hour {
		c.limiters = make(map[string]*rate.Limiter)
		c.lastCleanup = time.Now()
	}

	limiter, ok := c.limiters[chat]
	if !ok {
		limiter = rate.NewLimiter(c.limit, c.burst)
		c.limiters[chat] = limiter
	}
	return limiter.Allow()
}
