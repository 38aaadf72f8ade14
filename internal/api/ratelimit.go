package api

import (
	"sync"
	"time"
)

// RateLimiter is a sliding-window limiter keyed by an arbitrary string.
type RateLimiter struct {
	requests map[string][]time.Time
	mutex    sync.Mutex
	limit    int
	window   time.Duration
	now      func() time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}
}

// Allow records an attempt for key and reports whether it fits in the window.
// Rejected attempts are not recorded.
func (r *RateLimiter) Allow(key string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	now := r.now()
	windowStart := now.Add(-r.window)

	var validRequests []time.Time
	for _, t := range r.requests[key] {
		if t.After(windowStart) {
			validRequests = append(validRequests, t)
		}
	}

	if len(validRequests) >= r.limit {
		r.requests[key] = validRequests
		return false
	}

	r.requests[key] = append(validRequests, now)
	r.prune(windowStart)
	return true
}

// prune drops keys whose attempts have all left the window so the map does not
// grow with every client ever seen. Must be called with the mutex held.
func (r *RateLimiter) prune(windowStart time.Time) {
	for key, times := range r.requests {
		if len(times) == 0 || !times[len(times)-1].After(windowStart) {
			delete(r.requests, key)
		}
	}
}
