package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter defines the interface for rate limiting
type Limiter interface {
	Allow(sessionID string) bool
}

// InMemoryLimiter is an implementation of Limiter stored in memory
type InMemoryLimiter struct {
	sessions map[string]*rate.Limiter
	mu       sync.Mutex
	r        rate.Limit // Rate of adding tokens (e.g., 1 token every 5 seconds)
	b        int        // Bucket size (e.g., can publish 3 times in a row)
}

// NewInMemoryLimiter creates a new rate limiter
// Example: NewInMemoryLimiter(1, 5*time.Second, 3) -> allows 1 publish every 5 seconds, burst of 3
func NewInMemoryLimiter(requests int, per time.Duration, burst int) Limiter {
	return &InMemoryLimiter{
		sessions: make(map[string]*rate.Limiter),
		r:        rate.Every(per / time.Duration(requests)),
		b:        burst,
	}
}

// Allow checks if a session is allowed to perform an action
func (l *InMemoryLimiter) Allow(sessionID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.sessions[sessionID]
	if !exists {
		limiter = rate.NewLimiter(l.r, l.b)
		l.sessions[sessionID] = limiter
	}

	return limiter.Allow()
}
