package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter counts requests per key over a fixed window. Entries for idle
// keys are removed by a periodic sweep so the map does not grow without
// bound. Single-instance only: a multi-instance deployment needs the
// counters in a shared store instead.
type Limiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	entries map[string]*entry

	now func() time.Time
}

type entry struct {
	count       int
	windowStart time.Time
}

func New(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:   limit,
		window:  window,
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Allow reports whether the key is under its limit for the current window
// and records the request if so.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[key]
	if !ok || now.Sub(e.windowStart) >= l.window {
		l.entries[key] = &entry{count: 1, windowStart: now}
		return true
	}
	if e.count >= l.limit {
		return false
	}
	e.count++
	return true
}

// Run sweeps expired entries until ctx is cancelled.
func (l *Limiter) Run(ctx context.Context) {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

func (l *Limiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, e := range l.entries {
		if now.Sub(e.windowStart) >= l.window {
			delete(l.entries, key)
		}
	}
}
