// Package ratelimit holds the in-process limiters: a fixed-window attempt
// counter used for logins when Redis is not configured, and a keyed token
// bucket cache used to throttle anonymous endpoints.
package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/heartmarshall/newsroom-backend/internal/domain"
)

// FixedWindow counts attempts per key in windows that open on the first
// attempt and close after a fixed duration. More than max attempts in an
// open window are rejected with a *domain.RateLimitError.
type FixedWindow struct {
	max    int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*counter
	stop    chan struct{}
	once    sync.Once
}

type counter struct {
	count   int
	resetAt time.Time
}

// NewFixedWindow creates a limiter with a background sweep of closed
// windows. Call Stop on shutdown.
func NewFixedWindow(max int, window, sweepInterval time.Duration) *FixedWindow {
	fw := &FixedWindow{
		max:     max,
		window:  window,
		now:     time.Now,
		windows: make(map[string]*counter),
		stop:    make(chan struct{}),
	}
	go fw.sweep(sweepInterval)
	return fw
}

// Check records one attempt for key.
func (fw *FixedWindow) Check(_ context.Context, key string) error {
	now := fw.now()

	fw.mu.Lock()
	defer fw.mu.Unlock()

	c, ok := fw.windows[key]
	if !ok || !now.Before(c.resetAt) {
		c = &counter{resetAt: now.Add(fw.window)}
		fw.windows[key] = c
	}
	c.count++

	if c.count > fw.max {
		return &domain.RateLimitError{RetryAfterSeconds: retryAfter(c.resetAt.Sub(now))}
	}
	return nil
}

// Stop terminates the background sweep goroutine.
func (fw *FixedWindow) Stop() {
	fw.once.Do(func() { close(fw.stop) })
}

func (fw *FixedWindow) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-fw.stop:
			return
		case <-ticker.C:
			fw.removeExpired()
		}
	}
}

func (fw *FixedWindow) removeExpired() {
	now := fw.now()
	fw.mu.Lock()
	defer fw.mu.Unlock()
	for key, c := range fw.windows {
		if !now.Before(c.resetAt) {
			delete(fw.windows, key)
		}
	}
}

func (fw *FixedWindow) size() int {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	return len(fw.windows)
}

// retryAfter rounds a remaining duration up to whole seconds, minimum 1.
func retryAfter(d time.Duration) int {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}
