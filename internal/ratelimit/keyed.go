package ratelimit

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultMaxKeys bounds the number of tracked keys before the cache resets.
const DefaultMaxKeys = 10000

// Keyed is a cache of token bucket limiters, one per key.
type Keyed struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
	maxKeys  int
}

// NewKeyed creates a keyed limiter allowing rps events per second with the
// given burst for every key.
func NewKeyed(rps float64, burst int) *Keyed {
	return &Keyed{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
		maxKeys:  DefaultMaxKeys,
	}
}

// Allow reports whether one more event for key may happen now. When it may
// not, the second result is the suggested wait before retrying, in seconds.
func (k *Keyed) Allow(key string) (bool, int) {
	l := k.get(key)
	r := l.Reserve()
	if !r.OK() {
		return false, 1
	}
	delay := r.Delay()
	if delay == 0 {
		return true, 0
	}
	r.Cancel()
	return false, int(math.Ceil(delay.Seconds()))
}

func (k *Keyed) get(key string) *rate.Limiter {
	k.mu.RLock()
	limiter, exists := k.limiters[key]
	k.mu.RUnlock()

	if exists {
		return limiter
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists = k.limiters[key]; exists {
		return limiter
	}

	if len(k.limiters) >= k.maxKeys {
		k.limiters = make(map[string]*rate.Limiter)
	}

	limiter = rate.NewLimiter(k.rate, k.burst)
	k.limiters[key] = limiter
	return limiter
}

// Interval returns the time it takes one token to refill.
func (k *Keyed) Interval() time.Duration {
	if k.rate <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / float64(k.rate))
}
