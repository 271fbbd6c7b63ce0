package redis

import (
	"context"
	"fmt"
	"math"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/newsroom-backend/internal/domain"
)

// LoginLimiter is a fixed-window attempt counter shared by every server
// instance. The window opens on the first attempt for a key.
type LoginLimiter struct {
	client *goredis.Client
	prefix string
	max    int
	window time.Duration
}

// NewLoginLimiter creates a limiter allowing max attempts per window.
func NewLoginLimiter(client *goredis.Client, prefix string, max int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		client: client,
		prefix: prefix,
		max:    max,
		window: window,
	}
}

func (l *LoginLimiter) key(identity string) string {
	return l.prefix + "login:" + identity
}

// Check records one attempt for identity and returns a *domain.RateLimitError
// once the window's budget is exhausted.
func (l *LoginLimiter) Check(ctx context.Context, identity string) error {
	key := l.key(identity)

	var incr *goredis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, l.window)
		return nil
	})
	if err != nil {
		return fmt.Errorf("login limiter: %w", err)
	}

	if incr.Val() <= int64(l.max) {
		return nil
	}

	ttl, err := l.client.TTL(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("login limiter ttl: %w", err)
	}
	return &domain.RateLimitError{RetryAfterSeconds: retryAfter(ttl, l.window)}
}

// retryAfter converts a key TTL into whole seconds. Negative TTLs mean the
// key has no expiry or vanished in between; report the full window then.
func retryAfter(ttl, window time.Duration) int {
	if ttl <= 0 {
		ttl = window
	}
	secs := int(math.Ceil(ttl.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}
