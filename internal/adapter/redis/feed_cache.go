package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// FeedCache stores rendered public feed pages. Entries are namespaced by a
// generation counter; Invalidate bumps it so every older page becomes
// unreachable at once and expires on its own TTL.
type FeedCache struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
}

// NewFeedCache creates a feed cache whose entries live for ttl.
func NewFeedCache(client *goredis.Client, prefix string, ttl time.Duration) *FeedCache {
	return &FeedCache{client: client, prefix: prefix, ttl: ttl}
}

// setIfGeneration writes KEYS[2] only while KEYS[1] still holds ARGV[1], so
// a page built before an invalidation cannot land in the new generation.
var setIfGeneration = goredis.NewScript(`
local cur = redis.call('GET', KEYS[1]) or '0'
if cur ~= ARGV[1] then
	return 0
end
if ARGV[3] == '0' then
	redis.call('SET', KEYS[2], ARGV[2])
else
	redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
end
return 1
`)

func (c *FeedCache) generationKey() string {
	return c.prefix + "feed:gen"
}

func (c *FeedCache) entryKey(gen int64, key string) string {
	return fmt.Sprintf("%sfeed:%d:%s", c.prefix, gen, key)
}

// Generation returns the current cache generation. Callers read it before
// loading the data they intend to cache and pass it to Get and Set.
func (c *FeedCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, c.generationKey()).Int64()
	if err != nil && !errors.Is(err, goredis.Nil) {
		return 0, fmt.Errorf("feed cache generation: %w", err)
	}
	return gen, nil
}

// Get returns the value cached for key in generation gen. The second result
// is false on a miss.
func (c *FeedCache) Get(ctx context.Context, gen int64, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, c.entryKey(gen, key)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("feed cache get: %w", err)
	}
	return val, true, nil
}

// Set stores value under key if gen is still the current generation. A
// write for an outdated generation is dropped and reports no error.
func (c *FeedCache) Set(ctx context.Context, gen int64, key string, value []byte) error {
	var ttl int64
	if c.ttl > 0 {
		ttl = max(c.ttl.Milliseconds(), 1)
	}
	keys := []string{c.generationKey(), c.entryKey(gen, key)}
	if err := setIfGeneration.Run(ctx, c.client, keys, strconv.FormatInt(gen, 10), value, ttl).Err(); err != nil {
		return fmt.Errorf("feed cache set: %w", err)
	}
	return nil
}

// Invalidate drops every cached page.
func (c *FeedCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.generationKey()).Err(); err != nil {
		return fmt.Errorf("feed cache invalidate: %w", err)
	}
	return nil
}
