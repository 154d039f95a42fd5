// README: Redis-backed quote cache with TTL expiry.
package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisQuoteCache struct {
	rdb *redis.Client
}

func NewQuoteCache(rdb *redis.Client) *RedisQuoteCache {
	return &RedisQuoteCache{rdb: rdb}
}

func quoteKey(id string) string { return "quote:" + id }

func (c *RedisQuoteCache) Put(ctx context.Context, q TripQuote, ttl time.Duration) error {
	raw, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("quote cache: marshal: %w", err)
	}
	return c.rdb.Set(ctx, quoteKey(q.ID), raw, ttl).Err()
}

// Get returns ErrQuoteExpired for both unknown and TTL-evicted quotes; the
// caller cannot tell the difference and should not need to.
func (c *RedisQuoteCache) Get(ctx context.Context, id string) (TripQuote, error) {
	raw, err := c.rdb.Get(ctx, quoteKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return TripQuote{}, ErrQuoteExpired
	}
	if err != nil {
		return TripQuote{}, fmt.Errorf("quote cache: get: %w", err)
	}
	var q TripQuote
	if err := json.Unmarshal(raw, &q); err != nil {
		return TripQuote{}, fmt.Errorf("quote cache: unmarshal: %w", err)
	}
	return q, nil
}
