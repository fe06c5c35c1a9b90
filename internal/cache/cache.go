package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a small cache-aside helper over redis. Readers try GetJSON first,
// compute on miss, then SetJSON with their TTL. A nil client degrades to
// pass-through so the app runs without redis.
type Cache struct {
	client *redis.Client
}

func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Key builds a namespaced cache key from an operation name, a scope (user id
// or "admin") and optional query params.
func Key(op, scope string, params ...string) string {
	parts := append([]string{"homeserve", op, scope}, params...)
	return strings.Join(parts, ":")
}

// GetJSON reports whether the key was present and, if so, unmarshals it into
// dest.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil || c.client == nil {
		return false, nil
	}

	raw, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Cache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}
