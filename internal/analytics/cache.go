package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is the subset of the Redis client the dashboard cache-aside uses.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	DashboardKey(sellerID, period, day string) string
}

type payloadCache struct {
	store Cache
	ttl   time.Duration
}

func (c *payloadCache) enabled() bool {
	return c != nil && c.store != nil && c.ttl > 0
}

// get reports (nil, nil) on a miss.
func (c *payloadCache) get(ctx context.Context, key string) (*DashboardPayload, error) {
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var payload DashboardPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *payloadCache) set(ctx context.Context, key string, payload *DashboardPayload) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, key, string(encoded), c.ttl)
}
