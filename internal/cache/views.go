package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ViewCache stores rendered read-views keyed by route path. Mutations signal
// staleness by deleting the key; the next read recomputes and refills it.
type ViewCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewViewCache(client *redis.Client, ttl time.Duration) *ViewCache {
	return &ViewCache{client: client, ttl: ttl}
}

func viewKey(path string) string {
	return "views:" + path
}

// Get returns the cached view body for path, or ok=false on a miss.
func (c *ViewCache) Get(ctx context.Context, path string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, viewKey(path)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cached view: %w", err)
	}
	return data, true, nil
}

func (c *ViewCache) Set(ctx context.Context, path string, body []byte) error {
	if err := c.client.Set(ctx, viewKey(path), body, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cached view: %w", err)
	}
	return nil
}

// Invalidate marks the cached view of path stale. It must be signaled before
// any redirect is issued so a follow-up read never observes stale data.
func (c *ViewCache) Invalidate(ctx context.Context, path string) error {
	if err := c.client.Del(ctx, viewKey(path)).Err(); err != nil {
		return fmt.Errorf("invalidate cached view: %w", err)
	}
	return nil
}
