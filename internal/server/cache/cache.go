// Package cache keeps a read-through copy of live file nodes in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/filemeta/internal/server/models"
	"github.com/redis/go-redis/v9"
)

var ErrMiss = errors.New("cache miss")

const keyPrefix = "filemeta:file:"

// An invalidated entry is replaced by a tombstone for tombstoneTTL. Set only
// writes absent keys, so a row read before the invalidation cannot be cached
// while the tombstone lives.
const (
	tombstone    = "-"
	tombstoneTTL = 30 * time.Second
)

// kv is the subset of redis.Cmdable the cache needs.
type kv interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
}

type RedisFileCache struct {
	client kv
	ttl    time.Duration
}

func NewRedisFileCache(client kv, ttl time.Duration) *RedisFileCache {
	return &RedisFileCache{client: client, ttl: ttl}
}

// Connect builds a client for addr and pings it.
func Connect(ctx context.Context, addr string, ttl time.Duration) (*RedisFileCache, *redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return NewRedisFileCache(client, ttl), client, nil
}

func fileKey(id string) string { return keyPrefix + id }

// Get returns ErrMiss when id is not cached or was invalidated recently.
func (c *RedisFileCache) Get(ctx context.Context, id string) (*models.File, error) {
	raw, err := c.client.Get(ctx, fileKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	if string(raw) == tombstone {
		return nil, ErrMiss
	}
	var f models.File
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode cached file %s: %w", id, err)
	}
	return &f, nil
}

func (c *RedisFileCache) Set(ctx context.Context, f *models.File) error {
	raw, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return c.client.SetNX(ctx, fileKey(f.ID), raw, c.ttl).Err()
}

func (c *RedisFileCache) Invalidate(ctx context.Context, ids ...string) error {
	for _, id := range ids {
		if err := c.client.Set(ctx, fileKey(id), tombstone, tombstoneTTL).Err(); err != nil {
			return fmt.Errorf("invalidate %s: %w", id, err)
		}
	}
	return nil
}

// Nop never caches anything.
type Nop struct{}

func (Nop) Get(context.Context, string) (*models.File, error) { return nil, ErrMiss }
func (Nop) Set(context.Context, *models.File) error           { return nil }
func (Nop) Invalidate(context.Context, ...string) error       { return nil }
