package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/clipshift/shorts-ms-go/internal/db"
	"github.com/clipshift/shorts-ms-go/internal/port"
	"github.com/redis/go-redis/v9"
)

type Cache struct {
	client *redis.Client
}

// compile-time check: *Cache must satisfy port.Cache
var _ port.Cache = (*Cache)(nil)

func NewCache(addr, password string) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Cache{client: rdb}
}

func (c *Cache) GetVideoDetails(ctx context.Context, id db.UUID) ([]byte, error) {
	log.Printf("getting entry in cache for video #%s...", id)

	val, err := c.client.Get(ctx, getCacheKey(id.String(), false)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	return val, nil
}

func (c *Cache) GetEtagVideoDetails(ctx context.Context, id db.UUID) (string, error) {
	log.Printf("getting etag entry in cache for video #%s...", id)

	val, err := c.client.Get(ctx, getCacheKey(id.String(), true)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil // cache miss
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}

	return val, nil
}

func (c *Cache) SetVideoDetails(ctx context.Context, id db.UUID, data []byte, validUntil time.Time) {
	log.Printf("creating entry in cache for video #%s, valid until %s...", id, validUntil.Format(time.RFC1123))

	if err := c.client.Set(ctx, getCacheKey(id.String(), false), data, time.Until(validUntil)).Err(); err != nil {
		log.Printf("redis set failed: %v", err)
	}
}

func (c *Cache) SetEtagVideoDetails(ctx context.Context, id db.UUID, etag string, validUntil time.Time) {
	log.Printf("creating etag entry in cache for video #%s...", id)

	if err := c.client.Set(ctx, getCacheKey(id.String(), true), etag, time.Until(validUntil)).Err(); err != nil {
		log.Printf("redis set failed: %v", err)
	}
}

func (c *Cache) DeleteVideoDetails(ctx context.Context, id db.UUID) error {
	log.Printf("deleting entry in cache for video #%s...", id)

	if err := c.client.Del(ctx, getCacheKey(id.String(), false)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func (c *Cache) DeleteEtagVideoDetails(ctx context.Context, id db.UUID) error {
	log.Printf("deleting etag entry in cache for video #%s...", id)

	if err := c.client.Del(ctx, getCacheKey(id.String(), true)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func getCacheKey(id string, etag bool) string {
	if etag {
		return "etag:video:" + id
	}
	return "video:" + id
}
