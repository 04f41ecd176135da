package registry

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"driveguard/internal/assessment"
)

// Cache is a read-through snapshot cache in front of another Client. A hit
// skips the registry entirely; misses and cache failures fall through to the
// wrapped client, so Redis being down only costs latency.
type Cache struct {
	next   Client
	redis  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCache(next Client, rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *Cache {
	return &Cache{next: next, redis: rdb, ttl: ttl, logger: logger}
}

func cacheKey(licenceNumber string) string {
	return "registry:snapshot:" + licenceNumber
}

func (c *Cache) FetchLicence(ctx context.Context, licenceNumber string) (*assessment.LicenceRecord, error) {
	key := cacheKey(licenceNumber)

	cached, err := c.redis.Get(ctx, key).Bytes()
	if err == nil {
		var record assessment.LicenceRecord
		if err := json.Unmarshal(cached, &record); err == nil {
			return &record, nil
		}
		// Corrupt entry: drop it and refetch.
		c.redis.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) && c.logger != nil {
		c.logger.WarnContext(ctx, "registry cache read failed",
			"error", err,
		)
	}

	record, err := c.next.FetchLicence(ctx, licenceNumber)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(record); err == nil {
		if err := c.redis.Set(ctx, key, payload, c.ttl).Err(); err != nil && c.logger != nil {
			c.logger.WarnContext(ctx, "registry cache write failed",
				"error", err,
			)
		}
	}
	return record, nil
}

// Invalidate drops the cached snapshot so the next check refetches.
func (c *Cache) Invalidate(ctx context.Context, licenceNumber string) error {
	return c.redis.Del(ctx, cacheKey(licenceNumber)).Err()
}
