package geo

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "geo:city:"

// CachedLocator memoizes city lookups in Redis. Cache failures never fail a lookup.
type CachedLocator struct {
	next   Locator
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedLocator wraps next. A nil client or zero ttl disables caching.
func NewCachedLocator(next Locator, client *redis.Client, ttl time.Duration, logger *zap.Logger) Locator {
	if client == nil || ttl <= 0 {
		return next
	}
	return &CachedLocator{next: next, client: client, ttl: ttl, logger: logger}
}

// City returns the cached city for ip or resolves and stores it.
func (c *CachedLocator) City(ctx context.Context, ip string) (string, error) {
	key := cacheKeyPrefix + publicIP(ip)

	city, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil && city != "":
		return city, nil
	case err != nil && !errors.Is(err, redis.Nil):
		c.logger.Warn("geolocation cache read failed", zap.Error(err))
	}

	city, err = c.next.City(ctx, ip)
	if err != nil {
		return "", err
	}

	if err := c.client.Set(ctx, key, city, c.ttl).Err(); err != nil {
		c.logger.Warn("geolocation cache write failed", zap.Error(err))
	}
	return city, nil
}
