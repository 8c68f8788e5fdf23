package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/shift-scheduler/pkg/errors"
)

// DemandCache memoizes Solve outputs for a given solve-input fingerprint,
// so repeated requests for the same month/roster skip CP-SAT entirely
// (spec §5 "identical inputs may be served from cache without re-solving"),
// grounded on internal/repository/cache_repository.go's Redis wrapper.
type DemandCache struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

// NewDemandCache constructs a demand cache bound to the given TTL.
func NewDemandCache(client *redis.Client, logger *zap.Logger, ttl time.Duration) *DemandCache {
	return &DemandCache{client: client, logger: logger, ttl: ttl}
}

func demandCacheKey(fingerprint string) string {
	return fmt.Sprintf("solver:demand:%s", fingerprint)
}

// Get retrieves a cached Output for the given fingerprint into dest.
// Returns appErrors.ErrCacheMiss if nothing is cached, including when the
// cache itself is unavailable.
func (c *DemandCache) Get(ctx context.Context, fingerprint string, dest interface{}) error {
	if c == nil || c.client == nil {
		return appErrors.ErrCacheMiss
	}

	raw, err := c.client.Get(ctx, demandCacheKey(fingerprint)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return appErrors.ErrCacheMiss
		}
		if c.logger != nil {
			c.logger.Warn("demand cache get failed", zap.String("fingerprint", fingerprint), zap.Error(err))
		}
		return appErrors.ErrCacheMiss
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("unmarshal cached solve output: %w", err)
	}

	return nil
}

// Set stores a solve Output under its fingerprint with the cache's TTL.
func (c *DemandCache) Set(ctx context.Context, fingerprint string, value interface{}) error {
	if c == nil || c.client == nil {
		return nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal solve output for cache: %w", err)
	}

	if err := c.client.Set(ctx, demandCacheKey(fingerprint), payload, c.ttl).Err(); err != nil {
		if c.logger != nil {
			c.logger.Warn("demand cache set failed", zap.String("fingerprint", fingerprint), zap.Error(err))
		}
		return nil
	}

	return nil
}

// Close releases the underlying Redis connection if present.
func (c *DemandCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
