package vehicle

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"quickmechanic/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	vehicleCachePrefix = "vehicle:plate:"
	vehicleCacheTTL    = 24 * time.Hour
)

// CachedLookup memoises positive lookups in Redis. Misses and errors are not cached.
type CachedLookup struct {
	next   Lookup
	client *redis.Client
	logger *zap.Logger
}

func NewCachedLookup(next Lookup, client *redis.Client, logger *zap.Logger) *CachedLookup {
	return &CachedLookup{next: next, client: client, logger: logger}
}

func (c *CachedLookup) LookupPlate(ctx context.Context, plate string) (*models.Vehicle, error) {
	key := vehicleCachePrefix + plate

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var v models.Vehicle
		if err := json.Unmarshal(data, &v); err == nil {
			return &v, nil
		}
		c.logger.Warn("discarding corrupt vehicle cache entry", zap.String("plate", plate))
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("vehicle cache read failed", zap.String("plate", plate), zap.Error(err))
	}

	v, err := c.next.LookupPlate(ctx, plate)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrNoMatch
	}

	if data, err := json.Marshal(v); err == nil {
		if err := c.client.Set(ctx, key, data, vehicleCacheTTL).Err(); err != nil {
			c.logger.Warn("vehicle cache write failed", zap.String("plate", plate), zap.Error(err))
		}
	}
	return v, nil
}
