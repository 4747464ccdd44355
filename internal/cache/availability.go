package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"atelier/internal/domain"
)

// AvailabilityCache keeps computed day availability in Redis so repeated
// widget polls for the same artist/service/date don't hit Postgres and the
// external calendars every time. A nil cache is a no-op; callers never need
// to branch on whether caching is configured.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewAvailabilityCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *AvailabilityCache {
	return &AvailabilityCache{client: client, ttl: ttl, logger: logger}
}

func availabilityKey(artistID, serviceID int64, date string) string {
	return fmt.Sprintf("availability:%d:%d:%s", artistID, serviceID, date)
}

func (c *AvailabilityCache) Get(ctx context.Context, artistID, serviceID int64, date string) (*domain.DayAvailability, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, availabilityKey(artistID, serviceID, date)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("availability cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var day domain.DayAvailability
	if err := json.Unmarshal(raw, &day); err != nil {
		c.logger.Warn("availability cache entry corrupt, dropping", zap.Error(err))
		c.client.Del(ctx, availabilityKey(artistID, serviceID, date))
		return nil, false
	}

	return &day, true
}

func (c *AvailabilityCache) Set(ctx context.Context, artistID, serviceID int64, date string, day *domain.DayAvailability) {
	if c == nil || c.client == nil || day == nil {
		return
	}

	raw, err := json.Marshal(day)
	if err != nil {
		c.logger.Warn("encoding availability for cache failed", zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, availabilityKey(artistID, serviceID, date), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("availability cache write failed", zap.Error(err))
	}
}

// InvalidateArtistDate drops every cached availability for an artist on a
// date, regardless of service. Called after any booking or status change
// that touches the artist's day.
func (c *AvailabilityCache) InvalidateArtistDate(ctx context.Context, artistID int64, date string) {
	if c == nil || c.client == nil {
		return
	}

	pattern := fmt.Sprintf("availability:%d:*:%s", artistID, date)
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Warn("availability cache invalidation failed", zap.String("key", iter.Val()), zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("availability cache scan failed", zap.Error(err))
	}
}
