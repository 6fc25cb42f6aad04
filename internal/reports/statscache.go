package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"ms-attendance/internal/models"
)

// StatsCache keeps computed event statistics in Redis behind a short TTL.
// Stats tolerate brief staleness; the cache is a read shield for report
// polling, not a source of truth.
type StatsCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{Client: client, TTL: ttl}
}

func statsKey(eventID int64) string {
	return fmt.Sprintf("stats:event:%d", eventID)
}

// Get returns the cached stats, or (nil, nil) on a miss. A nil cache or
// a Redis failure is treated as a miss so reports never depend on Redis
// availability.
func (c *StatsCache) Get(ctx context.Context, eventID int64) (*models.EventStats, error) {
	if c == nil || c.Client == nil {
		return nil, nil
	}
	raw, err := c.Client.Get(ctx, statsKey(eventID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var stats models.EventStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *StatsCache) Set(ctx context.Context, stats *models.EventStats) error {
	if c == nil || c.Client == nil {
		return nil
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, statsKey(stats.EventID), raw, c.TTL).Err()
}
