package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/studycollab/collab-back/internal/models"
)

const (
	roleTTL  = 10 * time.Minute
	statsTTL = 24 * time.Hour
	statsKey = "user-stats"
)

// Cache is an optional redis layer for role lookups and the aggregate
// stats snapshot. A nil client disables it; every method degrades to a
// miss so callers always fall back to the database.
type Cache struct {
	rdb *redis.Client
}

func New(addr, password string) (*Cache, error) {
	if addr == "" {
		return &Cache{}, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, err
	}
	return &Cache{rdb: rdb}, nil
}

func (c *Cache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func (c *Cache) Role(ctx context.Context, email string) (string, bool, error) {
	if c == nil || c.rdb == nil {
		return "", false, nil
	}
	value, err := c.rdb.Get(ctx, roleKey(email)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (c *Cache) SetRole(ctx context.Context, email, role string) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Set(ctx, roleKey(email), role, roleTTL).Err()
}

// InvalidateRole drops the cached role so an admin role change takes
// effect on the next request.
func (c *Cache) InvalidateRole(ctx context.Context, email string) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, roleKey(email)).Err()
}

func (c *Cache) Stats(ctx context.Context) (*models.UserStats, bool, error) {
	if c == nil || c.rdb == nil {
		return nil, false, nil
	}
	raw, err := c.rdb.Get(ctx, statsKey).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var stats models.UserStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return nil, false, err
	}
	return &stats, true, nil
}

func (c *Cache) SetStats(ctx context.Context, stats *models.UserStats) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, statsKey, raw, statsTTL).Err()
}

func roleKey(email string) string {
	return fmt.Sprintf("role:%s", email)
}
