package state

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// TreeCache persists resolved category tree ids across restarts, keyed by
// marketplace. The taxonomy client's in-process memoization sits in front of
// it; this layer only saves the first fetch after a cold start.
type TreeCache interface {
	GetTreeID(ctx context.Context, marketplace string) (string, error)
	SetTreeID(ctx context.Context, marketplace, treeID string) error
	Invalidate(ctx context.Context, marketplace string) error
}

type redisTreeCache struct {
	redisClient *redis.Client
	keyPrefix   string
}

func NewRedisTreeCache(redisClient *redis.Client) TreeCache {
	return &redisTreeCache{
		redisClient: redisClient,
		keyPrefix:   "relist:taxonomy:tree:",
	}
}

func (c *redisTreeCache) GetTreeID(ctx context.Context, marketplace string) (string, error) {
	val, err := c.redisClient.Get(ctx, c.keyPrefix+marketplace).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil // Nothing cached yet
		}
		return "", fmt.Errorf("failed to get tree id for marketplace %s: %w", marketplace, err)
	}
	return val, nil
}

func (c *redisTreeCache) SetTreeID(ctx context.Context, marketplace, treeID string) error {
	err := c.redisClient.Set(ctx, c.keyPrefix+marketplace, treeID, 0).Err() // No expiration
	if err != nil {
		return fmt.Errorf("failed to set tree id for marketplace %s: %w", marketplace, err)
	}
	return nil
}

func (c *redisTreeCache) Invalidate(ctx context.Context, marketplace string) error {
	err := c.redisClient.Del(ctx, c.keyPrefix+marketplace).Err()
	if err != nil {
		return fmt.Errorf("failed to invalidate tree id for marketplace %s: %w", marketplace, err)
	}
	return nil
}
