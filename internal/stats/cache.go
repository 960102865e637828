package stats

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jonathan/creator-studio/internal/types"
)

// SnapshotCache memoizes computed snapshots. Implementations are best
// effort: a broken cache degrades to recomputation, never to an error.
type SnapshotCache interface {
	Get(ctx context.Context, creatorID uuid.UUID) (*types.CreatorStatsSnapshot, bool)
	Set(ctx context.Context, creatorID uuid.UUID, snapshot *types.CreatorStatsSnapshot)
	Invalidate(ctx context.Context, creatorID uuid.UUID)
}

// DefaultCacheTTL keeps snapshots fresh enough for dashboard polling without
// hammering the aggregation queries.
const DefaultCacheTTL = 2 * time.Minute

// RedisCache stores snapshots as JSON under creator-stats:<id>.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

func snapshotKey(creatorID uuid.UUID) string {
	return "creator-stats:" + creatorID.String()
}

func (c *RedisCache) Get(ctx context.Context, creatorID uuid.UUID) (*types.CreatorStatsSnapshot, bool) {
	data, err := c.client.Get(ctx, snapshotKey(creatorID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("stats cache read failed: %v", err)
		}
		return nil, false
	}

	var snapshot types.CreatorStatsSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		log.Printf("stats cache entry corrupt, dropping: %v", err)
		c.Invalidate(ctx, creatorID)
		return nil, false
	}
	return &snapshot, true
}

func (c *RedisCache) Set(ctx context.Context, creatorID uuid.UUID, snapshot *types.CreatorStatsSnapshot) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		log.Printf("stats cache encode failed: %v", err)
		return
	}
	if err := c.client.Set(ctx, snapshotKey(creatorID), data, c.ttl).Err(); err != nil {
		log.Printf("stats cache write failed: %v", err)
	}
}

func (c *RedisCache) Invalidate(ctx context.Context, creatorID uuid.UUID) {
	if err := c.client.Del(ctx, snapshotKey(creatorID)).Err(); err != nil {
		log.Printf("stats cache invalidate failed: %v", err)
	}
}
