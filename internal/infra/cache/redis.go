package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/subtrackhq/subtrack/internal/config"
)

func New(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
}

// SummaryCache holds serialized spend summaries keyed by aggregation scope.
// A redis outage degrades to a cache miss; reads never fail because of it.
type SummaryCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

func NewSummaryCache(rdb *redis.Client, cfg *config.Config, log *zap.Logger) *SummaryCache {
	ttl := time.Duration(cfg.Redis.SummaryTTLSec) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &SummaryCache{rdb: rdb, ttl: ttl, log: log}
}

func (c *SummaryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Sugar().Debugw("summary cache get failed", "key", key, "err", err)
		}
		return nil, false
	}
	return raw, true
}

func (c *SummaryCache) Set(ctx context.Context, key string, raw []byte) {
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Sugar().Debugw("summary cache set failed", "key", key, "err", err)
	}
}

// Invalidate drops the cached summaries for the given scopes after a write.
func (c *SummaryCache) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Sugar().Debugw("summary cache invalidate failed", "keys", keys, "err", err)
	}
}
