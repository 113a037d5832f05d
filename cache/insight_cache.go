package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"
)

// CachedExplanation is a completion stored against the context it explains
type CachedExplanation struct {
	Model       string    `json:"model"`
	Explanation string    `json:"explanation"`
	GeneratedAt time.Time `json:"generated_at"`
}

// InsightCache reuses explanations for an unchanged insight context, so re-running the
// job on the same data does not spend another completion call.
type InsightCache struct {
	redis *RedisClient
}

// NewInsightCache creates a new insight cache. A nil client yields a cache that never hits.
func NewInsightCache(redis *RedisClient) *InsightCache {
	return &InsightCache{redis: redis}
}

// Enabled reports whether a Redis connection backs the cache
func (c *InsightCache) Enabled() bool {
	return c != nil && c.redis != nil
}

// GetExplanation returns a cached explanation for the entity/context hash
func (c *InsightCache) GetExplanation(ctx context.Context, entity, dataHash string) (*CachedExplanation, bool) {
	if !c.Enabled() {
		return nil, false
	}

	var cached CachedExplanation
	if err := c.redis.Get(ctx, explanationKey(entity, dataHash), &cached); err != nil {
		return nil, false
	}
	return &cached, true
}

// SetExplanation caches an explanation for ttl
func (c *InsightCache) SetExplanation(ctx context.Context, entity, dataHash string, cached *CachedExplanation, ttl time.Duration) error {
	if !c.Enabled() {
		return fmt.Errorf("redis client not available")
	}
	return c.redis.Set(ctx, explanationKey(entity, dataHash), cached, ttl)
}

func explanationKey(entity, dataHash string) string {
	return fmt.Sprintf("insight:explanation:%s:%s", entity, dataHash)
}

// GenerateDataHash fingerprints a value by its JSON encoding
func GenerateDataHash(data interface{}) string {
	jsonData, _ := json.Marshal(data)
	hash := sha256.Sum256(jsonData)
	return fmt.Sprintf("%x", hash[:8])
}
