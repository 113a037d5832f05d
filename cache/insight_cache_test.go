package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDataHash(t *testing.T) {
	a := map[string]interface{}{"next_month": "2024-06", "predicted": 600}
	b := map[string]interface{}{"predicted": 600, "next_month": "2024-06"}
	c := map[string]interface{}{"next_month": "2024-07", "predicted": 600}

	assert.Equal(t, GenerateDataHash(a), GenerateDataHash(b), "map key order must not matter")
	assert.NotEqual(t, GenerateDataHash(a), GenerateDataHash(c))
	assert.Len(t, GenerateDataHash(a), 16)
}

func TestDisabledCache(t *testing.T) {
	ctx := context.Background()
	c := NewInsightCache(nil)

	assert.False(t, c.Enabled())

	_, hit := c.GetExplanation(ctx, "Loans", "abc")
	assert.False(t, hit)

	err := c.SetExplanation(ctx, "Loans", "abc", &CachedExplanation{Explanation: "x"}, time.Minute)
	assert.Error(t, err)
}

func TestNilRedisClientIsSafe(t *testing.T) {
	var r *RedisClient
	assert.NoError(t, r.Close())
	assert.Error(t, r.Set(context.Background(), "k", 1, time.Second))
}

func TestExplanationKey(t *testing.T) {
	assert.Equal(t, "insight:explanation:Loans:abc", explanationKey("Loans", "abc"))
}

func newTestRedis(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := NewRedisClient(mr.Host(), mr.Port(), "")
	require.NotNil(t, client)
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func TestRedisClientSetGet(t *testing.T) {
	client, mr := newTestRedis(t)
	ctx := context.Background()

	type payload struct {
		Month string `json:"month"`
		Total int64  `json:"total"`
	}

	require.NoError(t, client.Set(ctx, "k", payload{Month: "2024-05", Total: 4200}, time.Minute))

	var got payload
	require.NoError(t, client.Get(ctx, "k", &got))
	assert.Equal(t, payload{Month: "2024-05", Total: 4200}, got)
	assert.Equal(t, time.Minute, mr.TTL("k"))

	err := client.Get(ctx, "missing", &got)
	assert.ErrorIs(t, err, redis.Nil)
}

func TestNewRedisClientUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port := mr.Host(), mr.Port()
	mr.Close()

	assert.Nil(t, NewRedisClient(host, port, ""))
}

func TestInsightCacheRoundTrip(t *testing.T) {
	client, mr := newTestRedis(t)
	ctx := context.Background()
	c := NewInsightCache(client)
	require.True(t, c.Enabled())

	_, hit := c.GetExplanation(ctx, "Loans", "abc")
	assert.False(t, hit)

	generated := time.Date(2024, time.May, 2, 2, 30, 0, 0, time.UTC)
	entry := &CachedExplanation{Model: "m", Explanation: "Rising demand.", GeneratedAt: generated}
	require.NoError(t, c.SetExplanation(ctx, "Loans", "abc", entry, time.Hour))

	got, hit := c.GetExplanation(ctx, "Loans", "abc")
	require.True(t, hit)
	assert.Equal(t, "m", got.Model)
	assert.Equal(t, "Rising demand.", got.Explanation)
	assert.True(t, got.GeneratedAt.Equal(generated))
	assert.Equal(t, []string{"insight:explanation:Loans:abc"}, mr.Keys())

	mr.FastForward(2 * time.Hour)
	_, hit = c.GetExplanation(ctx, "Loans", "abc")
	assert.False(t, hit, "expired entries miss")
}
