package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casenotes/internal/notetype/models"
)

func newCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client, ttl), mr
}

func TestRedisCache_MissThenHit(t *testing.T) {
	ctx := context.Background()
	cache, _ := newCache(t, time.Minute)

	_, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	types := []models.NoteType{{
		Code: "OBS", Description: "Observation", Active: true,
		SubTypes: []models.NoteSubType{{Code: "GEN", Description: "General", Active: true}},
	}}
	require.NoError(t, cache.Set(ctx, types))

	got, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, types, got)
}

func TestRedisCache_Expires(t *testing.T) {
	ctx := context.Background()
	cache, mr := newCache(t, time.Minute)
	require.NoError(t, cache.Set(ctx, []models.NoteType{{Code: "OBS"}}))

	mr.FastForward(2 * time.Minute)

	_, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	cache, _ := newCache(t, 0)
	require.NoError(t, cache.Set(ctx, []models.NoteType{{Code: "OBS"}}))
	require.NoError(t, cache.Invalidate(ctx))

	_, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_CorruptValueIsError(t *testing.T) {
	ctx := context.Background()
	cache, mr := newCache(t, time.Minute)
	require.NoError(t, mr.Set(legacyTypesKey, "{not json"))

	_, _, err := cache.Get(ctx)
	assert.Error(t, err)
}
