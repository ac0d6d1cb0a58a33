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

type cachedValue struct {
	Name string `json:"name"`
}

func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	SetClient(rdb)
	t.Cleanup(func() {
		SetClient(nil)
		_ = rdb.Close()
	})
	return mr
}

func TestAsideFetchesOnMissAndCaches(t *testing.T) {
	setupTestRedis(t)
	ctx := context.Background()

	fetches := 0
	var got cachedValue
	err := Aside(ctx, "k", &got, time.Minute, func() error {
		fetches++
		got = cachedValue{Name: "alice"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Name)
	assert.Equal(t, 1, fetches)

	// Second read is served from cache.
	var again cachedValue
	err = Aside(ctx, "k", &again, time.Minute, func() error {
		fetches++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", again.Name)
	assert.Equal(t, 1, fetches)
}

func TestInvalidateRemovesKey(t *testing.T) {
	mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PostKey(7), cachedValue{Name: "post"}, time.Minute))
	assert.True(t, mr.Exists(PostKey(7)))

	InvalidatePost(ctx, 7)
	assert.False(t, mr.Exists(PostKey(7)))
}

func TestHelpersNoopWithoutClient(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	found, err := GetJSON(ctx, "k", &cachedValue{})
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, SetJSON(ctx, "k", cachedValue{}, time.Minute))

	var got cachedValue
	err = Aside(ctx, "k", &got, time.Minute, func() error {
		got = cachedValue{Name: "direct"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "direct", got.Name)
}
