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

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// useMiniredis points the package client at a fresh miniredis instance.
// Tests in this file must not run in parallel.
func useMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestGetSetJSON(t *testing.T) {
	useMiniredis(t)
	ctx := context.Background()

	var missing payload
	found, err := GetJSON(ctx, "absent", &missing)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, "k", payload{Name: "x", Count: 3}, time.Minute))

	var got payload
	found, err = GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{Name: "x", Count: 3}, got)
}

func TestAside_FetchesOnceThenServesFromCache(t *testing.T) {
	useMiniredis(t)
	ctx := context.Background()

	fetches := 0
	load := func(dest *payload) error {
		return Aside(ctx, "aside-key", dest, time.Minute, func() error {
			fetches++
			dest.Name = "loaded"
			return nil
		})
	}

	var first, second payload
	require.NoError(t, load(&first))
	require.NoError(t, load(&second))
	assert.Equal(t, 1, fetches, "second read must come from cache")
	assert.Equal(t, "loaded", second.Name)
}

func TestFeedPagesExpireAndInvalidate(t *testing.T) {
	mr := useMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, FeedPageKey(1), payload{Name: "page1"}, FeedTTL))
	require.NoError(t, SetJSON(ctx, FeedPageKey(2), payload{Name: "page2"}, FeedTTL))

	var got payload
	found, err := GetJSON(ctx, FeedPageKey(1), &got)
	require.NoError(t, err)
	require.True(t, found)

	t.Run("TTL expiry", func(t *testing.T) {
		mr.FastForward(FeedTTL + time.Second)
		found, err := GetJSON(ctx, FeedPageKey(1), &got)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("explicit invalidation", func(t *testing.T) {
		require.NoError(t, SetJSON(ctx, FeedPageKey(1), payload{Name: "page1"}, FeedTTL))
		require.NoError(t, SetJSON(ctx, "user:7", payload{Name: "keepme"}, time.Minute))

		InvalidateFeed(ctx)

		found, err := GetJSON(ctx, FeedPageKey(1), &got)
		require.NoError(t, err)
		assert.False(t, found, "feed pages must be gone")

		found, err = GetJSON(ctx, "user:7", &got)
		require.NoError(t, err)
		assert.True(t, found, "non-feed keys must survive")
	})
}

func TestNilClientIsNoop(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, "k", payload{}, time.Minute))
	var got payload
	found, err := GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)

	// Aside degrades to a plain fetch.
	err = Aside(ctx, "k", &got, time.Minute, func() error {
		got.Name = "direct"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "direct", got.Name)

	InvalidateFeed(ctx)
}
