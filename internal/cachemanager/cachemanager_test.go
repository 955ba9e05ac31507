package cachemanager

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInMemoryCacheManager_SetGet(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[string, int]("words", DefaultExpiration, DefaultCleanupInterval)

	_, ok := cache.Get(ctx, "rev:1")
	require.False(t, ok)

	cache.Set(ctx, "rev:1", 42, DefaultExpiration)
	got, ok := cache.Get(ctx, "rev:1")
	require.True(t, ok)
	require.Equal(t, 42, got)
}

func TestInMemoryCacheManager_Expiry(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[string, int]("words", DefaultExpiration, DefaultCleanupInterval)

	cache.Set(ctx, "rev:1", 1, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	_, ok := cache.Get(ctx, "rev:1")
	require.False(t, ok)
}

func TestInMemoryCacheManager_DeleteAndFlush(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(ctx, "a", "1", DefaultExpiration)
	cache.Set(ctx, "b", "2", DefaultExpiration)
	cache.Set(ctx, "c", "3", DefaultExpiration)

	require.NoError(t, cache.Delete(ctx, "a", "b"))
	require.Equal(t, 1, cache.ItemCount())

	require.NoError(t, cache.Flush(ctx))
	require.Zero(t, cache.ItemCount())
}

func TestRevisionCache_CallsLoaderOncePerKey(t *testing.T) {
	ctx := context.Background()
	calls := 0
	rt := NewRevisionCache[string, int, string](
		NewInMemoryCacheManager[string, int]("test", DefaultExpiration, DefaultCleanupInterval),
		func(_ context.Context, input string) (int, error) {
			calls++
			return len(input), nil
		},
		false,
	)

	for range 3 {
		v, err := rt.Get(ctx, "k", "hello", DefaultExpiration)
		require.NoError(t, err)
		require.Equal(t, 5, v)
	}
	require.Equal(t, 1, calls)
}

func TestRevisionCache_SkipCache(t *testing.T) {
	ctx := context.Background()
	calls := 0
	rt := NewRevisionCache[string, int, int](
		NewInMemoryCacheManager[string, int]("test", DefaultExpiration, DefaultCleanupInterval),
		func(_ context.Context, input int) (int, error) {
			calls++
			return input, nil
		},
		true,
	)

	_, _ = rt.Get(ctx, "k", 1, DefaultExpiration)
	_, _ = rt.Get(ctx, "k", 1, DefaultExpiration)
	require.Equal(t, 2, calls)
}

func TestRevisionCache_ErrorNotCached(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	fail := true
	rt := NewRevisionCache[string, int, int](
		NewInMemoryCacheManager[string, int]("test", DefaultExpiration, DefaultCleanupInterval),
		func(_ context.Context, input int) (int, error) {
			if fail {
				return 0, boom
			}
			return input, nil
		},
		false,
	)

	_, err := rt.Get(ctx, "k", 7, DefaultExpiration)
	require.ErrorIs(t, err, boom)

	fail = false
	v, err := rt.Get(ctx, "k", 7, DefaultExpiration)
	require.NoError(t, err)
	require.Equal(t, 7, v)
}

func TestRevisionCache_EvictsPreviousRevision(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryCacheManager[string, int]("words", DefaultExpiration, DefaultCleanupInterval)
	rc := NewRevisionCache[string, int, int](
		store,
		func(_ context.Context, input int) (int, error) { return input * 2, nil },
		false,
	)

	for rev := 1; rev <= 5; rev++ {
		v, err := rc.Get(ctx, strconv.Itoa(rev), rev, DefaultExpiration)
		require.NoError(t, err)
		require.Equal(t, rev*2, v)
		require.Equal(t, 1, store.ItemCount())
	}

	_, ok := store.Get(ctx, "4")
	require.False(t, ok)
	_, ok = store.Get(ctx, "5")
	require.True(t, ok)
}
