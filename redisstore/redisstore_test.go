package redisstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeRedisClient is an in-memory stand-in for RedisClient, interpreting
// the three scripts this package ships well enough to exercise Store
// without a live Redis instance.
type fakeRedisClient struct {
	mu     sync.Mutex
	values map[string]int64
}

func newFakeRedisClient() *fakeRedisClient {
	return &fakeRedisClient{values: map[string]int64{}}
}

func (f *fakeRedisClient) Eval(_ context.Context, script string, keys []string, args ...any) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := keys[0]

	switch script {
	case tryAcquireScript:
		maxTokens := args[0].(int64)
		count, ok := f.values[key]
		if !ok {
			count = maxTokens
		}
		var acquired int64
		if count > 0 {
			count--
			acquired = 1
		}
		f.values[key] = count
		return acquired, nil
	case releaseScript:
		n := args[0].(int64)
		f.values[key] += n
		return f.values[key], nil
	case resetScript:
		maxTokens := args[0].(int64)
		f.values[key] = maxTokens
		return maxTokens, nil
	default:
		return nil, nil
	}
}

func (f *fakeRedisClient) Del(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.values, k)
	}
	return nil
}

func TestStore_TryAcquireExhaustsAtMaxTokens(t *testing.T) {
	store := NewStore(newFakeRedisClient(), "app", time.Minute)
	ctx := context.Background()

	var allowed int
	for i := 0; i < 5; i++ {
		ok, err := store.TryAcquire(ctx, "user:1", 3)
		require.NoError(t, err)
		if ok {
			allowed++
		}
	}
	require.Equal(t, 3, allowed, "expected exactly 3 acquisitions out of 5 with maxTokens=3")
}

func TestStore_ReleaseRestoresCapacity(t *testing.T) {
	store := NewStore(newFakeRedisClient(), "app", time.Minute)
	ctx := context.Background()

	_, err := store.TryAcquire(ctx, "user:1", 1)
	require.NoError(t, err)

	ok, err := store.TryAcquire(ctx, "user:1", 1)
	require.NoError(t, err)
	require.False(t, ok, "expected exhaustion before release")

	require.NoError(t, store.Release(ctx, "user:1", 1))

	ok, err = store.TryAcquire(ctx, "user:1", 1)
	require.NoError(t, err)
	require.True(t, ok, "expected acquire to succeed after release")
}

func TestStore_ResetSetsExactCount(t *testing.T) {
	store := NewStore(newFakeRedisClient(), "app", time.Minute)
	ctx := context.Background()

	_, err := store.TryAcquire(ctx, "user:1", 5)
	require.NoError(t, err)
	_, err = store.TryAcquire(ctx, "user:1", 5)
	require.NoError(t, err)

	require.NoError(t, store.Reset(ctx, "user:1", 5))

	var allowed int
	for i := 0; i < 5; i++ {
		ok, err := store.TryAcquire(ctx, "user:1", 5)
		require.NoError(t, err)
		if ok {
			allowed++
		}
	}
	require.Equal(t, 5, allowed, "expected 5 acquisitions after reset")
}

func TestStore_PanicsOnNilClient(t *testing.T) {
	require.Panics(t, func() {
		NewStore(nil, "app", time.Minute)
	})
}
