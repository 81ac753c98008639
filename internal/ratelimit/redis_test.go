package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisLimiter(t *testing.T, limit int, window time.Duration) (*RedisLimiter, *miniredis.Miniredis, *fakeClock) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	l, err := NewRedisLimiter(rdb, limit, window)
	require.NoError(t, err)
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	l.now = clock.Now
	return l, mr, clock
}

func TestNewRedisLimiter_InvalidConfig(t *testing.T) {
	_, err := NewRedisLimiter(nil, 5, time.Minute)
	assert.ErrorIs(t, err, ErrInvalidLimiterConfig)
}

func TestRedisLimiter_SixthAttemptRejected(t *testing.T) {
	l, mr, clock := newTestRedisLimiter(t, 5, time.Minute)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		a, err := l.Allow(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, i, a.Count)
		assert.Equal(t, clock.Now(), a.WindowStart)
	}

	a, err := l.Allow(ctx, 42)
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, 5, a.Count)

	members, err := mr.ZMembers("gate:42")
	require.NoError(t, err)
	assert.Len(t, members, 5)
	assert.True(t, mr.TTL("gate:42") > 0)
}

func TestRedisLimiter_AttemptsAgeOut(t *testing.T) {
	l, _, clock := newTestRedisLimiter(t, 1, time.Minute)
	ctx := context.Background()

	_, err := l.Allow(ctx, 1)
	require.NoError(t, err)
	_, err = l.Allow(ctx, 1)
	require.ErrorIs(t, err, ErrRateLimited)

	clock.Advance(time.Minute)

	a, err := l.Allow(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, a.Count)
	assert.Equal(t, clock.Now(), a.WindowStart)
}

func TestRedisLimiter_RollingWindowBoundary(t *testing.T) {
	l, _, clock := newTestRedisLimiter(t, 5, time.Minute)
	ctx := context.Background()
	start := clock.Now()

	_, err := l.Allow(ctx, 3)
	require.NoError(t, err)

	clock.Advance(59 * time.Second)
	for i := 0; i < 4; i++ {
		_, err = l.Allow(ctx, 3)
		require.NoError(t, err)
	}

	// only the attempt from the first second has aged out
	clock.Advance(time.Second)
	admitted := 0
	for i := 0; i < 5; i++ {
		if _, err = l.Allow(ctx, 3); err == nil {
			admitted++
		} else {
			require.ErrorIs(t, err, ErrRateLimited)
		}
	}
	assert.Equal(t, 1, admitted)

	a, err := l.Allow(ctx, 3)
	require.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, 5, a.Count)
	assert.Equal(t, start.Add(59*time.Second), a.WindowStart)
}

func TestRedisLimiter_ExpiryFollowsOldestAttempt(t *testing.T) {
	l, mr, clock := newTestRedisLimiter(t, 5, time.Minute)
	ctx := context.Background()

	_, err := l.Allow(ctx, 9)
	require.NoError(t, err)
	clock.Advance(40 * time.Second)
	_, err = l.Allow(ctx, 9)
	require.NoError(t, err)

	assert.Equal(t, 20*time.Second, mr.TTL("gate:9"))
}

func TestRedisLimiter_Concurrent(t *testing.T) {
	l, _, _ := newTestRedisLimiter(t, 5, time.Minute)
	ctx := context.Background()

	var allowed atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Allow(ctx, 5); err == nil {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(5), allowed.Load())
}

func TestRedisLimiter_Unavailable(t *testing.T) {
	l, mr, _ := newTestRedisLimiter(t, 5, time.Minute)
	mr.Close()

	_, err := l.Allow(context.Background(), 1)
	assert.ErrorIs(t, err, ErrLimiterUnavailable)
}
