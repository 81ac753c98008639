package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestMemoryLimiter(t *testing.T, limit int, window time.Duration) (*MemoryLimiter, *fakeClock) {
	t.Helper()
	l, err := NewMemoryLimiter(limit, window)
	require.NoError(t, err)
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	l.now = clock.Now
	return l, clock
}

func TestNewMemoryLimiter_InvalidConfig(t *testing.T) {
	_, err := NewMemoryLimiter(0, time.Minute)
	assert.ErrorIs(t, err, ErrInvalidLimiterConfig)
	_, err = NewMemoryLimiter(5, 0)
	assert.ErrorIs(t, err, ErrInvalidLimiterConfig)
}

func TestMemoryLimiter_SixthAttemptRejected(t *testing.T) {
	l, _ := newTestMemoryLimiter(t, 5, time.Minute)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		a, err := l.Allow(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, i, a.Count)
		assert.Equal(t, int64(7), a.UserID)
	}

	a, err := l.Allow(ctx, 7)
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, 5, a.Count)

	// other users are unaffected
	_, err = l.Allow(ctx, 8)
	assert.NoError(t, err)
}

func TestMemoryLimiter_AttemptsAgeOut(t *testing.T) {
	l, clock := newTestMemoryLimiter(t, 2, time.Minute)
	ctx := context.Background()

	_, _ = l.Allow(ctx, 1)
	_, _ = l.Allow(ctx, 1)
	_, err := l.Allow(ctx, 1)
	require.ErrorIs(t, err, ErrRateLimited)

	clock.Advance(59 * time.Second)
	_, err = l.Allow(ctx, 1)
	require.ErrorIs(t, err, ErrRateLimited)

	clock.Advance(time.Second)
	a, err := l.Allow(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, a.Count)
	assert.Equal(t, clock.Now(), a.WindowStart)
}

func TestMemoryLimiter_RollingWindowBoundary(t *testing.T) {
	l, clock := newTestMemoryLimiter(t, 5, time.Minute)
	ctx := context.Background()
	start := clock.Now()

	_, err := l.Allow(ctx, 4)
	require.NoError(t, err)

	clock.Advance(59 * time.Second)
	for i := 0; i < 4; i++ {
		_, err = l.Allow(ctx, 4)
		require.NoError(t, err)
	}

	// only the attempt from the first second has aged out
	clock.Advance(time.Second)
	admitted := 0
	for i := 0; i < 5; i++ {
		if _, err = l.Allow(ctx, 4); err == nil {
			admitted++
		} else {
			require.ErrorIs(t, err, ErrRateLimited)
		}
	}
	assert.Equal(t, 1, admitted)

	a, err := l.Allow(ctx, 4)
	require.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, 5, a.Count)
	assert.Equal(t, start.Add(59*time.Second), a.WindowStart)

	// the four attempts at 59s age out together
	clock.Advance(58 * time.Second)
	_, err = l.Allow(ctx, 4)
	require.ErrorIs(t, err, ErrRateLimited)

	clock.Advance(time.Second)
	a, err = l.Allow(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, 2, a.Count)
	assert.Equal(t, start.Add(time.Minute), a.WindowStart)
}

func TestMemoryLimiter_ConcurrentAttemptsNeverExceedLimit(t *testing.T) {
	l, _ := newTestMemoryLimiter(t, 5, time.Minute)
	ctx := context.Background()

	var allowed atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Allow(ctx, 3); err == nil {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(5), allowed.Load())
}

func TestMemoryLimiter_Sweep(t *testing.T) {
	l, clock := newTestMemoryLimiter(t, 5, time.Minute)
	ctx := context.Background()

	_, _ = l.Allow(ctx, 1)
	clock.Advance(30 * time.Second)
	_, _ = l.Allow(ctx, 2)
	require.Equal(t, 2, l.Len())

	clock.Advance(30 * time.Second)
	assert.Equal(t, 1, l.Sweep())
	assert.Equal(t, 1, l.Len())

	clock.Advance(time.Minute)
	assert.Equal(t, 1, l.Sweep())
	assert.Equal(t, 0, l.Len())
}

func TestMemoryLimiter_SweepKeepsLiveAttempts(t *testing.T) {
	l, clock := newTestMemoryLimiter(t, 2, time.Minute)
	ctx := context.Background()

	_, _ = l.Allow(ctx, 1)
	clock.Advance(30 * time.Second)
	_, _ = l.Allow(ctx, 1)

	clock.Advance(30 * time.Second)
	assert.Equal(t, 0, l.Sweep())
	assert.Equal(t, 1, l.Len())

	a, err := l.Allow(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, a.Count)
}
