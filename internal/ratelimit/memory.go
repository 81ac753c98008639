// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/myseetara-source/erp-seetara-sub007/models"
)

// MemoryLimiter is an in-process [Limiter]. It keeps the admission times
// of the attempts inside the rolling window per user, guarded by a single
// mutex. Stale times are pruned on the next attempt and by
// [MemoryLimiter.Sweep].
type MemoryLimiter struct {
	mu       sync.Mutex
	attempts map[int64][]time.Time

	limit  int
	window time.Duration
	now    func() time.Time
}

// NewMemoryLimiter returns a limiter allowing limit attempts in any rolling
// window.
func NewMemoryLimiter(limit int, window time.Duration) (*MemoryLimiter, error) {
	if limit <= 0 || window <= 0 {
		return nil, fmt.Errorf("%w: limit=%d window=%s", ErrInvalidLimiterConfig, limit, window)
	}

	return &MemoryLimiter{
		attempts: make(map[int64][]time.Time),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}, nil
}

// Allow implements [Limiter].
func (l *MemoryLimiter) Allow(_ context.Context, userID int64) (models.GateAttempt, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	times := l.prune(l.attempts[userID], now)

	if len(times) >= l.limit {
		l.attempts[userID] = times
		return attemptOf(userID, times), ErrRateLimited
	}

	times = append(times, now)
	l.attempts[userID] = times
	return attemptOf(userID, times), nil
}

// prune drops admission times that are a full window old or older. times
// is ordered, so the survivors are a suffix.
func (l *MemoryLimiter) prune(times []time.Time, now time.Time) []time.Time {
	i := 0
	for i < len(times) && !now.Before(times[i].Add(l.window)) {
		i++
	}
	if i == 0 {
		return times
	}
	return append(times[:0:0], times[i:]...)
}

func attemptOf(userID int64, times []time.Time) models.GateAttempt {
	a := models.GateAttempt{UserID: userID, Count: len(times)}
	if len(times) > 0 {
		a.WindowStart = times[0]
	}
	return a
}

// Sweep drops users with no attempt left inside the window and returns how
// many were removed.
func (l *MemoryLimiter) Sweep() int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for id, times := range l.attempts {
		times = l.prune(times, now)
		if len(times) == 0 {
			delete(l.attempts, id)
			removed++
			continue
		}
		l.attempts[id] = times
	}
	return removed
}

// Len returns the number of tracked users.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.attempts)
}

// Window returns the configured window length.
func (l *MemoryLimiter) Window() time.Duration {
	return l.window
}
