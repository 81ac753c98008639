// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/myseetara-source/erp-seetara-sub007/internal/config"
	"github.com/myseetara-source/erp-seetara-sub007/internal/logger"
	"github.com/myseetara-source/erp-seetara-sub007/internal/store"
)

type lastLogin struct {
	userID int64
	at     time.Time
}

// LastLoginRecorder persists last-login timestamps on a bounded queue
// drained by a fixed pool of goroutines.
//
// Record never blocks: when the queue is full the update is dropped and
// logged. A failed write is retried once if the error is retryable. On
// shutdown the queue is drained before Run returns.
type LastLoginRecorder struct {
	users   store.UserRepository
	retry   RetryClassifier
	queue   chan lastLogin
	workers int
	timeout time.Duration
	dropped atomic.Uint64

	logger *logger.Logger
}

// NewLastLoginRecorder builds a recorder. retry may be nil, in which case
// failed writes are not retried.
func NewLastLoginRecorder(users store.UserRepository, retry RetryClassifier, cfg config.Workers, log *logger.Logger) *LastLoginRecorder {
	return &LastLoginRecorder{
		users:   users,
		retry:   retry,
		queue:   make(chan lastLogin, max(cfg.LastLoginQueueSize, 1)),
		workers: max(cfg.LastLoginWorkers, 1),
		timeout: cfg.LastLoginTimeout,
		logger:  log,
	}
}

// Record enqueues an update.
func (r *LastLoginRecorder) Record(userID int64, at time.Time) {
	select {
	case r.queue <- lastLogin{userID: userID, at: at}:
	default:
		r.dropped.Add(1)
		r.logger.Warn().Int64("user_id", userID).Msg("last-login queue is full, update dropped")
	}
}

// Dropped returns the number of updates discarded because the queue was full.
func (r *LastLoginRecorder) Dropped() uint64 {
	return r.dropped.Load()
}

// Run implements [Worker].
func (r *LastLoginRecorder) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for range r.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.loop(ctx)
		}()
	}
	wg.Wait()
}

func (r *LastLoginRecorder) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			r.drain()
			return
		case item := <-r.queue:
			r.write(item)
		}
	}
}

func (r *LastLoginRecorder) drain() {
	for {
		select {
		case item := <-r.queue:
			r.write(item)
		default:
			return
		}
	}
}

// write runs detached from any request: the login that produced the update
// has usually completed already.
func (r *LastLoginRecorder) write(item lastLogin) {
	err := r.update(item)
	if err != nil && r.retry != nil && r.retry.IsRetryable(err) {
		err = r.update(item)
	}
	if err != nil {
		r.logger.Err(err).Str("func", "*LastLoginRecorder.write").Int64("user_id", item.userID).Msg("failed to update last login")
	}
}

func (r *LastLoginRecorder) update(item lastLogin) error {
	ctx := context.Background()
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return r.users.UpdateLastLogin(ctx, item.userID, item.at)
}
