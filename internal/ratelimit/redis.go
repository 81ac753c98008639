// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/myseetara-source/erp-seetara-sub007/models"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "gate:"

// allowScript keeps the admission times (ms) of KEYS[1] in a sorted set.
// It drops members older than the window ARGV[2], then adds ARGV[4] at
// score ARGV[1] unless ARGV[3] members remain. The key expires with its
// oldest member.
// Returns {count, oldest ms, allowed}.
const allowScript = `
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
redis.call('ZREMRANGEBYSCORE', KEYS[1], '-inf', now - window)
local count = redis.call('ZCARD', KEYS[1])
local allowed = 0
if count < tonumber(ARGV[3]) then
	redis.call('ZADD', KEYS[1], now, ARGV[4])
	count = count + 1
	allowed = 1
end
local oldest = tonumber(redis.call('ZRANGE', KEYS[1], 0, 0, 'WITHSCORES')[2])
redis.call('PEXPIRE', KEYS[1], oldest + window - now)
return {count, oldest, allowed}
`

var allowLua = redis.NewScript(allowScript)

// RedisLimiter is a [Limiter] whose attempt log is shared by every process
// connected to the same Redis. Admission times come from the caller's
// clock, so processes sharing a key need roughly synchronised clocks.
type RedisLimiter struct {
	redis  redis.UniversalClient
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewRedisLimiter returns a Redis-backed limiter allowing limit attempts in
// any rolling window.
func NewRedisLimiter(client redis.UniversalClient, limit int, window time.Duration) (*RedisLimiter, error) {
	if client == nil || limit <= 0 || window <= 0 {
		return nil, fmt.Errorf("%w: limit=%d window=%s", ErrInvalidLimiterConfig, limit, window)
	}

	return &RedisLimiter{
		redis:  client,
		limit:  limit,
		window: window,
		now:    time.Now,
	}, nil
}

func key(userID int64) string {
	return keyPrefix + strconv.FormatInt(userID, 10)
}

// Allow implements [Limiter].
func (l *RedisLimiter) Allow(ctx context.Context, userID int64) (models.GateAttempt, error) {
	now := l.now().UnixMilli()
	res, err := allowLua.Run(ctx, l.redis, []string{key(userID)},
		now, l.window.Milliseconds(), l.limit, uuid.NewString()).Int64Slice()
	if err != nil {
		return models.GateAttempt{UserID: userID}, fmt.Errorf("%w: %v", ErrLimiterUnavailable, err)
	}
	if len(res) != 3 {
		return models.GateAttempt{UserID: userID}, fmt.Errorf("%w: unexpected script reply %v", ErrLimiterUnavailable, res)
	}

	count, oldest, allowed := res[0], res[1], res[2]
	a := models.GateAttempt{
		UserID:      userID,
		Count:       int(count),
		WindowStart: time.UnixMilli(oldest).UTC(),
	}
	if allowed == 0 {
		return a, ErrRateLimited
	}
	return a, nil
}
