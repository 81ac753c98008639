// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	revokedTokenPrefix = "rv:jti:"
	userCutoffPrefix   = "rv:user:"
)

// redisRevocationStore keeps denylisted token ids and per-user cutoffs in
// Redis so every process sees the same revocations.
type redisRevocationStore struct {
	redis     redis.UniversalClient
	cutoffTTL time.Duration
	now       func() time.Time
}

// NewRedisRevocationStore returns a Redis-backed [RevocationStore]. Cutoffs
// are kept for cutoffTTL, which should be the refresh token lifetime: after
// it every token issued before the cutoff has expired on its own.
func NewRedisRevocationStore(client redis.UniversalClient, cutoffTTL time.Duration) RevocationStore {
	return &redisRevocationStore{
		redis:     client,
		cutoffTTL: cutoffTTL,
		now:       time.Now,
	}
}

// RevokeToken implements [RevocationStore]. A token already past until is
// not stored.
func (s *redisRevocationStore) RevokeToken(ctx context.Context, jti string, until time.Time) error {
	ttl := until.Sub(s.now())
	if ttl <= 0 {
		return nil
	}

	if err := s.redis.Set(ctx, revokedTokenPrefix+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// IsTokenRevoked implements [RevocationStore].
func (s *redisRevocationStore) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.redis.Exists(ctx, revokedTokenPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return n > 0, nil
}

// SetUserCutoff implements [RevocationStore].
func (s *redisRevocationStore) SetUserCutoff(ctx context.Context, userID int64, at time.Time) error {
	key := userCutoffPrefix + strconv.FormatInt(userID, 10)
	if err := s.redis.Set(ctx, key, at.UnixNano(), s.cutoffTTL).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// UserCutoff implements [RevocationStore].
func (s *redisRevocationStore) UserCutoff(ctx context.Context, userID int64) (time.Time, error) {
	key := userCutoffPrefix + strconv.FormatInt(userID, 10)
	nanos, err := s.redis.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return time.Unix(0, nanos), nil
}
