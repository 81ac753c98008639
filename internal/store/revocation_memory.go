package store

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/myseetara-source/erp-seetara-sub007/internal/logger"
)

// memoryRevocationStore is the single-process [RevocationStore]. Entries
// live in expirable LRU caches whose TTL is the refresh token lifetime.
//
// With capacity 0 the caches never evict by size, so a revocation holds
// until it expires. A positive capacity bounds memory at the cost of
// forgetting the least recently used revocations; every such eviction of a
// still-live entry is logged and counted.
type memoryRevocationStore struct {
	tokens  *expirable.LRU[string, time.Time]
	cutoffs *expirable.LRU[int64, time.Time]
	ttl     time.Duration
	now     func() time.Time

	liveEvictions atomic.Uint64
	logger        *logger.Logger
}

// NewMemoryRevocationStore returns an in-process [RevocationStore] keeping
// entries for up to ttl. capacity <= 0 means unbounded.
func NewMemoryRevocationStore(capacity int, ttl time.Duration, log *logger.Logger) RevocationStore {
	s := &memoryRevocationStore{
		ttl:    ttl,
		now:    time.Now,
		logger: log,
	}
	capacity = max(capacity, 0)
	s.tokens = expirable.NewLRU[string, time.Time](capacity, s.onTokenEvicted, ttl)
	s.cutoffs = expirable.NewLRU[int64, time.Time](capacity, s.onCutoffEvicted, ttl)
	return s
}

// onTokenEvicted runs under the cache lock for expiries and size evictions
// alike; only the latter can drop a token that is still revoked.
func (s *memoryRevocationStore) onTokenEvicted(jti string, until time.Time) {
	if s.now().Before(until) {
		s.liveEvictions.Add(1)
		s.logger.Warn().Str("jti", jti).Time("until", until).
			Msg("revoked token evicted from full cache before expiry, it is accepted again")
	}
}

func (s *memoryRevocationStore) onCutoffEvicted(userID int64, at time.Time) {
	if s.now().Before(at.Add(s.ttl)) {
		s.liveEvictions.Add(1)
		s.logger.Warn().Int64("user_id", userID).Time("cutoff", at).
			Msg("password change cutoff evicted from full cache before expiry, older tokens are accepted again")
	}
}

// LiveEvictions returns how many unexpired revocations were dropped for
// lack of capacity.
func (s *memoryRevocationStore) LiveEvictions() uint64 {
	return s.liveEvictions.Load()
}

func (s *memoryRevocationStore) RevokeToken(_ context.Context, jti string, until time.Time) error {
	if !until.After(s.now()) {
		return nil
	}
	s.tokens.Add(jti, until)
	return nil
}

func (s *memoryRevocationStore) IsTokenRevoked(_ context.Context, jti string) (bool, error) {
	until, ok := s.tokens.Get(jti)
	if !ok {
		return false, nil
	}
	return s.now().Before(until), nil
}

func (s *memoryRevocationStore) SetUserCutoff(_ context.Context, userID int64, at time.Time) error {
	s.cutoffs.Add(userID, at)
	return nil
}

func (s *memoryRevocationStore) UserCutoff(_ context.Context, userID int64) (time.Time, error) {
	at, _ := s.cutoffs.Get(userID)
	return at, nil
}
