// Package ratelimit throttles secure-action gate attempts per user.
//
// # Window semantics
//
// Rolling window: an attempt is admitted only if fewer than the limit were
// admitted during the preceding window length. Refused attempts are not
// recorded, so the number of admitted attempts in any window never exceeds
// the limit. Each admitted attempt ages out one window after it was made.
//
// Two backends are provided: [MemoryLimiter] for a single process and
// [RedisLimiter] for deployments where several processes share the budget.
// Redis keys are "gate:<userId>" sorted sets scored by admission time in
// milliseconds.
package ratelimit
