package ratelimit

import (
	"context"

	"github.com/myseetara-source/erp-seetara-sub007/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/limiter_mock.go -package=mock

// Limiter records one attempt for userID and reports whether it is within
// the budget.
//
// Allow returns the attempt summary after the call. When the limit was
// already reached within the rolling window it returns [ErrRateLimited] and
// records nothing. Check-and-increment is atomic: two concurrent callers
// can never both take the last slot.
type Limiter interface {
	Allow(ctx context.Context, userID int64) (models.GateAttempt, error)
}
