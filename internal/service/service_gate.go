package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/myseetara-source/erp-seetara-sub007/internal/crypto"
	"github.com/myseetara-source/erp-seetara-sub007/internal/logger"
	"github.com/myseetara-source/erp-seetara-sub007/internal/ratelimit"
	"github.com/myseetara-source/erp-seetara-sub007/internal/store"
	"github.com/myseetara-source/erp-seetara-sub007/models"
)

const (
	gateMessageVerified = "Password verified"
	gateMessageFailed   = "Password verification failed"
	gateMessageRequired = "Password is required"
)

type gateService struct {
	users   store.UserRepository
	hasher  crypto.PasswordHasher
	limiter ratelimit.Limiter
	logger  *logger.Logger
}

// NewGateService constructs a [GateService].
func NewGateService(users store.UserRepository, hasher crypto.PasswordHasher, limiter ratelimit.Limiter, logger *logger.Logger) (GateService, error) {
	if users == nil || hasher == nil || limiter == nil {
		return nil, fmt.Errorf("%w: gate service", ErrNilDependency)
	}

	return &gateService{
		users:   users,
		hasher:  hasher,
		limiter: limiter,
		logger:  logger,
	}, nil
}

// VerifyPassword implements [GateService].
//
// The attempt is counted before anything else, so a blank or wrong password
// still consumes the window. A rejected attempt never reaches the hasher.
func (g *gateService) VerifyPassword(ctx context.Context, userID int64, password string) (models.VerifyResult, error) {
	log := logger.FromContext(ctx)

	attempt, err := g.limiter.Allow(ctx, userID)
	if err != nil {
		if errors.Is(err, ratelimit.ErrRateLimited) {
			logger.AuditWarn(ctx, logger.EventSecureActionGate, userID).
				Str("result", "rate_limited").
				Int("attempt", attempt.Count).
				Send()
			return models.VerifyResult{}, ErrRateLimited
		}
		log.Err(err).Str("func", "*gateService.VerifyPassword").Int64("user_id", userID).Msg("rate limiter unavailable")
		return models.VerifyResult{Valid: false, Message: gateMessageFailed}, nil
	}

	if password == "" {
		return models.VerifyResult{Valid: false, Message: gateMessageRequired}, nil
	}

	digest := ""
	user, err := g.users.FindUserByID(ctx, userID)
	switch {
	case err == nil && user.IsActive:
		digest = user.PasswordHash
	case err != nil && !errors.Is(err, store.ErrUserNotFound):
		log.Err(err).Str("func", "*gateService.VerifyPassword").Int64("user_id", userID).Msg("user lookup failed")
	}

	if !g.hasher.Verify(password, digest) {
		logger.AuditWarn(ctx, logger.EventSecureActionGate, userID).
			Str("result", "failed").
			Int("attempt", attempt.Count).
			Send()
		return models.VerifyResult{Valid: false, Message: gateMessageFailed}, nil
	}

	logger.Audit(ctx, logger.EventSecureActionGate, userID).
		Str("result", "verified").
		Int("attempt", attempt.Count).
		Send()
	return models.VerifyResult{Valid: true, Message: gateMessageVerified}, nil
}
