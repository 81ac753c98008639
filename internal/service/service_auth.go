// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/myseetara-source/erp-seetara-sub007/internal/crypto"
	"github.com/myseetara-source/erp-seetara-sub007/internal/logger"
	"github.com/myseetara-source/erp-seetara-sub007/internal/store"
	"github.com/myseetara-source/erp-seetara-sub007/internal/token"
	"github.com/myseetara-source/erp-seetara-sub007/models"
)

const (
	minPasswordLength = 8
	maxPasswordBytes  = 72
)

// authService is the concrete implementation of [AuthService].
type authService struct {
	users       store.UserRepository
	revocations store.RevocationStore
	hasher      crypto.PasswordHasher
	issuer      token.TokenIssuer
	lastLogin   LastLoginRecorder

	now    func() time.Time
	logger *logger.Logger
}

// NewAuthService constructs an [AuthService]. All dependencies are required.
func NewAuthService(
	users store.UserRepository,
	revocations store.RevocationStore,
	hasher crypto.PasswordHasher,
	issuer token.TokenIssuer,
	lastLogin LastLoginRecorder,
	logger *logger.Logger,
) (AuthService, error) {
	if users == nil || revocations == nil || hasher == nil || issuer == nil || lastLogin == nil {
		return nil, fmt.Errorf("%w: auth service", ErrNilDependency)
	}

	return &authService{
		users:       users,
		revocations: revocations,
		hasher:      hasher,
		issuer:      issuer,
		lastLogin:   lastLogin,
		now:         time.Now,
		logger:      logger,
	}, nil
}

// Login implements [AuthService].
//
// When the email is unknown the password is still compared against a dummy
// digest, so the response time does not reveal whether the account exists.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	email := models.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return models.LoginResponse{}, ErrMissingCredentials
	}

	user, err := a.users.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, store.ErrUserNotFound) {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.Login").Msg("user lookup failed")
		return models.LoginResponse{}, fmt.Errorf("user lookup failed: %w", err)
	}
	found := err == nil

	digest := ""
	if found {
		digest = user.PasswordHash
	}
	passwordOK := a.hasher.Verify(req.Password, digest)

	switch {
	case !found:
		logger.AuditWarn(ctx, logger.EventLoginFailed, 0).Str("reason", "unknown_email").Send()
		return models.LoginResponse{}, ErrInvalidCredentials
	case !user.IsActive:
		logger.AuditWarn(ctx, logger.EventLoginFailed, user.UserID).Str("reason", "inactive").Send()
		return models.LoginResponse{}, ErrInvalidCredentials
	case !passwordOK:
		logger.AuditWarn(ctx, logger.EventLoginFailed, user.UserID).Str("reason", "wrong_password").Send()
		return models.LoginResponse{}, ErrInvalidCredentials
	}

	pair, err := a.issuer.Issue(user)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.Login").Int64("user_id", user.UserID).Msg("token issue failed")
		return models.LoginResponse{}, fmt.Errorf("token issue failed: %w", err)
	}

	a.lastLogin.Record(user.UserID, a.now())
	logger.Audit(ctx, logger.EventLoginSuccess, user.UserID).Str("role", user.Role.String()).Send()

	return models.LoginResponse{User: user.Summary(), TokenPair: pair}, nil
}

// Register implements [AuthService].
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.PublicUser, error) {
	log := logger.FromContext(ctx)

	email := models.NormalizeEmail(req.Email)
	name := strings.TrimSpace(req.Name)
	if email == "" || req.Password == "" || name == "" {
		return models.PublicUser{}, ErrMissingRegisterFields
	}
	if !validEmail(email) {
		return models.PublicUser{}, ErrInvalidEmail
	}
	if err := validatePassword(req.Password); err != nil {
		return models.PublicUser{}, err
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		return models.PublicUser{}, ErrInvalidRole
	}

	exists, err := a.users.EmailExists(ctx, email)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("email lookup failed")
		return models.PublicUser{}, fmt.Errorf("email lookup failed: %w", err)
	}
	if exists {
		return models.PublicUser{}, ErrEmailTaken
	}

	digest, err := a.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, crypto.ErrPasswordTooLong) {
			return models.PublicUser{}, ErrPasswordTooLong
		}
		log.Err(err).Str("func", "*authService.Register").Msg("password hashing failed")
		return models.PublicUser{}, fmt.Errorf("password hashing failed: %w", err)
	}

	created, err := a.users.CreateUser(ctx, models.User{
		Email:        email,
		PasswordHash: digest,
		Name:         name,
		Role:         role,
		VendorID:     req.VendorID,
		Phone:        trimmedOrNil(req.Phone),
		IsActive:     true,
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			return models.PublicUser{}, ErrEmailTaken
		}
		log.Err(err).Str("func", "*authService.Register").Msg("user creation failed")
		return models.PublicUser{}, ErrUserNotCreated
	}

	logger.Audit(ctx, logger.EventRegister, created.UserID).Str("role", created.Role.String()).Send()

	return created.Public(), nil
}

// Refresh implements [AuthService]. The presented refresh token is not
// rotated; it stays usable until it expires or is revoked.
func (a *authService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	claims, err := a.issuer.VerifyRefresh(refreshToken)
	if err != nil {
		logger.AuditWarn(ctx, logger.EventRefreshFailed, 0).Str("reason", "invalid_token").Send()
		return models.TokenPair{}, ErrInvalidToken
	}

	userID, err := claims.UserID()
	if err != nil {
		return models.TokenPair{}, ErrInvalidToken
	}

	if err = a.checkRevocation(ctx, userID, claims); err != nil {
		return models.TokenPair{}, err
	}

	user, err := a.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			logger.AuditWarn(ctx, logger.EventRefreshFailed, userID).Str("reason", "unknown_user").Send()
			return models.TokenPair{}, ErrInvalidToken
		}
		logger.FromContext(ctx).Err(err).Str("func", "*authService.Refresh").Int64("user_id", userID).Msg("user lookup failed")
		return models.TokenPair{}, fmt.Errorf("user lookup failed: %w", err)
	}
	if !user.IsActive {
		logger.AuditWarn(ctx, logger.EventRefreshFailed, userID).Str("reason", "inactive").Send()
		return models.TokenPair{}, ErrInvalidToken
	}

	pair, err := a.issuer.Issue(user)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.Refresh").Int64("user_id", userID).Msg("token issue failed")
		return models.TokenPair{}, fmt.Errorf("token issue failed: %w", err)
	}

	logger.Audit(ctx, logger.EventTokenRefreshed, userID).Send()
	return pair, nil
}

// Me implements [AuthService].
func (a *authService) Me(ctx context.Context, userID int64) (models.PublicUser, error) {
	user, err := a.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.PublicUser{}, ErrInvalidToken
		}
		logger.FromContext(ctx).Err(err).Str("func", "*authService.Me").Int64("user_id", userID).Msg("user lookup failed")
		return models.PublicUser{}, fmt.Errorf("user lookup failed: %w", err)
	}

	return user.Public(), nil
}

// ChangePassword implements [AuthService].
//
// The lookup honours the request context. Once the current password is
// confirmed, hashing and the write run on a context detached from
// cancellation so an abandoned request cannot leave the change half done.
func (a *authService) ChangePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) error {
	log := logger.FromContext(ctx)

	if req.CurrentPassword == "" || req.NewPassword == "" {
		return ErrMissingPasswords
	}
	if err := validatePassword(req.NewPassword); err != nil {
		return err
	}

	user, err := a.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return ErrInvalidToken
		}
		log.Err(err).Str("func", "*authService.ChangePassword").Int64("user_id", userID).Msg("user lookup failed")
		return fmt.Errorf("user lookup failed: %w", err)
	}

	if !a.hasher.Verify(req.CurrentPassword, user.PasswordHash) {
		logger.AuditWarn(ctx, logger.EventPasswordMismatch, userID).Send()
		return ErrWrongCurrentPassword
	}

	writeCtx := context.WithoutCancel(ctx)

	digest, err := a.hasher.Hash(req.NewPassword)
	if err != nil {
		if errors.Is(err, crypto.ErrPasswordTooLong) {
			return ErrPasswordTooLong
		}
		log.Err(err).Str("func", "*authService.ChangePassword").Int64("user_id", userID).Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}

	changedAt := a.now()
	if err = a.users.UpdatePassword(writeCtx, userID, digest, changedAt); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return ErrInvalidToken
		}
		log.Err(err).Str("func", "*authService.ChangePassword").Int64("user_id", userID).Msg("password update failed")
		return fmt.Errorf("password update failed: %w", err)
	}

	if err = a.revocations.SetUserCutoff(writeCtx, userID, changedAt); err != nil {
		log.Err(err).Str("func", "*authService.ChangePassword").Int64("user_id", userID).Msg("failed to revoke tokens issued before password change")
	}

	logger.Audit(ctx, logger.EventPasswordChanged, userID).Send()
	return nil
}

// Logout implements [AuthService].
func (a *authService) Logout(ctx context.Context, principal models.Principal) error {
	if principal.TokenID != "" {
		if err := a.revocations.RevokeToken(ctx, principal.TokenID, principal.ExpiresAt); err != nil {
			logger.FromContext(ctx).Err(err).Str("func", "*authService.Logout").Int64("user_id", principal.UserID).Msg("failed to denylist access token")
		}
	}

	logger.Audit(ctx, logger.EventLogout, principal.UserID).Send()
	return nil
}

// Authenticate implements [AuthService].
func (a *authService) Authenticate(ctx context.Context, accessToken string) (models.Principal, error) {
	claims, err := a.issuer.VerifyAccess(accessToken)
	if err != nil {
		return models.Principal{}, ErrInvalidToken
	}

	userID, err := claims.UserID()
	if err != nil {
		return models.Principal{}, ErrInvalidToken
	}

	if err = a.checkRevocation(ctx, userID, claims); err != nil {
		return models.Principal{}, err
	}

	return models.Principal{
		UserID:    userID,
		Role:      claims.Role,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// checkRevocation rejects denylisted tokens and tokens issued before the
// user's cutoff. Token iat has second precision, so the cutoff is compared
// at the same precision.
func (a *authService) checkRevocation(ctx context.Context, userID int64, claims *models.Claims) error {
	log := logger.FromContext(ctx)

	revoked, err := a.revocations.IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		log.Err(err).Str("func", "*authService.checkRevocation").Int64("user_id", userID).Msg("revocation lookup failed")
		return fmt.Errorf("revocation lookup failed: %w", err)
	}
	if revoked {
		return ErrInvalidToken
	}

	cutoff, err := a.revocations.UserCutoff(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*authService.checkRevocation").Int64("user_id", userID).Msg("revocation lookup failed")
		return fmt.Errorf("revocation lookup failed: %w", err)
	}
	if !cutoff.IsZero() && (claims.IssuedAt == nil || claims.IssuedAt.Time.Before(cutoff.Truncate(time.Second))) {
		return ErrInvalidToken
	}

	return nil
}

func validatePassword(password string) error {
	if len([]rune(password)) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > maxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
