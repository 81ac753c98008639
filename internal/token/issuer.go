// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package token

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/myseetara-source/erp-seetara-sub007/internal/config"
	"github.com/myseetara-source/erp-seetara-sub007/internal/utils"
	"github.com/myseetara-source/erp-seetara-sub007/models"
)

// Issuer is the HS256 implementation of [TokenIssuer].
type Issuer struct {
	accessSignKey  string
	refreshSignKey string
	issuer         string
	accessTTL      time.Duration
	refreshTTL     time.Duration

	ids IDGenerator
	now func() time.Time
}

// Option customises an [Issuer].
type Option func(*Issuer)

// WithClock overrides the time source used for iat/exp.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) { i.now = now }
}

// WithIDGenerator overrides the jti generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(i *Issuer) { i.ids = g }
}

// NewIssuer builds an [Issuer] from the auth configuration. Keys must be
// non-empty and distinct, and the refresh lifetime must exceed the access
// lifetime.
func NewIssuer(cfg config.Auth, opts ...Option) (*Issuer, error) {
	switch {
	case cfg.AccessTokenSignKey == "" || cfg.RefreshTokenSignKey == "":
		return nil, fmt.Errorf("%w: empty sign key", ErrInvalidIssuerConfig)
	case cfg.AccessTokenSignKey == cfg.RefreshTokenSignKey:
		return nil, fmt.Errorf("%w: access and refresh keys must differ", ErrInvalidIssuerConfig)
	case cfg.TokenIssuer == "":
		return nil, fmt.Errorf("%w: empty issuer", ErrInvalidIssuerConfig)
	case cfg.AccessTokenTTL <= 0:
		return nil, fmt.Errorf("%w: access token ttl must be positive", ErrInvalidIssuerConfig)
	case cfg.RefreshTokenTTL <= cfg.AccessTokenTTL:
		return nil, fmt.Errorf("%w: refresh token ttl must exceed access token ttl", ErrInvalidIssuerConfig)
	}

	i := &Issuer{
		accessSignKey:  cfg.AccessTokenSignKey,
		refreshSignKey: cfg.RefreshTokenSignKey,
		issuer:         cfg.TokenIssuer,
		accessTTL:      cfg.AccessTokenTTL,
		refreshTTL:     cfg.RefreshTokenTTL,
		ids:            utils.NewUUIDGenerator(),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}

	return i, nil
}

// AccessTTL returns the access token lifetime.
func (i *Issuer) AccessTTL() time.Duration { return i.accessTTL }

// RefreshTTL returns the refresh token lifetime.
func (i *Issuer) RefreshTTL() time.Duration { return i.refreshTTL }

// Issue implements [TokenIssuer].
func (i *Issuer) Issue(user models.User) (models.TokenPair, error) {
	now := i.now()

	access, err := i.sign(user, models.TokenTypeAccess, now, i.accessTTL, i.accessSignKey)
	if err != nil {
		return models.TokenPair{}, err
	}

	refresh, err := i.sign(user, models.TokenTypeRefresh, now, i.refreshTTL, i.refreshSignKey)
	if err != nil {
		return models.TokenPair{}, err
	}

	return models.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccess implements [TokenIssuer].
func (i *Issuer) VerifyAccess(token string) (*models.Claims, error) {
	return i.verify(token, models.TokenTypeAccess, i.accessSignKey)
}

// VerifyRefresh implements [TokenIssuer].
func (i *Issuer) VerifyRefresh(token string) (*models.Claims, error) {
	return i.verify(token, models.TokenTypeRefresh, i.refreshSignKey)
}

func (i *Issuer) sign(user models.User, typ models.TokenType, now time.Time, ttl time.Duration, key string) (string, error) {
	claims := &models.Claims{
		Role: user.Role,
		Type: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   strconv.FormatInt(user.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        i.ids.Generate(),
		},
	}

	signed, err := utils.GenerateJWTToken(claims, key)
	if err != nil {
		return "", fmt.Errorf("error issuing %s token: %w", typ, err)
	}
	return signed, nil
}

func (i *Issuer) verify(token string, typ models.TokenType, key string) (*models.Claims, error) {
	claims, err := utils.ValidateAndParseJWTToken(token, key, i.issuer)
	if err != nil || claims.Type != typ || claims.ID == "" {
		return nil, ErrInvalidOrExpiredToken
	}
	return claims, nil
}
