// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a typed client for the auth API.
//
// Other ERP services use [AuthClient] to sign users in, resolve the current
// identity and run the secure-action password gate without hand-writing HTTP
// calls. Non-2xx responses are mapped by mapHTTPError to the sentinel errors
// in errors.go, so callers can use [errors.Is] (e.g. [ErrUnauthorized] for
// 401, [ErrTooManyRequests] for 429).
package adapter

import (
	"context"

	"github.com/myseetara-source/erp-seetara-sub007/models"
)

// AuthClient talks to the auth API over HTTP.
//
// The client holds the current token pair. Login and Refresh replace it;
// every authenticated call sends the held access token.
type AuthClient interface {
	// SetTokens replaces the held token pair.
	SetTokens(pair models.TokenPair)

	// Tokens returns the held token pair, zero-valued before the first login.
	Tokens() models.TokenPair

	Login(ctx context.Context, email, password string) (models.LoginResponse, error)

	// Refresh exchanges the held refresh token for a new pair.
	Refresh(ctx context.Context) (models.TokenPair, error)

	Me(ctx context.Context) (models.PublicUser, error)

	// Register creates a user. The held access token must belong to an admin.
	Register(ctx context.Context, req models.RegisterRequest) (models.PublicUser, error)

	ChangePassword(ctx context.Context, currentPassword, newPassword string) error

	// Logout revokes the held access token and forgets the pair.
	Logout(ctx context.Context) error

	// VerifyPassword runs the secure-action gate. A wrong password is a
	// result with Valid false, not an error; a locked-out user gets
	// [ErrTooManyRequests].
	VerifyPassword(ctx context.Context, password string) (models.VerifyResult, error)

	Version(ctx context.Context) (string, error)
}
