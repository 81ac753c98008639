package store

import (
	"context"
	"time"

	"github.com/myseetara-source/erp-seetara-sub007/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository is the credential store: single-row reads and writes on
// the users table keyed by id or normalised email.
type UserRepository interface {
	// CreateUser inserts user and returns the stored row with server-assigned
	// fields. A duplicate email yields [ErrEmailAlreadyExists].
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail looks a user up by normalised email.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID looks a user up by id.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// UpdateLastLogin sets last_login_at.
	UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error

	// UpdatePassword replaces the password hash and sets password_changed_at.
	UpdatePassword(ctx context.Context, userID int64, passwordHash string, at time.Time) error

	// EmailExists reports whether an account with this email exists.
	EmailExists(ctx context.Context, email string) (bool, error)
}

// RevocationStore layers revocation on top of stateless tokens.
//
// Individual tokens are denylisted by jti until they would have expired
// anyway. A per-user cutoff invalidates every token issued before it.
type RevocationStore interface {
	RevokeToken(ctx context.Context, jti string, until time.Time) error
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
	SetUserCutoff(ctx context.Context, userID int64, at time.Time) error
	// UserCutoff returns the zero time when no cutoff is recorded.
	UserCutoff(ctx context.Context, userID int64) (time.Time, error)
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
