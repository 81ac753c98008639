package service

import (
	"errors"

	"github.com/myseetara-source/erp-seetara-sub007/internal/ratelimit"
)

// Error kinds. Every error a service returns to a caller either matches one
// of these via [errors.Is] or is an internal failure.
var (
	// ErrAuthentication covers bad credentials, invalid or expired tokens and
	// inactive accounts. Messages are deliberately generic.
	ErrAuthentication = errors.New("authentication failed")

	// ErrValidation covers missing or malformed input and persistence
	// rejections.
	ErrValidation = errors.New("validation failed")

	// ErrConflict covers duplicate emails.
	ErrConflict = errors.New("conflict")

	// ErrForbidden covers authenticated callers lacking the required role.
	ErrForbidden = errors.New("forbidden")

	// ErrRateLimited is returned when secure-action gate attempts are
	// exhausted.
	ErrRateLimited = ratelimit.ErrRateLimited

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrNilDependency         = errors.New("service dependency is nil")
)

// PublicError is an error whose message is safe to show to clients. It
// matches its kind with [errors.Is].
type PublicError struct {
	kind error
	msg  string
}

func newPublicError(kind error, msg string) *PublicError {
	return &PublicError{kind: kind, msg: msg}
}

func (e *PublicError) Error() string {
	return e.msg
}

// Is reports whether target is the error's kind.
func (e *PublicError) Is(target error) bool {
	return target == e.kind
}

// Kind returns the taxonomy kind the error belongs to.
func (e *PublicError) Kind() error {
	return e.kind
}

var (
	ErrInvalidCredentials   = newPublicError(ErrAuthentication, "Invalid email or password")
	ErrInvalidToken         = newPublicError(ErrAuthentication, "invalid or expired token")
	ErrMissingToken         = newPublicError(ErrAuthentication, "Authorization token required")
	ErrWrongCurrentPassword = newPublicError(ErrAuthentication, "Current password is incorrect")

	ErrMissingCredentials     = newPublicError(ErrValidation, "Email and password are required")
	ErrMissingRegisterFields  = newPublicError(ErrValidation, "Email, password and name are required")
	ErrInvalidEmail           = newPublicError(ErrValidation, "Invalid email address")
	ErrPasswordTooShort       = newPublicError(ErrValidation, "Password must be at least 8 characters")
	ErrPasswordTooLong        = newPublicError(ErrValidation, "Password must be at most 72 bytes")
	ErrInvalidRole            = newPublicError(ErrValidation, "Invalid role")
	ErrMissingPasswords       = newPublicError(ErrValidation, "Current password and new password are required")
	ErrUserNotCreated         = newPublicError(ErrValidation, "user could not be created")
	ErrEmailTaken             = newPublicError(ErrConflict, "User with this email already exists")
	ErrInsufficientPrivileges = newPublicError(ErrForbidden, "Insufficient permissions")
)
