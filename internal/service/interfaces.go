package service

import (
	"context"
	"time"

	"github.com/myseetara-source/erp-seetara-sub007/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService manages the session lifecycle: credential checks, token
// issuance and refresh, password changes and logout.
type AuthService interface {
	// Login checks email and password and returns the user summary with a
	// fresh token pair. Unknown email, inactive account and wrong password
	// fail identically with [ErrInvalidCredentials].
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error)

	// Register creates an account. The role defaults to operator.
	Register(ctx context.Context, req models.RegisterRequest) (models.PublicUser, error)

	// Refresh exchanges a valid refresh token for a new pair carrying the
	// user's current role.
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)

	// Me returns the caller's profile.
	Me(ctx context.Context, userID int64) (models.PublicUser, error)

	// ChangePassword re-verifies the current password and stores a hash of
	// the new one. Tokens issued before the change stop being accepted.
	ChangePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) error

	// Logout denylists the presented access token. It always succeeds for an
	// authenticated caller.
	Logout(ctx context.Context, principal models.Principal) error

	// Authenticate verifies an access token and returns the caller.
	Authenticate(ctx context.Context, accessToken string) (models.Principal, error)
}

// GateService is the secure-action gate: fresh password re-confirmation
// before sensitive operations.
type GateService interface {
	// VerifyPassword never fails for a wrong password; the verdict is in
	// the result. It fails with [ErrRateLimited] once the caller's attempts
	// for the current window are exhausted.
	VerifyPassword(ctx context.Context, userID int64, password string) (models.VerifyResult, error)
}

// AppInfoService reports build information.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// LastLoginRecorder persists last-login timestamps off the request path.
// Record must not block.
type LastLoginRecorder interface {
	Record(userID int64, at time.Time)
}
