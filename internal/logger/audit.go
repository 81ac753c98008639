package logger

import (
	"context"

	"github.com/rs/zerolog"
)

// Audit event names.
const (
	EventLoginSuccess     = "login_success"
	EventLoginFailed      = "login_failed"
	EventRegister         = "user_registered"
	EventTokenRefreshed   = "token_refreshed"
	EventRefreshFailed    = "token_refresh_failed"
	EventPasswordChanged  = "password_changed"
	EventPasswordMismatch = "password_change_failed"
	EventLogout           = "logout"
	EventSecureActionGate = "secure_action_gate"
)

// Audit starts an info-level audit record for userID in the request-scoped
// logger. The caller adds fields and finishes the event with Msg or Send.
func Audit(ctx context.Context, event string, userID int64) *zerolog.Event {
	return withAuditFields(FromContext(ctx).Info(), event, userID)
}

// AuditWarn is like [Audit] but emits at warn level; used for failed
// authentication and gate attempts.
func AuditWarn(ctx context.Context, event string, userID int64) *zerolog.Event {
	return withAuditFields(FromContext(ctx).Warn(), event, userID)
}

func withAuditFields(e *zerolog.Event, event string, userID int64) *zerolog.Event {
	e = e.Bool("audit", true).Str("event", event)
	if userID != 0 {
		e = e.Int64("user_id", userID)
	}
	return e
}
