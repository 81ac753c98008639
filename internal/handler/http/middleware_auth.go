package http

import (
	"net/http"

	"github.com/myseetara-source/erp-seetara-sub007/internal/logger"
	"github.com/myseetara-source/erp-seetara-sub007/internal/service"
	"github.com/myseetara-source/erp-seetara-sub007/internal/utils"
	"github.com/myseetara-source/erp-seetara-sub007/models"
	"github.com/rs/zerolog"
)

// auth is an HTTP middleware that enforces bearer-token authentication.
//
// It extracts the access token from the "Authorization" header, verifies it
// via [service.AuthService.Authenticate] and stores the resulting
// [models.Principal] in the request context. The request logger is enriched
// with user_id.
//
// A missing header, a malformed header and an invalid, expired or revoked
// token are all rejected with 401.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, service.ErrMissingToken)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, service.ErrInvalidToken)
			return
		}

		ctx := r.Context()
		principal, err := h.services.AuthService.Authenticate(ctx, tokenString)
		if err != nil {
			writeError(w, r, err)
			return
		}

		l := logger.FromContext(ctx).GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Int64("user_id", principal.UserID)
		})
		ctx = l.WithContext(utils.WithPrincipal(ctx, principal))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRole admits only principals holding one of roles. It must run
// after auth.
func (h *Handler) requireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := utils.GetPrincipalFromContext(r.Context())
			if !ok {
				writeError(w, r, service.ErrInvalidToken)
				return
			}

			if !principal.HasRole(roles...) {
				logger.FromRequest(r).Warn().
					Str("role", principal.Role.String()).
					Str("path", r.URL.Path).
					Msg("insufficient role")
				writeError(w, r, service.ErrInsufficientPrivileges)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func principalFromRequest(r *http.Request) (models.Principal, error) {
	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		return models.Principal{}, service.ErrInvalidToken
	}
	return principal, nil
}
