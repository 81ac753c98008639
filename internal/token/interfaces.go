package token

import "github.com/myseetara-source/erp-seetara-sub007/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/token_issuer_mock.go -package=mock

// TokenIssuer creates token pairs for users and verifies presented tokens.
type TokenIssuer interface {
	// Issue returns a fresh access/refresh pair encoding the user's id and
	// current role.
	Issue(user models.User) (models.TokenPair, error)

	// VerifyAccess checks an access token and returns its claims.
	VerifyAccess(token string) (*models.Claims, error)

	// VerifyRefresh checks a refresh token and returns its claims.
	VerifyRefresh(token string) (*models.Claims, error)
}

// IDGenerator produces unique token ids (jti).
type IDGenerator interface {
	Generate() string
}
