package token

import "errors"

var (
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
	ErrInvalidIssuerConfig   = errors.New("invalid token issuer configuration")
)
