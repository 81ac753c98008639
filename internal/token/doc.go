// Package token issues and verifies the signed access and refresh tokens
// handed to clients.
//
// Access and refresh tokens are signed with distinct HMAC keys and carry a
// "typ" claim, so a token of one class is never accepted where the other is
// expected. Every verification failure (bad signature, expiry, wrong issuer,
// wrong class, malformed subject) surfaces as the single
// [ErrInvalidOrExpiredToken].
package token
