package crypto

import "errors"

var (
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
	ErrHashing         = errors.New("error hashing password")
)
