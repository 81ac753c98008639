// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the bcrypt input limit. Longer inputs are rejected
// instead of being silently truncated.
const maxPasswordBytes = 72

// BcryptHasher is the [PasswordHasher] used by the service.
type BcryptHasher struct {
	cost int

	// dummy is a valid digest compared against when there is no real one,
	// so that "no such user" costs the same as "wrong password".
	dummy []byte
}

// NewBcryptHasher constructs a [BcryptHasher] with the given work factor.
// Costs outside [bcrypt.MinCost, bcrypt.MaxCost] are clamped; production
// configs are validated to stay at or above [bcrypt.DefaultCost].
func NewBcryptHasher(cost int) (*BcryptHasher, error) {
	cost = max(bcrypt.MinCost, min(cost, bcrypt.MaxCost))

	dummy, err := bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), cost)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHashing, err)
	}

	return &BcryptHasher{cost: cost, dummy: dummy}, nil
}

// Cost returns the configured bcrypt work factor.
func (h *BcryptHasher) Cost() int {
	return h.cost
}

// Hash implements [PasswordHasher].
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	if len(plaintext) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", fmt.Errorf("%w: %w", ErrHashing, err)
	}

	return string(digest), nil
}

// Verify implements [PasswordHasher]. An empty digest is compared against
// the dummy digest and always reports false.
func (h *BcryptHasher) Verify(plaintext, digest string) bool {
	if digest == "" {
		_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(plaintext))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
