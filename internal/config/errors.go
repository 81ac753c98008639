package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAuthConfigs indicates missing signing keys, an empty issuer,
	// or token lifetimes that violate refresh TTL > access TTL.
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")
	// ErrInvalidSecurityConfigs indicates an unsafe hash cost or a
	// non-positive rate limit window/attempt budget.
	ErrInvalidSecurityConfigs = errors.New("invalid security configuration")
	// ErrInvalidStorageConfigs indicates an empty database DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates a missing HTTP address or a
	// non-positive timeout.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidWorkerConfigs indicates a non-positive worker count or queue size.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
