// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// minHashCost is the lowest bcrypt cost accepted for production use.
const minHashCost = bcrypt.DefaultCost

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if err := cfg.Auth.validate(); err != nil {
		return err
	}

	if cfg.Security.HashCost < minHashCost || cfg.Security.HashCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: hash cost must be in [%d, %d]", ErrInvalidSecurityConfigs, minHashCost, bcrypt.MaxCost)
	}
	if cfg.Security.RateLimitWindowSeconds <= 0 || cfg.Security.RateLimitMaxAttempts <= 0 {
		return fmt.Errorf("%w: rate limit window and attempts must be positive", ErrInvalidSecurityConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is empty", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 || cfg.Server.ShutdownTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Workers.LastLoginWorkers <= 0 || cfg.Workers.LastLoginQueueSize <= 0 || cfg.Workers.LastLoginTimeout <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (a Auth) validate() error {
	switch {
	case a.AccessTokenSignKey == "" || a.RefreshTokenSignKey == "":
		return fmt.Errorf("%w: both token sign keys are required", ErrInvalidAuthConfigs)
	case a.AccessTokenSignKey == a.RefreshTokenSignKey:
		return fmt.Errorf("%w: access and refresh sign keys must differ", ErrInvalidAuthConfigs)
	case a.TokenIssuer == "":
		return fmt.Errorf("%w: token issuer is empty", ErrInvalidAuthConfigs)
	case a.AccessTokenTTL <= 0:
		return fmt.Errorf("%w: access token ttl must be positive", ErrInvalidAuthConfigs)
	case a.RefreshTokenTTL <= a.AccessTokenTTL:
		return fmt.Errorf("%w: refresh token ttl must exceed access token ttl", ErrInvalidAuthConfigs)
	}

	return nil
}
