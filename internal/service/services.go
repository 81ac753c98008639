package service

import (
	"errors"

	"github.com/myseetara-source/erp-seetara-sub007/internal/config"
	"github.com/myseetara-source/erp-seetara-sub007/internal/crypto"
	"github.com/myseetara-source/erp-seetara-sub007/internal/logger"
	"github.com/myseetara-source/erp-seetara-sub007/internal/ratelimit"
	"github.com/myseetara-source/erp-seetara-sub007/internal/store"
	"github.com/myseetara-source/erp-seetara-sub007/internal/token"
)

type Services struct {
	AuthService    AuthService
	GateService    GateService
	AppInfoService AppInfoService
}

// Dependencies bundles everything the services are built from.
type Dependencies struct {
	Storages  *store.Storages
	Hasher    crypto.PasswordHasher
	Issuer    token.TokenIssuer
	Limiter   ratelimit.Limiter
	LastLogin LastLoginRecorder
}

func NewServices(deps Dependencies, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	if deps.Storages == nil {
		return nil, errors.Join(ErrNilDependency, errors.New("storages"))
	}

	authService, err := NewAuthService(
		deps.Storages.UserRepository,
		deps.Storages.RevocationStore,
		deps.Hasher,
		deps.Issuer,
		deps.LastLogin,
		logger,
	)
	if err != nil {
		return nil, err
	}

	gateService, err := NewGateService(deps.Storages.UserRepository, deps.Hasher, deps.Limiter, logger)
	if err != nil {
		return nil, err
	}

	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:    authService,
		GateService:    gateService,
		AppInfoService: appInfoService,
	}, nil
}
