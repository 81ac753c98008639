package handler

import (
	"github.com/myseetara-source/erp-seetara-sub007/internal/config"
	"github.com/myseetara-source/erp-seetara-sub007/internal/handler/http"
	"github.com/myseetara-source/erp-seetara-sub007/internal/logger"
	"github.com/myseetara-source/erp-seetara-sub007/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{HTTP: http.NewHandler(services, cfg, logger)}, nil
}
