package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/myseetara-source/erp-seetara-sub007/internal/config"
	"github.com/myseetara-source/erp-seetara-sub007/internal/crypto"
	"github.com/myseetara-source/erp-seetara-sub007/internal/handler"
	"github.com/myseetara-source/erp-seetara-sub007/internal/logger"
	"github.com/myseetara-source/erp-seetara-sub007/internal/ratelimit"
	"github.com/myseetara-source/erp-seetara-sub007/internal/server"
	"github.com/myseetara-source/erp-seetara-sub007/internal/service"
	"github.com/myseetara-source/erp-seetara-sub007/internal/store"
	"github.com/myseetara-source/erp-seetara-sub007/internal/token"
	"github.com/myseetara-source/erp-seetara-sub007/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}
	if buildVersion != "N/A" {
		cfg.App.Version = buildVersion
	}

	log := logger.NewLogger(cfg.App.Name, cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	if err = run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) error {
	storages, err := store.NewStorages(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("error creating storages: %w", err)
	}
	defer func() {
		if closeErr := storages.Close(); closeErr != nil {
			log.Err(closeErr).Msg("error closing storages")
		}
	}()

	hasher, err := crypto.NewBcryptHasher(cfg.Security.HashCost)
	if err != nil {
		return fmt.Errorf("error creating password hasher: %w", err)
	}

	issuer, err := token.NewIssuer(cfg.Auth)
	if err != nil {
		return fmt.Errorf("error creating token issuer: %w", err)
	}

	lastLogin := workers.NewLastLoginRecorder(storages.UserRepository, storages.DB, cfg.Workers, log)
	backgroundWorkers := []workers.Worker{lastLogin}

	var limiter ratelimit.Limiter
	if storages.Redis != nil {
		limiter, err = ratelimit.NewRedisLimiter(storages.Redis, cfg.Security.RateLimitMaxAttempts, cfg.Security.RateLimitWindow())
	} else {
		var memoryLimiter *ratelimit.MemoryLimiter
		memoryLimiter, err = ratelimit.NewMemoryLimiter(cfg.Security.RateLimitMaxAttempts, cfg.Security.RateLimitWindow())
		if err == nil {
			limiter = memoryLimiter
			backgroundWorkers = append(backgroundWorkers,
				workers.NewSweepWorker("gate-limiter", memoryLimiter, memoryLimiter.Window(), log))
		}
	}
	if err != nil {
		return fmt.Errorf("error creating rate limiter: %w", err)
	}

	services, err := service.NewServices(service.Dependencies{
		Storages:  storages,
		Hasher:    hasher,
		Issuer:    issuer,
		Limiter:   limiter,
		LastLogin: lastLogin,
	}, cfg, log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	// workers outlive the server so queued last-login updates from the final
	// requests are still drained
	workersCtx, stopWorkers := context.WithCancel(context.Background())
	workersDone := make(chan struct{})
	go func() {
		workers.NewWorkers(backgroundWorkers...).Run(workersCtx)
		close(workersDone)
	}()

	err = srv.RunServer(ctx)

	stopWorkers()
	<-workersDone

	return err
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
