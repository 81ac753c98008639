package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/myseetara-source/erp-seetara-sub007/internal/config"
	"github.com/myseetara-source/erp-seetara-sub007/internal/logger"
	"github.com/redis/go-redis/v9"
)

// Storages bundles every storage backend the services depend on.
type Storages struct {
	UserRepository  UserRepository
	RevocationStore RevocationStore

	// DB is the credential store connection. Exposed for retry
	// classification by background workers.
	DB *DB

	// Redis is nil when no Redis address is configured; the rate limiter and
	// the revocation store then run in-process.
	Redis *redis.Client
}

// NewStorages connects to Postgres, applies migrations and, when
// configured, connects to Redis.
func NewStorages(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		_ = db.Close()
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	s := &Storages{
		UserRepository: NewUserRepository(db, log),
		DB:             db,
	}

	if cfg.Storage.Redis.Address == "" {
		log.Info().Str("func", "NewStorages").Msg("no redis configured, using in-memory revocation store")
		s.RevocationStore = NewMemoryRevocationStore(0, cfg.Auth.RefreshTokenTTL, log)
		return s, nil
	}

	s.Redis, err = NewConnectRedis(ctx, cfg.Storage.Redis, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	s.RevocationStore = NewRedisRevocationStore(s.Redis, cfg.Auth.RefreshTokenTTL)

	return s, nil
}

// Close releases every open connection.
func (s *Storages) Close() error {
	var errs []error
	if s.Redis != nil {
		errs = append(errs, s.Redis.Close())
	}
	if s.DB != nil {
		errs = append(errs, s.DB.Close())
	}
	return errors.Join(errs...)
}
