// Package backend opens the repository store selected by STORAGE_DRIVER.
package backend

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/skillswap-api/config"
	"github.com/oksasatya/skillswap-api/internal/domain/repository"
	"github.com/oksasatya/skillswap-api/internal/infrastructure/memory"
	"github.com/oksasatya/skillswap-api/internal/infrastructure/mongo"
	pginfra "github.com/oksasatya/skillswap-api/internal/infrastructure/postgres"
)

// Open connects the configured backend. Postgres migrations are applied first.
func Open(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (repository.Store, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory, "":
		logger.Warn("using in-memory store; data is lost on restart")
		return memory.New().Repositories(), nil

	case config.StorageMongo:
		m, err := mongo.New(ctx, cfg.MongoURI)
		if err != nil {
			return repository.Store{}, fmt.Errorf("connect mongo: %w", err)
		}
		logger.Info("connected to mongodb")
		return m.Repositories(), nil

	case config.StoragePostgres:
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			return repository.Store{}, fmt.Errorf("migrate postgres: %w", err)
		}
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{
			MaxConns:    cfg.DBMaxConns,
			MinConns:    cfg.DBMinConns,
			MaxConnLife: cfg.DBMaxConnLife,
			AppName:     cfg.AppName,
		})
		if err != nil {
			return repository.Store{}, fmt.Errorf("connect postgres: %w", err)
		}
		logger.Info("connected to postgres")
		return pginfra.Repositories(pool), nil
	}
	return repository.Store{}, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
