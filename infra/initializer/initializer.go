// Package initializer builds the application dependencies from
// configuration: logger, database, migrations, quote cache and the
// forecasting subprocess.
package initializer

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/stockfolio/server/infra"
	"github.com/stockfolio/server/infra/cache"
	infrapredictor "github.com/stockfolio/server/infra/predictor"
	infrarepository "github.com/stockfolio/server/infra/repository"
	"github.com/stockfolio/server/pkg/app"
	"github.com/stockfolio/server/pkg/config"
)

// InitializeDependencies wires everything the services need.
func InitializeDependencies(cfg *config.App) (*app.Deps, error) {
	deps := &app.Deps{}
	logger := setupLogger(cfg.Log)
	deps.Logger = logger

	db, err := infra.NewDBConnection(cfg.DB.Url, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, err
	}
	if err := db.AutoMigrate(infrarepository.Models()...); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	deps.Uow = infrarepository.NewUoW(db)

	// The quote cache is redis-backed when a URL is configured and
	// in-process otherwise.
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		opt.PoolSize = cfg.Redis.PoolSize
		opt.DialTimeout = cfg.Redis.DialTimeout
		opt.ReadTimeout = cfg.Redis.ReadTimeout
		opt.WriteTimeout = cfg.Redis.WriteTimeout
		deps.QuoteCache = cache.NewRedisQuoteCacheWithOptions(
			opt, cfg.Redis.KeyPrefix+cfg.QuoteCache.Prefix, logger)
		logger.Info("Using Redis quote cache")
	} else {
		deps.QuoteCache = cache.NewMemoryQuoteCache()
		logger.Info("Using in-memory quote cache")
	}

	deps.Forecaster = infrapredictor.New(cfg.Predictor, logger)

	return deps, nil
}
