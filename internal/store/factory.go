package store

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dukamarket/checkout-api/internal/config"
)

// New builds the configured store backend. The postgres backend also runs
// its migrations before use.
func New(cfg config.StoreConfig, logger *zap.Logger) (OrderStore, error) {
	switch cfg.Backend {
	case "postgres":
		pg, err := NewPostgresStore(cfg.Postgres, logger)
		if err != nil {
			return nil, err
		}
		if err := pg.RunMigrations(cfg.Postgres.MigrationsDir); err != nil {
			return nil, err
		}
		return pg, nil
	case "redis":
		return NewRedisStore(cfg.Redis, logger), nil
	case "memory":
		logger.Warn("Using in-memory order store, snapshots will not survive a restart")
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
