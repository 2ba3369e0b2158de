// Package storage opens the persistence adapter selected by configuration.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/front_desk_log/internal/core/domain"
	portsrepo "github.com/SscSPs/front_desk_log/internal/core/ports/repositories"
	"github.com/SscSPs/front_desk_log/internal/platform/config"
	"github.com/SscSPs/front_desk_log/internal/repositories/database/pgsql"
	"github.com/SscSPs/front_desk_log/internal/repositories/memory"
	"github.com/SscSPs/front_desk_log/pkg/database"
)

// Open returns the repositories for cfg.StorageDriver and a function releasing them.
// Postgres runs pending migrations first. The memory store lives only as long as
// the process and is seeded with the given hotels.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger, seed ...domain.Hotel) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		store := memory.NewStore()
		for _, h := range seed {
			store.AddHotel(h)
		}
		logger.Warn("Using in-memory storage, data is lost on exit")
		return store.Provider(), func() {}, nil
	case config.StoragePostgres:
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("Database connection pool established.")
		return pgsql.NewRepositoryProvider(pool), func() { database.ClosePgxPool(pool) }, nil
	default:
		return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
