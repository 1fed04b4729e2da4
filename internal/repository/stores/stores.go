// Package stores opens the table store selected by configuration.
package stores

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/retailsheet/internal/config"
	"github.com/mamadbah2/retailsheet/internal/repository/mongodb"
	"github.com/mamadbah2/retailsheet/internal/repository/sqlite"
	"github.com/mamadbah2/retailsheet/internal/repository/tablestore"
	"github.com/mamadbah2/retailsheet/pkg/clients/supabase"
)

// Open connects the configured backend. The returned close func is never nil.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (tablestore.Store, func(context.Context) error, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	noop := func(context.Context) error { return nil }

	switch cfg.Store.Backend {
	case config.BackendSupabase:
		logger.Info("using supabase table store", zap.String("url", cfg.Supabase.URL))
		return supabase.NewClient(cfg.Supabase), noop, nil
	case config.BackendMongoDB:
		repo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("using mongodb table store", zap.String("database", cfg.MongoDB.DBName))
		return repo, repo.Close, nil
	case config.BackendSQLite:
		store, err := sqlite.NewStore(cfg.SQLite.Path)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("using sqlite table store", zap.String("path", cfg.SQLite.Path))
		return store, store.Close, nil
	default:
		return nil, noop, fmt.Errorf("unsupported store backend %q", cfg.Store.Backend)
	}
}
