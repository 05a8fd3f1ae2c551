package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"feedback-prioritizer/internal/config"
	"feedback-prioritizer/internal/repository"
	boltrepo "feedback-prioritizer/internal/repository/bolt"
	filerepo "feedback-prioritizer/internal/repository/file"
	"feedback-prioritizer/internal/repository/postgres"
)

func Open(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.DBURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// OpenStore builds the configured feedback store and runs its Init. The
// returned close func releases the store and any pool behind it.
func OpenStore(ctx context.Context, cfg config.Config, log zerolog.Logger) (repository.FeedbackRepository, func(), error) {
	var (
		store   repository.FeedbackRepository
		cleanup = func() {}
	)

	switch cfg.StoreDriver {
	case "", "file":
		store = filerepo.NewFeedbackRepo(cfg.DataFile, log)
	case "bolt":
		store = boltrepo.NewFeedbackRepo(cfg.BoltPath, log)
	case "postgres":
		pool, err := Open(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		store = postgres.NewFeedbackRepo(pool)
		cleanup = pool.Close
	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	if err := store.Init(ctx); err != nil {
		_ = store.Close()
		cleanup()
		return nil, nil, fmt.Errorf("init %s store: %w", cfg.StoreDriver, err)
	}

	return store, func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("close store")
		}
		cleanup()
	}, nil
}
