package book

import (
	"context"
	"fmt"

	"bookcatalog/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// OpenRepository connects the store named by cfg.Driver. The returned func
// releases its resources.
func OpenRepository(ctx context.Context, cfg config.DBConfig) (Repository, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("create db pool: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ping database (%s): %w", config.RedactDSN(cfg.DSN), err)
		}
		return NewPostgresRepo(pool, cfg.Timeout), pool.Close, nil

	case config.DriverSQLite:
		db, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return NewSQLiteRepo(db, cfg.Timeout), closeFn, nil

	case config.DriverMemory:
		return NewMemoryRepo(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}
