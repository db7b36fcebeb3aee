// Package repository persists simulation results to PostgreSQL.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/tuckinterrors/terrors-sim/internal/config"
)

// DB wraps the pgx connection pool.
type DB struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewDB opens a connection pool and verifies connectivity.
func NewDB(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.ConnectTimeout > 0 {
		poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	logger.Info("database connection pool initialized",
		zap.Int32("max_conns", poolCfg.MaxConns))
	return &DB{pool: pool, logger: logger}, nil
}

// Pool exposes the underlying pool.
func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

// Close shuts the pool down.
func (db *DB) Close() {
	db.pool.Close()
}
