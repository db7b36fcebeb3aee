package repository

import (
	"context"
	"fmt"

	"github.com/tuckinterrors/terrors-sim/internal/sim"
)

// ResultRepository stores per-game simulation results.
type ResultRepository struct {
	db *DB
}

// NewResultRepository creates a ResultRepository over the given pool.
func NewResultRepository(db *DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// EnsureSchema creates the results table if it does not exist.
func (r *ResultRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS game_results (
			game_id           UUID PRIMARY KEY,
			objective_id      TEXT NOT NULL,
			agent_profile     TEXT NOT NULL,
			seed              BIGINT NOT NULL,
			win_status        TEXT NOT NULL,
			turns             INT NOT NULL,
			spirit_tokens     INT NOT NULL,
			memory_tokens     INT NOT NULL,
			distinct_toys     INT NOT NULL,
			mana_from_effects INT NOT NULL,
			log_lines         INT NOT NULL,
			duration_ms       BIGINT NOT NULL,
			created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("creating game_results table: %w", err)
	}
	return nil
}

// Record inserts one game result. Safe for concurrent use.
func (r *ResultRepository) Record(ctx context.Context, result *sim.GameResult) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO game_results (
			game_id, objective_id, agent_profile, seed, win_status,
			turns, spirit_tokens, memory_tokens, distinct_toys,
			mana_from_effects, log_lines, duration_ms
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		result.GameID,
		result.ObjectiveID,
		result.AgentProfile,
		result.Seed,
		result.WinStatus,
		result.Turns,
		result.SpiritTokens,
		result.MemoryTokens,
		result.DistinctToys,
		result.ManaFromEffects,
		result.LogLines,
		result.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("inserting game result %s: %w", result.GameID, err)
	}
	return nil
}
