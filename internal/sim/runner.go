// Package sim orchestrates batches of independent games. Games share
// only the immutable definition library, so the batch runner fans work
// out across goroutines with no synchronization inside the engine.
package sim

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tuckinterrors/terrors-sim/internal/agent"
	"github.com/tuckinterrors/terrors-sim/internal/cards"
	"github.com/tuckinterrors/terrors-sim/internal/config"
	"github.com/tuckinterrors/terrors-sim/internal/game"
)

// GameResult is the per-game record produced by the runner.
type GameResult struct {
	GameID          uuid.UUID
	ObjectiveID     string
	AgentProfile    string
	Seed            int64
	WinStatus       string
	Turns           int
	SpiritTokens    int
	MemoryTokens    int
	DistinctToys    int
	ManaFromEffects int
	LogLines        int
	Duration        time.Duration
}

// Recorder persists game results. Implementations must be safe for
// concurrent use.
type Recorder interface {
	Record(ctx context.Context, result *GameResult) error
}

// Runner executes simulation batches against one definition library.
type Runner struct {
	logger   *zap.Logger
	library  *cards.Library
	cfg      config.SimulationConfig
	weights  agent.Weights
	recorder Recorder
}

// NewRunner creates a Runner. The recorder may be nil to skip
// persistence.
func NewRunner(library *cards.Library, cfg config.SimulationConfig, weights agent.Weights, recorder Recorder, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		logger:   logger,
		library:  library,
		cfg:      cfg,
		weights:  weights,
		recorder: recorder,
	}
}

// RunOne simulates a single game with the given seed and returns its
// result.
func (r *Runner) RunOne(seed int64) (*GameResult, error) {
	rng := rand.New(rand.NewSource(seed))

	var decider game.Agent
	var err error
	if r.cfg.Agent == "SCORING" {
		decider = agent.NewScoring(r.weights)
	} else {
		decider, err = agent.New(r.cfg.Agent, rng)
		if err != nil {
			return nil, err
		}
	}

	g, err := game.NewGame(r.library, r.cfg.ObjectiveID, decider, agent.NewGenerator(), rng, r.logger)
	if err != nil {
		return nil, fmt.Errorf("running game with seed %d: %w", seed, err)
	}

	start := time.Now()
	final := g.Run()
	p := final.ActivePlayer()

	return &GameResult{
		GameID:          final.GameID,
		ObjectiveID:     r.cfg.ObjectiveID,
		AgentProfile:    r.cfg.Agent,
		Seed:            seed,
		WinStatus:       final.WinStatus,
		Turns:           final.Turn,
		SpiritTokens:    p.SpiritTokens,
		MemoryTokens:    p.MemoryTokens,
		DistinctToys:    final.Progress.SetSize(game.ProgressDistinctToysPlayed),
		ManaFromEffects: final.Progress.Count(game.ProgressManaFromEffects),
		LogLines:        len(final.Log),
		Duration:        time.Since(start),
	}, nil
}

// RunBatch simulates the configured number of games across a worker
// pool. Per-game failures are logged and counted, never fatal.
func (r *Runner) RunBatch(ctx context.Context) (*Summary, error) {
	workers := r.cfg.Workers
	if workers < 1 {
		workers = 1
	}

	seeds := make(chan int64)
	results := make(chan *GameResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range seeds {
				result, err := r.RunOne(seed)
				if err != nil {
					r.logger.Error("game failed",
						zap.Int64("seed", seed),
						zap.Error(err))
					continue
				}
				if r.recorder != nil {
					if recErr := r.recorder.Record(ctx, result); recErr != nil {
						r.logger.Warn("failed to record result",
							zap.String("game_id", result.GameID.String()),
							zap.Error(recErr))
					}
				}
				select {
				case results <- result:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(seeds)
		for i := 0; i < r.cfg.Games; i++ {
			if ctx.Err() != nil {
				return
			}
			select {
			case seeds <- r.cfg.Seed + int64(i):
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	summary := NewSummary(r.cfg.ObjectiveID, r.cfg.Agent)
	for result := range results {
		summary.Add(result)
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}

	r.logger.Info("batch complete",
		zap.String("objective", r.cfg.ObjectiveID),
		zap.String("agent", r.cfg.Agent),
		zap.Int("games", summary.Games),
		zap.Float64("win_rate", summary.WinRate()))
	return summary, nil
}
