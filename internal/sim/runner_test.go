package sim

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuckinterrors/terrors-sim/internal/agent"
	"github.com/tuckinterrors/terrors-sim/internal/cards"
	"github.com/tuckinterrors/terrors-sim/internal/config"
	"github.com/tuckinterrors/terrors-sim/internal/game"
)

func testLibrary() *cards.Library {
	objective := &cards.ObjectiveDefinition{
		ID:            "obj_short",
		Title:         "A Short Night",
		PrimaryWin:    &cards.WinCondition{Kind: cards.WinTotalSpirits, SpiritsNeeded: 999},
		NightfallTurn: 4,
	}
	library := &cards.Library{
		Cards:      make(map[string]*cards.CardDefinition),
		Objectives: map[string]*cards.ObjectiveDefinition{objective.ID: objective},
	}
	for _, def := range []*cards.CardDefinition{
		{ID: "toy_bear", Name: "Worn Bear", Type: cards.TypeToy, Cost: 1, DeckQuantity: 6},
		{ID: "spell_hush", Name: "Hush", Type: cards.TypeSpell, Cost: 1, DeckQuantity: 6},
	} {
		library.Cards[def.ID] = def
	}
	return library
}

func testSimConfig(games int) config.SimulationConfig {
	return config.SimulationConfig{
		ObjectiveID: "obj_short",
		Agent:       "RANDOM",
		Games:       games,
		Seed:        100,
		Workers:     2,
	}
}

func TestRunOneProducesResult(t *testing.T) {
	r := NewRunner(testLibrary(), testSimConfig(1), agent.Weights{}, nil, nil)

	result, err := r.RunOne(100)
	require.NoError(t, err)
	assert.Equal(t, "obj_short", result.ObjectiveID)
	assert.NotEmpty(t, result.WinStatus)
	assert.GreaterOrEqual(t, result.Turns, 1)
	assert.Greater(t, result.LogLines, 0)
}

func TestRunOneIsDeterministicPerSeed(t *testing.T) {
	r := NewRunner(testLibrary(), testSimConfig(1), agent.Weights{}, nil, nil)

	a, err := r.RunOne(7)
	require.NoError(t, err)
	b, err := r.RunOne(7)
	require.NoError(t, err)

	assert.Equal(t, a.WinStatus, b.WinStatus)
	assert.Equal(t, a.Turns, b.Turns)
	assert.Equal(t, a.LogLines, b.LogLines)
	assert.Equal(t, a.SpiritTokens, b.SpiritTokens)
}

func TestRunOneUnknownObjective(t *testing.T) {
	cfg := testSimConfig(1)
	cfg.ObjectiveID = "obj_missing"
	r := NewRunner(testLibrary(), cfg, agent.Weights{}, nil, nil)

	_, err := r.RunOne(1)
	assert.Error(t, err)
}

// memRecorder collects results in memory.
type memRecorder struct {
	mu      sync.Mutex
	results []*GameResult
}

func (m *memRecorder) Record(ctx context.Context, result *GameResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, result)
	return nil
}

func TestRunBatchAggregatesAndRecords(t *testing.T) {
	recorder := &memRecorder{}
	r := NewRunner(testLibrary(), testSimConfig(8), agent.Weights{}, recorder, nil)

	summary, err := r.RunBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, summary.Games)
	assert.Len(t, recorder.results, 8)

	total := 0
	for _, n := range summary.ByStatus {
		total += n
	}
	assert.Equal(t, 8, total)
}

func TestRunBatchHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(testLibrary(), testSimConfig(10000), agent.Weights{}, nil, nil)
	_, err := r.RunBatch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummaryMath(t *testing.T) {
	s := NewSummary("obj_short", "RANDOM")
	s.Add(&GameResult{WinStatus: game.WinStatusPrimary, Turns: 3})
	s.Add(&GameResult{WinStatus: game.WinStatusNightfall, Turns: 5})
	s.Add(&GameResult{WinStatus: game.WinStatusAlternative, Turns: 4})

	assert.Equal(t, 3, s.Games)
	assert.InDelta(t, 2.0/3.0, s.WinRate(), 1e-9)
	assert.InDelta(t, 4.0, s.AverageTurns(), 1e-9)
	assert.Contains(t, s.String(), "LOSS_NIGHTFALL")
}
