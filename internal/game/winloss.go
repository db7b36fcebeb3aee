package game

import (
	"go.uber.org/zap"

	"github.com/tuckinterrors/terrors-sim/internal/cards"
)

// ProgressStormAtCast is the progress-counter key recording the storm
// count observed when the named spell resolved.
func ProgressStormAtCast(cardID string) string {
	return "storm_at_cast:" + cardID
}

// WinLossChecker evaluates the objective's terminal predicates against a
// game state. It is consulted after every state-mutating action and at
// phase boundaries.
type WinLossChecker struct {
	logger    *zap.Logger
	objective *cards.ObjectiveDefinition
}

// NewWinLossChecker creates a checker for the given objective.
func NewWinLossChecker(objective *cards.ObjectiveDefinition, logger *zap.Logger) *WinLossChecker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WinLossChecker{
		logger:    logger,
		objective: objective,
	}
}

// Check evaluates, in fixed order, the primary win predicate, the
// alternative win predicate, and the nightfall loss. The first satisfied
// predicate makes the game terminal and short-circuits. Once the game is
// over the recorded status never changes.
func (w *WinLossChecker) Check(gs *GameState) bool {
	if gs.GameOver {
		return true
	}

	if gs.Progress.Flag(ProgressWinEventFlag) {
		status := WinStatusPrimary
		if w.objective.AlternativeWin != nil {
			status = WinStatusAlternative
		}
		w.finish(gs, status)
		return true
	}

	if w.satisfied(gs, w.objective.PrimaryWin) {
		w.finish(gs, WinStatusPrimary)
		return true
	}
	if w.satisfied(gs, w.objective.AlternativeWin) {
		w.finish(gs, WinStatusAlternative)
		return true
	}
	if gs.Turn > w.objective.NightfallTurn {
		w.finish(gs, WinStatusNightfall)
		return true
	}
	return false
}

func (w *WinLossChecker) satisfied(gs *GameState, wc *cards.WinCondition) bool {
	if wc == nil {
		return false
	}
	switch wc.Kind {
	case cards.WinPlayToysAndSpirits:
		return gs.Progress.SetSize(ProgressDistinctToysPlayed) >= wc.ToysNeeded &&
			gs.Progress.Count(ProgressSpiritsCreatedTotal) >= wc.SpiritsNeeded
	case cards.WinManaFromEffects:
		return gs.Progress.Count(ProgressManaFromEffects) >= wc.ManaNeeded
	case cards.WinTotalSpirits:
		return gs.Progress.Count(ProgressSpiritsCreatedTotal) >= wc.SpiritsNeeded
	case cards.WinSpellWithStorm:
		return gs.Progress.Count(ProgressStormAtCast(wc.SpellCardID)) >= wc.MinStormCount
	}
	w.logger.Warn("unknown win condition kind",
		zap.String("kind", string(wc.Kind)),
		zap.String("game_id", gs.GameID.String()))
	gs.Logf(LogWarning, "unknown win condition kind %q", wc.Kind)
	return false
}

func (w *WinLossChecker) finish(gs *GameState, status string) {
	gs.GameOver = true
	gs.WinStatus = status
	gs.Logf(LogResult, "game over on turn %d: %s", gs.Turn, status)
	w.logger.Debug("game finished",
		zap.String("game_id", gs.GameID.String()),
		zap.Int("turn", gs.Turn),
		zap.String("status", status))
}
