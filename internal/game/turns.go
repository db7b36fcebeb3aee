package game

import (
	"go.uber.org/zap"

	"github.com/tuckinterrors/terrors-sim/internal/cards"
)

// defaultMaxActionsPerTurn caps main-phase iterations so a misbehaving
// agent cannot stall a simulation batch.
const defaultMaxActionsPerTurn = 1000

// TurnManager drives the begin/main/end phase state machine for one
// game. Within the main phase it repeatedly asks the action generator
// for legal actions and the active agent for a decision, until the agent
// passes or the game ends.
type TurnManager struct {
	logger    *zap.Logger
	engine    *EffectEngine
	resolver  *ActionResolver
	checker   *WinLossChecker
	creep     *CreepModule
	generator ActionGenerator
	objective *cards.ObjectiveDefinition

	maxActionsPerTurn int
}

// NewTurnManager wires the phase controller to its collaborators.
func NewTurnManager(objective *cards.ObjectiveDefinition, engine *EffectEngine, resolver *ActionResolver, checker *WinLossChecker, creep *CreepModule, generator ActionGenerator, logger *zap.Logger) *TurnManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TurnManager{
		logger:            logger,
		engine:            engine,
		resolver:          resolver,
		checker:           checker,
		creep:             creep,
		generator:         generator,
		objective:         objective,
		maxActionsPerTurn: defaultMaxActionsPerTurn,
	}
}

// Run drives turns until the game reaches a terminal state. The
// nightfall loss bounds the loop.
func (tm *TurnManager) Run(gs *GameState) {
	for !gs.GameOver {
		tm.RunTurn(gs)
	}
}

// RunTurn advances the game by one full turn, or by one pending extra
// turn without advancing the turn counter.
func (tm *TurnManager) RunTurn(gs *GameState) {
	if gs.GameOver {
		return
	}
	if gs.ExtraTurns > 0 {
		gs.ExtraTurns--
		gs.Logf(LogPhase, "taking an extra turn %d", gs.Turn)
	} else {
		gs.Turn++
	}

	tm.beginPhase(gs)
	if gs.GameOver {
		return
	}
	tm.mainPhase(gs)
	if gs.GameOver {
		return
	}
	tm.endPhase(gs)
}

func (tm *TurnManager) beginPhase(gs *GameState) {
	gs.Phase = PhaseBegin
	gs.Logf(LogPhase, "begin turn %d", gs.Turn)

	// Nightfall is checked as soon as the new turn starts.
	if tm.checker.Check(gs) {
		return
	}

	p := gs.ActivePlayer()

	for _, ci := range gs.InPlaySorted() {
		ci.Tapped = false
		ci.TurnsInPlay++
	}
	for _, player := range gs.Players {
		for _, zone := range player.Zones {
			for _, ci := range zone {
				ci.EffectsUsedThisTurn = make(map[string]bool)
			}
		}
	}
	p.FreeToyPlayed = false
	gs.StormCount = 0

	gain := gs.Turn + BaseManaIncrement
	if gs.Turn == 1 && tm.objective.Setup != nil && tm.objective.Setup.FirstTurnManaOverride != nil {
		gain = *tm.objective.Setup.FirstTurnManaOverride
	}
	p.AddResource(cards.ResourceMana, gain)
	gs.Logf(LogPhase, "gained %d mana", gain)

	tm.engine.DrawCards(gs, p, DefaultCardsDrawnPerTurn)
	if gs.GameOver {
		return
	}

	tm.creep.Apply(gs)
	if tm.checker.Check(gs) {
		return
	}

	tm.engine.FanOut(gs, cards.TriggerBeginTurn, newEvent(cards.TriggerBeginTurn, 0), 0)
	tm.checker.Check(gs)
}

func (tm *TurnManager) mainPhase(gs *GameState) {
	gs.Phase = PhaseMain

	agent := gs.Agents[gs.ActivePlayerID]
	if agent == nil || tm.generator == nil {
		gs.Logf(LogWarning, "main phase skipped: no agent or action generator")
		return
	}

	for i := 0; i < tm.maxActionsPerTurn; i++ {
		if gs.GameOver {
			return
		}
		legal := tm.generator.LegalActions(gs)
		action := agent.DecideAction(gs, legal)
		if action.Type == ActionPassTurn || action.Type == "" {
			gs.Logf(LogAction, "passed turn")
			return
		}
		tm.resolver.Resolve(gs, action)
	}
	tm.logger.Warn("main phase action cap reached",
		zap.String("game_id", gs.GameID.String()),
		zap.Int("turn", gs.Turn))
	gs.Logf(LogWarning, "main phase action cap reached")
}

func (tm *TurnManager) endPhase(gs *GameState) {
	gs.Phase = PhaseEnd
	gs.Logf(LogPhase, "end turn %d", gs.Turn)

	tm.engine.FanOut(gs, cards.TriggerEndTurn, newEvent(cards.TriggerEndTurn, 0), 0)
	if tm.checker.Check(gs) {
		return
	}

	p := gs.ActivePlayer()
	if p.Mana > 0 {
		gs.Logf(LogPhase, "%d unspent mana lost", p.Mana)
		p.Mana = 0
	}

	tm.discardToHandSize(gs, p)
	tm.checker.Check(gs)
}

// discardToHandSize discards down to the effective maximum hand size,
// letting the agent choose, falling back to oldest-first.
func (tm *TurnManager) discardToHandSize(gs *GameState, p *PlayerState) {
	max := DefaultMaxHandSize
	if tm.objective.Special.MaxHandSizeOverride != nil {
		max = *tm.objective.Special.MaxHandSizeOverride
	}
	excess := len(p.Hand()) - max
	if excess <= 0 {
		return
	}
	gs.Logf(LogPhase, "discarding %d card(s) to hand size %d", excess, max)

	var picks []int
	if agent := gs.Agents[p.ID]; agent != nil {
		picks = agent.ChooseCardsToDiscard(gs, excess, "maximum hand size")
	}
	for _, id := range picks {
		if len(p.Hand()) <= max {
			break
		}
		if ci := handInstance(p, id); ci != nil {
			tm.engine.DiscardFromHand(gs, ci)
		}
	}
	// Oldest-first fallback covers a missing or short agent answer.
	for len(p.Hand()) > max {
		tm.engine.DiscardFromHand(gs, p.Hand()[0])
	}
}
