package game

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/tuckinterrors/terrors-sim/internal/cards"
)

// testRig bundles a wired engine around a hand-built state, bypassing
// the normal deck construction so tests control zones exactly.
type testRig struct {
	Library   *cards.Library
	Objective *cards.ObjectiveDefinition
	State     *GameState
	Engine    *EffectEngine
	Resolver  *ActionResolver
	Checker   *WinLossChecker
	Creep     *CreepModule
	Turns     *TurnManager
	Agent     *scriptedAgent
}

func newTestRig(defs []*cards.CardDefinition, objective *cards.ObjectiveDefinition) *testRig {
	if objective == nil {
		objective = &cards.ObjectiveDefinition{
			ID:            "obj_test",
			Title:         "Test Objective",
			PrimaryWin:    &cards.WinCondition{Kind: cards.WinTotalSpirits, SpiritsNeeded: 999},
			NightfallTurn: 50,
		}
	}
	library := &cards.Library{
		Cards:      make(map[string]*cards.CardDefinition),
		Objectives: map[string]*cards.ObjectiveDefinition{objective.ID: objective},
	}
	for _, def := range defs {
		library.Cards[def.ID] = def
	}

	logger := zap.NewNop()
	gs := NewGameState(DefaultPlayerID, rand.New(rand.NewSource(7)))
	agent := &scriptedAgent{}
	gs.Agents[DefaultPlayerID] = agent

	engine := NewEffectEngine(library, logger)
	checker := NewWinLossChecker(objective, logger)
	resolver := NewActionResolver(engine, checker, logger)
	creep := NewCreepModule(objective, engine, logger)
	turns := NewTurnManager(objective, engine, resolver, checker, creep, passGenerator{}, logger)

	return &testRig{
		Library:   library,
		Objective: objective,
		State:     gs,
		Engine:    engine,
		Resolver:  resolver,
		Checker:   checker,
		Creep:     creep,
		Turns:     turns,
		Agent:     agent,
	}
}

// give places a fresh instance of the definition into the given zone.
func (r *testRig) give(def *cards.CardDefinition, zone cards.Zone) *CardInstance {
	ci := r.State.NewInstance(def, DefaultPlayerID)
	r.State.MoveCard(ci, zone)
	return ci
}

// passGenerator offers only the pass action, keeping driven turns inert
// unless a test scripts the agent directly.
type passGenerator struct{}

func (passGenerator) LegalActions(gs *GameState) []GameAction {
	return []GameAction{PassAction()}
}

// scriptedAgent answers with canned values and records what it was
// asked.
type scriptedAgent struct {
	Actions []GameAction
	Answer  ChoiceAnswer

	ChoicesSeen  []ChoiceContext
	DiscardCalls int
}

func (a *scriptedAgent) DecideAction(gs *GameState, legal []GameAction) GameAction {
	if len(a.Actions) == 0 {
		return PassAction()
	}
	next := a.Actions[0]
	a.Actions = a.Actions[1:]
	return next
}

func (a *scriptedAgent) MakeChoice(gs *GameState, choice ChoiceContext) ChoiceAnswer {
	a.ChoicesSeen = append(a.ChoicesSeen, choice)
	return a.Answer
}

func (a *scriptedAgent) ChooseTargets(gs *GameState, candidates []int, count int, reason string) []int {
	if count > len(candidates) {
		count = len(candidates)
	}
	return candidates[:count]
}

func (a *scriptedAgent) ChooseCardsToDiscard(gs *GameState, count int, reason string) []int {
	a.DiscardCalls++
	hand := gs.ActivePlayer().Hand()
	if count > len(hand) {
		count = len(hand)
	}
	out := make([]int, 0, count)
	for _, ci := range hand[:count] {
		out = append(out, ci.InstanceID)
	}
	return out
}

// Common definitions used across the engine tests.

func simpleToy(id string, cost int) *cards.CardDefinition {
	return &cards.CardDefinition{
		ID:   id,
		Name: id,
		Type: cards.TypeToy,
		Cost: cost,
	}
}

func toyWithEffect(id string, cost int, eff cards.Effect) *cards.CardDefinition {
	def := simpleToy(id, cost)
	def.Effects = []cards.Effect{eff}
	return def
}
