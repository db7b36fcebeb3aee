package game

import (
	"fmt"
	"math/rand"
	"sort"

	"go.uber.org/zap"

	"github.com/tuckinterrors/terrors-sim/internal/cards"
)

// DefaultPlayerID identifies the single solitaire player.
const DefaultPlayerID = "player"

// defaultFirstMemoryLookAt is how many cards of the deck top a
// from-top-of-deck first-memory setup reveals when the objective does
// not say.
const defaultFirstMemoryLookAt = 5

// Game bundles a single game's state with the wired rules components.
type Game struct {
	State     *GameState
	Objective *cards.ObjectiveDefinition

	Engine   *EffectEngine
	Resolver *ActionResolver
	Checker  *WinLossChecker
	Creep    *CreepModule
	Turns    *TurnManager
}

// NewGame builds and sets up a fresh game for the given objective: deck
// construction, shuffle, objective setup instructions, first-memory
// designation, and opening hand. The returned game is ready for Run.
func NewGame(library *cards.Library, objectiveID string, agent Agent, generator ActionGenerator, rng *rand.Rand, logger *zap.Logger) (*Game, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	objective, err := library.Objective(objectiveID)
	if err != nil {
		return nil, fmt.Errorf("setting up game: %w", err)
	}

	gs := NewGameState(DefaultPlayerID, rng)
	gs.Agents[DefaultPlayerID] = agent
	p := gs.ActivePlayer()

	buildDeck(gs, p, library, objective)
	shuffleDeck(gs, p)
	applySetupInstructions(gs, p, objective)

	for i := 0; i < DefaultOpeningHandSize; i++ {
		gs.DrawOne(p)
	}
	gs.Logf(LogSetup, "drew opening hand of %d", len(p.Hand()))

	designateFirstMemory(gs, p, objective)

	engine := NewEffectEngine(library, logger)
	checker := NewWinLossChecker(objective, logger)
	resolver := NewActionResolver(engine, checker, logger)
	creep := NewCreepModule(objective, engine, logger)
	turns := NewTurnManager(objective, engine, resolver, checker, creep, generator, logger)

	gs.Logf(LogSetup, "objective %s ready, nightfall on turn %d", objective.ID, objective.NightfallTurn)
	logger.Debug("game set up",
		zap.String("game_id", gs.GameID.String()),
		zap.String("objective", objective.ID),
		zap.Int("deck_size", len(p.Deck())))

	return &Game{
		State:     gs,
		Objective: objective,
		Engine:    engine,
		Resolver:  resolver,
		Checker:   checker,
		Creep:     creep,
		Turns:     turns,
	}, nil
}

// Run plays the game to its terminal state and returns the final state.
func (g *Game) Run() *GameState {
	g.Turns.Run(g.State)
	return g.State
}

// buildDeck instantiates every non-banned definition DeckQuantity times
// into the player's deck. Definitions are taken in id order so instance
// ids are reproducible for a given seed.
func buildDeck(gs *GameState, p *PlayerState, library *cards.Library, objective *cards.ObjectiveDefinition) {
	ids := make([]string, 0, len(library.Cards))
	for id := range library.Cards {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if objective.IsBanned(id) {
			continue
		}
		def := library.Cards[id]
		for i := 0; i < def.DeckQuantity; i++ {
			ci := gs.NewInstance(def, p.ID)
			gs.MoveCard(ci, cards.ZoneDeck)
		}
	}
	gs.Logf(LogSetup, "deck built with %d card(s)", len(p.Deck()))
}

// applySetupInstructions moves the objective's named starting cards out
// of the deck. Setup placements bypass play triggers.
func applySetupInstructions(gs *GameState, p *PlayerState, objective *cards.ObjectiveDefinition) {
	setup := objective.Setup
	if setup == nil {
		return
	}
	for _, id := range setup.StartCardsInHand {
		if ci := takeFromDeck(gs, p, id); ci != nil {
			gs.MoveCard(ci, cards.ZoneHand)
			gs.Logf(LogSetup, "%s starts in hand", ci.Name())
		}
	}
	for _, id := range setup.StartCardsInPlay {
		if ci := takeFromDeck(gs, p, id); ci != nil {
			gs.MoveCard(ci, cards.ZoneInPlay)
			gs.Logf(LogSetup, "%s starts in play", ci.Name())
		}
	}
}

func takeFromDeck(gs *GameState, p *PlayerState, cardID string) *CardInstance {
	for _, ci := range p.Deck() {
		if ci.Definition.ID == cardID {
			return ci
		}
	}
	gs.Logf(LogWarning, "setup: %q not found in deck", cardID)
	return nil
}

// designateFirstMemory performs the objective's first-memory setup after
// the opening hand is drawn.
func designateFirstMemory(gs *GameState, p *PlayerState, objective *cards.ObjectiveDefinition) {
	fm := objective.FirstMemory
	if fm == nil {
		return
	}
	agent := gs.Agents[p.ID]

	switch fm.Kind {
	case cards.FirstMemoryFromHandToPlay:
		candidates := toysIn(p.Hand())
		if fm.DesignatedCardID != "" {
			candidates = filterByDefinition(candidates, fm.DesignatedCardID)
		}
		ci := pickOne(gs, agent, candidates, "first memory")
		if ci == nil {
			gs.Logf(LogWarning, "first memory: no eligible toy in hand")
			return
		}
		gs.MoveCard(ci, cards.ZoneInPlay)
		designate(gs, p, ci)

	case cards.FirstMemoryFromTopOfDeck:
		look := fm.LookAt
		if look <= 0 {
			look = defaultFirstMemoryLookAt
		}
		deck := p.Deck()
		if look > len(deck) {
			look = len(deck)
		}
		candidates := toysIn(deck[:look])
		if fm.DesignatedCardID != "" {
			candidates = filterByDefinition(candidates, fm.DesignatedCardID)
		}
		ci := pickOne(gs, agent, candidates, "first memory")
		if ci == nil {
			gs.Logf(LogWarning, "first memory: no toy in top %d of deck", look)
			shuffleDeck(gs, p)
			return
		}
		gs.MoveCard(ci, cards.ZoneHand)
		designate(gs, p, ci)
		shuffleDeck(gs, p)

	default:
		gs.Logf(LogWarning, "unknown first memory setup kind %q", fm.Kind)
	}
}

func designate(gs *GameState, p *PlayerState, ci *CardInstance) {
	gs.FirstMemoryInstanceID = ci.InstanceID
	p.FirstMemoryCardID = ci.Definition.ID
	gs.Logf(LogSetup, "%s designated as the first memory", ci.Name())
}

func toysIn(list []*CardInstance) []*CardInstance {
	var out []*CardInstance
	for _, ci := range list {
		if ci.IsType(cards.TypeToy) {
			out = append(out, ci)
		}
	}
	return out
}

func filterByDefinition(list []*CardInstance, cardID string) []*CardInstance {
	var out []*CardInstance
	for _, ci := range list {
		if ci.Definition.ID == cardID {
			out = append(out, ci)
		}
	}
	return out
}

func pickOne(gs *GameState, agent Agent, candidates []*CardInstance, reason string) *CardInstance {
	if len(candidates) == 0 {
		return nil
	}
	if agent != nil {
		picks := agent.ChooseTargets(gs, instanceIDs(candidates), 1, reason)
		if len(picks) == 1 {
			for _, ci := range candidates {
				if ci.InstanceID == picks[0] {
					return ci
				}
			}
		}
	}
	return candidates[0]
}
