package game

import (
	"go.uber.org/zap"

	"github.com/tuckinterrors/terrors-sim/internal/cards"
)

// CreepModule applies the objective's escalating nightmare creep
// penalty. Each turn the component with the highest effective_on_turn
// threshold at or below the current turn applies, unless the one-shot
// skip flag is set.
type CreepModule struct {
	logger    *zap.Logger
	engine    *EffectEngine
	objective *cards.ObjectiveDefinition
}

// NewCreepModule creates a creep module for the given objective.
func NewCreepModule(objective *cards.ObjectiveDefinition, engine *EffectEngine, logger *zap.Logger) *CreepModule {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CreepModule{
		logger:    logger,
		engine:    engine,
		objective: objective,
	}
}

// Active returns the creep component in force on the given turn, nil if
// none has come into effect yet.
func (c *CreepModule) Active(turn int) *cards.CreepComponent {
	var best *cards.CreepComponent
	for i := range c.objective.NightmareCreep {
		comp := &c.objective.NightmareCreep[i]
		if comp.EffectiveOnTurn > turn {
			continue
		}
		if best == nil || comp.EffectiveOnTurn > best.EffectiveOnTurn {
			best = comp
		}
	}
	return best
}

// Apply runs the creep window for the current turn. The skip flag is
// consumed whenever a component was in force, whether or not it ran.
func (c *CreepModule) Apply(gs *GameState) {
	comp := c.Active(gs.Turn)
	if comp == nil {
		return
	}

	if gs.SkipNextCreep {
		gs.Logf(LogCreep, "nightmare creep skipped this turn")
		gs.SkipNextCreep = false
		return
	}

	gs.CreepLevel = comp.EffectiveOnTurn
	gs.Logf(LogCreep, "nightmare creep applies: %s", comp.Description)

	evt := newEvent(cards.TriggerNightmareCreepApplies, 0)
	c.engine.FanOut(gs, cards.TriggerNightmareCreepApplies, evt, 0)
	c.engine.ResolveEffect(&comp.Effect, gs, gs.ActivePlayer(), nil, evt)
	c.engine.FanOut(gs, cards.TriggerNightmareCreepResolves, newEvent(cards.TriggerNightmareCreepResolves, 0), 0)

	gs.SkipNextCreep = false
}
