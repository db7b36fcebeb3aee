package agent

import (
	"fmt"

	"github.com/tuckinterrors/terrors-sim/internal/cards"
	"github.com/tuckinterrors/terrors-sim/internal/game"
)

// Generator enumerates the legal actions for a state. The rules engine
// re-validates everything it is handed, so the generator's checks only
// need to keep agents honest, not safe.
type Generator struct{}

// NewGenerator creates a Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// LegalActions lists every playable card, activatable ability, and the
// pass action.
func (g *Generator) LegalActions(gs *game.GameState) []game.GameAction {
	if gs.GameOver {
		return []game.GameAction{game.PassAction()}
	}
	p := gs.ActivePlayer()
	var out []game.GameAction

	for _, ci := range p.Hand() {
		if p.Mana >= ci.Definition.Cost {
			out = append(out, game.GameAction{
				Type:        game.ActionPlayCard,
				InstanceID:  ci.InstanceID,
				Description: fmt.Sprintf("play %s for %d mana", ci.Name(), ci.Definition.Cost),
			})
		}
		if ci.IsType(cards.TypeToy) && !p.FreeToyPlayed {
			out = append(out, game.GameAction{
				Type:        game.ActionPlayCard,
				InstanceID:  ci.InstanceID,
				FreeToyPlay: true,
				Description: fmt.Sprintf("play %s as the free toy play", ci.Name()),
			})
		}
	}

	for _, ci := range gs.InPlaySorted() {
		if ci.ControllerID != p.ID {
			continue
		}
		for idx := range ci.Definition.Effects {
			eff := &ci.Definition.Effects[idx]
			if !eff.Trigger.Activatable() {
				continue
			}
			if !abilityAvailable(p, ci, eff) {
				continue
			}
			out = append(out, game.GameAction{
				Type:        game.ActionActivateAbility,
				InstanceID:  ci.InstanceID,
				EffectIndex: idx,
				Description: fmt.Sprintf("activate %s on %s", eff.ID, ci.Name()),
			})
		}
	}

	return append(out, game.PassAction())
}

func abilityAvailable(p *game.PlayerState, ci *game.CardInstance, eff *cards.Effect) bool {
	tapCost := eff.Trigger == cards.TriggerTapAbility || eff.Cost[cards.CostTapSelf] > 0
	if tapCost && ci.Tapped {
		return false
	}
	if eff.OncePerTurn && ci.EffectUsedThisTurn(eff.ID) {
		return false
	}
	if p.Mana < eff.Cost[cards.CostPayMana] {
		return false
	}
	if p.SpiritTokens < eff.Cost[cards.CostPaySpiritTokens] {
		return false
	}
	if p.MemoryTokens < eff.Cost[cards.CostPayMemoryTokens] {
		return false
	}
	if len(p.Hand()) < eff.Cost[cards.CostDiscardFromHand]+eff.Cost[cards.CostExileFromHand] {
		return false
	}
	if len(p.Zones[cards.ZoneDiscard]) < eff.Cost[cards.CostExileFromDiscard] {
		return false
	}
	return true
}
