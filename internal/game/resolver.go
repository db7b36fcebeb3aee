package game

import (
	"go.uber.org/zap"

	"github.com/tuckinterrors/terrors-sim/internal/cards"
)

// costPaymentOrder fixes the order ability costs are validated and paid
// in, so payment is deterministic regardless of map iteration.
var costPaymentOrder = []cards.CostKind{
	cards.CostPayMana,
	cards.CostPaySpiritTokens,
	cards.CostPayMemoryTokens,
	cards.CostTapSelf,
	cards.CostSacrificeSelf,
	cards.CostDiscardFromHand,
	cards.CostExileFromHand,
	cards.CostExileFromDiscard,
}

// ActionResolver validates and sequences the two player-initiated
// operations, playing a card and activating an ability. All legality
// checks pass before any cost is paid; partial payment on failure is
// forbidden. Legality failures are reported as a false return plus a log
// entry, never a panic.
type ActionResolver struct {
	logger  *zap.Logger
	engine  *EffectEngine
	checker *WinLossChecker
}

// NewActionResolver wires the resolver to the effect engine and the
// win/loss checker. The engine gets a back-reference so effects that play
// cards reuse the normal sequencing.
func NewActionResolver(engine *EffectEngine, checker *WinLossChecker, logger *zap.Logger) *ActionResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &ActionResolver{
		logger:  logger,
		engine:  engine,
		checker: checker,
	}
	engine.resolver = r
	return r
}

// Resolve dispatches one agent-chosen action. Pass actions always
// succeed.
func (r *ActionResolver) Resolve(gs *GameState, action GameAction) bool {
	switch action.Type {
	case ActionPlayCard:
		return r.PlayCard(gs, gs.ActivePlayerID, action.InstanceID, action.FreeToyPlay)
	case ActionActivateAbility:
		return r.ActivateAbility(gs, gs.ActivePlayerID, action.InstanceID, action.EffectIndex, action.Targets...)
	case ActionPassTurn:
		return true
	}
	gs.Logf(LogIllegal, "unknown action type %q", action.Type)
	return false
}

// PlayCard plays a card from the acting player's hand. For a free toy
// play the card must be a toy and the per-turn free play must be unused;
// for a paid play the player needs mana at least equal to the card's
// cost. Costs are deducted only after every legality check passes.
func (r *ActionResolver) PlayCard(gs *GameState, playerID string, instanceID int, freeToyPlay bool) bool {
	if gs.GameOver {
		gs.Logf(LogIllegal, "play rejected: game is over")
		return false
	}
	p := gs.Players[playerID]
	if p == nil {
		gs.Logf(LogIllegal, "play rejected: unknown player %q", playerID)
		return false
	}
	ci := handInstance(p, instanceID)
	if ci == nil {
		gs.Logf(LogIllegal, "play rejected: instance %d is not in hand", instanceID)
		return false
	}

	if freeToyPlay {
		if !ci.IsType(cards.TypeToy) {
			gs.Logf(LogIllegal, "play rejected: %s is not a toy", ci.Name())
			return false
		}
		if p.FreeToyPlayed {
			gs.Logf(LogIllegal, "play rejected: free toy play already used this turn")
			return false
		}
	} else if p.Mana < ci.Definition.Cost {
		gs.Logf(LogIllegal, "play rejected: %s costs %d, have %d mana", ci.Name(), ci.Definition.Cost, p.Mana)
		return false
	}

	// All checks passed; pay.
	if freeToyPlay {
		p.FreeToyPlayed = true
		gs.Logf(LogAction, "playing %s as the free toy play", ci.Name())
	} else {
		p.SpendResource(cards.ResourceMana, ci.Definition.Cost)
		gs.Logf(LogAction, "playing %s for %d mana", ci.Name(), ci.Definition.Cost)
	}

	r.resolvePlay(gs, p, ci)
	r.checker.Check(gs)
	return true
}

// resolvePlay runs the zone sequencing shared by paid, free, and
// cost-waived plays. Toys and rituals enter play before their on-play
// effects resolve, so effects can observe their own presence in play.
// Spells resolve and go to discard, bumping the storm count.
func (r *ActionResolver) resolvePlay(gs *GameState, p *PlayerState, ci *CardInstance) {
	def := ci.Definition
	switch def.Type {
	case cards.TypeToy, cards.TypeRitual:
		if def.Type == cards.TypeToy {
			gs.Progress.AddToSet(ProgressDistinctToysPlayed, def.ID)
		}
		r.engine.EnterPlay(gs, ci)
	case cards.TypeSpell:
		gs.StormCount++
		key := ProgressStormAtCast(def.ID)
		if gs.StormCount > gs.Progress.Count(key) {
			gs.Progress.Counts[key] = gs.StormCount
		}
		evt := newEvent(cards.TriggerOnPlay, ci.InstanceID)
		evt.FromZone = cards.ZoneHand
		evt.ToZone = cards.ZoneDiscard
		r.engine.ResolveOwn(gs, ci, cards.TriggerOnPlay, evt)
		if ci.Zone == cards.ZoneHand {
			gs.MoveCard(ci, cards.ZoneDiscard)
		}
	default:
		gs.Logf(LogWarning, "unknown card category %q for %s", def.Type, ci.Name())
	}
}

// playWithoutCost is the engine's entry point for effects that play a
// card from hand without paying its cost.
func (r *ActionResolver) playWithoutCost(gs *GameState, p *PlayerState, ci *CardInstance) {
	gs.Logf(LogAction, "playing %s without paying its cost", ci.Name())
	r.resolvePlay(gs, p, ci)
	r.checker.Check(gs)
}

// ActivateAbility activates the indexed effect of an in-play card the
// acting player controls. Tap abilities reject already-tapped sources;
// once-per-turn abilities reject re-activation within the same turn.
// Costs are paid atomically after all checks pass. A declared target
// satisfies the effect's CHOSEN target slots without an agent prompt.
func (r *ActionResolver) ActivateAbility(gs *GameState, playerID string, instanceID, effectIndex int, targets ...int) bool {
	if gs.GameOver {
		gs.Logf(LogIllegal, "activation rejected: game is over")
		return false
	}
	p := gs.Players[playerID]
	if p == nil {
		gs.Logf(LogIllegal, "activation rejected: unknown player %q", playerID)
		return false
	}
	ci, ok := gs.InPlay[instanceID]
	if !ok {
		gs.Logf(LogIllegal, "activation rejected: instance %d is not in play", instanceID)
		return false
	}
	if ci.ControllerID != playerID {
		gs.Logf(LogIllegal, "activation rejected: %s is not controlled by %s", ci.Name(), playerID)
		return false
	}
	if effectIndex < 0 || effectIndex >= len(ci.Definition.Effects) {
		gs.Logf(LogIllegal, "activation rejected: %s has no effect %d", ci.Name(), effectIndex)
		return false
	}
	eff := &ci.Definition.Effects[effectIndex]
	if !eff.Trigger.Activatable() {
		gs.Logf(LogIllegal, "activation rejected: effect %s is not an activated ability", eff.ID)
		return false
	}
	if requiresTap(eff) && ci.Tapped {
		gs.Logf(LogIllegal, "activation rejected: %s is already tapped", ci.Name())
		return false
	}
	if eff.OncePerTurn && ci.EffectUsedThisTurn(eff.ID) {
		gs.Logf(LogIllegal, "activation rejected: %s already used this turn", eff.ID)
		return false
	}
	if !r.canPayCosts(gs, p, ci, eff) {
		return false
	}

	r.payCosts(gs, p, ci, eff)
	if eff.OncePerTurn {
		ci.MarkEffectUsed(eff.ID)
	}
	gs.Logf(LogAction, "activated %s on %s", eff.ID, ci.Name())

	evt := newEvent(eff.Trigger, ci.InstanceID)
	if len(targets) > 0 {
		evt.ChosenInstanceID = targets[0]
	}
	r.engine.ResolveEffect(eff, gs, p, ci, evt)
	r.checker.Check(gs)
	return true
}

func requiresTap(eff *cards.Effect) bool {
	if eff.Trigger == cards.TriggerTapAbility {
		return true
	}
	return eff.Cost[cards.CostTapSelf] > 0
}

func (r *ActionResolver) canPayCosts(gs *GameState, p *PlayerState, ci *CardInstance, eff *cards.Effect) bool {
	for _, kind := range costPaymentOrder {
		amount, ok := eff.Cost[kind]
		if !ok || amount <= 0 {
			continue
		}
		switch kind {
		case cards.CostPayMana:
			if p.Mana < amount {
				gs.Logf(LogIllegal, "activation rejected: costs %d mana, have %d", amount, p.Mana)
				return false
			}
		case cards.CostPaySpiritTokens:
			if p.SpiritTokens < amount {
				gs.Logf(LogIllegal, "activation rejected: costs %d spirit tokens, have %d", amount, p.SpiritTokens)
				return false
			}
		case cards.CostPayMemoryTokens:
			if p.MemoryTokens < amount {
				gs.Logf(LogIllegal, "activation rejected: costs %d memory tokens, have %d", amount, p.MemoryTokens)
				return false
			}
		case cards.CostTapSelf, cards.CostSacrificeSelf:
			// Checked via zone/tap state above; always payable here.
		case cards.CostDiscardFromHand, cards.CostExileFromHand:
			if len(p.Hand()) < amount {
				gs.Logf(LogIllegal, "activation rejected: costs %d card(s) from hand, have %d", amount, len(p.Hand()))
				return false
			}
		case cards.CostExileFromDiscard:
			if len(p.Zones[cards.ZoneDiscard]) < amount {
				gs.Logf(LogIllegal, "activation rejected: costs %d card(s) from discard, have %d", amount, len(p.Zones[cards.ZoneDiscard]))
				return false
			}
		default:
			gs.Logf(LogWarning, "unknown cost kind %q treated as unpayable", kind)
			return false
		}
	}
	return true
}

func (r *ActionResolver) payCosts(gs *GameState, p *PlayerState, ci *CardInstance, eff *cards.Effect) {
	agent := gs.Agents[p.ID]
	for _, kind := range costPaymentOrder {
		amount, ok := eff.Cost[kind]
		if !ok || amount <= 0 {
			continue
		}
		switch kind {
		case cards.CostPayMana:
			p.SpendResource(cards.ResourceMana, amount)
		case cards.CostPaySpiritTokens:
			p.SpendResource(cards.ResourceSpirit, amount)
		case cards.CostPayMemoryTokens:
			p.SpendResource(cards.ResourceMemory, amount)
		case cards.CostTapSelf:
			ci.Tapped = true
		case cards.CostSacrificeSelf:
			r.engine.LeavePlay(gs, ci, cards.ZoneDiscard, true)
		case cards.CostDiscardFromHand:
			for _, id := range r.chooseFromZone(gs, agent, p, cards.ZoneHand, amount, "discard cost") {
				if target := handInstance(p, id); target != nil {
					r.engine.DiscardFromHand(gs, target)
				}
			}
		case cards.CostExileFromHand:
			for _, id := range r.chooseFromZone(gs, agent, p, cards.ZoneHand, amount, "exile cost") {
				if target := handInstance(p, id); target != nil {
					gs.MoveCard(target, cards.ZoneExile)
					gs.Logf(LogAction, "exiled %s from hand as a cost", target.Name())
				}
			}
		case cards.CostExileFromDiscard:
			for _, id := range r.chooseFromZone(gs, agent, p, cards.ZoneDiscard, amount, "exile cost") {
				for _, target := range p.Zones[cards.ZoneDiscard] {
					if target.InstanceID == id {
						gs.MoveCard(target, cards.ZoneExile)
						gs.Logf(LogAction, "exiled %s from discard as a cost", target.Name())
						break
					}
				}
			}
		}
	}
}

// chooseFromZone asks the agent to pick count instances from a zone,
// falling back to oldest-first when no agent is registered or its answer
// is unusable.
func (r *ActionResolver) chooseFromZone(gs *GameState, agent Agent, p *PlayerState, zone cards.Zone, count int, reason string) []int {
	candidates := p.Zones[zone]
	if len(candidates) == 0 {
		return nil
	}
	if count > len(candidates) {
		count = len(candidates)
	}
	if agent != nil {
		var picks []int
		if zone == cards.ZoneHand && reason == "discard cost" {
			picks = agent.ChooseCardsToDiscard(gs, count, reason)
		} else {
			picks = agent.ChooseTargets(gs, instanceIDs(candidates), count, reason)
		}
		if len(picks) == count {
			return picks
		}
	}
	out := make([]int, 0, count)
	for _, ci := range candidates[:count] {
		out = append(out, ci.InstanceID)
	}
	return out
}
