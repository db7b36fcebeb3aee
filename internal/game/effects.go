package game

import (
	"go.uber.org/zap"

	"github.com/tuckinterrors/terrors-sim/internal/cards"
)

// EffectEngine is the interpreter over the closed effect vocabulary:
// condition evaluation, action execution, and recursive player-choice
// branching. Unknown condition kinds evaluate to false and unknown
// action kinds are no-ops; a single malformed card must never abort a
// batch of simulations.
type EffectEngine struct {
	logger  *zap.Logger
	library *cards.Library

	// resolver is bound after construction so PLAY_CARD_NO_COST can
	// reuse the normal play sequencing.
	resolver *ActionResolver
}

// NewEffectEngine creates an EffectEngine over the given definition set.
func NewEffectEngine(library *cards.Library, logger *zap.Logger) *EffectEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EffectEngine{
		logger:  logger,
		library: library,
	}
}

// CheckCondition evaluates a single condition against the current state.
// A nil condition is vacuously true. Unknown kinds log a warning and
// evaluate to false; malformed rules data never reads as "always true".
func (e *EffectEngine) CheckCondition(cond *cards.Condition, p *PlayerState, source *CardInstance, gs *GameState, evt *EventContext) bool {
	if cond == nil {
		return true
	}
	switch cond.Kind {
	case cards.CondIsFirstMemory:
		return source != nil && source.InstanceID == gs.FirstMemoryInstanceID
	case cards.CondFirstMemoryInPlay:
		fm := gs.FirstMemoryInstance()
		return fm != nil && fm.Zone == cards.ZoneInPlay
	case cards.CondFirstMemoryInDiscard:
		fm := gs.FirstMemoryInstance()
		return fm != nil && fm.Zone == cards.ZoneDiscard
	case cards.CondPlayerHasResource:
		return cond.Comparison.Evaluate(p.Resource(cond.Resource), cond.Amount)
	case cards.CondCardInZone:
		for _, ci := range p.Zones[cond.Zone] {
			if ci.Definition.ID == cond.CardID {
				return true
			}
		}
		return false
	case cards.CondHasCounterValueGE:
		return source != nil && source.Counters.GetCount(cond.CounterType) >= cond.Amount
	case cards.CondDeckSizeLE:
		return len(p.Deck()) <= cond.Amount
	case cards.CondCurrentTurnIs:
		return gs.Turn == cond.Turn
	case cards.CondIsMovingFromZone:
		return evt != nil && evt.FromZone == cond.Zone
	case cards.CondIsMovingToZone:
		return evt != nil && evt.ToZone == cond.Zone
	case cards.CondStormCountGE:
		return gs.StormCount >= cond.Amount
	case cards.CondNightmareCreepLevelIs:
		return gs.CreepLevel == cond.Amount
	}
	e.logger.Warn("unknown condition kind",
		zap.String("kind", string(cond.Kind)),
		zap.String("game_id", gs.GameID.String()))
	gs.Logf(LogWarning, "unknown condition kind %q", cond.Kind)
	return false
}

// ResolveEffect resolves one effect: if its condition holds, its actions
// execute strictly in declaration order. Reports whether the actions ran.
func (e *EffectEngine) ResolveEffect(eff *cards.Effect, gs *GameState, p *PlayerState, source *CardInstance, evt *EventContext) bool {
	if gs.GameOver {
		return false
	}
	if !e.CheckCondition(eff.Condition, p, source, gs, evt) {
		return false
	}
	if evt == nil {
		evt = newEvent(eff.Trigger, instanceID(source))
	}
	for i := range eff.Actions {
		e.executeAction(&eff.Actions[i], gs, p, source, evt)
	}
	return true
}

// ResolveOwn resolves all of the subject's own effects with the given
// trigger, honoring once-per-turn flags.
func (e *EffectEngine) ResolveOwn(gs *GameState, subject *CardInstance, trigger cards.TriggerKind, evt *EventContext) {
	if subject == nil {
		return
	}
	for i := range subject.Definition.Effects {
		eff := &subject.Definition.Effects[i]
		if eff.Trigger != trigger {
			continue
		}
		if eff.OncePerTurn && subject.EffectUsedThisTurn(eff.ID) {
			continue
		}
		ran := e.ResolveEffect(eff, gs, subject.controller(gs), subject, evt)
		if ran && eff.OncePerTurn {
			subject.MarkEffectUsed(eff.ID)
		}
	}
}

// FanOut resolves the given trigger on every in-play instance except the
// excluded one, in canonical order: oldest in play first, tie-broken by
// instance id.
func (e *EffectEngine) FanOut(gs *GameState, trigger cards.TriggerKind, evt *EventContext, excludeInstanceID int) {
	for _, ci := range gs.InPlaySorted() {
		if ci.InstanceID == excludeInstanceID {
			continue
		}
		e.ResolveOwn(gs, ci, trigger, evt)
	}
}

// EnterPlay moves an instance into play and fires the enter-play
// triggers: the card's own on-play effects first, then other permanents'
// reactions.
func (e *EffectEngine) EnterPlay(gs *GameState, ci *CardInstance) {
	evt := newEvent(cards.TriggerOnPlay, ci.InstanceID)
	evt.FromZone = ci.Zone
	evt.ToZone = cards.ZoneInPlay
	gs.MoveCard(ci, cards.ZoneInPlay)
	e.ResolveOwn(gs, ci, cards.TriggerOnPlay, evt)
	e.FanOut(gs, cards.TriggerOtherEntersPlay, evt, ci.InstanceID)
}

// LeavePlay moves an in-play instance to the destination zone, giving the
// card's own replacement effects a chance to cancel the move first.
// Returns false if the move was cancelled.
func (e *EffectEngine) LeavePlay(gs *GameState, ci *CardInstance, to cards.Zone, sacrifice bool) bool {
	evt := newEvent(cards.TriggerBeforeLeavePlay, ci.InstanceID)
	evt.FromZone = cards.ZoneInPlay
	evt.ToZone = to
	evt.Sacrifice = sacrifice
	e.ResolveOwn(gs, ci, cards.TriggerBeforeLeavePlay, evt)
	if evt.CancelLeave || evt.CancelMove {
		gs.Logf(LogEffect, "%s remains in play: pending move to %s cancelled", ci.Name(), to)
		return false
	}
	gs.MoveCard(ci, to)
	e.ResolveOwn(gs, ci, cards.TriggerOnLeavePlay, evt)
	if sacrifice {
		e.ResolveOwn(gs, ci, cards.TriggerOnSacrificeThis, evt)
	}
	switch to {
	case cards.ZoneDiscard:
		e.ResolveOwn(gs, ci, cards.TriggerOnDiscardThis, evt)
	case cards.ZoneExile:
		e.ResolveOwn(gs, ci, cards.TriggerOnExileThis, evt)
	}
	e.FanOut(gs, cards.TriggerOtherLeavesPlay, evt, ci.InstanceID)
	return true
}

// DiscardFromHand discards one card from hand, firing its discard
// trigger.
func (e *EffectEngine) DiscardFromHand(gs *GameState, ci *CardInstance) {
	evt := newEvent(cards.TriggerOnDiscardThis, ci.InstanceID)
	evt.FromZone = cards.ZoneHand
	evt.ToZone = cards.ZoneDiscard
	gs.MoveCard(ci, cards.ZoneDiscard)
	gs.Logf(LogEffect, "discarded %s from hand", ci.Name())
	e.ResolveOwn(gs, ci, cards.TriggerOnDiscardThis, evt)
}

// DrawCards draws up to n cards, firing a card-drawn trigger per card.
// Stops quietly when the deck empties.
func (e *EffectEngine) DrawCards(gs *GameState, p *PlayerState, n int) int {
	drawn := 0
	for i := 0; i < n; i++ {
		ci := gs.DrawOne(p)
		if ci == nil {
			gs.Logf(LogWarning, "draw skipped: deck is empty")
			break
		}
		drawn++
		gs.Logf(LogEffect, "drew %s", ci.Name())
		evt := newEvent(cards.TriggerCardDrawn, ci.InstanceID)
		e.FanOut(gs, cards.TriggerCardDrawn, evt, 0)
	}
	return drawn
}

// CreateSpirits grants n spirit tokens and fires the spirit-created
// trigger once per token.
func (e *EffectEngine) CreateSpirits(gs *GameState, p *PlayerState, n int) {
	if n <= 0 {
		return
	}
	p.AddResource(cards.ResourceSpirit, n)
	gs.Progress.AddCount(ProgressSpiritsCreatedTotal, n)
	gs.Logf(LogEffect, "created %d spirit token(s)", n)
	for i := 0; i < n; i++ {
		e.FanOut(gs, cards.TriggerSpiritCreated, newEvent(cards.TriggerSpiritCreated, 0), 0)
	}
}

// CreateMemories grants n memory tokens and fires the memory-token
// trigger once per token.
func (e *EffectEngine) CreateMemories(gs *GameState, p *PlayerState, n int) {
	if n <= 0 {
		return
	}
	p.AddResource(cards.ResourceMemory, n)
	gs.Logf(LogEffect, "created %d memory token(s)", n)
	for i := 0; i < n; i++ {
		e.FanOut(gs, cards.TriggerMemoryTokenCreated, newEvent(cards.TriggerMemoryTokenCreated, 0), 0)
	}
}

func (e *EffectEngine) executeAction(a *cards.Action, gs *GameState, p *PlayerState, source *CardInstance, evt *EventContext) {
	if gs.GameOver {
		return
	}
	switch a.Kind {
	case cards.ActionDrawCards:
		e.DrawCards(gs, p, amountOrOne(a.Amount))

	case cards.ActionAddMana:
		n := amountOrOne(a.Amount)
		p.AddResource(cards.ResourceMana, n)
		gs.Progress.AddCount(ProgressManaFromEffects, n)
		gs.Logf(LogEffect, "gained %d mana", n)

	case cards.ActionCreateSpiritTokens:
		e.CreateSpirits(gs, p, amountOrOne(a.Amount))

	case cards.ActionCreateMemoryTokens:
		e.CreateMemories(gs, p, amountOrOne(a.Amount))

	case cards.ActionModifyResource:
		switch {
		case a.Resource == cards.ResourceSpirit && a.Amount > 0:
			e.CreateSpirits(gs, p, a.Amount)
		case a.Resource == cards.ResourceMemory && a.Amount > 0:
			e.CreateMemories(gs, p, a.Amount)
		default:
			if a.Resource == cards.ResourceMana && a.Amount > 0 {
				gs.Progress.AddCount(ProgressManaFromEffects, a.Amount)
			}
			p.AddResource(a.Resource, a.Amount)
			gs.Logf(LogEffect, "%s adjusted by %d", a.Resource, a.Amount)
		}

	case cards.ActionSacrificeResource:
		n := amountOrOne(a.Amount)
		if !p.SpendResource(a.Resource, n) {
			gs.Logf(LogWarning, "cannot sacrifice %d %s: insufficient", n, a.Resource)
			return
		}
		gs.Logf(LogEffect, "sacrificed %d %s", n, a.Resource)

	case cards.ActionSacrificeCardInPlay:
		target := e.resolveTarget(a, gs, p, source, evt, cards.ZoneInPlay)
		if target == nil {
			gs.Logf(LogWarning, "sacrifice: no target available")
			return
		}
		gs.Logf(LogEffect, "sacrificed %s", target.Name())
		e.LeavePlay(gs, target, cards.ZoneDiscard, true)

	case cards.ActionDiscardChosenFromHand:
		n := amountOrOne(a.Amount)
		agent := gs.Agents[p.ID]
		if agent == nil || len(p.Hand()) == 0 {
			return
		}
		for _, id := range agent.ChooseCardsToDiscard(gs, n, "effect") {
			if ci := handInstance(p, id); ci != nil {
				e.DiscardFromHand(gs, ci)
			}
		}

	case cards.ActionDiscardRandomFromHand:
		n := amountOrOne(a.Amount)
		for i := 0; i < n && len(p.Hand()) > 0; i++ {
			hand := p.Hand()
			e.DiscardFromHand(gs, hand[gs.Rand().Intn(len(hand))])
		}

	case cards.ActionReturnThisToHand:
		if source == nil || source.Zone != cards.ZoneInPlay {
			return
		}
		if e.LeavePlay(gs, source, cards.ZoneHand, false) {
			gs.Logf(LogEffect, "returned %s to hand", source.Name())
		}

	case cards.ActionReturnCardZoneToZone:
		from := a.FromZone
		if from == "" {
			from = a.Zone
		}
		target := e.findInZone(gs, p, a, evt, from)
		if target == nil {
			gs.Logf(LogWarning, "return: no card found in %s", from)
			return
		}
		e.moveBetweenZones(gs, target, a.ToZone)

	case cards.ActionExileCardFromZone:
		from := a.FromZone
		if from == "" {
			from = a.Zone
		}
		target := e.findInZone(gs, p, a, evt, from)
		if target == nil {
			gs.Logf(LogWarning, "exile: no card found in %s", from)
			return
		}
		e.moveBetweenZones(gs, target, cards.ZoneExile)

	case cards.ActionMillDeck:
		n := amountOrOne(a.Amount)
		for i := 0; i < n; i++ {
			deck := p.Deck()
			if len(deck) == 0 {
				break
			}
			top := deck[0]
			gs.MoveCard(top, cards.ZoneDiscard)
			gs.Logf(LogEffect, "milled %s", top.Name())
		}

	case cards.ActionPlaceCounter:
		target := e.resolveTarget(a, gs, p, source, evt, cards.ZoneInPlay)
		if target == nil {
			return
		}
		target.Counters.AddCounter(a.CounterType, amountOrOne(a.Amount))
		gs.Logf(LogEffect, "placed %d %s counter(s) on %s", amountOrOne(a.Amount), a.CounterType, target.Name())
		thresholdEvt := newEvent(cards.TriggerCounterThreshold, target.InstanceID)
		e.ResolveOwn(gs, target, cards.TriggerCounterThreshold, thresholdEvt)

	case cards.ActionRemoveCounter:
		target := e.resolveTarget(a, gs, p, source, evt, cards.ZoneInPlay)
		if target == nil {
			return
		}
		target.Counters.RemoveCounter(a.CounterType, amountOrOne(a.Amount))
		gs.Logf(LogEffect, "removed %d %s counter(s) from %s", amountOrOne(a.Amount), a.CounterType, target.Name())

	case cards.ActionTapCardInPlay:
		if target := e.resolveTarget(a, gs, p, source, evt, cards.ZoneInPlay); target != nil {
			target.Tapped = true
			gs.Logf(LogEffect, "tapped %s", target.Name())
		}

	case cards.ActionUntapCardInPlay:
		if target := e.resolveTarget(a, gs, p, source, evt, cards.ZoneInPlay); target != nil {
			target.Tapped = false
			gs.Logf(LogEffect, "untapped %s", target.Name())
		}

	case cards.ActionCreateToken:
		var def *cards.CardDefinition
		if a.CardID != "" {
			var err error
			def, err = e.library.Card(a.CardID)
			if err != nil {
				gs.Logf(LogWarning, "create token: unknown card id %q", a.CardID)
				return
			}
		} else if a.TokenName != "" {
			def = &cards.CardDefinition{ID: "token_" + a.TokenName, Name: a.TokenName, Type: cards.TypeToy}
		} else {
			gs.Logf(LogWarning, "create token with neither card id nor token name")
			return
		}
		n := amountOrOne(a.Amount)
		for i := 0; i < n; i++ {
			token := gs.NewInstance(def, p.ID)
			gs.Logf(LogEffect, "created token %s", token.Name())
			e.EnterPlay(gs, token)
		}

	case cards.ActionSearchDeckForCard:
		for _, ci := range p.Deck() {
			if ci.Definition.ID == a.CardID {
				gs.MoveCard(ci, cards.ZoneHand)
				gs.Logf(LogEffect, "searched deck for %s", ci.Name())
				shuffleDeck(gs, p)
				return
			}
		}
		gs.Logf(LogWarning, "search: %q not found in deck", a.CardID)
		shuffleDeck(gs, p)

	case cards.ActionBrowseDeck:
		e.browseDeck(gs, p, a)

	case cards.ActionPlayCardNoCost:
		e.playNoCost(gs, p, a, evt)

	case cards.ActionSkipNightmareCreep:
		gs.SkipNextCreep = true
		gs.Logf(LogEffect, "nightmare creep will be skipped next time it would apply")

	case cards.ActionCancelImpendingLeave:
		if evt != nil {
			evt.CancelLeave = true
		}

	case cards.ActionCancelImpendingMove:
		if evt != nil {
			evt.CancelMove = true
		}

	case cards.ActionRollDice:
		sides := a.Sides
		if sides <= 0 {
			sides = 6
		}
		roll := gs.Rand().Intn(sides) + 1
		if evt != nil {
			evt.ChosenNumber = roll
		}
		if source != nil {
			source.Custom["last_roll"] = roll
		}
		gs.Logf(LogEffect, "rolled %d on a d%d", roll, sides)

	case cards.ActionConvertTokens:
		n := amountOrOne(a.Amount)
		if !p.SpendResource(a.Resource, n) {
			gs.Logf(LogWarning, "convert: insufficient %s", a.Resource)
			return
		}
		gained := a.Count
		if gained <= 0 {
			gained = n
		}
		switch a.ToResource {
		case cards.ResourceSpirit:
			e.CreateSpirits(gs, p, gained)
		case cards.ResourceMemory:
			e.CreateMemories(gs, p, gained)
		default:
			p.AddResource(a.ToResource, gained)
			gs.Logf(LogEffect, "converted %d %s into %d %s", n, a.Resource, gained, a.ToResource)
		}

	case cards.ActionTransformToyToSpirits:
		target := e.resolveTarget(a, gs, p, source, evt, cards.ZoneInPlay)
		if target == nil || !target.IsType(cards.TypeToy) {
			gs.Logf(LogWarning, "transform: no toy target available")
			return
		}
		gs.Logf(LogEffect, "transformed %s into spirits", target.Name())
		if e.LeavePlay(gs, target, cards.ZoneDiscard, false) {
			e.CreateSpirits(gs, p, amountOrOne(a.Amount))
		}

	case cards.ActionTakeExtraTurn:
		gs.ExtraTurns++
		gs.Logf(LogEffect, "gained an extra turn")

	case cards.ActionConditionalEffect:
		branch := a.OnFalse
		if e.CheckCondition(a.If, p, source, gs, evt) {
			branch = a.OnTrue
		}
		for i := range branch {
			e.executeAction(&branch[i], gs, p, source, evt)
		}

	case cards.ActionPlayerChoice:
		e.resolveChoice(gs, p, a, source, evt)

	case cards.ActionSetWinEventFlag:
		key := a.FlagKey
		if key == "" {
			key = ProgressWinEventFlag
		}
		gs.Progress.SetFlag(key)
		gs.Logf(LogEffect, "win event flag %q set", key)

	default:
		e.logger.Warn("unknown action kind",
			zap.String("kind", string(a.Kind)),
			zap.String("game_id", gs.GameID.String()))
		gs.Logf(LogWarning, "unknown action kind %q", a.Kind)
	}
}

// resolveChoice asks the controlling agent to answer a PLAYER_CHOICE
// prompt and executes exactly one branch.
func (e *EffectEngine) resolveChoice(gs *GameState, p *PlayerState, a *cards.Action, source *CardInstance, evt *EventContext) {
	choice := a.Choice
	if choice == nil {
		gs.Logf(LogWarning, "player choice with no prompt attached")
		return
	}
	agent := gs.Agents[p.ID]
	if agent == nil {
		gs.Logf(LogWarning, "player choice with no agent registered")
		return
	}

	ctx := ChoiceContext{
		Kind:             choice.Kind,
		Prompt:           choice.Prompt,
		SourceInstanceID: instanceID(source),
		Branches:         choice.BranchNames(),
	}
	switch choice.Kind {
	case cards.ChoiceCardFromHand:
		ctx.Options = instanceIDs(p.Zones[cards.ZoneHand])
	case cards.ChoiceCardFromDiscard:
		ctx.Options = instanceIDs(p.Zones[cards.ZoneDiscard])
	case cards.ChoiceCardInPlay, cards.ChoiceTargetCardInPlay:
		ctx.Options = instanceIDs(gs.InPlaySorted())
	case cards.ChoiceNumberFromRange:
		ctx.Min = a.Amount
		ctx.Max = a.Count
	}

	answer := agent.MakeChoice(gs, ctx)
	gs.Logf(LogChoice, "choice %q answered", choice.Kind)

	runBranch := func(branch []cards.Action) {
		for i := range branch {
			e.executeAction(&branch[i], gs, p, source, evt)
		}
	}

	switch choice.Kind {
	case cards.ChoiceYesNo:
		if answer.Yes {
			runBranch(choice.OnYes)
		} else {
			runBranch(choice.OnNo)
		}
	case cards.ChoiceDiscardOrSacrifice, cards.ChoiceNamedBranch:
		branch, ok := choice.Branches[answer.Branch]
		if !ok {
			gs.Logf(LogWarning, "choice answered with unknown branch %q", answer.Branch)
			return
		}
		runBranch(branch)
	case cards.ChoiceCardFromHand, cards.ChoiceCardFromDiscard,
		cards.ChoiceCardInPlay, cards.ChoiceTargetCardInPlay:
		if answer.InstanceID == 0 {
			runBranch(choice.OnNo)
			return
		}
		if evt != nil {
			evt.ChosenInstanceID = answer.InstanceID
		}
		runBranch(choice.OnYes)
	case cards.ChoiceNumberFromRange:
		n := answer.Number
		if n < ctx.Min {
			n = ctx.Min
		}
		if ctx.Max > 0 && n > ctx.Max {
			n = ctx.Max
		}
		if evt != nil {
			evt.ChosenNumber = n
		}
		runBranch(choice.OnYes)
	default:
		gs.Logf(LogWarning, "unknown choice kind %q", choice.Kind)
	}
}

// browseDeck reveals the top cards of the deck, lets the agent keep up to
// Count of them, and puts the rest on the bottom in their original order.
func (e *EffectEngine) browseDeck(gs *GameState, p *PlayerState, a *cards.Action) {
	look := amountOrOne(a.Amount)
	deck := p.Deck()
	if look > len(deck) {
		look = len(deck)
	}
	if look == 0 {
		return
	}
	revealed := make([]*CardInstance, look)
	copy(revealed, deck[:look])
	gs.Logf(LogEffect, "browsing top %d card(s) of deck", look)

	keep := a.Count
	if keep <= 0 {
		keep = 1
	}
	var kept map[int]bool
	if agent := gs.Agents[p.ID]; agent != nil {
		kept = make(map[int]bool)
		for _, id := range agent.ChooseTargets(gs, instanceIDs(revealed), keep, "browse deck") {
			kept[id] = true
		}
	}
	for _, ci := range revealed {
		if kept[ci.InstanceID] {
			gs.MoveCard(ci, cards.ZoneHand)
			gs.Logf(LogEffect, "kept %s from browse", ci.Name())
		} else {
			gs.MoveCard(ci, cards.ZoneDeck) // appends to the bottom
		}
	}
}

// playNoCost plays a card from hand without paying its mana cost, using
// the normal play sequencing.
func (e *EffectEngine) playNoCost(gs *GameState, p *PlayerState, a *cards.Action, evt *EventContext) {
	if e.resolver == nil {
		gs.Logf(LogWarning, "play without cost unavailable: no resolver bound")
		return
	}
	var target *CardInstance
	if a.CardID != "" {
		for _, ci := range p.Hand() {
			if ci.Definition.ID == a.CardID {
				target = ci
				break
			}
		}
	} else if agent := gs.Agents[p.ID]; agent != nil && len(p.Hand()) > 0 {
		picks := agent.ChooseTargets(gs, instanceIDs(p.Hand()), 1, "play without cost")
		if len(picks) == 1 {
			target = handInstance(p, picks[0])
		}
	}
	if target == nil {
		gs.Logf(LogWarning, "play without cost: no card selected")
		return
	}
	e.resolver.playWithoutCost(gs, p, target)
}

// resolveTarget resolves an action's target reference to an instance.
// An empty target with no card id defers to the controlling agent.
func (e *EffectEngine) resolveTarget(a *cards.Action, gs *GameState, p *PlayerState, source *CardInstance, evt *EventContext, zone cards.Zone) *CardInstance {
	switch a.Target {
	case "SELF":
		return source
	case "FIRST_MEMORY":
		return gs.FirstMemoryInstance()
	case "CHOSEN":
		if evt == nil || evt.ChosenInstanceID == 0 {
			return nil
		}
		ci, ok := gs.FindInstance(evt.ChosenInstanceID)
		if !ok {
			return nil
		}
		return ci
	}
	if a.CardID != "" {
		for _, ci := range p.Zones[zone] {
			if ci.Definition.ID == a.CardID {
				return ci
			}
		}
		return nil
	}
	candidates := p.Zones[zone]
	if len(candidates) == 0 {
		return nil
	}
	if agent := gs.Agents[p.ID]; agent != nil {
		picks := agent.ChooseTargets(gs, instanceIDs(candidates), 1, string(a.Kind))
		if len(picks) == 1 {
			for _, ci := range candidates {
				if ci.InstanceID == picks[0] {
					return ci
				}
			}
		}
		return nil
	}
	return candidates[0]
}

// findInZone locates an action's subject card in a specific zone.
func (e *EffectEngine) findInZone(gs *GameState, p *PlayerState, a *cards.Action, evt *EventContext, zone cards.Zone) *CardInstance {
	if a.Target != "" || a.CardID != "" {
		return e.resolveTarget(a, gs, p, nil, evt, zone)
	}
	candidates := p.Zones[zone]
	if len(candidates) == 0 {
		return nil
	}
	if agent := gs.Agents[p.ID]; agent != nil {
		picks := agent.ChooseTargets(gs, instanceIDs(candidates), 1, string(a.Kind))
		if len(picks) == 1 {
			for _, ci := range candidates {
				if ci.InstanceID == picks[0] {
					return ci
				}
			}
		}
		return nil
	}
	return candidates[0]
}

// moveBetweenZones moves a card to the destination zone, routing through
// the leave-play sequencing when the card is leaving play.
func (e *EffectEngine) moveBetweenZones(gs *GameState, ci *CardInstance, to cards.Zone) {
	if to == "" {
		gs.Logf(LogWarning, "move: no destination zone for %s", ci.Name())
		return
	}
	if ci.Zone == cards.ZoneInPlay {
		if e.LeavePlay(gs, ci, to, false) {
			gs.Logf(LogEffect, "moved %s to %s", ci.Name(), to)
		}
		return
	}
	if to == cards.ZoneInPlay {
		gs.Logf(LogEffect, "moved %s into play", ci.Name())
		e.EnterPlay(gs, ci)
		return
	}
	gs.MoveCard(ci, to)
	gs.Logf(LogEffect, "moved %s to %s", ci.Name(), to)
}

func shuffleDeck(gs *GameState, p *PlayerState) {
	deck := p.Zones[cards.ZoneDeck]
	gs.Rand().Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
}

func amountOrOne(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}

func instanceID(ci *CardInstance) int {
	if ci == nil {
		return 0
	}
	return ci.InstanceID
}

func instanceIDs(list []*CardInstance) []int {
	out := make([]int, 0, len(list))
	for _, ci := range list {
		out = append(out, ci.InstanceID)
	}
	return out
}

func handInstance(p *PlayerState, instanceID int) *CardInstance {
	for _, ci := range p.Zones[cards.ZoneHand] {
		if ci.InstanceID == instanceID {
			return ci
		}
	}
	return nil
}
