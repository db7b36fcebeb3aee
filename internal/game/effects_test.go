package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuckinterrors/terrors-sim/internal/cards"
)

func TestNilConditionIsVacuouslyTrue(t *testing.T) {
	rig := newTestRig(nil, nil)
	ok := rig.Engine.CheckCondition(nil, rig.State.ActivePlayer(), nil, rig.State, nil)
	assert.True(t, ok)
}

func TestUnknownConditionFailsClosed(t *testing.T) {
	rig := newTestRig(nil, nil)
	cond := &cards.Condition{Kind: cards.ConditionKind("NO_SUCH_CONDITION")}
	ok := rig.Engine.CheckCondition(cond, rig.State.ActivePlayer(), nil, rig.State, nil)
	assert.False(t, ok, "malformed rules data must never read as always-true")
}

func TestConditionKinds(t *testing.T) {
	rig := newTestRig(nil, nil)
	p := rig.State.ActivePlayer()
	gs := rig.State

	fm := rig.give(simpleToy("toy_fm", 1), cards.ZoneInPlay)
	gs.FirstMemoryInstanceID = fm.InstanceID
	p.SpiritTokens = 3
	gs.Turn = 4
	gs.StormCount = 2
	fm.Counters.AddCounter("dream", 2)

	tests := []struct {
		name string
		cond cards.Condition
		src  *CardInstance
		want bool
	}{
		{"is first memory", cards.Condition{Kind: cards.CondIsFirstMemory}, fm, true},
		{"first memory in play", cards.Condition{Kind: cards.CondFirstMemoryInPlay}, nil, true},
		{"first memory in discard", cards.Condition{Kind: cards.CondFirstMemoryInDiscard}, nil, false},
		{"resource threshold met", cards.Condition{Kind: cards.CondPlayerHasResource, Resource: cards.ResourceSpirit, Amount: 3}, nil, true},
		{"resource threshold missed", cards.Condition{Kind: cards.CondPlayerHasResource, Resource: cards.ResourceSpirit, Amount: 4}, nil, false},
		{"card in zone", cards.Condition{Kind: cards.CondCardInZone, Zone: cards.ZoneInPlay, CardID: "toy_fm"}, nil, true},
		{"counter threshold", cards.Condition{Kind: cards.CondHasCounterValueGE, CounterType: "dream", Amount: 2}, fm, true},
		{"deck size", cards.Condition{Kind: cards.CondDeckSizeLE, Amount: 0}, nil, true},
		{"current turn", cards.Condition{Kind: cards.CondCurrentTurnIs, Turn: 4}, nil, true},
		{"storm count", cards.Condition{Kind: cards.CondStormCountGE, Amount: 2}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rig.Engine.CheckCondition(&tt.cond, p, tt.src, gs, nil)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOncePerTurnNotConsumedByFailedCondition(t *testing.T) {
	eff := cards.Effect{
		ID:          "e_gate",
		Trigger:     cards.TriggerBeginTurn,
		OncePerTurn: true,
		Condition:   &cards.Condition{Kind: cards.CondStormCountGE, Amount: 1},
		Actions:     []cards.Action{{Kind: cards.ActionAddMana, Amount: 2}},
	}
	def := toyWithEffect("toy_gated", 1, eff)
	rig := newTestRig([]*cards.CardDefinition{def}, nil)
	p := rig.State.ActivePlayer()
	ci := rig.give(def, cards.ZoneInPlay)

	rig.Engine.ResolveOwn(rig.State, ci, cards.TriggerBeginTurn, nil)
	assert.Equal(t, 0, p.Mana)
	assert.False(t, ci.EffectUsedThisTurn("e_gate"),
		"a condition that never passed must not spend the once-per-turn use")

	rig.State.StormCount = 1
	rig.Engine.ResolveOwn(rig.State, ci, cards.TriggerBeginTurn, nil)
	assert.Equal(t, 2, p.Mana)
	assert.True(t, ci.EffectUsedThisTurn("e_gate"))

	rig.Engine.ResolveOwn(rig.State, ci, cards.TriggerBeginTurn, nil)
	assert.Equal(t, 2, p.Mana, "spent for the rest of the turn once it ran")
}

func TestUnknownActionIsLoggedNoOp(t *testing.T) {
	rig := newTestRig(nil, nil)
	eff := cards.Effect{
		ID:      "e1",
		Trigger: cards.TriggerOnPlay,
		Actions: []cards.Action{{Kind: cards.ActionKind("NO_SUCH_ACTION")}},
	}

	before := len(rig.State.Log)
	rig.Engine.ResolveEffect(&eff, rig.State, rig.State.ActivePlayer(), nil, nil)

	found := false
	for _, entry := range rig.State.Log[before:] {
		if entry.Kind == LogWarning {
			found = true
		}
	}
	assert.True(t, found, "unknown action must log a warning, not panic")
}

func TestActionsRunInDeclarationOrder(t *testing.T) {
	rig := newTestRig(nil, nil)
	p := rig.State.ActivePlayer()
	eff := cards.Effect{
		ID:      "e1",
		Trigger: cards.TriggerOnPlay,
		Actions: []cards.Action{
			{Kind: cards.ActionAddMana, Amount: 2},
			{Kind: cards.ActionSacrificeResource, Resource: cards.ResourceMana, Amount: 1},
		},
	}

	rig.Engine.ResolveEffect(&eff, rig.State, p, nil, nil)
	assert.Equal(t, 1, p.Mana, "gain then sacrifice must net 1")
}

func TestConditionalEffectTakesOneBranch(t *testing.T) {
	rig := newTestRig(nil, nil)
	p := rig.State.ActivePlayer()
	p.SpiritTokens = 1

	act := cards.Action{
		Kind:    cards.ActionConditionalEffect,
		If:      &cards.Condition{Kind: cards.CondPlayerHasResource, Resource: cards.ResourceSpirit, Amount: 1},
		OnTrue:  []cards.Action{{Kind: cards.ActionAddMana, Amount: 5}},
		OnFalse: []cards.Action{{Kind: cards.ActionCreateMemoryTokens, Amount: 5}},
	}
	eff := cards.Effect{ID: "e1", Trigger: cards.TriggerOnPlay, Actions: []cards.Action{act}}

	rig.Engine.ResolveEffect(&eff, rig.State, p, nil, nil)
	assert.Equal(t, 5, p.Mana)
	assert.Equal(t, 0, p.MemoryTokens, "false branch must not run")
}

func TestYesNoChoiceRunsOnYesExactlyOnce(t *testing.T) {
	rig := newTestRig(nil, nil)
	p := rig.State.ActivePlayer()
	rig.Agent.Answer = ChoiceAnswer{Yes: true}

	eff := cards.Effect{
		ID:      "e1",
		Trigger: cards.TriggerOnPlay,
		Actions: []cards.Action{{
			Kind: cards.ActionPlayerChoice,
			Choice: &cards.ChoiceSpec{
				ID:     "c1",
				Kind:   cards.ChoiceYesNo,
				Prompt: "gain mana?",
				OnYes:  []cards.Action{{Kind: cards.ActionAddMana, Amount: 3}},
				OnNo:   []cards.Action{{Kind: cards.ActionCreateMemoryTokens, Amount: 3}},
			},
		}},
	}

	rig.Engine.ResolveEffect(&eff, rig.State, p, nil, nil)
	assert.Equal(t, 3, p.Mana, "on_yes branch runs exactly once")
	assert.Equal(t, 0, p.MemoryTokens, "on_no branch never touched")
	require.Len(t, rig.Agent.ChoicesSeen, 1)
	assert.Equal(t, cards.ChoiceYesNo, rig.Agent.ChoicesSeen[0].Kind)
}

func TestNamedBranchChoice(t *testing.T) {
	rig := newTestRig(nil, nil)
	p := rig.State.ActivePlayer()
	p.SpiritTokens = 1
	ci := rig.give(simpleToy("toy_a", 1), cards.ZoneHand)
	_ = ci
	rig.Agent.Answer = ChoiceAnswer{Branch: "SACRIFICE_SPIRIT"}

	eff := cards.Effect{
		ID:      "e1",
		Trigger: cards.TriggerOnPlay,
		Actions: []cards.Action{{
			Kind: cards.ActionPlayerChoice,
			Choice: &cards.ChoiceSpec{
				ID:   "c1",
				Kind: cards.ChoiceDiscardOrSacrifice,
				Branches: map[string][]cards.Action{
					"DISCARD_CARD":     {{Kind: cards.ActionDiscardChosenFromHand, Amount: 1}},
					"SACRIFICE_SPIRIT": {{Kind: cards.ActionSacrificeResource, Resource: cards.ResourceSpirit, Amount: 1}},
				},
			},
		}},
	}

	rig.Engine.ResolveEffect(&eff, rig.State, p, nil, nil)
	assert.Equal(t, 0, p.SpiritTokens)
	assert.Len(t, p.Hand(), 1, "discard branch must not run")
}

func TestReplacementEffectCancelsLeave(t *testing.T) {
	rig := newTestRig(nil, nil)
	def := toyWithEffect("toy_sticky", 1, cards.Effect{
		ID:          "e1",
		Trigger:     cards.TriggerBeforeLeavePlay,
		Replacement: true,
		Actions:     []cards.Action{{Kind: cards.ActionCancelImpendingLeave}},
	})
	ci := rig.give(def, cards.ZoneInPlay)

	moved := rig.Engine.LeavePlay(rig.State, ci, cards.ZoneDiscard, false)
	assert.False(t, moved)
	assert.Equal(t, cards.ZoneInPlay, ci.Zone)
}

func TestDrawFiresCardDrawnTriggerPerCard(t *testing.T) {
	rig := newTestRig(nil, nil)
	p := rig.State.ActivePlayer()

	watcher := toyWithEffect("toy_watcher", 1, cards.Effect{
		ID:      "e1",
		Trigger: cards.TriggerCardDrawn,
		Actions: []cards.Action{{Kind: cards.ActionCreateMemoryTokens, Amount: 1}},
	})
	rig.give(watcher, cards.ZoneInPlay)
	rig.give(simpleToy("toy_a", 1), cards.ZoneDeck)
	rig.give(simpleToy("toy_b", 1), cards.ZoneDeck)

	drawn := rig.Engine.DrawCards(rig.State, p, 3)
	assert.Equal(t, 2, drawn, "draw stops quietly when the deck empties")
	assert.Equal(t, 2, p.MemoryTokens, "one trigger per drawn card")
}

func TestTriggerFanOutOrder(t *testing.T) {
	rig := newTestRig(nil, nil)
	p := rig.State.ActivePlayer()

	// Both listeners mill one card; the log order proves resolution order.
	listener := func(id string) *cards.CardDefinition {
		return toyWithEffect(id, 1, cards.Effect{
			ID:      "e1",
			Trigger: cards.TriggerBeginTurn,
			Actions: []cards.Action{{Kind: cards.ActionMillDeck, Amount: 1}},
		})
	}
	rig.State.Turn = 2
	newer := rig.give(listener("toy_newer"), cards.ZoneInPlay)
	rig.State.Turn = 1
	older := rig.give(listener("toy_older"), cards.ZoneInPlay)
	rig.State.Turn = 2

	a := rig.give(simpleToy("toy_a", 1), cards.ZoneDeck)
	b := rig.give(simpleToy("toy_b", 1), cards.ZoneDeck)

	rig.Engine.FanOut(rig.State, cards.TriggerBeginTurn, newEvent(cards.TriggerBeginTurn, 0), 0)

	// Older permanent mills first, so toy_a lands in discard before toy_b.
	discard := p.Zones[cards.ZoneDiscard]
	require.Len(t, discard, 2)
	assert.Equal(t, a.InstanceID, discard[0].InstanceID)
	assert.Equal(t, b.InstanceID, discard[1].InstanceID)
	assert.Less(t, older.EnteredPlayTurn, newer.EnteredPlayTurn)
}

func TestCreateTokenByName(t *testing.T) {
	rig := newTestRig(nil, nil)
	p := rig.State.ActivePlayer()

	eff := cards.Effect{
		ID:      "e1",
		Trigger: cards.TriggerOnPlay,
		Actions: []cards.Action{{Kind: cards.ActionCreateToken, TokenName: "Dream Wisp", Amount: 2}},
	}
	rig.Engine.ResolveEffect(&eff, rig.State, p, nil, nil)

	inPlay := p.Zones[cards.ZoneInPlay]
	require.Len(t, inPlay, 2)
	assert.Equal(t, "Dream Wisp", inPlay[0].Name())
	assert.True(t, inPlay[0].IsType(cards.TypeToy))
}

func TestCreateSpiritsAccumulatesProgress(t *testing.T) {
	rig := newTestRig(nil, nil)
	p := rig.State.ActivePlayer()

	rig.Engine.CreateSpirits(rig.State, p, 3)
	p.SpendResource(cards.ResourceSpirit, 2)
	rig.Engine.CreateSpirits(rig.State, p, 1)

	assert.Equal(t, 2, p.SpiritTokens)
	assert.Equal(t, 4, rig.State.Progress.Count(ProgressSpiritsCreatedTotal),
		"total created is cumulative, not the live count")
}
