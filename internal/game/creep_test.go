package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuckinterrors/terrors-sim/internal/cards"
)

func creepObjective() *cards.ObjectiveDefinition {
	return &cards.ObjectiveDefinition{
		ID:            "obj_creep",
		PrimaryWin:    &cards.WinCondition{Kind: cards.WinTotalSpirits, SpiritsNeeded: 999},
		NightfallTurn: 50,
		NightmareCreep: []cards.CreepComponent{
			{
				EffectiveOnTurn: 2,
				Description:     "mill one",
				Effect: cards.Effect{
					ID:      "creep_mild",
					Actions: []cards.Action{{Kind: cards.ActionMillDeck, Amount: 1}},
				},
			},
			{
				EffectiveOnTurn: 4,
				Description:     "mill two",
				Effect: cards.Effect{
					ID:      "creep_harsh",
					Actions: []cards.Action{{Kind: cards.ActionMillDeck, Amount: 2}},
				},
			},
		},
	}
}

func TestCreepSelectsHighestApplicableThreshold(t *testing.T) {
	rig := newTestRig(nil, creepObjective())

	assert.Nil(t, rig.Creep.Active(1))
	require.NotNil(t, rig.Creep.Active(2))
	assert.Equal(t, 2, rig.Creep.Active(3).EffectiveOnTurn)
	assert.Equal(t, 4, rig.Creep.Active(4).EffectiveOnTurn)
	assert.Equal(t, 4, rig.Creep.Active(9).EffectiveOnTurn)
}

func TestCreepFiresEveryTurnFromThreshold(t *testing.T) {
	rig := newTestRig(nil, creepObjective())
	p := rig.State.ActivePlayer()
	for i := 0; i < 10; i++ {
		rig.give(simpleToy("toy_filler", 1), cards.ZoneDeck)
	}

	rig.State.Turn = 1
	rig.Creep.Apply(rig.State)
	assert.Empty(t, p.Zones[cards.ZoneDiscard], "below threshold, no creep")

	rig.State.Turn = 2
	rig.Creep.Apply(rig.State)
	assert.Len(t, p.Zones[cards.ZoneDiscard], 1)

	rig.State.Turn = 3
	rig.Creep.Apply(rig.State)
	assert.Len(t, p.Zones[cards.ZoneDiscard], 2)

	rig.State.Turn = 4
	rig.Creep.Apply(rig.State)
	assert.Len(t, p.Zones[cards.ZoneDiscard], 4, "harsher component takes over at its threshold")
	assert.Equal(t, 4, rig.State.CreepLevel)
}

func TestCreepSkipFlagConsumedExactlyOnce(t *testing.T) {
	rig := newTestRig(nil, creepObjective())
	p := rig.State.ActivePlayer()
	for i := 0; i < 10; i++ {
		rig.give(simpleToy("toy_filler", 1), cards.ZoneDeck)
	}
	rig.State.Turn = 2
	rig.State.SkipNextCreep = true

	rig.Creep.Apply(rig.State)
	assert.Empty(t, p.Zones[cards.ZoneDiscard], "skipped")
	assert.False(t, rig.State.SkipNextCreep, "flag consumed")

	rig.Creep.Apply(rig.State)
	assert.Len(t, p.Zones[cards.ZoneDiscard], 1, "skip does not persist")
}

func TestCreepSkipBelowThresholdIsNotConsumed(t *testing.T) {
	rig := newTestRig(nil, creepObjective())
	rig.State.Turn = 1
	rig.State.SkipNextCreep = true

	rig.Creep.Apply(rig.State)
	assert.True(t, rig.State.SkipNextCreep, "no creep window occurred, flag keeps")
}

func TestCreepFiresTriggersOnInPlayCards(t *testing.T) {
	rig := newTestRig(nil, creepObjective())
	p := rig.State.ActivePlayer()

	watcher := toyWithEffect("toy_watcher", 1, cards.Effect{
		ID:      "e1",
		Trigger: cards.TriggerNightmareCreepApplies,
		Actions: []cards.Action{{Kind: cards.ActionCreateMemoryTokens, Amount: 1}},
	})
	rig.give(watcher, cards.ZoneInPlay)
	rig.State.Turn = 2

	rig.Creep.Apply(rig.State)
	assert.Equal(t, 1, p.MemoryTokens)
}

func TestSkipCreepActionSetsFlag(t *testing.T) {
	rig := newTestRig(nil, creepObjective())
	eff := cards.Effect{
		ID:      "e1",
		Trigger: cards.TriggerOnPlay,
		Actions: []cards.Action{{Kind: cards.ActionSkipNightmareCreep}},
	}
	rig.Engine.ResolveEffect(&eff, rig.State, rig.State.ActivePlayer(), nil, nil)
	assert.True(t, rig.State.SkipNextCreep)
}
