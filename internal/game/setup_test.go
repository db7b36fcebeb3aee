package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuckinterrors/terrors-sim/internal/cards"
)

func testLibrary(objective *cards.ObjectiveDefinition) *cards.Library {
	library := &cards.Library{
		Cards:      make(map[string]*cards.CardDefinition),
		Objectives: map[string]*cards.ObjectiveDefinition{objective.ID: objective},
	}
	for _, def := range []*cards.CardDefinition{
		{ID: "toy_bear", Name: "Worn Bear", Type: cards.TypeToy, Cost: 1, DeckQuantity: 4},
		{ID: "toy_train", Name: "Tin Train", Type: cards.TypeToy, Cost: 2, DeckQuantity: 4},
		{ID: "ritual_hum", Name: "Quiet Hum", Type: cards.TypeRitual, Cost: 2, DeckQuantity: 3},
		{ID: "spell_hush", Name: "Hush", Type: cards.TypeSpell, Cost: 1, DeckQuantity: 4},
	} {
		library.Cards[def.ID] = def
	}
	return library
}

func testObjective() *cards.ObjectiveDefinition {
	return &cards.ObjectiveDefinition{
		ID:            "obj_basic",
		Title:         "A Basic Night",
		PrimaryWin:    &cards.WinCondition{Kind: cards.WinTotalSpirits, SpiritsNeeded: 999},
		NightfallTurn: 10,
	}
}

func TestNewGameBuildsShuffledDeckAndOpeningHand(t *testing.T) {
	objective := testObjective()
	library := testLibrary(objective)

	g, err := NewGame(library, objective.ID, &scriptedAgent{}, passGenerator{}, rand.New(rand.NewSource(42)), nil)
	require.NoError(t, err)

	p := g.State.ActivePlayer()
	assert.Equal(t, 0, g.State.Turn, "play has not begun yet")
	assert.Len(t, p.Hand(), DefaultOpeningHandSize)
	assert.Len(t, p.Deck(), 15-DefaultOpeningHandSize)
	assert.Equal(t, 0, p.Mana)
}

func TestNewGameUnknownObjective(t *testing.T) {
	objective := testObjective()
	library := testLibrary(objective)

	_, err := NewGame(library, "obj_missing", &scriptedAgent{}, passGenerator{}, nil, nil)
	assert.Error(t, err)
}

func TestNewGameExcludesBannedCards(t *testing.T) {
	objective := testObjective()
	objective.Rotation.Banned = []string{"spell_hush"}
	library := testLibrary(objective)

	g, err := NewGame(library, objective.ID, &scriptedAgent{}, passGenerator{}, rand.New(rand.NewSource(42)), nil)
	require.NoError(t, err)

	p := g.State.ActivePlayer()
	for _, zone := range p.Zones {
		for _, ci := range zone {
			assert.NotEqual(t, "spell_hush", ci.Definition.ID)
		}
	}
	assert.Equal(t, 11, len(p.Deck())+len(p.Hand()))
}

func TestNewGameAppliesSetupInstructions(t *testing.T) {
	objective := testObjective()
	objective.Setup = &cards.SetupInstructions{
		StartCardsInHand: []string{"toy_train"},
		StartCardsInPlay: []string{"ritual_hum"},
	}
	library := testLibrary(objective)

	g, err := NewGame(library, objective.ID, &scriptedAgent{}, passGenerator{}, rand.New(rand.NewSource(42)), nil)
	require.NoError(t, err)

	p := g.State.ActivePlayer()
	require.Len(t, g.State.InPlay, 1)
	for _, ci := range g.State.InPlay {
		assert.Equal(t, "ritual_hum", ci.Definition.ID)
		assert.Equal(t, 0, ci.EnteredPlayTurn)
	}

	found := false
	for _, ci := range p.Hand() {
		if ci.Definition.ID == "toy_train" {
			found = true
		}
	}
	assert.True(t, found, "named card starts in hand alongside the opening draw")
}

func TestFirstMemoryFromHand(t *testing.T) {
	objective := testObjective()
	objective.FirstMemory = &cards.FirstMemorySetup{Kind: cards.FirstMemoryFromHandToPlay}
	library := testLibrary(objective)

	g, err := NewGame(library, objective.ID, &scriptedAgent{}, passGenerator{}, rand.New(rand.NewSource(42)), nil)
	require.NoError(t, err)

	fm := g.State.FirstMemoryInstance()
	if fm == nil {
		t.Skip("opening hand held no toy for this seed")
	}
	assert.Equal(t, cards.ZoneInPlay, fm.Zone)
	assert.True(t, fm.IsType(cards.TypeToy))
	assert.Equal(t, fm.Definition.ID, g.State.ActivePlayer().FirstMemoryCardID)
}

func TestFirstMemoryFromTopOfDeck(t *testing.T) {
	objective := testObjective()
	objective.FirstMemory = &cards.FirstMemorySetup{
		Kind:   cards.FirstMemoryFromTopOfDeck,
		LookAt: 10,
	}
	library := testLibrary(objective)

	g, err := NewGame(library, objective.ID, &scriptedAgent{}, passGenerator{}, rand.New(rand.NewSource(42)), nil)
	require.NoError(t, err)

	fm := g.State.FirstMemoryInstance()
	require.NotNil(t, fm)
	assert.Equal(t, cards.ZoneHand, fm.Zone)
	assert.True(t, fm.IsType(cards.TypeToy))
}

func TestFullGameRunsToTermination(t *testing.T) {
	objective := testObjective()
	objective.NightfallTurn = 6
	library := testLibrary(objective)

	g, err := NewGame(library, objective.ID, &scriptedAgent{}, passGenerator{}, rand.New(rand.NewSource(42)), nil)
	require.NoError(t, err)

	final := g.Run()
	assert.True(t, final.GameOver)
	assert.NotEmpty(t, final.WinStatus)
	assert.Equal(t, 7, final.Turn)
}
