package agent

import (
	"math/rand"

	"github.com/tuckinterrors/terrors-sim/internal/cards"
	"github.com/tuckinterrors/terrors-sim/internal/game"
)

// Random is a decision agent that picks uniformly among whatever it is
// offered. Useful as a baseline and for fuzzing the engine.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a Random agent over the given source.
func NewRandom(rng *rand.Rand) *Random {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Random{rng: rng}
}

// DecideAction picks a uniformly random legal action.
func (a *Random) DecideAction(gs *game.GameState, legal []game.GameAction) game.GameAction {
	if len(legal) == 0 {
		return game.PassAction()
	}
	return legal[a.rng.Intn(len(legal))]
}

// MakeChoice answers prompts at random.
func (a *Random) MakeChoice(gs *game.GameState, choice game.ChoiceContext) game.ChoiceAnswer {
	switch choice.Kind {
	case cards.ChoiceYesNo:
		return game.ChoiceAnswer{Yes: a.rng.Intn(2) == 0}
	case cards.ChoiceNumberFromRange:
		span := choice.Max - choice.Min
		if span <= 0 {
			return game.ChoiceAnswer{Number: choice.Min}
		}
		return game.ChoiceAnswer{Number: choice.Min + a.rng.Intn(span+1)}
	}
	if len(choice.Branches) > 0 {
		return game.ChoiceAnswer{Branch: choice.Branches[a.rng.Intn(len(choice.Branches))]}
	}
	if len(choice.Options) > 0 {
		return game.ChoiceAnswer{InstanceID: choice.Options[a.rng.Intn(len(choice.Options))]}
	}
	return game.ChoiceAnswer{}
}

// ChooseTargets picks a random subset of candidates.
func (a *Random) ChooseTargets(gs *game.GameState, candidates []int, count int, reason string) []int {
	if len(candidates) == 0 || count <= 0 {
		return nil
	}
	shuffled := make([]int, len(candidates))
	copy(shuffled, candidates)
	a.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}

// ChooseCardsToDiscard picks random cards from hand.
func (a *Random) ChooseCardsToDiscard(gs *game.GameState, count int, reason string) []int {
	hand := gs.ActivePlayer().Hand()
	ids := make([]int, 0, len(hand))
	for _, ci := range hand {
		ids = append(ids, ci.InstanceID)
	}
	return a.ChooseTargets(gs, ids, count, reason)
}
