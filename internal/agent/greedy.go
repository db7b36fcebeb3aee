package agent

import (
	"sort"

	"github.com/tuckinterrors/terrors-sim/internal/game"
)

// Greedy is a decision agent that always develops: it takes the free toy
// play when offered, then the most expensive playable card, then any
// ability, and passes only when nothing else is on the table.
type Greedy struct{}

// NewGreedy creates a Greedy agent.
func NewGreedy() *Greedy {
	return &Greedy{}
}

// DecideAction prefers free toy plays, then paid plays by descending
// cost, then ability activations, then pass.
func (a *Greedy) DecideAction(gs *game.GameState, legal []game.GameAction) game.GameAction {
	var bestPlay *game.GameAction
	bestCost := -1
	var firstAbility *game.GameAction

	for i := range legal {
		act := &legal[i]
		switch act.Type {
		case game.ActionPlayCard:
			if act.FreeToyPlay {
				return *act
			}
			ci, ok := gs.FindInstance(act.InstanceID)
			if !ok {
				continue
			}
			if ci.Definition.Cost > bestCost {
				bestCost = ci.Definition.Cost
				bestPlay = act
			}
		case game.ActionActivateAbility:
			if firstAbility == nil {
				firstAbility = act
			}
		}
	}
	if bestPlay != nil {
		return *bestPlay
	}
	if firstAbility != nil {
		return *firstAbility
	}
	return game.PassAction()
}

// MakeChoice says yes to everything and takes the first branch or
// option offered.
func (a *Greedy) MakeChoice(gs *game.GameState, choice game.ChoiceContext) game.ChoiceAnswer {
	answer := game.ChoiceAnswer{Yes: true, Number: choice.Max}
	if len(choice.Branches) > 0 {
		answer.Branch = choice.Branches[0]
	}
	if len(choice.Options) > 0 {
		answer.InstanceID = choice.Options[0]
	}
	return answer
}

// ChooseTargets takes the first count candidates.
func (a *Greedy) ChooseTargets(gs *game.GameState, candidates []int, count int, reason string) []int {
	if count > len(candidates) {
		count = len(candidates)
	}
	return candidates[:count]
}

// ChooseCardsToDiscard discards the most expensive cards first, on the
// theory that they are the least likely to ever be playable.
func (a *Greedy) ChooseCardsToDiscard(gs *game.GameState, count int, reason string) []int {
	hand := gs.ActivePlayer().Hand()
	sorted := make([]*game.CardInstance, len(hand))
	copy(sorted, hand)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Definition.Cost > sorted[j].Definition.Cost
	})
	if count > len(sorted) {
		count = len(sorted)
	}
	out := make([]int, 0, count)
	for _, ci := range sorted[:count] {
		out = append(out, ci.InstanceID)
	}
	return out
}
