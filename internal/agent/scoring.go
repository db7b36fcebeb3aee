package agent

import (
	"github.com/tuckinterrors/terrors-sim/internal/cards"
	"github.com/tuckinterrors/terrors-sim/internal/game"
)

// Weights tunes the Scoring agent. Zero values fall back to Defaults.
type Weights struct {
	FreeToyPlay   float64 `mapstructure:"free_toy_play"`
	PlayToy       float64 `mapstructure:"play_toy"`
	PlayRitual    float64 `mapstructure:"play_ritual"`
	PlaySpell     float64 `mapstructure:"play_spell"`
	PerStorm      float64 `mapstructure:"per_storm"`
	Ability       float64 `mapstructure:"ability"`
	PerManaSaved  float64 `mapstructure:"per_mana_saved"`
	PassThreshold float64 `mapstructure:"pass_threshold"`
}

// DefaultWeights returns the baseline tuning.
func DefaultWeights() Weights {
	return Weights{
		FreeToyPlay:   10,
		PlayToy:       6,
		PlayRitual:    5,
		PlaySpell:     4,
		PerStorm:      1.5,
		Ability:       3,
		PerManaSaved:  0.25,
		PassThreshold: 0,
	}
}

// Scoring is a decision agent that rates each legal action with a
// weighted heuristic and takes the best one, passing once nothing rates
// above the pass threshold.
type Scoring struct {
	weights Weights
}

// NewScoring creates a Scoring agent with the given weights.
func NewScoring(w Weights) *Scoring {
	if w == (Weights{}) {
		w = DefaultWeights()
	}
	return &Scoring{weights: w}
}

// DecideAction picks the highest-scoring legal action.
func (a *Scoring) DecideAction(gs *game.GameState, legal []game.GameAction) game.GameAction {
	best := game.PassAction()
	bestScore := a.weights.PassThreshold
	for _, act := range legal {
		score := a.score(gs, act)
		if score > bestScore {
			bestScore = score
			best = act
		}
	}
	return best
}

func (a *Scoring) score(gs *game.GameState, act game.GameAction) float64 {
	switch act.Type {
	case game.ActionPlayCard:
		ci, ok := gs.FindInstance(act.InstanceID)
		if !ok {
			return 0
		}
		var score float64
		switch ci.Definition.Type {
		case cards.TypeToy:
			score = a.weights.PlayToy
		case cards.TypeRitual:
			score = a.weights.PlayRitual
		case cards.TypeSpell:
			score = a.weights.PlaySpell + a.weights.PerStorm*float64(gs.StormCount)
		}
		if act.FreeToyPlay {
			score += a.weights.FreeToyPlay + a.weights.PerManaSaved*float64(ci.Definition.Cost)
		}
		return score
	case game.ActionActivateAbility:
		return a.weights.Ability
	}
	return 0
}

// MakeChoice accepts prompts and takes the first branch or option.
func (a *Scoring) MakeChoice(gs *game.GameState, choice game.ChoiceContext) game.ChoiceAnswer {
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
func (a *Scoring) ChooseTargets(gs *game.GameState, candidates []int, count int, reason string) []int {
	if count > len(candidates) {
		count = len(candidates)
	}
	return candidates[:count]
}

// ChooseCardsToDiscard delegates to the greedy discard heuristic.
func (a *Scoring) ChooseCardsToDiscard(gs *game.GameState, count int, reason string) []int {
	return NewGreedy().ChooseCardsToDiscard(gs, count, reason)
}
