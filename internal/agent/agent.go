// Package agent provides the decision-making policies and the legal
// action generator the rules engine is driven by. Each policy answers
// synchronously and is safe to use for exactly one game at a time.
package agent

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/tuckinterrors/terrors-sim/internal/game"
)

// New creates the named agent profile. Known profiles are RANDOM,
// GREEDY, and SCORING.
func New(profile string, rng *rand.Rand) (game.Agent, error) {
	switch strings.ToUpper(profile) {
	case "RANDOM":
		return NewRandom(rng), nil
	case "GREEDY":
		return NewGreedy(), nil
	case "SCORING":
		return NewScoring(DefaultWeights()), nil
	}
	return nil, fmt.Errorf("unknown agent profile %q", profile)
}
