package game

import "github.com/tuckinterrors/terrors-sim/internal/cards"

// ActionType categorizes a requestable game action.
type ActionType string

const (
	ActionPlayCard        ActionType = "PLAY_CARD"
	ActionActivateAbility ActionType = "ACTIVATE_ABILITY"
	ActionPassTurn        ActionType = "PASS_TURN"
)

// GameAction is a tagged action request handed from an agent to the
// action resolver. Targets pre-declares instance ids for an ability's
// CHOSEN target slots, bypassing the mid-resolution agent prompt.
type GameAction struct {
	Type        ActionType
	InstanceID  int
	EffectIndex int
	FreeToyPlay bool
	Targets     []int
	Description string
}

// PassAction is the canonical "end my main phase" request.
func PassAction() GameAction {
	return GameAction{Type: ActionPassTurn, Description: "pass turn"}
}

// ChoiceContext describes a pending player choice raised during effect
// resolution. Options carry instance ids where the choice is over cards.
type ChoiceContext struct {
	Kind             cards.ChoiceKind
	Prompt           string
	SourceInstanceID int
	Options          []int
	Branches         []string
	Min              int
	Max              int
}

// ChoiceAnswer is an agent's reply to a ChoiceContext. Which fields are
// meaningful depends on the choice kind.
type ChoiceAnswer struct {
	Yes        bool
	Branch     string
	InstanceID int
	Number     int
}

// Agent is the synchronous decision-making capability the engine calls
// back into. Implementations must answer immediately; there is no
// suspension point inside effect resolution.
type Agent interface {
	// DecideAction picks the next action from the legal list, or returns
	// a pass action to end the main phase.
	DecideAction(gs *GameState, legal []GameAction) GameAction

	// MakeChoice answers a player-choice prompt raised by an effect.
	MakeChoice(gs *GameState, choice ChoiceContext) ChoiceAnswer

	// ChooseTargets selects up to count instance ids from candidates.
	ChooseTargets(gs *GameState, candidates []int, count int, reason string) []int

	// ChooseCardsToDiscard selects count instance ids from the player's
	// hand to discard.
	ChooseCardsToDiscard(gs *GameState, count int, reason string) []int
}

// ActionGenerator enumerates the legal actions for the current state.
// The phase controller calls this once per main-phase iteration.
type ActionGenerator interface {
	LegalActions(gs *GameState) []GameAction
}
