package cards

import "sort"

// CardDefinition is the immutable description of a card. Definitions are
// shared by reference between every game in a batch and must never be
// mutated after loading.
type CardDefinition struct {
	ID           string    `yaml:"id"`
	Name         string    `yaml:"name"`
	Type         CardType  `yaml:"type"`
	Cost         int       `yaml:"cost"`
	RulesText    string    `yaml:"rules_text"`
	FlavorText   string    `yaml:"flavor_text"`
	SubTypes     []SubType `yaml:"sub_types"`
	Effects      []Effect  `yaml:"effects"`
	DeckQuantity int       `yaml:"deck_quantity"`
}

// Effect is one triggered, activated, or replacement effect on a card.
// A nil Condition is vacuously true.
type Effect struct {
	ID          string           `yaml:"id"`
	Trigger     TriggerKind      `yaml:"trigger"`
	Condition   *Condition       `yaml:"condition"`
	Actions     []Action         `yaml:"actions"`
	Cost        map[CostKind]int `yaml:"cost"`
	OncePerTurn bool             `yaml:"once_per_turn"`
	Replacement bool             `yaml:"replacement"`
	Description string           `yaml:"description"`
}

// Condition is a single tagged predicate. Only the fields relevant to the
// Kind are populated; the effect engine ignores the rest.
type Condition struct {
	Kind        ConditionKind `yaml:"kind"`
	Resource    ResourceType  `yaml:"resource"`
	Amount      int           `yaml:"amount"`
	Comparison  Comparison    `yaml:"comparison"`
	Zone        Zone          `yaml:"zone"`
	CardID      string        `yaml:"card_id"`
	CounterType string        `yaml:"counter_type"`
	Turn        int           `yaml:"turn"`
}

// Action is one instruction of the effect interpreter. The vocabulary is
// closed: the engine dispatches on Kind with an exhaustive switch, and an
// unknown kind degrades to a logged no-op.
//
// CONDITIONAL_EFFECT and PLAYER_CHOICE carry nested action lists, so the
// action tree is recursive rather than flat.
type Action struct {
	Kind ActionKind `yaml:"kind"`

	// Common scalar parameters.
	Amount      int          `yaml:"amount"`
	Count       int          `yaml:"count"`
	Resource    ResourceType `yaml:"resource"`
	ToResource  ResourceType `yaml:"to_resource"`
	Zone        Zone         `yaml:"zone"`
	FromZone    Zone         `yaml:"from_zone"`
	ToZone      Zone         `yaml:"to_zone"`
	CardID      string       `yaml:"card_id"`
	Target      string       `yaml:"target"` // "SELF", "FIRST_MEMORY", "CHOSEN", or empty for agent-chosen
	CounterType string       `yaml:"counter_type"`
	FlagKey     string       `yaml:"flag_key"`
	TokenName   string       `yaml:"token_name"`
	Sides       int          `yaml:"sides"`

	// CONDITIONAL_EFFECT branches.
	If      *Condition `yaml:"if"`
	OnTrue  []Action   `yaml:"on_true"`
	OnFalse []Action   `yaml:"on_false"`

	// PLAYER_CHOICE prompt and branches.
	Choice *ChoiceSpec `yaml:"choice"`
}

// ChoiceSpec describes a PLAYER_CHOICE prompt and the branch action lists
// selected by the answering agent.
type ChoiceSpec struct {
	ID       string              `yaml:"id"`
	Kind     ChoiceKind          `yaml:"kind"`
	Prompt   string              `yaml:"prompt"`
	OnYes    []Action            `yaml:"on_yes"`
	OnNo     []Action            `yaml:"on_no"`
	Branches map[string][]Action `yaml:"branches"`
}

// BranchNames returns the named branches in a deterministic order.
func (c *ChoiceSpec) BranchNames() []string {
	if len(c.Branches) == 0 {
		return nil
	}
	names := make([]string, 0, len(c.Branches))
	for name := range c.Branches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasSubType reports whether the definition carries the given subtype.
func (d *CardDefinition) HasSubType(st SubType) bool {
	for _, s := range d.SubTypes {
		if s == st {
			return true
		}
	}
	return false
}
