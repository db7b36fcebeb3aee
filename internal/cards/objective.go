package cards

// WinCondition is a single objective win predicate. Only the fields
// relevant to the Kind are populated.
type WinCondition struct {
	Kind          WinConditionKind `yaml:"kind"`
	ToysNeeded    int              `yaml:"toys_needed"`
	SpiritsNeeded int              `yaml:"spirits_needed"`
	ManaNeeded    int              `yaml:"mana_needed"`
	SpellCardID   string           `yaml:"spell_card_id"`
	MinStormCount int              `yaml:"min_storm_count"`
	Description   string           `yaml:"description"`
}

// CreepComponent is one escalation stage of an objective's Nightmare Creep.
// The stage applies on every turn >= EffectiveOnTurn until a later stage
// supersedes it.
type CreepComponent struct {
	EffectiveOnTurn int    `yaml:"effective_on_turn"`
	Effect          Effect `yaml:"effect"`
	Description     string `yaml:"description"`
}

// FirstMemorySetup says how the objective designates the First Memory.
type FirstMemorySetup struct {
	Kind             FirstMemoryKind `yaml:"kind"`
	DesignatedCardID string          `yaml:"designated_card_id"`
	LookAt           int             `yaml:"look_at"`
}

// SetupInstructions are the objective's pre-game state adjustments.
type SetupInstructions struct {
	StartCardsInHand      []string `yaml:"start_cards_in_hand"`
	StartCardsInPlay      []string `yaml:"start_cards_in_play"`
	FirstTurnManaOverride *int     `yaml:"first_turn_mana_override"`
}

// SpecialRules holds structured per-objective rule overrides. Free-text
// entries are informational only and never parsed.
type SpecialRules struct {
	MaxHandSizeOverride *int     `yaml:"max_hand_size_override"`
	Text                []string `yaml:"text"`
}

// CardRotation lists cards banned from or featured in the objective's deck.
type CardRotation struct {
	Banned   []string `yaml:"banned"`
	Featured []string `yaml:"featured"`
}

// ObjectiveDefinition is the immutable description of one objective.
type ObjectiveDefinition struct {
	ID             string             `yaml:"id"`
	Title          string             `yaml:"title"`
	Difficulty     string             `yaml:"difficulty"`
	FlavorText     string             `yaml:"flavor_text"`
	PrimaryWin     *WinCondition      `yaml:"primary_win"`
	AlternativeWin *WinCondition      `yaml:"alternative_win"`
	FirstMemory    *FirstMemorySetup  `yaml:"first_memory"`
	NightmareCreep []CreepComponent   `yaml:"nightmare_creep"`
	Setup          *SetupInstructions `yaml:"setup"`
	NightfallTurn  int                `yaml:"nightfall_turn"`
	Rotation       CardRotation       `yaml:"rotation"`
	Special        SpecialRules       `yaml:"special"`
}

// IsBanned reports whether the card id is excluded from this objective's deck.
func (o *ObjectiveDefinition) IsBanned(cardID string) bool {
	for _, id := range o.Rotation.Banned {
		if id == cardID {
			return true
		}
	}
	return false
}
