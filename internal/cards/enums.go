package cards

// CardType is the category of a card.
type CardType string

const (
	TypeToy    CardType = "TOY"
	TypeRitual CardType = "RITUAL"
	TypeSpell  CardType = "SPELL"
)

// Zone names a container cards live in. Deck order is top-first.
type Zone string

const (
	ZoneDeck     Zone = "DECK"
	ZoneHand     Zone = "HAND"
	ZoneInPlay   Zone = "IN_PLAY"
	ZoneDiscard  Zone = "DISCARD"
	ZoneExile    Zone = "EXILE"
	ZoneSetAside Zone = "SET_ASIDE"
)

// AllZones lists every zone in a fixed order, deck first.
var AllZones = []Zone{ZoneDeck, ZoneHand, ZoneInPlay, ZoneDiscard, ZoneExile, ZoneSetAside}

// SubType tags a card with a mechanical family.
type SubType string

const (
	SubLoop              SubType = "LOOP"
	SubHaunt             SubType = "HAUNT"
	SubReanimate         SubType = "REANIMATE"
	SubSacrifice         SubType = "SACRIFICE"
	SubDiceRoll          SubType = "DICE_ROLL"
	SubNightmareInteract SubType = "NIGHTMARE_INTERACT"
	SubBrowseSearch      SubType = "BROWSE_SEARCH"
	SubMemoryInteract    SubType = "MEMORY_TOKEN_INTERACT"
)

// ResourceType names a player resource pool.
type ResourceType string

const (
	ResourceMana   ResourceType = "MANA"
	ResourceSpirit ResourceType = "SPIRIT"
	ResourceMemory ResourceType = "MEMORY"
)

// TriggerKind is the closed set of moments an effect can fire.
type TriggerKind string

const (
	TriggerOnPlay                 TriggerKind = "ON_PLAY"
	TriggerOnLeavePlay            TriggerKind = "ON_LEAVE_PLAY"
	TriggerBeforeLeavePlay        TriggerKind = "BEFORE_THIS_CARD_LEAVES_PLAY"
	TriggerOnDiscardThis          TriggerKind = "ON_DISCARD_THIS_CARD"
	TriggerOnExileThis            TriggerKind = "ON_EXILE_THIS_CARD"
	TriggerOnSacrificeThis        TriggerKind = "ON_SACRIFICE_THIS_CARD"
	TriggerActivatedAbility       TriggerKind = "ACTIVATED_ABILITY"
	TriggerTapAbility             TriggerKind = "TAP_ABILITY"
	TriggerBeginTurn              TriggerKind = "BEGIN_PLAYER_TURN"
	TriggerEndTurn                TriggerKind = "END_PLAYER_TURN"
	TriggerNightmareCreepApplies  TriggerKind = "WHEN_NIGHTMARE_CREEP_APPLIES"
	TriggerNightmareCreepResolves TriggerKind = "ON_NIGHTMARE_CREEP_RESOLUTION"
	TriggerOtherEntersPlay        TriggerKind = "WHEN_OTHER_CARD_ENTERS_PLAY"
	TriggerOtherLeavesPlay        TriggerKind = "WHEN_OTHER_CARD_LEAVES_PLAY"
	TriggerSpiritCreated          TriggerKind = "WHEN_SPIRIT_CREATED"
	TriggerMemoryTokenCreated     TriggerKind = "WHEN_MEMORY_TOKEN_CREATED"
	TriggerCardDrawn              TriggerKind = "WHEN_CARD_DRAWN"
	TriggerCounterThreshold       TriggerKind = "WHEN_COUNTER_REACHES_THRESHOLD"
)

// Activatable reports whether the trigger is one a player invokes directly.
func (t TriggerKind) Activatable() bool {
	return t == TriggerActivatedAbility || t == TriggerTapAbility
}

// ConditionKind is the closed set of predicates an effect may gate on.
type ConditionKind string

const (
	CondIsFirstMemory         ConditionKind = "IS_FIRST_MEMORY"
	CondFirstMemoryInPlay     ConditionKind = "IS_FIRST_MEMORY_IN_PLAY"
	CondFirstMemoryInDiscard  ConditionKind = "IS_FIRST_MEMORY_IN_DISCARD"
	CondPlayerHasResource     ConditionKind = "PLAYER_HAS_RESOURCE"
	CondCardInZone            ConditionKind = "CARD_IN_ZONE"
	CondHasCounterValueGE     ConditionKind = "HAS_COUNTER_TYPE_VALUE_GE"
	CondDeckSizeLE            ConditionKind = "DECK_SIZE_LE"
	CondCurrentTurnIs         ConditionKind = "CURRENT_TURN_IS"
	CondIsMovingFromZone      ConditionKind = "IS_MOVING_FROM_ZONE"
	CondIsMovingToZone        ConditionKind = "IS_MOVING_TO_ZONE"
	CondStormCountGE          ConditionKind = "STORM_COUNT_GE"
	CondNightmareCreepLevelIs ConditionKind = "NIGHTMARE_CREEP_LEVEL_IS"
)

// Comparison selects the relational operator for threshold conditions.
type Comparison string

const (
	CompareGE Comparison = "GE"
	CompareLE Comparison = "LE"
	CompareEQ Comparison = "EQ"
)

// Evaluate applies the comparison to (have, want). An empty comparison
// defaults to GE, the overwhelmingly common case in card data.
func (c Comparison) Evaluate(have, want int) bool {
	switch c {
	case CompareLE:
		return have <= want
	case CompareEQ:
		return have == want
	default:
		return have >= want
	}
}

// ActionKind is the closed instruction set of the effect interpreter.
type ActionKind string

const (
	ActionDrawCards             ActionKind = "DRAW_CARDS"
	ActionAddMana               ActionKind = "ADD_MANA"
	ActionCreateSpiritTokens    ActionKind = "CREATE_SPIRIT_TOKENS"
	ActionCreateMemoryTokens    ActionKind = "CREATE_MEMORY_TOKENS"
	ActionModifyResource        ActionKind = "MODIFY_RESOURCE"
	ActionSacrificeResource     ActionKind = "SACRIFICE_RESOURCE"
	ActionSacrificeCardInPlay   ActionKind = "SACRIFICE_CARD_IN_PLAY"
	ActionDiscardChosenFromHand ActionKind = "DISCARD_CARDS_CHOSEN_FROM_HAND"
	ActionDiscardRandomFromHand ActionKind = "DISCARD_CARDS_RANDOM_FROM_HAND"
	ActionReturnThisToHand      ActionKind = "RETURN_THIS_CARD_TO_HAND"
	ActionReturnCardZoneToZone  ActionKind = "RETURN_CARD_FROM_ZONE_TO_ZONE"
	ActionExileCardFromZone     ActionKind = "EXILE_CARD_FROM_ZONE"
	ActionMillDeck              ActionKind = "MILL_DECK"
	ActionPlaceCounter          ActionKind = "PLACE_COUNTER_ON_CARD"
	ActionRemoveCounter         ActionKind = "REMOVE_COUNTER_FROM_CARD"
	ActionTapCardInPlay         ActionKind = "TAP_CARD_IN_PLAY"
	ActionUntapCardInPlay       ActionKind = "UNTAP_CARD_IN_PLAY"
	ActionCreateToken           ActionKind = "CREATE_TOKEN"
	ActionSearchDeckForCard     ActionKind = "SEARCH_DECK_FOR_CARD"
	ActionBrowseDeck            ActionKind = "BROWSE_DECK"
	ActionPlayCardNoCost        ActionKind = "PLAY_CARD_NO_COST"
	ActionSkipNightmareCreep    ActionKind = "SKIP_NIGHTMARE_CREEP_TURN"
	ActionCancelImpendingLeave  ActionKind = "CANCEL_IMPENDING_LEAVE_PLAY"
	ActionCancelImpendingMove   ActionKind = "CANCEL_IMPENDING_MOVE"
	ActionRollDice              ActionKind = "ROLL_DICE"
	ActionConvertTokens         ActionKind = "CONVERT_TOKENS"
	ActionTransformToyToSpirits ActionKind = "TRANSFORM_TOY_TO_SPIRITS"
	ActionTakeExtraTurn         ActionKind = "TAKE_EXTRA_TURN"
	ActionConditionalEffect     ActionKind = "CONDITIONAL_EFFECT"
	ActionPlayerChoice          ActionKind = "PLAYER_CHOICE"
	ActionSetWinEventFlag       ActionKind = "WIN_GAME_EVENT_FLAG"
)

// CostKind names an activation cost component.
type CostKind string

const (
	CostPayMana          CostKind = "PAY_MANA"
	CostPaySpiritTokens  CostKind = "PAY_SPIRIT_TOKENS"
	CostPayMemoryTokens  CostKind = "PAY_MEMORY_TOKENS"
	CostTapSelf          CostKind = "TAP_THIS_CARD"
	CostSacrificeSelf    CostKind = "SACRIFICE_THIS_CARD"
	CostDiscardFromHand  CostKind = "DISCARD_FROM_HAND"
	CostExileFromHand    CostKind = "EXILE_FROM_HAND"
	CostExileFromDiscard CostKind = "EXILE_FROM_DISCARD"
)

// ChoiceKind classifies a PLAYER_CHOICE prompt.
type ChoiceKind string

const (
	ChoiceYesNo              ChoiceKind = "CHOOSE_YES_NO"
	ChoiceCardFromHand       ChoiceKind = "CHOOSE_CARD_FROM_HAND"
	ChoiceCardFromDiscard    ChoiceKind = "CHOOSE_CARD_FROM_DISCARD"
	ChoiceCardInPlay         ChoiceKind = "CHOOSE_CARD_IN_PLAY"
	ChoiceTargetCardInPlay   ChoiceKind = "CHOOSE_TARGET_CARD_IN_PLAY"
	ChoiceNumberFromRange    ChoiceKind = "CHOOSE_NUMBER_FROM_RANGE"
	ChoiceDiscardOrSacrifice ChoiceKind = "DISCARD_CARD_OR_SACRIFICE_SPIRIT"
	ChoiceNamedBranch        ChoiceKind = "CHOOSE_NAMED_BRANCH"
)

// WinConditionKind tags an objective win predicate.
type WinConditionKind string

const (
	WinPlayToysAndSpirits WinConditionKind = "PLAY_X_DIFFERENT_TOYS_AND_CREATE_Y_SPIRITS"
	WinManaFromEffects    WinConditionKind = "GENERATE_X_MANA_FROM_CARD_EFFECTS"
	WinTotalSpirits       WinConditionKind = "CREATE_TOTAL_X_SPIRITS_GAME"
	WinSpellWithStorm     WinConditionKind = "CAST_SPELL_WITH_STORM_COUNT"
)

// FirstMemoryKind tags the objective's first-memory setup instruction.
type FirstMemoryKind string

const (
	FirstMemoryFromHandToPlay FirstMemoryKind = "CHOOSE_TOY_FROM_HAND_PLACE_IN_PLAY"
	FirstMemoryFromTopOfDeck  FirstMemoryKind = "CHOOSE_TOY_FROM_TOP_X_DECK_TO_HAND"
)
