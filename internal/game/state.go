package game

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"github.com/tuckinterrors/terrors-sim/internal/cards"
	"github.com/tuckinterrors/terrors-sim/internal/game/counters"
)

// Phase represents the broad phases of a game turn.
type Phase int

const (
	PhaseBegin Phase = iota
	PhaseMain
	PhaseEnd
)

var phaseNames = map[Phase]string{
	PhaseBegin: "BEGIN_TURN",
	PhaseMain:  "MAIN_PHASE",
	PhaseEnd:   "END_TURN",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

// Win statuses recorded on GameState once a game reaches a terminal state.
const (
	WinStatusPrimary     = "PRIMARY_WIN"
	WinStatusAlternative = "ALTERNATIVE_WIN"
	WinStatusNightfall   = "LOSS_NIGHTFALL"
)

// Default economy constants. Objectives may override the first-turn mana
// gain and the maximum hand size through their setup instructions.
const (
	DefaultOpeningHandSize   = 5
	DefaultMaxHandSize       = 7
	DefaultCardsDrawnPerTurn = 1
	BaseManaIncrement        = 0
)

// LogEntry is one line of the append-only structured game log.
type LogEntry struct {
	Turn    int
	Phase   string
	Kind    string
	Message string
}

// Log entry kinds.
const (
	LogSetup   = "SETUP"
	LogPhase   = "PHASE"
	LogAction  = "ACTION"
	LogEffect  = "EFFECT"
	LogChoice  = "CHOICE"
	LogCreep   = "CREEP"
	LogWarning = "WARNING"
	LogIllegal = "ILLEGAL"
	LogResult  = "RESULT"
)

// CardInstance represents one physical copy of a card within a game.
// An instance belongs to exactly one zone list at any time.
type CardInstance struct {
	InstanceID   int
	Definition   *cards.CardDefinition
	OwnerID      string
	ControllerID string
	Zone         cards.Zone
	Tapped       bool
	Counters     *counters.Counters

	// EffectsUsedThisTurn records once-per-turn effect ids consumed this
	// turn. Cleared at the start of every turn.
	EffectsUsedThisTurn map[string]bool

	// EnteredPlayTurn is the turn this instance last entered play, or -1
	// while the instance is not in play.
	EnteredPlayTurn int
	TurnsInPlay     int

	Custom map[string]any
}

func (ci *CardInstance) controller(gs *GameState) *PlayerState {
	return gs.Players[ci.ControllerID]
}

// Name returns the printed card name.
func (ci *CardInstance) Name() string {
	return ci.Definition.Name
}

// IsType reports whether the underlying definition has the given category.
func (ci *CardInstance) IsType(t cards.CardType) bool {
	return ci.Definition.Type == t
}

// MarkEffectUsed records a once-per-turn effect as consumed for this turn.
func (ci *CardInstance) MarkEffectUsed(effectID string) {
	ci.EffectsUsedThisTurn[effectID] = true
}

// EffectUsedThisTurn reports whether the given effect id was already
// consumed this turn.
func (ci *CardInstance) EffectUsedThisTurn(effectID string) bool {
	return ci.EffectsUsedThisTurn[effectID]
}

// PlayerState represents one player's zones and resources.
type PlayerState struct {
	ID    string
	Zones map[cards.Zone][]*CardInstance

	Mana         int
	SpiritTokens int
	MemoryTokens int

	// FreeToyPlayed gates the once-per-turn free toy play.
	FreeToyPlayed bool

	// FirstMemoryCardID is the definition id designated as the first
	// memory for this game, empty if none was designated.
	FirstMemoryCardID string
}

// NewPlayerState creates an empty PlayerState with all zones initialized.
func NewPlayerState(id string) *PlayerState {
	zones := make(map[cards.Zone][]*CardInstance, len(cards.AllZones))
	for _, z := range cards.AllZones {
		zones[z] = nil
	}
	return &PlayerState{
		ID:    id,
		Zones: zones,
	}
}

// Resource returns the current amount of the given resource.
func (p *PlayerState) Resource(kind cards.ResourceType) int {
	switch kind {
	case cards.ResourceMana:
		return p.Mana
	case cards.ResourceSpirit:
		return p.SpiritTokens
	case cards.ResourceMemory:
		return p.MemoryTokens
	}
	return 0
}

// AddResource adds amount to the given resource, flooring at zero for
// negative adjustments.
func (p *PlayerState) AddResource(kind cards.ResourceType, amount int) {
	switch kind {
	case cards.ResourceMana:
		p.Mana += amount
		if p.Mana < 0 {
			p.Mana = 0
		}
	case cards.ResourceSpirit:
		p.SpiritTokens += amount
		if p.SpiritTokens < 0 {
			p.SpiritTokens = 0
		}
	case cards.ResourceMemory:
		p.MemoryTokens += amount
		if p.MemoryTokens < 0 {
			p.MemoryTokens = 0
		}
	}
}

// SpendResource deducts amount from the given resource if the player has
// at least that much. Returns false without deducting otherwise.
func (p *PlayerState) SpendResource(kind cards.ResourceType, amount int) bool {
	if amount < 0 {
		return false
	}
	if p.Resource(kind) < amount {
		return false
	}
	p.AddResource(kind, -amount)
	return true
}

// Hand returns the player's hand zone.
func (p *PlayerState) Hand() []*CardInstance {
	return p.Zones[cards.ZoneHand]
}

// Deck returns the player's deck zone, ordered top-first.
func (p *PlayerState) Deck() []*CardInstance {
	return p.Zones[cards.ZoneDeck]
}

// InHand reports whether the instance is currently in this player's hand.
func (p *PlayerState) InHand(instanceID int) bool {
	for _, ci := range p.Zones[cards.ZoneHand] {
		if ci.InstanceID == instanceID {
			return true
		}
	}
	return false
}

// Progress is the dynamic counter/set/flag bag consulted by win-condition
// predicates. Entries are accumulated as side effects of play, never
// recomputed from history.
type Progress struct {
	Counts map[string]int
	Sets   map[string]map[string]bool
	Flags  map[string]bool
}

// Progress keys maintained by the action resolver and effect engine.
const (
	ProgressDistinctToysPlayed  = "distinct_toys_played"
	ProgressSpiritsCreatedTotal = "spirits_created_total"
	ProgressManaFromEffects     = "mana_from_card_effects"
	ProgressWinEventFlag        = "win_event"
)

// NewProgress creates an empty Progress bag.
func NewProgress() *Progress {
	return &Progress{
		Counts: make(map[string]int),
		Sets:   make(map[string]map[string]bool),
		Flags:  make(map[string]bool),
	}
}

// AddCount adds amount to the named counter.
func (pr *Progress) AddCount(name string, amount int) {
	pr.Counts[name] += amount
}

// Count returns the named counter value.
func (pr *Progress) Count(name string) int {
	return pr.Counts[name]
}

// AddToSet inserts member into the named set.
func (pr *Progress) AddToSet(name, member string) {
	set, ok := pr.Sets[name]
	if !ok {
		set = make(map[string]bool)
		pr.Sets[name] = set
	}
	set[member] = true
}

// SetSize returns the cardinality of the named set.
func (pr *Progress) SetSize(name string) int {
	return len(pr.Sets[name])
}

// SetFlag raises the named flag.
func (pr *Progress) SetFlag(name string) {
	pr.Flags[name] = true
}

// Flag reports whether the named flag is raised.
func (pr *Progress) Flag(name string) bool {
	return pr.Flags[name]
}

// GameState is the root mutable aggregate for a single simulated game.
// It is created once per game, mutated throughout, and discarded after
// the terminal state is recorded. Never shared across games.
type GameState struct {
	GameID uuid.UUID

	// Turn starts at 0 during setup and becomes 1 once play begins.
	Turn  int
	Phase Phase

	Players        map[string]*PlayerState
	ActivePlayerID string

	// InPlay is a flat index of instance id to instance for all cards
	// currently in play, kept consistent with the per-player zone lists.
	InPlay map[int]*CardInstance

	// FirstMemoryInstanceID is the designated first-memory instance,
	// 0 if none has been designated.
	FirstMemoryInstanceID int

	Progress *Progress

	GameOver  bool
	WinStatus string

	// StormCount counts spells cast this turn. Reset every begin phase.
	StormCount int

	// SkipNextCreep is a one-shot flag consumed by the next creep
	// application window.
	SkipNextCreep bool

	// CreepLevel is the effective_on_turn threshold of the most recently
	// applied creep component, 0 before any creep has applied.
	CreepLevel int

	// ExtraTurns is the number of pending extra turns granted by effects.
	ExtraTurns int

	Log []LogEntry

	// Agents is the capability table of decision-making collaborators,
	// keyed by player id.
	Agents map[string]Agent

	rng            *rand.Rand
	nextInstanceID int
}

// NewGameState creates a fresh GameState for the given player, with its
// own instance-id allocator and random source.
func NewGameState(playerID string, rng *rand.Rand) *GameState {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	player := NewPlayerState(playerID)
	return &GameState{
		GameID:         uuid.New(),
		Turn:           0,
		Phase:          PhaseBegin,
		Players:        map[string]*PlayerState{playerID: player},
		ActivePlayerID: playerID,
		InPlay:         make(map[int]*CardInstance),
		Progress:       NewProgress(),
		Agents:         make(map[string]Agent),
		rng:            rng,
	}
}

// Rand returns the game's private random source.
func (gs *GameState) Rand() *rand.Rand {
	return gs.rng
}

// ActivePlayer returns the player whose turn it is.
func (gs *GameState) ActivePlayer() *PlayerState {
	return gs.Players[gs.ActivePlayerID]
}

// NewInstance allocates a CardInstance for the given definition with a
// game-unique instance id. The instance starts outside every zone; the
// caller must place it with MoveCard or PutOnTopOfDeck.
func (gs *GameState) NewInstance(def *cards.CardDefinition, ownerID string) *CardInstance {
	gs.nextInstanceID++
	return &CardInstance{
		InstanceID:          gs.nextInstanceID,
		Definition:          def,
		OwnerID:             ownerID,
		ControllerID:        ownerID,
		Zone:                cards.ZoneSetAside,
		Counters:            counters.NewCounters(),
		EffectsUsedThisTurn: make(map[string]bool),
		EnteredPlayTurn:     -1,
		Custom:              make(map[string]any),
	}
}

// FindInstance locates an instance anywhere in the game by id.
func (gs *GameState) FindInstance(instanceID int) (*CardInstance, bool) {
	if ci, ok := gs.InPlay[instanceID]; ok {
		return ci, true
	}
	for _, p := range gs.Players {
		for _, zone := range p.Zones {
			for _, ci := range zone {
				if ci.InstanceID == instanceID {
					return ci, true
				}
			}
		}
	}
	return nil, false
}

// FirstMemoryInstance returns the designated first-memory instance, nil
// if none was designated or it cannot be found.
func (gs *GameState) FirstMemoryInstance() *CardInstance {
	if gs.FirstMemoryInstanceID == 0 {
		return nil
	}
	ci, ok := gs.FindInstance(gs.FirstMemoryInstanceID)
	if !ok {
		return nil
	}
	return ci
}

func removeFromList(list []*CardInstance, instanceID int) ([]*CardInstance, bool) {
	for i, ci := range list {
		if ci.InstanceID == instanceID {
			return append(list[:i], list[i+1:]...), true
		}
	}
	return list, false
}

// MoveCard moves an instance into the given zone of its controller,
// appending to the end of the zone list. Entering play untaps the card
// and records the entry turn; leaving play clears it. Returns false if
// the instance could not be found in any zone list.
func (gs *GameState) MoveCard(ci *CardInstance, to cards.Zone) bool {
	controller := gs.Players[ci.ControllerID]
	if controller == nil {
		return false
	}
	owner := gs.Players[ci.OwnerID]

	removed := false
	for _, p := range []*PlayerState{controller, owner} {
		if p == nil {
			continue
		}
		if list, ok := removeFromList(p.Zones[ci.Zone], ci.InstanceID); ok {
			p.Zones[ci.Zone] = list
			removed = true
			break
		}
	}
	if !removed && ci.Zone != cards.ZoneSetAside {
		return false
	}

	if ci.Zone == cards.ZoneInPlay && to != cards.ZoneInPlay {
		delete(gs.InPlay, ci.InstanceID)
		ci.EnteredPlayTurn = -1
		ci.TurnsInPlay = 0
	}

	ci.Zone = to
	controller.Zones[to] = append(controller.Zones[to], ci)

	if to == cards.ZoneInPlay {
		ci.Tapped = false
		ci.EnteredPlayTurn = gs.Turn
		gs.InPlay[ci.InstanceID] = ci
	}
	return true
}

// PutOnTopOfDeck moves an instance to the top of its controller's deck.
func (gs *GameState) PutOnTopOfDeck(ci *CardInstance) bool {
	if !gs.MoveCard(ci, cards.ZoneDeck) {
		return false
	}
	controller := gs.Players[ci.ControllerID]
	deck := controller.Zones[cards.ZoneDeck]
	if len(deck) < 2 {
		return true
	}
	// MoveCard appended to the bottom; rotate the instance to the top.
	deck = deck[:len(deck)-1]
	controller.Zones[cards.ZoneDeck] = append([]*CardInstance{ci}, deck...)
	return true
}

// DrawOne moves the top card of the player's deck to hand. Returns the
// drawn instance, or nil if the deck is empty. Drawing from an empty
// deck is not an error in this game.
func (gs *GameState) DrawOne(p *PlayerState) *CardInstance {
	deck := p.Zones[cards.ZoneDeck]
	if len(deck) == 0 {
		return nil
	}
	top := deck[0]
	gs.MoveCard(top, cards.ZoneHand)
	return top
}

// InPlaySorted returns in-play instances ordered by (turn entered play
// ascending, instance id ascending). This is the canonical trigger
// resolution order: oldest in play resolves first.
func (gs *GameState) InPlaySorted() []*CardInstance {
	out := make([]*CardInstance, 0, len(gs.InPlay))
	for _, ci := range gs.InPlay {
		out = append(out, ci)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EnteredPlayTurn != out[j].EnteredPlayTurn {
			return out[i].EnteredPlayTurn < out[j].EnteredPlayTurn
		}
		return out[i].InstanceID < out[j].InstanceID
	})
	return out
}

// Logf appends a formatted entry to the structured game log.
func (gs *GameState) Logf(kind, format string, args ...any) {
	gs.Log = append(gs.Log, LogEntry{
		Turn:    gs.Turn,
		Phase:   gs.Phase.String(),
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	})
}
