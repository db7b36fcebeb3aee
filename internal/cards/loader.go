package cards

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Library holds every loaded definition, keyed by id.
type Library struct {
	Cards      map[string]*CardDefinition
	Objectives map[string]*ObjectiveDefinition
}

// Card returns the card definition for the id.
func (l *Library) Card(id string) (*CardDefinition, error) {
	def, ok := l.Cards[id]
	if !ok {
		return nil, fmt.Errorf("unknown card id %q", id)
	}
	return def, nil
}

// Objective returns the objective definition for the id.
func (l *Library) Objective(id string) (*ObjectiveDefinition, error) {
	def, ok := l.Objectives[id]
	if !ok {
		return nil, fmt.Errorf("unknown objective id %q", id)
	}
	return def, nil
}

// LoadCardDefinitions reads a YAML file containing a list of card
// definitions. Malformed structure and duplicate or missing ids are
// setup-fatal: the loader reports an error before any game state exists.
func LoadCardDefinitions(path string) (map[string]*CardDefinition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading card definitions: %w", err)
	}

	var defs []*CardDefinition
	if err := yaml.Unmarshal(raw, &defs); err != nil {
		return nil, fmt.Errorf("parsing card definitions %s: %w", path, err)
	}

	cards := make(map[string]*CardDefinition, len(defs))
	for i, def := range defs {
		if def.ID == "" {
			return nil, fmt.Errorf("card definition %d (%q) has no id", i, def.Name)
		}
		if _, dup := cards[def.ID]; dup {
			return nil, fmt.Errorf("duplicate card id %q", def.ID)
		}
		switch def.Type {
		case TypeToy, TypeRitual, TypeSpell:
		default:
			return nil, fmt.Errorf("card %q has unknown type %q", def.ID, def.Type)
		}
		if def.Cost < 0 {
			return nil, fmt.Errorf("card %q has negative cost %d", def.ID, def.Cost)
		}
		if def.DeckQuantity <= 0 {
			def.DeckQuantity = 1
		}
		for j := range def.Effects {
			if def.Effects[j].ID == "" {
				def.Effects[j].ID = fmt.Sprintf("%s_e%d", def.ID, j)
			}
		}
		cards[def.ID] = def
	}
	return cards, nil
}

// LoadObjectiveDefinitions reads a YAML file containing a list of
// objective definitions.
func LoadObjectiveDefinitions(path string) (map[string]*ObjectiveDefinition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading objective definitions: %w", err)
	}

	var defs []*ObjectiveDefinition
	if err := yaml.Unmarshal(raw, &defs); err != nil {
		return nil, fmt.Errorf("parsing objective definitions %s: %w", path, err)
	}

	objectives := make(map[string]*ObjectiveDefinition, len(defs))
	for i, def := range defs {
		if def.ID == "" {
			return nil, fmt.Errorf("objective definition %d (%q) has no id", i, def.Title)
		}
		if _, dup := objectives[def.ID]; dup {
			return nil, fmt.Errorf("duplicate objective id %q", def.ID)
		}
		if def.PrimaryWin == nil {
			return nil, fmt.Errorf("objective %q has no primary win condition", def.ID)
		}
		if def.NightfallTurn <= 0 {
			return nil, fmt.Errorf("objective %q has no nightfall turn", def.ID)
		}
		objectives[def.ID] = def
	}
	return objectives, nil
}

// LoadLibrary loads cards and objectives and cross-checks that every card
// id referenced by an objective exists.
func LoadLibrary(cardPath, objectivePath string) (*Library, error) {
	cardDefs, err := LoadCardDefinitions(cardPath)
	if err != nil {
		return nil, err
	}
	objectiveDefs, err := LoadObjectiveDefinitions(objectivePath)
	if err != nil {
		return nil, err
	}

	for _, obj := range objectiveDefs {
		for _, id := range obj.Rotation.Banned {
			if _, ok := cardDefs[id]; !ok {
				return nil, fmt.Errorf("objective %q bans unknown card %q", obj.ID, id)
			}
		}
		if obj.Setup != nil {
			refs := append(append([]string{}, obj.Setup.StartCardsInHand...), obj.Setup.StartCardsInPlay...)
			for _, id := range refs {
				if _, ok := cardDefs[id]; !ok {
					return nil, fmt.Errorf("objective %q setup references unknown card %q", obj.ID, id)
				}
			}
		}
		if obj.FirstMemory != nil && obj.FirstMemory.DesignatedCardID != "" {
			if _, ok := cardDefs[obj.FirstMemory.DesignatedCardID]; !ok {
				return nil, fmt.Errorf("objective %q designates unknown first memory %q", obj.ID, obj.FirstMemory.DesignatedCardID)
			}
		}
	}

	return &Library{Cards: cardDefs, Objectives: objectiveDefs}, nil
}
