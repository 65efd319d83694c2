package content

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/cory-johannsen/hexcombat/internal/game/combat"
	"github.com/cory-johannsen/hexcombat/internal/game/condition"
	"github.com/cory-johannsen/hexcombat/internal/game/hex"
	"github.com/cory-johannsen/hexcombat/internal/game/ledger"
)

// Lookup resolves the card and item IDs an encounter refers to.
type Lookup interface {
	combat.CardCatalogue
	combat.ItemCatalogue
}

type posDoc struct {
	R int `yaml:"r"`
	Q int `yaml:"q"`
}

type combatantDoc struct {
	ID             string          `yaml:"id"`
	Name           string          `yaml:"name"`
	Team           string          `yaml:"team"`
	Pos            posDoc          `yaml:"pos"`
	Health         uint            `yaml:"health"`
	HealthCurrent  *uint           `yaml:"health_current"`
	Stamina        uint            `yaml:"stamina"`
	StaminaCurrent *uint           `yaml:"stamina_current"`
	Items          []string        `yaml:"items"`
	Conditions     map[string]uint `yaml:"conditions"`
	Script         string          `yaml:"script"`
	Hand           []string        `yaml:"hand"`
}

type encounterDoc struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	TurnHolder  int            `yaml:"turn_holder"`
	Combatants  []combatantDoc `yaml:"combatants"`
}

// Combatant is one encounter participant plus how it is controlled.
type Combatant struct {
	Character combat.Character
	// Script names the AI script deciding for this combatant; empty uses the default.
	Script string
	// Hand lists the card IDs the combatant may play.
	Hand []string
}

// Encounter is a starting roster loaded from YAML.
type Encounter struct {
	Name        string
	Description string
	TurnHolder  int
	Combatants  []Combatant
}

// Roster returns fresh copies of the starting characters, in file order.
// Condition ledgers are cloned; items are shared read-only.
func (e *Encounter) Roster() []combat.Character {
	out := make([]combat.Character, len(e.Combatants))
	for i, c := range e.Combatants {
		out[i] = c.Character
		out[i].Conditions = c.Character.Conditions.Clone()
		out[i].Items = append([]*combat.Item(nil), c.Character.Items...)
		out[i].Remaining = nil
	}
	return out
}

// ParseEncounter parses and validates an encounter from raw YAML bytes,
// resolving item and card IDs through lookup. Combatants without an id get a
// random UUID.
//
// Postcondition: Returns an encounter with unique IDs and positions, current
// health and stamina within their maxima and a turn holder in range, or an
// error naming the first offending combatant.
func ParseEncounter(data []byte, lookup Lookup) (*Encounter, error) {
	var doc encounterDoc
	if err := decodeStrict(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing encounter YAML: %w", err)
	}
	if doc.Name == "" {
		return nil, fmt.Errorf("encounter: name must not be empty")
	}
	if len(doc.Combatants) == 0 {
		return nil, fmt.Errorf("encounter %q: at least one combatant is required", doc.Name)
	}
	if doc.TurnHolder < 0 || doc.TurnHolder >= len(doc.Combatants) {
		return nil, fmt.Errorf("encounter %q: turn_holder %d out of range", doc.Name, doc.TurnHolder)
	}

	enc := &Encounter{Name: doc.Name, Description: doc.Description, TurnHolder: doc.TurnHolder}
	ids := make(map[string]bool, len(doc.Combatants))
	occupied := make(map[hex.Pos]string, len(doc.Combatants))
	for i := range doc.Combatants {
		c, err := doc.Combatants[i].combatant(lookup)
		if err != nil {
			return nil, fmt.Errorf("encounter %q: combatants[%d]: %w", doc.Name, i, err)
		}
		if ids[c.Character.ID] {
			return nil, fmt.Errorf("encounter %q: duplicate combatant id %q", doc.Name, c.Character.ID)
		}
		ids[c.Character.ID] = true
		if other, taken := occupied[c.Character.Pos]; taken {
			return nil, fmt.Errorf("encounter %q: %q and %q share %s", doc.Name, other, c.Character.Name, c.Character.Pos)
		}
		occupied[c.Character.Pos] = c.Character.Name
		enc.Combatants = append(enc.Combatants, c)
	}
	return enc, nil
}

func (d *combatantDoc) combatant(lookup Lookup) (Combatant, error) {
	if d.Name == "" {
		return Combatant{}, fmt.Errorf("name must not be empty")
	}
	team, err := combat.ParseTeam(d.Team)
	if err != nil {
		return Combatant{}, fmt.Errorf("%q: %w", d.Name, err)
	}
	if d.Health == 0 {
		return Combatant{}, fmt.Errorf("%q: health must be >= 1", d.Name)
	}
	health, stamina := d.Health, d.Stamina
	if d.HealthCurrent != nil {
		health = *d.HealthCurrent
	}
	if d.StaminaCurrent != nil {
		stamina = *d.StaminaCurrent
	}
	if health > d.Health || stamina > d.Stamina {
		return Combatant{}, fmt.Errorf("%q: current health or stamina exceeds its maximum", d.Name)
	}

	id := d.ID
	if id == "" {
		id = uuid.NewString()
	}
	ch := combat.Character{
		ID:             id,
		Name:           d.Name,
		Pos:            hex.P(d.Pos.R, d.Pos.Q),
		Team:           team,
		HealthCurrent:  health,
		HealthMax:      d.Health,
		StaminaCurrent: stamina,
		StaminaMax:     d.Stamina,
	}
	for _, itemID := range d.Items {
		item, ok := lookup.Item(itemID)
		if !ok {
			return Combatant{}, fmt.Errorf("%q: unknown item %q", d.Name, itemID)
		}
		ch.Items = append(ch.Items, item)
	}
	if len(d.Conditions) > 0 {
		counts := make(map[condition.Kind]uint, len(d.Conditions))
		for name, v := range d.Conditions {
			k, err := condition.Parse(name)
			if err != nil {
				return Combatant{}, fmt.Errorf("%q: %w", d.Name, err)
			}
			counts[k] = v
		}
		ch.Conditions = ledger.Of(counts)
	}
	for _, cardID := range d.Hand {
		if _, ok := lookup.Card(cardID); !ok {
			return Combatant{}, fmt.Errorf("%q: unknown card %q in hand", d.Name, cardID)
		}
	}
	return Combatant{Character: ch, Script: d.Script, Hand: d.Hand}, nil
}

// LoadEncounter reads and parses the encounter file at path.
func LoadEncounter(path string, lookup Lookup) (*Encounter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading encounter %q: %w", path, err)
	}
	enc, err := ParseEncounter(data, lookup)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", path, err)
	}
	return enc, nil
}
