package content

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/hexcombat/internal/game/combat"
)

// ParseItem parses and validates a single item from raw YAML bytes. Trigger
// lists are keyed by hook name (damage_taken, attack_action, movement_action,
// turn_start, turn_end).
func ParseItem(data []byte) (*combat.Item, error) {
	var doc itemDoc
	if err := decodeStrict(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing item YAML: %w", err)
	}
	if doc.ID == "" {
		return nil, fmt.Errorf("item: id must not be empty")
	}
	if doc.Name == "" {
		return nil, fmt.Errorf("item %q: name must not be empty", doc.ID)
	}

	item := &combat.Item{
		ID:          doc.ID,
		Name:        doc.Name,
		Description: strings.TrimSpace(doc.Description),
		Passives:    combat.Passives{HealthForStamina: doc.Passives.HealthForStamina},
	}
	for i := range doc.Passives.ModifyGained {
		item.Passives.ModifyGained = append(item.Passives.ModifyGained, doc.Passives.ModifyGained[i].modifier())
	}
	if len(doc.Triggers) > 0 {
		item.Triggers = make(map[combat.Hook][]combat.Ability, len(doc.Triggers))
	}
	for name, docs := range doc.Triggers {
		hook, err := combat.ParseHook(name)
		if err != nil {
			return nil, fmt.Errorf("item %q: triggers: %w", doc.ID, err)
		}
		abs, err := abilities(docs)
		if err != nil {
			return nil, fmt.Errorf("item %q: triggers.%s: %w", doc.ID, name, err)
		}
		item.Triggers[hook] = abs
	}
	return item, nil
}

// LoadItems reads every *.yaml file in dir as an item, in file name order.
func LoadItems(dir string) ([]*combat.Item, error) {
	return loadDir(dir, "item", ParseItem)
}
