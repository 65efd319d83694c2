package combat

import (
	"fmt"

	"github.com/cory-johannsen/hexcombat/internal/game/condition"
)

// Hook names an event that queues an item's triggered abilities.
type Hook int

const (
	HookDamageTaken Hook = iota
	HookAttackAction
	HookMovementAction
	HookTurnStart
	HookTurnEnd
)

var hookNames = [...]string{
	HookDamageTaken:    "damage_taken",
	HookAttackAction:   "attack_action",
	HookMovementAction: "movement_action",
	HookTurnStart:      "turn_start",
	HookTurnEnd:        "turn_end",
}

// String returns the content name of h, e.g. "damage_taken".
func (h Hook) String() string {
	if h < 0 || int(h) >= len(hookNames) {
		return fmt.Sprintf("hook(%d)", int(h))
	}
	return hookNames[h]
}

// Hooks returns every Hook in declaration order.
func Hooks() []Hook {
	out := make([]Hook, len(hookNames))
	for i := range out {
		out[i] = Hook(i)
	}
	return out
}

// ParseHook returns the Hook named name.
func ParseHook(name string) (Hook, error) {
	for i, n := range hookNames {
		if n == name {
			return Hook(i), nil
		}
	}
	return 0, fmt.Errorf("unknown hook %q", name)
}

// Passives are an item's always-on rules.
type Passives struct {
	// HealthForStamina makes card costs come out of health instead of stamina.
	HealthForStamina bool
	// ModifyGained reshapes every condition the wearer gains.
	ModifyGained []condition.Modifier
}

// Item is a read-only equipment template.
type Item struct {
	ID          string
	Name        string
	Description string
	Passives    Passives
	// Triggers lists the abilities queued on the wearer when each hook fires.
	Triggers map[Hook][]Ability
}

// Card is a read-only template played from a character's hand.
type Card struct {
	ID          string
	Name        string
	Description string
	StaminaCost uint
	Abilities   []Ability
}

// CardCatalogue looks up cards by ID.
type CardCatalogue interface {
	Card(id string) (*Card, bool)
}

// ItemCatalogue looks up items by ID.
type ItemCatalogue interface {
	Item(id string) (*Item, bool)
}
