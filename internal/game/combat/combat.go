// Package combat implements the hex-grid rules-resolution engine: the data
// model of characters, abilities and items, the effect and damage math, the
// ability pipeline, and the step-driven turn-order state machine.
package combat

import (
	"fmt"

	"github.com/cory-johannsen/hexcombat/internal/game/condition"
	"github.com/cory-johannsen/hexcombat/internal/game/hex"
	"github.com/cory-johannsen/hexcombat/internal/game/turnstat"
)

// Team identifies which side a character fights for.
type Team int

const (
	TeamPlayer Team = iota
	TeamMonster
)

// String returns "player" or "monster".
func (t Team) String() string {
	switch t {
	case TeamPlayer:
		return "player"
	case TeamMonster:
		return "monster"
	default:
		return "unknown"
	}
}

// ParseTeam returns the Team named name.
func ParseTeam(name string) (Team, error) {
	switch name {
	case "player":
		return TeamPlayer, nil
	case "monster":
		return TeamMonster, nil
	default:
		return 0, fmt.Errorf("unknown team %q", name)
	}
}

// Character is one participant in an encounter.
//
// Invariant: HealthCurrent <= HealthMax and StaminaCurrent <= StaminaMax once
// the engine has touched them; Remaining is consumed last-in-first-out.
type Character struct {
	ID   string
	Name string
	Pos  hex.Pos
	Team Team

	HealthCurrent  uint
	HealthMax      uint
	StaminaCurrent uint
	StaminaMax     uint

	// Items are shared, read-only templates in equip order.
	Items []*Item

	Conditions condition.Ledger
	Stats      turnstat.History
	// Remaining holds abilities pending resolution; the last entry pops first.
	Remaining []Ability
}

// HealthForStamina reports whether any equipped item makes c pay card costs in health.
func (c *Character) HealthForStamina() bool {
	for _, it := range c.Items {
		if it.Passives.HealthForStamina {
			return true
		}
	}
	return false
}

// GainedModifiers returns every equipped item's condition-grant modifier, in equip order.
func (c *Character) GainedModifiers() []condition.Modifier {
	var out []condition.Modifier
	for _, it := range c.Items {
		out = append(out, it.Passives.ModifyGained...)
	}
	return out
}

// Defeated reports whether c has no health left.
func (c *Character) Defeated() bool {
	return c.HealthCurrent == 0
}

// Comparison is a threshold operator used by preconditions.
type Comparison int

const (
	Equal Comparison = iota
	Less
	Greater
	LessOrEqual
	GreaterOrEqual
)

var comparisonSymbols = [...]string{
	Equal:          "=",
	Less:           "<",
	Greater:        ">",
	LessOrEqual:    "<=",
	GreaterOrEqual: ">=",
}

// Compare reports whether lhs <op> rhs holds.
func (c Comparison) Compare(lhs, rhs uint) bool {
	switch c {
	case Equal:
		return lhs == rhs
	case Less:
		return lhs < rhs
	case Greater:
		return lhs > rhs
	case LessOrEqual:
		return lhs <= rhs
	case GreaterOrEqual:
		return lhs >= rhs
	default:
		panic(fmt.Sprintf("combat: unknown comparison %d", int(c)))
	}
}

// String returns the operator symbol, e.g. ">=".
func (c Comparison) String() string {
	if c < 0 || int(c) >= len(comparisonSymbols) {
		return "?"
	}
	return comparisonSymbols[c]
}

// ParseComparison returns the Comparison for symbol.
func ParseComparison(symbol string) (Comparison, error) {
	for i, s := range comparisonSymbols {
		if s == symbol {
			return Comparison(i), nil
		}
	}
	return 0, fmt.Errorf("unknown comparison %q", symbol)
}
