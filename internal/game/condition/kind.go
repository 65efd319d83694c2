// Package condition defines the stacking status counters carried by characters,
// the grants that add to them, and the item passives that reshape those grants.
package condition

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/hexcombat/internal/game/ledger"
)

// Kind identifies a condition. Every condition stacks and decays by 1 at the
// start of its owner's turn.
type Kind int

const (
	Poison      Kind = iota // at the end of your turn, take X damage
	Regen                   // at the end of your turn, heal X damage
	Weak                    // your attacks do X less damage
	Strong                  // your attacks do X more damage
	Empowered               // your attacks deal double damage
	Enfeebled               // your attacks deal half damage
	Fragile                 // attacks against you deal X additional damage
	Fortified               // attacks against you deal X less damage
	Slow                    // -X to all movement actions
	Fast                    // +X to all movement actions
	Stunned                 // you can't perform any actions
	Disarmed                // you can't perform any attack actions
	Immobilized             // you can't perform any movement actions
	Retaliate               // attackers take X damage
	Invisible               // you can't be targeted

	// Fury is engine-internal: melee attacks target all adjacent characters.
	Fury

	kindCount
)

var kindNames = [kindCount]string{
	Poison:      "poison",
	Regen:       "regen",
	Weak:        "weak",
	Strong:      "strong",
	Empowered:   "empowered",
	Enfeebled:   "enfeebled",
	Fragile:     "fragile",
	Fortified:   "fortified",
	Slow:        "slow",
	Fast:        "fast",
	Stunned:     "stunned",
	Disarmed:    "disarmed",
	Immobilized: "immobilized",
	Retaliate:   "retaliate",
	Invisible:   "invisible",
	Fury:        "fury",
}

// String returns the content identifier of k, e.g. "poison".
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("condition(%d)", int(k))
	}
	return kindNames[k]
}

// Internal reports whether k is engine-internal rather than user-facing.
func (k Kind) Internal() bool {
	return k == Fury
}

// All returns every Kind in declaration order.
func All() []Kind {
	out := make([]Kind, kindCount)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// Parse returns the Kind whose identifier is name.
func Parse(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("condition: unknown condition %q", name)
}

// UnmarshalYAML decodes a Kind from its identifier.
func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	parsed, err := Parse(name)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*k = parsed
	return nil
}

// MarshalYAML encodes k as its identifier.
func (k Kind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// Ledger holds a character's condition counters.
type Ledger = ledger.Ledger[Kind]
