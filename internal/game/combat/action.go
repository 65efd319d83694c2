package combat

import (
	"fmt"

	"github.com/cory-johannsen/hexcombat/internal/game/condition"
	"github.com/cory-johannsen/hexcombat/internal/game/hex"
)

// Ability is a gated sequence of actions granted by a card or an item trigger.
// Once its first action resolves, the rest must resolve too.
type Ability struct {
	// Precondition gates the ability when it is popped; nil always passes.
	Precondition Precondition
	Actions      []Action
}

// Action is one atomic step of an ability. The set of actions is closed:
// SelfAction, TargetedAction and MoveAction.
type Action interface {
	isAction()
}

// SelfAction applies its effects centred on the actor's own hex.
type SelfAction struct {
	Effects []AreaEffect
	// Attack marks a self-centred attack, such as a melee strike rewritten by Fury.
	// It counts as an attack action.
	Attack bool
}

// TargetedAction applies its effects centred on a target point chosen by the input source.
// Every targeted action counts as an attack action.
type TargetedAction struct {
	Reach   Reach
	Effects []AreaEffect
}

// MoveAction moves the actor along a path chosen by the input source.
type MoveAction struct {
	Spaces uint
	Jump   bool
}

func (SelfAction) isAction()     {}
func (TargetedAction) isAction() {}
func (MoveAction) isAction()     {}

// Describe returns a short human-readable summary of a.
func Describe(a Action) string {
	switch a := a.(type) {
	case SelfAction:
		if a.Attack {
			return "attack around self"
		}
		return "act on self"
	case TargetedAction:
		return "target " + a.Reach.String()
	case MoveAction:
		if a.Jump {
			return fmt.Sprintf("jump %d", a.Spaces)
		}
		return fmt.Sprintf("move %d", a.Spaces)
	case nil:
		return "none"
	default:
		panic(fmt.Sprintf("combat: unknown action %T", a))
	}
}

// Reach is the distance a targeted action may be aimed at: melee or ranged within N.
type Reach struct {
	ranged bool
	n      int
}

// Melee returns the adjacent-hex reach.
func Melee() Reach { return Reach{n: 1} }

// Ranged returns a reach of up to n hexes.
func Ranged(n int) Reach { return Reach{ranged: true, n: n} }

// IsMelee reports whether r is melee reach.
func (r Reach) IsMelee() bool { return !r.ranged }

// Range returns the furthest distance r allows.
func (r Reach) Range() int { return r.n }

// Allows reports whether a target at to is within reach of an actor at from.
// The engine does not enforce reach; input sources use this to pick targets.
func (r Reach) Allows(from, to hex.Pos) bool {
	return hex.Distance(from, to) <= r.n
}

// String returns "melee" or "range N".
func (r Reach) String() string {
	if r.IsMelee() {
		return "melee"
	}
	return fmt.Sprintf("range %d", r.n)
}

// AreaEffect applies an ordered effect list to every character in Area that passes Filter.
type AreaEffect struct {
	// Area is relative to the target point; nil means hex.DefaultArea.
	Area hex.Area
	// Filter restricts affected characters; nil matches all.
	Filter  Filter
	Effects []Effect
}

// Effect is applied to one character. The set of effects is closed:
// Damage, DamageWithLifesteal, Heal, GrantCondition and GainStamina.
type Effect interface {
	isEffect()
}

// Damage deals Amount gross damage, modified by conditions.
type Damage struct{ Amount uint }

// DamageWithLifesteal is Damage that also heals the source by the net damage dealt.
type DamageWithLifesteal struct{ Amount uint }

// Heal restores Amount health, capped at max.
type Heal struct{ Amount uint }

// GrantCondition adds a condition grant after the target's item modifiers reshape it.
type GrantCondition struct{ condition.Grant }

// GainStamina restores Amount stamina, capped at max.
type GainStamina struct{ Amount uint }

func (Damage) isEffect()              {}
func (DamageWithLifesteal) isEffect() {}
func (Heal) isEffect()                {}
func (GrantCondition) isEffect()      {}
func (GainStamina) isEffect()         {}

// Grant is shorthand for a GrantCondition effect.
func Grant(k condition.Kind, value int) GrantCondition {
	return GrantCondition{condition.Grant{Kind: k, Value: value}}
}
