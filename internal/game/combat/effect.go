package combat

import (
	"fmt"

	"github.com/cory-johannsen/hexcombat/internal/game/condition"
	"github.com/cory-johannsen/hexcombat/internal/game/hex"
	"github.com/cory-johannsen/hexcombat/internal/game/ledger"
	"github.com/cory-johannsen/hexcombat/internal/game/roster"
)

// ApplyAreaEffects applies each area effect in order around target.
func ApplyAreaEffects(effects []AreaEffect, target hex.Pos, source *Character, others roster.Others[Character]) {
	for _, e := range effects {
		ApplyAreaEffect(e, target, source, others)
	}
}

// ApplyAreaEffect applies e's effect list to the source, if it lies in the area
// and passes the filter against itself, then to every other roster member in
// the area that passes the filter, in roster order.
//
// Postcondition: each affected character receives every effect in list order
// before the next character is visited.
func ApplyAreaEffect(e AreaEffect, target hex.Pos, source *Character, others roster.Others[Character]) {
	if hex.InArea(source.Pos, e.Area, target) && (e.Filter == nil || Matches(e.Filter, source, source)) {
		for _, eff := range e.Effects {
			ApplyEffect(eff, source, source)
		}
	}
	for c := range others.All() {
		if !hex.InArea(c.Pos, e.Area, target) {
			continue
		}
		if e.Filter != nil && !Matches(e.Filter, c, source) {
			continue
		}
		for _, eff := range e.Effects {
			ApplyEffect(eff, c, source)
		}
	}
}

// ApplyEffect applies one effect to target on behalf of source.
// target and source may be the same character.
func ApplyEffect(eff Effect, target, source *Character) {
	switch e := eff.(type) {
	case Damage:
		strike(e.Amount, target, source)
	case DamageWithLifesteal:
		net := strike(e.Amount, target, source)
		RestoreHealth(source, net)
	case Heal:
		RestoreHealth(target, e.Amount)
	case GrantCondition:
		ApplyGrant(target, e.Grant)
	case GainStamina:
		target.StaminaCurrent = ledger.CapAdd(target.StaminaCurrent, e.Amount, target.StaminaMax)
	default:
		panic(fmt.Sprintf("combat: unknown effect %T", eff))
	}
}

// strike deals net damage to target, then the target's Retaliate back to source.
// It returns the net damage.
func strike(gross uint, target, source *Character) uint {
	net := NetDamage(gross, target, source)
	DealDamage(target, net)
	DealDamage(source, target.Conditions.Get(condition.Retaliate))
	return net
}

// NetDamage returns gross modified by the source's offensive conditions and the
// target's defensive ones:
//
//	floor((gross + Strong - Weak) * (2 if Empowered) * (1/2 if Enfeebled)) + Fragile - Fortified
//
// Postcondition: every intermediate step saturates within [0, math.MaxUint].
func NetDamage(gross uint, target, source *Character) uint {
	dmg := ledger.AddSat(gross, source.Conditions.Get(condition.Strong))
	dmg = ledger.SubSat(dmg, source.Conditions.Get(condition.Weak))
	if source.Conditions.Has(condition.Empowered) {
		dmg = ledger.MulSat(dmg, 2)
	}
	if source.Conditions.Has(condition.Enfeebled) {
		dmg /= 2
	}
	dmg = ledger.AddSat(dmg, target.Conditions.Get(condition.Fragile))
	return ledger.SubSat(dmg, target.Conditions.Get(condition.Fortified))
}

// DealDamage subtracts amount from c's health, flooring at 0, and fires the
// damage-taken hook when amount is positive.
func DealDamage(c *Character, amount uint) {
	c.HealthCurrent = ledger.SubSat(c.HealthCurrent, amount)
	if amount > 0 {
		PushTriggered(c, HookDamageTaken)
	}
}

// RestoreHealth adds amount to c's health, capped at HealthMax.
func RestoreHealth(c *Character, amount uint) {
	c.HealthCurrent = ledger.CapAdd(c.HealthCurrent, amount, c.HealthMax)
}

// ApplyGrant runs g through c's equipped modifiers in equip order and adds the
// result to c's conditions.
func ApplyGrant(c *Character, g condition.Grant) {
	g = condition.ApplyAll(g, c.GainedModifiers())
	c.Conditions.Increment(g.Kind, g.Value)
}
