package combat

import (
	"slices"

	"github.com/cory-johannsen/hexcombat/internal/game/condition"
	"github.com/cory-johannsen/hexcombat/internal/game/hex"
	"github.com/cory-johannsen/hexcombat/internal/game/roster"
)

// PopKind classifies the result of PopAbility.
type PopKind int

const (
	// PopNone means the queue was empty.
	PopNone PopKind = iota
	// PopUnsatisfied means the top ability failed its precondition and was discarded.
	PopUnsatisfied
	// PopActions means the top ability passed and its actions were returned.
	PopActions
)

// PopResult is the outcome of popping one ability.
type PopResult struct {
	Kind PopKind
	// Actions are remapped for the character's current conditions. May be empty.
	Actions []Action
}

// PopAbility removes the most recently queued ability from source.
// An ability failing its precondition is discarded, not re-queued.
//
// Postcondition: source.Remaining shrinks by one unless it was empty; the
// returned actions never alias the ability's template.
func PopAbility(source *Character, others roster.Others[Character]) PopResult {
	n := len(source.Remaining)
	if n == 0 {
		return PopResult{Kind: PopNone}
	}
	ab := source.Remaining[n-1]
	// Clipped so later appends never write into a shared template.
	source.Remaining = slices.Clip(source.Remaining[:n-1])
	if !PreconditionMet(ab.Precondition, source, others) {
		return PopResult{Kind: PopUnsatisfied}
	}
	actions := make([]Action, len(ab.Actions))
	for i, a := range ab.Actions {
		actions[i] = RemapAction(source, a)
	}
	return PopResult{Kind: PopActions, Actions: actions}
}

// PopEligible pops past abilities that fail their preconditions and returns the
// actions of the first that passes, or false once the queue is exhausted.
func PopEligible(source *Character, others roster.Others[Character]) ([]Action, bool) {
	for {
		res := PopAbility(source, others)
		switch res.Kind {
		case PopNone:
			return nil, false
		case PopActions:
			return res.Actions, true
		}
	}
}

var furyArea = hex.Disk{From: 1, To: 2}

// RemapAction rewrites a for c's active conditions. Under Fury, a melee
// targeted action whose area effects all use the default area becomes a
// self-centred attack on every adjacent hex. Anything else is returned as is.
func RemapAction(c *Character, a Action) Action {
	if !c.Conditions.Has(condition.Fury) {
		return a
	}
	t, ok := a.(TargetedAction)
	if !ok || !t.Reach.IsMelee() {
		return a
	}
	for _, e := range t.Effects {
		if !hex.IsDefault(e.Area) {
			return a
		}
	}
	effects := make([]AreaEffect, len(t.Effects))
	for i, e := range t.Effects {
		effects[i] = AreaEffect{Area: furyArea, Filter: e.Filter, Effects: e.Effects}
	}
	return SelfAction{Effects: effects, Attack: true}
}
