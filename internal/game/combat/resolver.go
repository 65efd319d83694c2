package combat

import (
	"fmt"

	"github.com/cory-johannsen/hexcombat/internal/game/hex"
	"github.com/cory-johannsen/hexcombat/internal/game/roster"
	"github.com/cory-johannsen/hexcombat/internal/game/turnstat"
)

// PathError reports a movement path with a step that is not hex-adjacent.
type PathError struct {
	// Step is the index of the offending position in the path.
	Step int
	From hex.Pos
	To   hex.Pos
}

func (e *PathError) Error() string {
	return fmt.Sprintf("path step %d from %s to %s is not adjacent", e.Step, e.From, e.To)
}

// ResolveSelf applies a's effects centred on source's own position.
// A self action marked Attack also counts as an attack action.
func ResolveSelf(a SelfAction, source *Character, others roster.Others[Character]) {
	ApplyAreaEffects(a.Effects, source.Pos, source, others)
	if a.Attack {
		recordAttack(source)
	}
}

// ResolveTargeted applies a's effects centred on target and records an attack action.
//
// Postcondition: source's AttackActions stat for the current turn grows by one
// and its attack-action hook has fired.
func ResolveTargeted(a TargetedAction, target hex.Pos, source *Character, others roster.Others[Character]) {
	ApplyAreaEffects(a.Effects, target, source, others)
	recordAttack(source)
}

func recordAttack(c *Character) {
	c.Stats.Add(turnstat.AttackActions, 1)
	PushTriggered(c, HookAttackAction)
}

// ResolveMovement walks c along path one step at a time, then fires the
// movement hook once.
//
// Precondition: every step is adjacent to the previous position, starting at c.Pos.
// Postcondition: on a *PathError nothing about c has changed; otherwise c.Pos
// is the last step and SpacesMoved grew by len(path).
func ResolveMovement(_ MoveAction, path []hex.Pos, c *Character) error {
	prev := c.Pos
	for i, p := range path {
		if !hex.Adjacent(prev, p) {
			return &PathError{Step: i, From: prev, To: p}
		}
		prev = p
	}
	for _, p := range path {
		c.Pos = p
		c.Stats.Add(turnstat.SpacesMoved, 1)
	}
	PushTriggered(c, HookMovementAction)
	return nil
}
