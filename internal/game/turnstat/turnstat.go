// Package turnstat records per-turn statistic counters for a character.
package turnstat

import (
	"fmt"
	"math"

	"github.com/cory-johannsen/hexcombat/internal/game/ledger"
)

// Stat identifies a per-turn statistic.
type Stat int

const (
	SpacesMoved Stat = iota
	AttackActions
)

// String returns the content name of the statistic.
func (s Stat) String() string {
	switch s {
	case SpacesMoved:
		return "spaces_moved"
	case AttackActions:
		return "attack_actions"
	default:
		return "unknown"
	}
}

// Parse returns the Stat named name.
func Parse(name string) (Stat, error) {
	switch name {
	case "spaces_moved":
		return SpacesMoved, nil
	case "attack_actions":
		return AttackActions, nil
	default:
		return 0, fmt.Errorf("turnstat: unknown stat %q", name)
	}
}

// History is an append-only sequence of per-turn counters.
// The last entry is the current turn; it is created lazily on first write.
// The zero value is an empty History.
type History struct {
	turns []ledger.Ledger[Stat]
}

// Add increments stat for the current turn by n.
func (h *History) Add(stat Stat, n uint) {
	if len(h.turns) == 0 {
		h.turns = append(h.turns, ledger.Ledger[Stat]{})
	}
	h.turns[len(h.turns)-1].Increment(stat, int(min(n, math.MaxInt)))
}

// Get returns stat as recorded turnsAgo turns before the latest entry,
// or 0 if the history does not reach that far back.
func (h History) Get(turnsAgo int, stat Stat) uint {
	if turnsAgo < 0 {
		return 0
	}
	idx := len(h.turns) - 1 - turnsAgo
	if idx < 0 {
		return 0
	}
	return h.turns[idx].Get(stat)
}

// EndTurn appends a fresh zeroed entry.
func (h *History) EndTurn() {
	h.turns = append(h.turns, ledger.Ledger[Stat]{})
}

// Len returns the number of recorded turns.
func (h History) Len() int {
	return len(h.turns)
}
