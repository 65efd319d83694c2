package combat

import (
	"fmt"

	"github.com/cory-johannsen/hexcombat/internal/game/roster"
	"github.com/cory-johannsen/hexcombat/internal/game/turnstat"
)

// Precondition gates an ability at the moment it is popped. The set of
// preconditions is closed: FilteredCount and TurnStat.
type Precondition interface {
	isPrecondition()
}

// FilteredCount compares the number of roster members matching Filter,
// the source included, against Value.
type FilteredCount struct {
	Filter     Filter
	Comparison Comparison
	Value      uint
}

// TurnStat compares the source's Stat from TurnsAgo turns back against Value.
type TurnStat struct {
	TurnsAgo   int
	Stat       turnstat.Stat
	Comparison Comparison
	Value      uint
}

func (FilteredCount) isPrecondition() {}
func (TurnStat) isPrecondition()      {}

// PreconditionMet evaluates p for source against the rest of the roster.
// A nil precondition is always met.
func PreconditionMet(p Precondition, source *Character, others roster.Others[Character]) bool {
	switch p := p.(type) {
	case nil:
		return true
	case FilteredCount:
		var n uint
		if Matches(p.Filter, source, source) {
			n++
		}
		for c := range others.All() {
			if Matches(p.Filter, c, source) {
				n++
			}
		}
		return p.Comparison.Compare(n, p.Value)
	case TurnStat:
		return p.Comparison.Compare(source.Stats.Get(p.TurnsAgo, p.Stat), p.Value)
	default:
		panic(fmt.Sprintf("combat: unknown precondition %T", p))
	}
}
