package combat

import (
	"fmt"

	"github.com/cory-johannsen/hexcombat/internal/game/condition"
	"github.com/cory-johannsen/hexcombat/internal/game/hex"
)

// Filter is a boolean expression over a candidate character and the acting source.
// The set of filters is closed: IsEnemy, IsSelf, Within, WithCondition,
// WithoutCondition, And and Or.
type Filter interface {
	isFilter()
}

// IsEnemy matches candidates on a different team from the source.
type IsEnemy struct{}

// IsSelf matches the source itself.
type IsSelf struct{}

// Within matches candidates whose distance to the source lies in the disk.
type Within struct{ hex.Disk }

// WithCondition matches candidates carrying a non-zero count of Kind.
type WithCondition struct{ Kind condition.Kind }

// WithoutCondition matches candidates carrying no Kind.
type WithoutCondition struct{ Kind condition.Kind }

// And matches when every sub-filter matches. An empty And matches everything.
type And []Filter

// Or matches when any sub-filter matches. An empty Or matches nothing.
type Or []Filter

func (IsEnemy) isFilter()          {}
func (IsSelf) isFilter()           {}
func (Within) isFilter()           {}
func (WithCondition) isFilter()    {}
func (WithoutCondition) isFilter() {}
func (And) isFilter()              {}
func (Or) isFilter()               {}

// Matches evaluates f for candidate against source.
//
// Precondition: candidate and source are non-nil; IsSelf compares identity.
// Postcondition: pure and total.
func Matches(f Filter, candidate, source *Character) bool {
	switch f := f.(type) {
	case IsEnemy:
		return candidate.Team != source.Team
	case IsSelf:
		return candidate == source
	case Within:
		return f.InRange(hex.Distance(candidate.Pos, source.Pos))
	case WithCondition:
		return candidate.Conditions.Has(f.Kind)
	case WithoutCondition:
		return !candidate.Conditions.Has(f.Kind)
	case And:
		for _, sub := range f {
			if !Matches(sub, candidate, source) {
				return false
			}
		}
		return true
	case Or:
		for _, sub := range f {
			if Matches(sub, candidate, source) {
				return true
			}
		}
		return false
	default:
		panic(fmt.Sprintf("combat: unknown filter %T", f))
	}
}
