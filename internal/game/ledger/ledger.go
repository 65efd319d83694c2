// Package ledger provides a saturating counter map keyed by an enumeration,
// along with the saturating unsigned arithmetic the engine uses for health,
// stamina, and damage.
package ledger

import (
	"cmp"
	"math"
	"slices"
)

// Ledger maps keys to unsigned counts. Absent keys read as 0.
// The zero value is an empty, ready-to-use Ledger.
// It is not safe for concurrent use.
type Ledger[K comparable] struct {
	counts map[K]uint
}

// Of builds a Ledger from key/count pairs.
func Of[K comparable](counts map[K]uint) Ledger[K] {
	var l Ledger[K]
	for k, v := range counts {
		if v > 0 {
			l.set(k, v)
		}
	}
	return l
}

// Get returns the count for key, or 0 if absent.
func (l Ledger[K]) Get(key K) uint {
	return l.counts[key]
}

// Has reports whether the count for key is non-zero.
func (l Ledger[K]) Has(key K) bool {
	return l.counts[key] > 0
}

// Increment shifts the count for key by delta, saturating at 0 and math.MaxUint.
//
// Postcondition: never wraps or panics.
func (l *Ledger[K]) Increment(key K, delta int) {
	l.set(key, Shift(l.counts[key], delta))
}

// With returns a copy of l with key incremented by delta.
func (l Ledger[K]) With(key K, delta int) Ledger[K] {
	out := l.Clone()
	out.Increment(key, delta)
	return out
}

// DecayAll subtracts 1 from every count, flooring at 0.
//
// Postcondition: idempotent on zero entries.
func (l *Ledger[K]) DecayAll() {
	for k, v := range l.counts {
		if v > 0 {
			l.counts[k] = v - 1
		}
	}
}

// Clone returns an independent copy of l.
func (l Ledger[K]) Clone() Ledger[K] {
	var out Ledger[K]
	for k, v := range l.counts {
		out.set(k, v)
	}
	return out
}

// Len returns the number of keys with a non-zero count.
func (l Ledger[K]) Len() int {
	n := 0
	for _, v := range l.counts {
		if v > 0 {
			n++
		}
	}
	return n
}

// Keys returns every key with a non-zero count, sorted by less.
func (l Ledger[K]) Keys(less func(a, b K) int) []K {
	out := make([]K, 0, len(l.counts))
	for k, v := range l.counts {
		if v > 0 {
			out = append(out, k)
		}
	}
	slices.SortFunc(out, less)
	return out
}

func (l *Ledger[K]) set(key K, v uint) {
	if l.counts == nil {
		l.counts = make(map[K]uint)
	}
	l.counts[key] = v
}

// SortedKeys is Keys for ordered key types.
func SortedKeys[K cmp.Ordered](l Ledger[K]) []K {
	return l.Keys(cmp.Compare[K])
}

// AddSat returns a+b, saturating at math.MaxUint.
func AddSat(a, b uint) uint {
	if a > math.MaxUint-b {
		return math.MaxUint
	}
	return a + b
}

// SubSat returns a-b, saturating at 0.
func SubSat(a, b uint) uint {
	if b > a {
		return 0
	}
	return a - b
}

// MulSat returns a*b, saturating at math.MaxUint.
func MulSat(a, b uint) uint {
	if a != 0 && b > math.MaxUint/a {
		return math.MaxUint
	}
	return a * b
}

// Shift applies a signed delta to v, saturating at both ends.
func Shift(v uint, delta int) uint {
	if delta >= 0 {
		return AddSat(v, uint(delta))
	}
	if delta == math.MinInt {
		return 0
	}
	return SubSat(v, uint(-delta))
}

// CapAdd returns min(a+b, limit), saturating.
func CapAdd(a, b, limit uint) uint {
	return min(AddSat(a, b), limit)
}
