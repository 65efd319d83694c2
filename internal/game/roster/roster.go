// Package roster provides exclusive access to one roster member alongside a
// non-aliasing view over every other member.
package roster

import (
	"errors"
	"fmt"
	"iter"
)

// ErrNoSuchElement is returned when the requested index is outside the roster.
var ErrNoSuchElement = errors.New("roster: no such element")

// Others is a view over every element of a roster except the singled-out one.
// Pointers it yields refer to the backing roster; they never alias the
// singled-out element.
type Others[T any] struct {
	items []T
	skip  int
}

// SingleOut returns a pointer to items[index] and a view over every other element.
//
// Postcondition: on success the returned pointer is &items[index] and Others
// never yields it; returns ErrNoSuchElement if index is out of range.
func SingleOut[T any](items []T, index int) (*T, Others[T], error) {
	if index < 0 || index >= len(items) {
		return nil, Others[T]{}, fmt.Errorf("index %d of %d: %w", index, len(items), ErrNoSuchElement)
	}
	return &items[index], Others[T]{items: items, skip: index}, nil
}

// None returns an empty view, for resolving against a lone character.
func None[T any]() Others[T] {
	return Others[T]{skip: -1}
}

// Of returns a view over every element of items, skipping none.
// The caller must not also hold a singled-out pointer into items.
func Of[T any](items []T) Others[T] {
	return Others[T]{items: items, skip: -1}
}

// Len returns the number of elements in the view.
func (o Others[T]) Len() int {
	if o.skip >= 0 && o.skip < len(o.items) {
		return len(o.items) - 1
	}
	return len(o.items)
}

// Skipped returns the roster index of the singled-out element, or -1.
func (o Others[T]) Skipped() int {
	return o.skip
}

// All yields a pointer to each element exactly once, in roster order:
// elements before the singled-out index first, then those after it.
func (o Others[T]) All() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for i := range o.items {
			if i == o.skip {
				continue
			}
			if !yield(&o.items[i]) {
				return
			}
		}
	}
}

// Indexed is All with each element's roster index.
func (o Others[T]) Indexed() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := range o.items {
			if i == o.skip {
				continue
			}
			if !yield(i, &o.items[i]) {
				return
			}
		}
	}
}

// Get returns the element at roster index i.
// Asking for the singled-out index returns ErrNoSuchElement.
func (o Others[T]) Get(i int) (*T, error) {
	if i == o.skip || i < 0 || i >= len(o.items) {
		return nil, fmt.Errorf("index %d: %w", i, ErrNoSuchElement)
	}
	return &o.items[i], nil
}
