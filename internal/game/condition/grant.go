package condition

import "math"

// Grant adds Value stacks of Kind to a character. Value may be negative.
type Grant struct {
	Kind  Kind
	Value int
}

// Modifier is an item passive that reshapes condition grants before they land.
type Modifier struct {
	// AppliesOnlyTo restricts the modifier to one condition; nil matches all.
	AppliesOnlyTo *Kind
	// TransformInto substitutes the granted condition; nil keeps it.
	TransformInto *Kind
	// Additive is added after scaling.
	Additive int
	// Multiplicative scales the value; the result is rounded half away from zero.
	Multiplicative float64
}

// Apply returns g reshaped by m: round(value*Multiplicative)+Additive, with the
// kind optionally substituted. Grants of other kinds pass through unchanged
// when AppliesOnlyTo is set.
func (m Modifier) Apply(g Grant) Grant {
	if m.AppliesOnlyTo != nil && *m.AppliesOnlyTo != g.Kind {
		return g
	}
	out := g
	if m.TransformInto != nil {
		out.Kind = *m.TransformInto
	}
	out.Value = addClamped(clampInt(math.Round(float64(g.Value)*m.Multiplicative)), m.Additive)
	return out
}

// addClamped returns a+b saturated to [math.MinInt, math.MaxInt].
func addClamped(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	default:
		return a + b
	}
}

// ApplyAll runs g through each modifier in order.
//
// A modifier pair that maps two kinds onto each other (poison to regen and
// regen to poison) is applied in sequence, so both fire within one grant.
func ApplyAll(g Grant, mods []Modifier) Grant {
	for _, m := range mods {
		g = m.Apply(g)
	}
	return g
}

func clampInt(f float64) int {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	default:
		return int(f)
	}
}
