package condition_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/hexcombat/internal/game/condition"
)

func kindPtr(k condition.Kind) *condition.Kind { return &k }

func TestModifier_Identity(t *testing.T) {
	m := condition.Modifier{Multiplicative: 1}
	g := condition.Grant{Kind: condition.Weak, Value: 4}
	assert.Equal(t, g, m.Apply(g))
}

func TestModifier_AffineRoundsHalfAway(t *testing.T) {
	m := condition.Modifier{Multiplicative: 0.5, Additive: 1}
	got := m.Apply(condition.Grant{Kind: condition.Poison, Value: 3})
	// round(1.5) = 2, plus 1
	assert.Equal(t, condition.Grant{Kind: condition.Poison, Value: 3}, got)

	got = m.Apply(condition.Grant{Kind: condition.Poison, Value: -3})
	assert.Equal(t, -1, got.Value)
}

func TestModifier_RestrictedPassesOthersThrough(t *testing.T) {
	m := condition.Modifier{
		AppliesOnlyTo:  kindPtr(condition.Poison),
		TransformInto:  kindPtr(condition.Regen),
		Multiplicative: 1,
	}
	assert.Equal(t, condition.Grant{Kind: condition.Regen, Value: 2},
		m.Apply(condition.Grant{Kind: condition.Poison, Value: 2}))
	assert.Equal(t, condition.Grant{Kind: condition.Weak, Value: 2},
		m.Apply(condition.Grant{Kind: condition.Weak, Value: 2}))
}

func TestModifier_AdditiveSaturates(t *testing.T) {
	up := condition.Modifier{Multiplicative: 1, Additive: 1}
	g := up.Apply(condition.Grant{Kind: condition.Strong, Value: math.MaxInt})
	assert.Equal(t, math.MaxInt, g.Value)

	var l condition.Ledger
	l.Increment(g.Kind, g.Value)
	assert.Equal(t, uint(math.MaxInt), l.Get(condition.Strong))

	down := condition.Modifier{Multiplicative: 1, Additive: -1}
	assert.Equal(t, math.MinInt, down.Apply(condition.Grant{Kind: condition.Weak, Value: math.MinInt}).Value)

	huge := condition.Modifier{Multiplicative: 4, Additive: math.MaxInt}
	assert.Equal(t, math.MaxInt, huge.Apply(condition.Grant{Kind: condition.Weak, Value: math.MaxInt / 2}).Value)
}

func TestApplyAll_InEquipOrder(t *testing.T) {
	mods := []condition.Modifier{
		{Multiplicative: 2},
		{Multiplicative: 1, Additive: 1},
	}
	got := condition.ApplyAll(condition.Grant{Kind: condition.Strong, Value: 3}, mods)
	assert.Equal(t, 7, got.Value)

	mods[0], mods[1] = mods[1], mods[0]
	got = condition.ApplyAll(condition.Grant{Kind: condition.Strong, Value: 3}, mods)
	assert.Equal(t, 8, got.Value)
}

func TestApplyAll_MutualTransformAppliesBoth(t *testing.T) {
	mods := []condition.Modifier{
		{AppliesOnlyTo: kindPtr(condition.Poison), TransformInto: kindPtr(condition.Regen), Multiplicative: 1},
		{AppliesOnlyTo: kindPtr(condition.Regen), TransformInto: kindPtr(condition.Poison), Multiplicative: 1},
	}
	got := condition.ApplyAll(condition.Grant{Kind: condition.Poison, Value: 3}, mods)
	assert.Equal(t, 3, got.Value)
	assert.Equal(t, condition.Poison, got.Kind)
}

func TestPropertyModifier_UnitScalePreservesValue(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.IntRange(-1000, 1000).Draw(t, "value")
		add := rapid.IntRange(-10, 10).Draw(t, "add")
		m := condition.Modifier{Multiplicative: 1, Additive: add}
		got := m.Apply(condition.Grant{Kind: condition.Fragile, Value: v})
		assert.Equal(t, v+add, got.Value)
		assert.Equal(t, condition.Fragile, got.Kind)
	})
}
