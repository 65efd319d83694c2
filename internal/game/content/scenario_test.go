package content_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/hexcombat/internal/game/combat"
	"github.com/cory-johannsen/hexcombat/internal/game/condition"
	"github.com/cory-johannsen/hexcombat/internal/game/content"
	"github.com/cory-johannsen/hexcombat/internal/game/hex"
	"github.com/cory-johannsen/hexcombat/internal/game/ledger"
	"github.com/cory-johannsen/hexcombat/internal/game/roster"
	"github.com/cory-johannsen/hexcombat/internal/game/turnstat"
	"github.com/cory-johannsen/hexcombat/internal/testutil"
)

// body returns a player-side character with 10 health and 10 stamina.
func body(r, q int, items ...*combat.Item) combat.Character {
	return combat.Character{
		ID:             hex.P(r, q).String(),
		Name:           "body",
		Pos:            hex.P(r, q),
		HealthCurrent:  10,
		HealthMax:      10,
		StaminaCurrent: 10,
		StaminaMax:     10,
		Items:          items,
	}
}

func none() roster.Others[combat.Character] { return roster.None[combat.Character]() }

func TestMonksRobe_MovementOffersStun(t *testing.T) {
	cat := testutil.Catalogue(t)
	chars := []combat.Character{
		body(0, 0, cat.MustItem("monks_robe")),
		body(0, 2),
	}
	c, others, err := roster.SingleOut(chars, 0)
	require.NoError(t, err)

	require.NoError(t, combat.PlayCardWithInputs(cat.MustCard("step"), c, others, combat.Path(hex.P(0, 1))))
	require.NoError(t, combat.ResolveRemaining(c, others, combat.Target(0, 2)))

	assert.Equal(t, uint(1), chars[0].Conditions.Get(condition.Disarmed))
	assert.Equal(t, uint(1), chars[1].Conditions.Get(condition.Stunned))
}

func TestFury_MeleeHitsEveryAdjacentCharacter(t *testing.T) {
	cat := testutil.Catalogue(t)
	positions := []hex.Pos{
		hex.P(1, 0), hex.P(0, 1), hex.P(-1, 0), hex.P(0, -1), hex.P(1, -1), hex.P(-1, 1),
		hex.P(1, 1), hex.P(3, 1), hex.P(-100, 0),
	}
	chars := []combat.Character{body(0, 0)}
	chars[0].HealthCurrent, chars[0].StaminaCurrent, chars[0].StaminaMax = 8, 20, 20
	for _, p := range positions {
		b := body(p.R, p.Q)
		b.HealthCurrent = 8
		chars = append(chars, b)
	}
	c, others, err := roster.SingleOut(chars, 0)
	require.NoError(t, err)

	require.NoError(t, combat.PlayCardWithInputs(cat.MustCard("fury"), c, others))
	require.NoError(t, combat.PlayCardWithInputs(cat.MustCard("large_strike"), c, others))

	for i, p := range positions {
		want := uint(8)
		if hex.Distance(hex.P(0, 0), p) == 1 {
			want = 0
		}
		assert.Equal(t, want, chars[i+1].HealthCurrent, "character at %s", p)
	}
	assert.Equal(t, uint(8), chars[0].HealthCurrent)
	assert.Equal(t, uint(1), chars[0].Stats.Get(0, turnstat.AttackActions))
}

func TestCloakOfInvisibility(t *testing.T) {
	cat := testutil.Catalogue(t)
	cloak := cat.MustItem("cloak_of_invisibility")
	enemy := body(1, 0)
	enemy.Team = combat.TeamMonster
	enemy.HealthCurrent, enemy.HealthMax = 100, 100
	enemies := []combat.Character{enemy}
	others := roster.Of(enemies)

	withoutAlone := body(-2, 0)
	withAlone := body(-4, 0, cloak)
	withNotAlone := body(0, 0, cloak)
	wearers := []*combat.Character{&withoutAlone, &withAlone, &withNotAlone}

	for _, c := range wearers {
		require.NoError(t, combat.PlayCardWithInputs(cat.MustCard("steady_shot"), c, others, combat.Target(1, 0)))
		require.NoError(t, combat.ResolveRemaining(c, others))
	}
	assert.Equal(t, uint(0), withoutAlone.Conditions.Get(condition.Fragile))
	assert.Equal(t, uint(1), withAlone.Conditions.Get(condition.Fragile))
	assert.Equal(t, uint(1), withNotAlone.Conditions.Get(condition.Fragile))

	for _, c := range wearers {
		combat.EndAndBeginTurn(c)
		require.NoError(t, combat.ResolveRemaining(c, others))
	}
	assert.Equal(t, uint(0), withoutAlone.Conditions.Get(condition.Invisible))
	assert.Equal(t, uint(1), withAlone.Conditions.Get(condition.Invisible))
	assert.Equal(t, uint(0), withNotAlone.Conditions.Get(condition.Invisible))
}

func TestChestplateOfTheEnraged_OnlyRealDamageCounts(t *testing.T) {
	cat := testutil.Catalogue(t)
	chest := cat.MustItem("chestplate_of_the_enraged")
	chars := []combat.Character{
		body(0, 0),
		body(0, 1),
		body(1, 0, chest),
		body(-1, 0, chest),
	}
	chars[3].Conditions = ledger.Of(map[condition.Kind]uint{condition.Fortified: 1})

	src, others, err := roster.SingleOut(chars, 0)
	require.NoError(t, err)
	require.NoError(t, combat.PlayCardWithInputs(cat.MustCard("whirlwind"), src, others))

	for i := 1; i < len(chars); i++ {
		require.NoError(t, combat.ResolveRemaining(&chars[i], none()))
	}
	assert.Equal(t, uint(0), chars[1].Conditions.Get(condition.Strong))
	assert.Equal(t, uint(1), chars[2].Conditions.Get(condition.Strong))
	assert.Equal(t, uint(0), chars[3].Conditions.Get(condition.Strong))
	assert.Equal(t, uint(9), chars[0].HealthCurrent, "whirlwind also hits its user")
}

func TestShroudOfThePoisonFeeder_ChainedTransformsApplyInOrder(t *testing.T) {
	cat := testutil.Catalogue(t)
	c := body(0, 0, cat.MustItem("shroud_of_the_poison_feeder"))
	c.HealthCurrent = 1

	require.NoError(t, combat.PlayCardWithInputs(cat.MustCard("poison_cloud"), &c, none(), combat.Target(0, 0)))

	// poison -> regen -> poison: both modifiers fire on the same grant.
	assert.Equal(t, uint(3), c.Conditions.Get(condition.Poison))
	assert.Equal(t, uint(0), c.Conditions.Get(condition.Regen))
}

func TestShroudOfThePoisonFeeder_SingleModifier(t *testing.T) {
	shroud := *testutil.Catalogue(t).MustItem("shroud_of_the_poison_feeder")
	shroud.Passives.ModifyGained = shroud.Passives.ModifyGained[:1]
	c := body(0, 0, &shroud)

	combat.ApplyGrant(&c, condition.Grant{Kind: condition.Poison, Value: 3})

	assert.Equal(t, uint(0), c.Conditions.Get(condition.Poison))
	assert.Equal(t, uint(3), c.Conditions.Get(condition.Regen))
}

func TestStillrootLegs(t *testing.T) {
	cat := testutil.Catalogue(t)
	legs := cat.MustItem("stillroot_legs")
	moving := body(0, 0, legs)
	still := body(0, 0, legs)
	bare := body(0, 0)
	for _, c := range []*combat.Character{&moving, &still, &bare} {
		c.StaminaMax = 20
	}

	step := cat.MustCard("step")
	require.NoError(t, combat.PlayCardWithInputs(step, &moving, none(), combat.Path(hex.P(0, 1))))
	require.NoError(t, combat.PlayCardWithInputs(step, &still, none(), combat.Path()))
	require.NoError(t, combat.PlayCardWithInputs(step, &bare, none(), combat.Path()))

	for _, c := range []*combat.Character{&moving, &still, &bare} {
		combat.EndAndBeginTurn(c)
		require.NoError(t, combat.ResolveRemaining(c, none()))
	}
	assert.Equal(t, bare.StaminaCurrent, moving.StaminaCurrent)
	assert.Equal(t, moving.StaminaCurrent+1, still.StaminaCurrent)
}

func TestThorngrownVest(t *testing.T) {
	cat := testutil.Catalogue(t)
	vest := cat.MustItem("thorngrown_vest")
	target := []combat.Character{body(0, 1)}
	others := roster.Of(target)

	attacker := body(0, 0, vest)
	idle := body(0, 0, vest)
	bare := body(0, 0)

	require.NoError(t, combat.PlayCardWithInputs(cat.MustCard("cut"), &attacker, others, combat.Target(0, 1)))
	for _, c := range []*combat.Character{&attacker, &idle, &bare} {
		combat.EndTurn(c)
		require.NoError(t, combat.ResolveRemaining(c, others))
	}

	assert.Equal(t, uint(0), attacker.Conditions.Get(condition.Retaliate))
	assert.Equal(t, uint(2), idle.Conditions.Get(condition.Retaliate))
	assert.Equal(t, uint(0), bare.Conditions.Get(condition.Retaliate))
}

func TestBloodboundHarness_PaysInHealth(t *testing.T) {
	cat := testutil.Catalogue(t)
	c := body(0, 0, cat.MustItem("bloodbound_harness"))

	require.NoError(t, combat.PlayCardWithInputs(cat.MustCard("strike"), &c, none(), combat.Target(4, 4)))

	assert.Equal(t, uint(5), c.HealthCurrent)
	assert.Equal(t, uint(10), c.StaminaCurrent)
}

func TestPreparation_RequiresInvisible(t *testing.T) {
	cat := testutil.Catalogue(t)
	visible := body(0, 0)
	hidden := body(0, 0)
	hidden.Conditions = ledger.Of(map[condition.Kind]uint{condition.Invisible: 1})

	prep := cat.MustCard("preparation")
	require.NoError(t, combat.PlayCardWithInputs(prep, &visible, none(), combat.Target(1, 0)))
	require.NoError(t, combat.PlayCardWithInputs(prep, &hidden, none(), combat.Target(1, 0)))

	assert.Equal(t, uint(0), visible.Conditions.Get(condition.Empowered))
	assert.Equal(t, uint(1), hidden.Conditions.Get(condition.Empowered))
}

func TestRainOfArrows_HitsTargetAndNeighbours(t *testing.T) {
	cat := testutil.Catalogue(t)
	var chars []combat.Character
	for r := -2; r <= 2; r++ {
		for q := -2; q <= 2; q++ {
			if hex.Distance(hex.P(0, 0), hex.P(r, q)) <= 2 {
				chars = append(chars, body(r, q))
			}
		}
	}
	archer := body(5, 5)

	require.NoError(t, combat.PlayCardWithInputs(cat.MustCard("rain_of_arrows"), &archer, roster.Of(chars), combat.Target(0, 0)))

	for _, c := range chars {
		if hex.Distance(hex.P(0, 0), c.Pos) < 2 {
			assert.Equal(t, uint(8), c.HealthCurrent, "%s is in the volley", c.Pos)
		} else {
			assert.Equal(t, uint(10), c.HealthCurrent, "%s is outside the volley", c.Pos)
		}
	}
	assert.Len(t, chars, 19)
}

func TestDrainLife_RestoresDamageDone(t *testing.T) {
	cat := testutil.Catalogue(t)
	victims := []combat.Character{body(0, 3)}
	victims[0].Conditions = ledger.Of(map[condition.Kind]uint{condition.Fortified: 1})
	c := body(0, 0)
	c.HealthCurrent = 4

	require.NoError(t, combat.PlayCardWithInputs(cat.MustCard("drain_life"), &c, roster.Of(victims), combat.Target(0, 3)))

	assert.Equal(t, uint(8), victims[0].HealthCurrent)
	assert.Equal(t, uint(6), c.HealthCurrent)
}

func TestTurnStat_AttackActions(t *testing.T) {
	cat := testutil.Catalogue(t)
	target := []combat.Character{body(0, 1)}
	c := body(0, 0)
	assert.Equal(t, uint(0), c.Stats.Get(0, turnstat.AttackActions))

	cut := cat.MustCard("cut")
	require.NoError(t, combat.PlayCardWithInputs(cut, &c, roster.Of(target), combat.Target(0, 1)))
	assert.Equal(t, uint(1), c.Stats.Get(0, turnstat.AttackActions))
	require.NoError(t, combat.PlayCardWithInputs(cut, &c, roster.Of(target), combat.Target(0, 1)))
	assert.Equal(t, uint(2), c.Stats.Get(0, turnstat.AttackActions))

	combat.EndTurn(&c)
	assert.Equal(t, uint(0), c.Stats.Get(0, turnstat.AttackActions))
	assert.Equal(t, uint(2), c.Stats.Get(1, turnstat.AttackActions))
}

func TestTurnStat_SpacesMoved(t *testing.T) {
	cat := testutil.Catalogue(t)
	c := body(0, 0)
	step := cat.MustCard("step")

	require.NoError(t, combat.PlayCardWithInputs(step, &c, none(), combat.Path()))
	assert.Equal(t, uint(0), c.Stats.Get(0, turnstat.SpacesMoved))

	require.NoError(t, combat.PlayCardWithInputs(step, &c, none(), combat.Path(hex.P(0, 1), hex.P(1, 0))))
	assert.Equal(t, uint(2), c.Stats.Get(0, turnstat.SpacesMoved))

	combat.EndTurn(&c)
	assert.Equal(t, uint(0), c.Stats.Get(0, turnstat.SpacesMoved))
	assert.Equal(t, uint(2), c.Stats.Get(1, turnstat.SpacesMoved))
}

func TestBackstab_ThroughTheStateMachine(t *testing.T) {
	cat := testutil.Catalogue(t)
	chars := []combat.Character{body(0, 0), body(0, 2)}
	chars[1].Team = combat.TeamMonster
	s := combat.NewState(chars, cat)
	in := combat.NewScripted(
		combat.Play("backstab"),
		combat.Path(hex.P(0, 1)),
		combat.Target(0, 2),
		combat.Path(hex.P(1, 1), hex.P(2, 1)),
	)

	want := []combat.Outcome{
		combat.OutcomeCardPlayed,
		combat.OutcomeLoaded, combat.OutcomeResolved,
		combat.OutcomeLoaded, combat.OutcomeResolved,
		combat.OutcomeLoaded, combat.OutcomeResolved,
		combat.OutcomePending,
	}
	for i, w := range want {
		got, err := s.Step(in)
		require.NoError(t, err)
		require.Equal(t, w, got, "step %d", i)
	}

	assert.Equal(t, hex.P(2, 1), s.Character(0).Pos)
	assert.Equal(t, uint(8), s.Character(1).HealthCurrent)
	assert.Equal(t, uint(3), s.Character(0).Stats.Get(0, turnstat.SpacesMoved))
	assert.Equal(t, uint(7), s.Character(0).StaminaCurrent)
	assert.Zero(t, in.Len())
}

var _ content.Lookup = (*content.Catalogue)(nil)
