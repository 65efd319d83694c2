package render_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/hexcombat/internal/game/combat"
	"github.com/cory-johannsen/hexcombat/internal/game/condition"
	"github.com/cory-johannsen/hexcombat/internal/game/hex"
	"github.com/cory-johannsen/hexcombat/internal/render"
)

func TestColorize(t *testing.T) {
	assert.Equal(t, "\033[31mdanger\033[0m", render.Colorize(render.Red, "danger"))
	assert.Equal(t, "plain", render.Colorize("", "plain"))
	assert.Equal(t, "", render.Colorize(render.Red, ""))
	assert.Equal(t, "\033[32mhealth: 42\033[0m", render.Colorf(render.Green, "health: %d", 42))
}

func TestStripANSI(t *testing.T) {
	input := "\033[31mred\033[0m normal \033[1m\033[32mbold green\033[0m"
	assert.Equal(t, "red normal bold green", render.StripANSI(input))
	assert.Equal(t, "", render.StripANSI(""))
}

func TestWidth(t *testing.T) {
	assert.Equal(t, 3, render.Width(render.Colorize(render.Bold, "abc")))
	assert.Equal(t, 4, render.Width("日本"))
}

func TestPropertyStripANSIInversesColorize(t *testing.T) {
	colors := []string{render.Red, render.Green, render.Cyan, render.Bold, render.Dim, render.Bold + render.BrightRed}
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringMatching(`[a-zA-Z0-9 ]{0,50}`).Draw(t, "text")
		color := rapid.SampledFrom(colors).Draw(t, "color")
		if got := render.StripANSI(render.Colorize(color, text)); got != text {
			t.Fatalf("StripANSI(Colorize(%q)) = %q", text, got)
		}
	})
}

func TestPropertyOddQRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := hex.P(rapid.IntRange(-50, 50).Draw(t, "r"), rapid.IntRange(-50, 50).Draw(t, "q"))
		if got := render.ToOddQ(p).Axial(); got != p {
			t.Fatalf("round trip of %v gave %v", p, got)
		}
	})
}

func TestToOddQ(t *testing.T) {
	assert.Equal(t, render.OddQ{Col: 0, Row: 0}, render.ToOddQ(hex.P(0, 0)))
	assert.Equal(t, render.OddQ{Col: 1, Row: 0}, render.ToOddQ(hex.P(0, 1)))
	assert.Equal(t, render.OddQ{Col: 2, Row: 1}, render.ToOddQ(hex.P(0, 2)))
	assert.Equal(t, render.OddQ{Col: -1, Row: -1}, render.ToOddQ(hex.P(0, -1)))
}

func TestGrid_Shape(t *testing.T) {
	blank := render.ContentFunc(func(hex.Pos, int) render.Cell { return render.Cell{} })
	got := render.Grid(blank, render.Span{From: 0, To: 1}, render.Span{From: 0, To: 2}, render.Layout{FlatWidth: 2, HalfHeight: 1})
	assert.Equal(t, " __\n╱  ╲__╱\n╲__╱  ╲\n", got)
}

func TestGrid_ContentLines(t *testing.T) {
	lines := render.ContentFunc(func(pos hex.Pos, line int) render.Cell {
		if pos == hex.P(0, 0) || pos == hex.P(0, 1) {
			return render.Cell{Text: fmt.Sprint(line), Color: render.Red}
		}
		return render.Cell{}
	})
	l := render.Layout{FlatWidth: 2, HalfHeight: 2}
	want := "  __\n" +
		" ╱0 ╲    ╱\n" +
		"╱ 1  ╲__╱\n" +
		"╲ 2  ╱0 ╲\n" +
		" ╲__╱ 1  ╲\n"
	assert.Equal(t, want, render.Grid(lines, render.Span{From: 0, To: 1}, render.Span{From: 0, To: 2}, l))

	l.Color = true
	colored := render.Grid(lines, render.Span{From: 0, To: 1}, render.Span{From: 0, To: 2}, l)
	assert.Contains(t, colored, render.Colorize(render.Red, "1"))
	assert.Equal(t, want, render.StripANSI(colored), "colour never shifts the layout")
}

func TestGrid_TruncatesLongText(t *testing.T) {
	long := render.ContentFunc(func(pos hex.Pos, line int) render.Cell {
		if pos == hex.P(0, 0) {
			return render.Cell{Text: "abcdef"}
		}
		return render.Cell{}
	})
	got := render.Grid(long, render.Span{From: 0, To: 1}, render.Span{From: 0, To: 1}, render.Layout{FlatWidth: 3, HalfHeight: 1})
	assert.Equal(t, " ___\n╱abc╲___╱\n╲___╱   ╲\n", got)
}

func TestGrid_PanicsOnEmptyLayout(t *testing.T) {
	blank := render.ContentFunc(func(hex.Pos, int) render.Cell { return render.Cell{} })
	assert.Panics(t, func() { render.Grid(blank, render.Span{}, render.Span{}, render.Layout{}) })
}

func TestBounds(t *testing.T) {
	rows, cols := render.Bounds([]hex.Pos{hex.P(0, 0), hex.P(2, 3)}, 1)
	// (2,3) is odd-q column 3, row 3.
	assert.Equal(t, render.Span{From: -1, To: 5}, rows)
	assert.Equal(t, render.Span{From: -2, To: 5}, cols)

	rows, cols = render.Bounds(nil, 0)
	assert.Equal(t, render.Span{From: 0, To: 1}, rows)
	assert.Equal(t, render.Span{From: 0, To: 1}, cols)
}

func ash() combat.Character {
	c := combat.Character{
		Name: "Ash", Team: combat.TeamPlayer, Pos: hex.P(0, 0),
		HealthCurrent: 24, HealthMax: 24, StaminaCurrent: 12, StaminaMax: 12,
	}
	c.Conditions.Increment(condition.Poison, 2)
	c.Conditions.Increment(condition.Fury, 1)
	return c
}

func goblin() combat.Character {
	return combat.Character{
		Name: "Goblin", Team: combat.TeamMonster, Pos: hex.P(0, 1),
		HealthCurrent: 0, HealthMax: 12, StaminaCurrent: 3, StaminaMax: 8,
	}
}

func TestBoard_HexContent(t *testing.T) {
	b := render.NewBoard([]combat.Character{ash(), goblin()}, nil, 0, render.DefaultLayout)

	assert.Equal(t, render.Cell{}, b.HexContent(hex.P(0, 0), 0))
	assert.Equal(t, render.Cell{Text: "+", Color: render.BrightCyan}, b.HexContent(hex.P(0, 0), 1))
	assert.Equal(t, render.Cell{Text: "Ash", Color: render.Bold + render.BrightCyan}, b.HexContent(hex.P(0, 0), 2))
	assert.Equal(t, render.Cell{Text: "24/24", Color: render.Green}, b.HexContent(hex.P(0, 0), 3))
	assert.Equal(t, render.Cell{Text: "P2", Color: render.Magenta}, b.HexContent(hex.P(0, 0), 4), "fury is hidden")

	assert.Equal(t, render.Cell{Text: "Goblin", Color: render.Dim}, b.HexContent(hex.P(0, 1), 2))
	assert.Equal(t, render.Cell{Text: "down", Color: render.Dim}, b.HexContent(hex.P(0, 1), 3))

	assert.Equal(t, render.Cell{Text: "5,-2", Color: render.Dim}, b.HexContent(hex.P(5, -2), 3))
	assert.Equal(t, render.Cell{}, b.HexContent(hex.P(5, -2), 2))
}

func TestBoard_LivingCharacterWinsSharedHex(t *testing.T) {
	corpse := goblin()
	corpse.Pos = hex.P(0, 0)
	for _, chars := range [][]combat.Character{{ash(), corpse}, {corpse, ash()}} {
		b := render.NewBoard(chars, nil, -1, render.DefaultLayout)
		assert.Equal(t, "Ash", b.HexContent(hex.P(0, 0), 2).Text)
	}
}

func TestEncounter_DrawsEveryCharacter(t *testing.T) {
	out := render.Encounter([]combat.Character{ash(), goblin()}, nil, 0, render.DefaultLayout)
	assert.Contains(t, out, "Ash")
	assert.Contains(t, out, "Goblin")
	assert.Contains(t, out, "24/24")
	assert.NotContains(t, out, "\033[", "colour is off unless the layout asks for it")
}

func TestConditions(t *testing.T) {
	c := ash()
	assert.Equal(t, "Poison 2", render.Conditions(nil, c.Conditions))

	reg := condition.NewRegistry()
	reg.Register(&condition.Def{ID: condition.Poison, Name: "Venom"})
	reg.Register(&condition.Def{ID: condition.Fury, Name: "Fury", Hidden: false})
	assert.Equal(t, "Venom 2, Fury 1", render.Conditions(reg, c.Conditions))
	assert.Equal(t, "Immobilized", render.ConditionName(nil, condition.Immobilized))
}

func TestRoster(t *testing.T) {
	out := render.Roster([]combat.Character{ash(), goblin()}, nil, 0, false)
	want := "*0 Ash [player] (0,0) hp 24/24 st 12/12 Poison 2\n" +
		" 1 Goblin [monster] (0,1) hp down st 3/8\n"
	assert.Equal(t, want, out)

	colored := render.Roster([]combat.Character{ash(), goblin()}, nil, 1, true)
	require.Contains(t, colored, render.Colorize(render.Green, "24/24"))
	assert.Equal(t, " 0 Ash [player] (0,0) hp 24/24 st 12/12 Poison 2\n*1 Goblin [monster] (0,1) hp down st 3/8\n",
		render.StripANSI(colored))
}
