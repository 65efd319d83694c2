package render

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/hexcombat/internal/game/combat"
	"github.com/cory-johannsen/hexcombat/internal/game/condition"
	"github.com/cory-johannsen/hexcombat/internal/game/hex"
	"github.com/cory-johannsen/hexcombat/internal/game/ledger"
)

// Board is the Content of an encounter: each occupied hex shows its
// character's name, health and visible conditions; empty hexes show their
// axial coordinates.
type Board struct {
	byPos  map[hex.Pos]int
	chars  []combat.Character
	reg    *condition.Registry
	active int
	layout Layout
}

// NewBoard indexes chars by position. active is highlighted; pass -1 for
// none. A nil reg hides only engine-internal conditions.
//
// Precondition: no two living characters share a hex.
func NewBoard(chars []combat.Character, reg *condition.Registry, active int, l Layout) *Board {
	if reg == nil {
		reg = condition.NewRegistry()
	}
	b := &Board{byPos: make(map[hex.Pos]int, len(chars)), chars: chars, reg: reg, active: active, layout: l}
	for i, c := range chars {
		// Living characters win a shared hex.
		if j, ok := b.byPos[c.Pos]; ok && !chars[j].Defeated() {
			continue
		}
		b.byPos[c.Pos] = i
	}
	return b
}

// HexContent implements Content.
func (b *Board) HexContent(pos hex.Pos, line int) Cell {
	mid := b.layout.HalfHeight - 1
	i, ok := b.byPos[pos]
	if !ok {
		if line == mid+1 || (b.layout.HalfHeight == 1 && line == mid) {
			return Cell{Text: fmt.Sprintf("%d,%d", pos.R, pos.Q), Color: Dim}
		}
		return Cell{}
	}
	c := b.chars[i]
	switch line {
	case mid - 1:
		return Cell{Text: teamMark(c.Team), Color: teamColor(c.Team)}
	case mid:
		color := teamColor(c.Team)
		if i == b.active {
			color = Bold + color
		}
		if c.Defeated() {
			color = Dim
		}
		return Cell{Text: c.Name, Color: color}
	case mid + 1:
		if c.Defeated() {
			return Cell{Text: "down", Color: Dim}
		}
		return Cell{Text: fmt.Sprintf("%d/%d", c.HealthCurrent, c.HealthMax), Color: healthColor(c)}
	case mid + 2:
		return Cell{Text: b.shortConditions(c.Conditions), Color: Magenta}
	default:
		return Cell{}
	}
}

// shortConditions abbreviates each visible condition to its first letter
// and value, e.g. "P3 F1".
func (b *Board) shortConditions(l condition.Ledger) string {
	var parts []string
	for _, k := range ledger.SortedKeys(l) {
		if !b.reg.Visible(k) {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s%d", strings.ToUpper(k.String()[:1]), l.Get(k)))
	}
	return strings.Join(parts, " ")
}

func teamMark(t combat.Team) string {
	if t == combat.TeamPlayer {
		return "+"
	}
	return "x"
}

func teamColor(t combat.Team) string {
	if t == combat.TeamPlayer {
		return BrightCyan
	}
	return BrightRed
}

func healthColor(c combat.Character) string {
	switch {
	case c.HealthCurrent*3 <= c.HealthMax:
		return Red
	case c.HealthCurrent*3 <= 2*c.HealthMax:
		return Yellow
	default:
		return Green
	}
}

// Encounter draws chars on a grid sized to fit them with one hex of margin.
func Encounter(chars []combat.Character, reg *condition.Registry, active int, l Layout) string {
	positions := make([]hex.Pos, len(chars))
	for i, c := range chars {
		positions[i] = c.Pos
	}
	rows, cols := Bounds(positions, 1)
	return Grid(NewBoard(chars, reg, active, l), rows, cols, l)
}
