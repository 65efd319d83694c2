package render

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cory-johannsen/hexcombat/internal/game/combat"
	"github.com/cory-johannsen/hexcombat/internal/game/condition"
	"github.com/cory-johannsen/hexcombat/internal/game/ledger"
)

// ConditionName returns the display name of k: the registered name when reg
// has one, otherwise k's identifier in title case.
func ConditionName(reg *condition.Registry, k condition.Kind) string {
	if reg != nil {
		if def, ok := reg.Get(k); ok && def.Name != "" {
			return def.Name
		}
	}
	return cases.Title(language.English).String(k.String())
}

// Conditions lists l's visible conditions as "Name value" pairs in kind
// order. Hidden conditions are left out.
func Conditions(reg *condition.Registry, l condition.Ledger) string {
	if reg == nil {
		reg = condition.NewRegistry()
	}
	var parts []string
	for _, k := range ledger.SortedKeys(l) {
		if reg.Visible(k) {
			parts = append(parts, fmt.Sprintf("%s %d", ConditionName(reg, k), l.Get(k)))
		}
	}
	return strings.Join(parts, ", ")
}

// Roster formats one line per character: index, name, team, position,
// health, stamina and visible conditions. The character at active is marked
// with "*".
func Roster(chars []combat.Character, reg *condition.Registry, active int, color bool) string {
	paint := func(c, s string) string {
		if !color {
			return s
		}
		return Colorize(c, s)
	}

	var b strings.Builder
	for i, c := range chars {
		marker := " "
		if i == active {
			marker = "*"
		}
		name := paint(teamColor(c.Team), c.Name)
		health := paint(healthColor(c), fmt.Sprintf("%d/%d", c.HealthCurrent, c.HealthMax))
		if c.Defeated() {
			name = paint(Dim, c.Name)
			health = paint(Dim, "down")
		}
		fmt.Fprintf(&b, "%s%d %s [%s] %s hp %s st %d/%d",
			marker, i, name, c.Team, c.Pos, health, c.StaminaCurrent, c.StaminaMax)
		if conds := Conditions(reg, c.Conditions); conds != "" {
			b.WriteString(" ")
			b.WriteString(paint(Magenta, conds))
		}
		b.WriteString("\n")
	}
	return b.String()
}
