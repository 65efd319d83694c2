package combat_test

import (
	"github.com/cory-johannsen/hexcombat/internal/game/combat"
	"github.com/cory-johannsen/hexcombat/internal/game/condition"
	"github.com/cory-johannsen/hexcombat/internal/game/hex"
	"github.com/cory-johannsen/hexcombat/internal/game/ledger"
)

// catalogue is an in-memory CardCatalogue for tests.
type catalogue map[string]*combat.Card

func (c catalogue) Card(id string) (*combat.Card, bool) {
	card, ok := c[id]
	return card, ok
}

func newCatalogue(cards ...*combat.Card) catalogue {
	out := make(catalogue, len(cards))
	for _, c := range cards {
		out[c.ID] = c
	}
	return out
}

func conds(m map[condition.Kind]uint) condition.Ledger {
	return ledger.Of(m)
}

// fighter returns a character with 20 health and 10 stamina at pos.
func fighter(id string, team combat.Team, pos hex.Pos) combat.Character {
	return combat.Character{
		ID:             id,
		Name:           id,
		Pos:            pos,
		Team:           team,
		HealthCurrent:  20,
		HealthMax:      20,
		StaminaCurrent: 10,
		StaminaMax:     10,
	}
}

func area(effects ...combat.Effect) combat.AreaEffect {
	return combat.AreaEffect{Effects: effects}
}

func meleeAbility(dmg uint) combat.Ability {
	return combat.Ability{Actions: []combat.Action{
		combat.TargetedAction{Reach: combat.Melee(), Effects: []combat.AreaEffect{area(combat.Damage{Amount: dmg})}},
	}}
}

func selfAbility(effects ...combat.Effect) combat.Ability {
	return combat.Ability{Actions: []combat.Action{
		combat.SelfAction{Effects: []combat.AreaEffect{area(effects...)}},
	}}
}

func moveAbility(spaces uint) combat.Ability {
	return combat.Ability{Actions: []combat.Action{combat.MoveAction{Spaces: spaces}}}
}

func newCard(id string, cost uint, abilities ...combat.Ability) *combat.Card {
	return &combat.Card{ID: id, Name: id, StaminaCost: cost, Abilities: abilities}
}

// triggerItem returns an item queueing abilities on hook.
func triggerItem(id string, hook combat.Hook, abilities ...combat.Ability) *combat.Item {
	return &combat.Item{ID: id, Name: id, Triggers: map[combat.Hook][]combat.Ability{hook: abilities}}
}
