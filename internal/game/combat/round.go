package combat

import (
	"github.com/cory-johannsen/hexcombat/internal/game/condition"
	"github.com/cory-johannsen/hexcombat/internal/game/ledger"
)

// PlayCard pays card's cost and queues its abilities on c, returning how many
// were queued. Affordability is not checked: the cost saturates at 0.
//
// Postcondition: card.Abilities are appended in card order, so the last one pops first.
func PlayCard(c *Character, card *Card) int {
	if c.HealthForStamina() {
		c.HealthCurrent = ledger.SubSat(c.HealthCurrent, card.StaminaCost)
	} else {
		c.StaminaCurrent = ledger.SubSat(c.StaminaCurrent, card.StaminaCost)
	}
	c.Remaining = append(c.Remaining, card.Abilities...)
	return len(card.Abilities)
}

// EndTurn applies c's Poison damage and Regen healing, rolls its turn
// statistics over, and fires its turn-end hook.
func EndTurn(c *Character) {
	DealDamage(c, c.Conditions.Get(condition.Poison))
	RestoreHealth(c, c.Conditions.Get(condition.Regen))
	c.Stats.EndTurn()
	PushTriggered(c, HookTurnEnd)
}

// BeginTurn decays every condition on c by one and fires its turn-start hook.
func BeginTurn(c *Character) {
	c.Conditions.DecayAll()
	PushTriggered(c, HookTurnStart)
}

// PushTriggered queues every equipped item's abilities for hook on c, in
// equip order. The last-equipped item's abilities pop first.
func PushTriggered(c *Character, hook Hook) {
	for _, it := range c.Items {
		c.Remaining = append(c.Remaining, it.Triggers[hook]...)
	}
}
