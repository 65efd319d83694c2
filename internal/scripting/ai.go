package scripting

import (
	"slices"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/hexcombat/internal/game/combat"
	"github.com/cory-johannsen/hexcombat/internal/game/hex"
	"github.com/cory-johannsen/hexcombat/internal/game/ledger"
)

// Lua globals an AI script may define. Each receives the view table
// described on AI.
const (
	FnDecide  = "decide"
	FnTarget  = "target"
	FnPath    = "path"
	FnConfirm = "confirm"
)

// cancelWord is the value a script returns to cancel a cancelable prompt.
const cancelWord = "cancel"

// Controller assigns a script and a hand of cards to one roster index.
type Controller struct {
	// Script names a loaded script; empty uses the AI's default script.
	Script string
	Hand   []string
}

// AI is a combat.InputSource that answers every prompt by calling a Lua
// script. It never reports "not yet available": a missing script, a runtime
// error or a nonsense answer falls back to a built-in choice.
//
// Scripts receive a view table:
//
//	view.actor       1-based index of the acting character
//	view.cancelable  whether cancel is allowed
//	view.action      {kind = "self"|"targeted"|"move", attack, melee, range, spaces, jump} or nil
//	view.hand        array of {id, name, cost, affordable, attack, melee, range, move}
//	view.characters  array of {index, id, name, team, pos = {r, q}, health, health_max,
//	                  stamina, stamina_max, defeated, conditions = {name = value}}
//
// and answer with:
//
//	decide(view)   card id, or nil to end the turn
//	target(view)   {r, q}, or "cancel"
//	path(view)     array of {r, q}, or "cancel"
//	confirm(view)  false to cancel
//
// Fallbacks: decide ends the turn; target picks the nearest living enemy;
// path stays put; confirm proceeds.
type AI struct {
	mgr         *Manager
	cards       combat.CardCatalogue
	defaultName string
	controllers map[int]Controller
	logger      *zap.Logger
}

// NewAI creates an AI that runs defaultScript for actors without a
// Controller.
//
// Precondition: mgr and cards must be non-nil.
// Postcondition: Returns an AI with no controllers; a nil logger is replaced
// by the manager's logger.
func NewAI(mgr *Manager, cards combat.CardCatalogue, defaultScript string, logger *zap.Logger) *AI {
	if mgr == nil {
		panic("scripting.NewAI: manager must not be nil")
	}
	if cards == nil {
		panic("scripting.NewAI: card catalogue must not be nil")
	}
	if logger == nil {
		logger = mgr.logger
	}
	return &AI{
		mgr:         mgr,
		cards:       cards,
		defaultName: defaultScript,
		controllers: make(map[int]Controller),
		logger:      logger,
	}
}

// Control assigns c to the character at roster index i, replacing any
// earlier assignment.
func (a *AI) Control(i int, c Controller) {
	a.controllers[i] = c
}

// Controller returns the assignment for roster index i.
func (a *AI) Controller(i int) (Controller, bool) {
	c, ok := a.controllers[i]
	return c, ok
}

func (a *AI) script(actor int) string {
	if c, ok := a.controllers[actor]; ok && c.Script != "" {
		return c.Script
	}
	return a.defaultName
}

func (a *AI) call(fn string, p combat.Prompt) lua.LValue {
	name := a.script(p.Actor)
	if name == "" || !a.mgr.Has(name) {
		return lua.LNil
	}
	ret, err := a.mgr.With(name, fn, func(L *lua.LState) []lua.LValue {
		return []lua.LValue{a.view(L, p)}
	})
	if err != nil {
		a.logger.Warn("ai script unavailable", zap.String("script", name), zap.Error(err))
		return lua.LNil
	}
	return ret
}

// Decide asks the script which card to play.
func (a *AI) Decide(p combat.Prompt) (combat.TurnChoice, bool) {
	ret := a.call(FnDecide, p)
	id, ok := ret.(lua.LString)
	if !ok || id == "" {
		return combat.EndTurnChoice(), true
	}
	if !slices.Contains(a.controllers[p.Actor].Hand, string(id)) {
		a.logger.Warn("ai chose a card outside its hand",
			zap.Int("actor", p.Actor),
			zap.String("card", string(id)),
		)
		return combat.EndTurnChoice(), true
	}
	return combat.PlayCardChoice(string(id)), true
}

// ConfirmSelf asks the script whether to go ahead with a cancelable self action.
func (a *AI) ConfirmSelf(p combat.Prompt) (combat.Choice[struct{}], bool) {
	if a.call(FnConfirm, p) == lua.LFalse {
		return combat.Canceled[struct{}](), true
	}
	return combat.Proceed(struct{}{}), true
}

// Target asks the script for a target point.
func (a *AI) Target(p combat.Prompt) (hex.Pos, bool) {
	ret := a.call(FnTarget, p)
	if pos, ok := tablePos(ret); ok {
		return pos, true
	}
	return nearestEnemy(p), true
}

// TargetCancelable asks the script for a target point or a cancel.
func (a *AI) TargetCancelable(p combat.Prompt) (combat.Choice[hex.Pos], bool) {
	ret := a.call(FnTarget, p)
	if ret == lua.LString(cancelWord) {
		return combat.Canceled[hex.Pos](), true
	}
	if pos, ok := tablePos(ret); ok {
		return combat.Proceed(pos), true
	}
	return combat.Proceed(nearestEnemy(p)), true
}

// Path asks the script for a movement path.
func (a *AI) Path(p combat.Prompt) ([]hex.Pos, bool) {
	path, _ := tablePath(a.call(FnPath, p))
	return path, true
}

// PathCancelable asks the script for a movement path or a cancel.
func (a *AI) PathCancelable(p combat.Prompt) (combat.Choice[[]hex.Pos], bool) {
	ret := a.call(FnPath, p)
	if ret == lua.LString(cancelWord) {
		return combat.Canceled[[]hex.Pos](), true
	}
	path, _ := tablePath(ret)
	return combat.Proceed(path), true
}

// nearestEnemy returns the position of the closest living character on
// another team, or the actor's own position when there is none.
func nearestEnemy(p combat.Prompt) hex.Pos {
	me := p.Roster.Character(p.Actor)
	best, bestDist := me.Pos, -1
	for i := range p.Roster.Len() {
		c := p.Roster.Character(i)
		if c.Team == me.Team || c.Defeated() {
			continue
		}
		if d := hex.Distance(me.Pos, c.Pos); bestDist < 0 || d < bestDist {
			best, bestDist = c.Pos, d
		}
	}
	return best
}

// tablePath reads an array of {r, q} tables. Anything else is an empty path.
func tablePath(v lua.LValue) ([]hex.Pos, bool) {
	t, ok := v.(*lua.LTable)
	if !ok {
		return nil, false
	}
	path := make([]hex.Pos, 0, t.Len())
	for i := 1; i <= t.Len(); i++ {
		pos, ok := tablePos(t.RawGetInt(i))
		if !ok {
			return nil, false
		}
		path = append(path, pos)
	}
	return path, true
}

// view builds the table passed to every script function.
func (a *AI) view(L *lua.LState, p combat.Prompt) *lua.LTable {
	v := L.NewTable()
	v.RawSetString("actor", lua.LNumber(p.Actor+1))
	v.RawSetString("cancelable", lua.LBool(p.Cancelable))
	if p.Action != nil {
		v.RawSetString("action", actionTable(L, p.Action))
	}

	me := p.Roster.Character(p.Actor)
	hand := L.NewTable()
	for _, id := range a.controllers[p.Actor].Hand {
		card, ok := a.cards.Card(id)
		if !ok {
			continue
		}
		hand.Append(cardTable(L, card, &me))
	}
	v.RawSetString("hand", hand)

	chars := L.CreateTable(p.Roster.Len(), 0)
	for i := range p.Roster.Len() {
		chars.Append(characterTable(L, i, p.Roster.Character(i)))
	}
	v.RawSetString("characters", chars)
	return v
}

func actionTable(L *lua.LState, action combat.Action) *lua.LTable {
	t := L.NewTable()
	switch action := action.(type) {
	case combat.SelfAction:
		t.RawSetString("kind", lua.LString("self"))
		t.RawSetString("attack", lua.LBool(action.Attack))
	case combat.TargetedAction:
		t.RawSetString("kind", lua.LString("targeted"))
		t.RawSetString("attack", lua.LTrue)
		t.RawSetString("melee", lua.LBool(action.Reach.IsMelee()))
		t.RawSetString("range", lua.LNumber(action.Reach.Range()))
	case combat.MoveAction:
		t.RawSetString("kind", lua.LString("move"))
		t.RawSetString("spaces", lua.LNumber(action.Spaces))
		t.RawSetString("jump", lua.LBool(action.Jump))
	default:
		panic("scripting: unexpected Action type")
	}
	return t
}

// cardTable summarises card for holder: the longest reach and move over all
// its actions, whether any action attacks, and whether holder can pay for it.
func cardTable(L *lua.LState, card *combat.Card, holder *combat.Character) *lua.LTable {
	var attack, melee bool
	var reach int
	var move uint
	for _, ab := range card.Abilities {
		for _, action := range ab.Actions {
			switch action := action.(type) {
			case combat.SelfAction:
				attack = attack || action.Attack
			case combat.TargetedAction:
				attack = true
				if action.Reach.IsMelee() {
					melee = true
				}
				reach = max(reach, action.Reach.Range())
			case combat.MoveAction:
				move = max(move, action.Spaces)
			}
		}
	}
	affordable := holder.StaminaCurrent >= card.StaminaCost
	if holder.HealthForStamina() {
		affordable = holder.HealthCurrent > card.StaminaCost
	}

	t := L.NewTable()
	t.RawSetString("id", lua.LString(card.ID))
	t.RawSetString("name", lua.LString(card.Name))
	t.RawSetString("cost", lua.LNumber(card.StaminaCost))
	t.RawSetString("affordable", lua.LBool(affordable))
	t.RawSetString("attack", lua.LBool(attack))
	t.RawSetString("melee", lua.LBool(melee))
	t.RawSetString("range", lua.LNumber(reach))
	t.RawSetString("move", lua.LNumber(move))
	return t
}

func characterTable(L *lua.LState, i int, c combat.Character) *lua.LTable {
	conds := L.NewTable()
	for _, k := range ledger.SortedKeys(c.Conditions) {
		conds.RawSetString(k.String(), lua.LNumber(c.Conditions.Get(k)))
	}

	t := L.NewTable()
	t.RawSetString("index", lua.LNumber(i+1))
	t.RawSetString("id", lua.LString(c.ID))
	t.RawSetString("name", lua.LString(c.Name))
	t.RawSetString("team", lua.LString(c.Team.String()))
	t.RawSetString("pos", posTable(L, c.Pos))
	t.RawSetString("health", lua.LNumber(c.HealthCurrent))
	t.RawSetString("health_max", lua.LNumber(c.HealthMax))
	t.RawSetString("stamina", lua.LNumber(c.StaminaCurrent))
	t.RawSetString("stamina_max", lua.LNumber(c.StaminaMax))
	t.RawSetString("defeated", lua.LBool(c.Defeated()))
	t.RawSetString("conditions", conds)
	return t
}

var _ combat.InputSource = (*AI)(nil)
