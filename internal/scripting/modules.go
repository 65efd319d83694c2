package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/hexcombat/internal/game/hex"
)

// registerModules registers the engine.log, engine.dice and engine.hex
// tables into L. Log entries carry the script name.
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) registerModules(L *lua.LState, script string) {
	engine := L.NewTable()
	L.SetField(engine, "log", m.logModule(L, m.logger.With(zap.String("script", script))))
	L.SetField(engine, "dice", m.diceModule(L))
	L.SetField(engine, "hex", hexModule(L))
	L.SetGlobal("engine", engine)
}

func (m *Manager) logModule(L *lua.LState, logger *zap.Logger) *lua.LTable {
	level := func(log func(string, ...zap.Field)) lua.LGFunction {
		return func(L *lua.LState) int {
			log(L.CheckString(1))
			return 0
		}
	}
	return L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"debug": level(logger.Debug),
		"info":  level(logger.Info),
		"warn":  level(logger.Warn),
		"error": level(logger.Error),
	})
}

// diceModule exposes:
//
//	roll(expr)     -> {expression, total, dice = sum of kept dice, modifier, rolls = {...}}
//	chance(pct)    -> bool
//	pick(n)        -> integer in [1, n]
func (m *Manager) diceModule(L *lua.LState) *lua.LTable {
	return L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"roll": func(L *lua.LState) int {
			res, err := m.roller.RollExpr(L.CheckString(1))
			if err != nil {
				L.RaiseError("%s", err.Error())
				return 0
			}
			rolls := L.NewTable()
			sum := 0
			for _, d := range res.Dice {
				rolls.Append(lua.LNumber(d))
				sum += d
			}
			t := L.NewTable()
			t.RawSetString("expression", lua.LString(res.Expression))
			t.RawSetString("total", lua.LNumber(res.Total()))
			t.RawSetString("dice", lua.LNumber(sum))
			t.RawSetString("modifier", lua.LNumber(res.Modifier))
			t.RawSetString("rolls", rolls)
			L.Push(t)
			return 1
		},
		"chance": func(L *lua.LState) int {
			L.Push(lua.LBool(m.roller.Chance(L.CheckInt(1))))
			return 1
		},
		"pick": func(L *lua.LState) int {
			n := L.CheckInt(1)
			if n < 1 {
				L.ArgError(1, "pick needs at least one option")
				return 0
			}
			L.Push(lua.LNumber(m.roller.Intn(n) + 1))
			return 1
		},
	})
}

// hexModule exposes grid helpers over {r = , q = } tables:
//
//	distance(a, b)  -> integer
//	adjacent(a, b)  -> bool
//	neighbors(p)    -> array of six positions
func hexModule(L *lua.LState) *lua.LTable {
	return L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"distance": func(L *lua.LState) int {
			L.Push(lua.LNumber(hex.Distance(checkPos(L, 1), checkPos(L, 2))))
			return 1
		},
		"adjacent": func(L *lua.LState) int {
			L.Push(lua.LBool(hex.Adjacent(checkPos(L, 1), checkPos(L, 2))))
			return 1
		},
		"neighbors": func(L *lua.LState) int {
			out := L.NewTable()
			for _, n := range checkPos(L, 1).Neighbors() {
				out.Append(posTable(L, n))
			}
			L.Push(out)
			return 1
		},
	})
}

// checkPos reads the {r, q} table at stack index n, raising an argument
// error when it is not one.
func checkPos(L *lua.LState, n int) hex.Pos {
	t := L.CheckTable(n)
	r, rok := t.RawGetString("r").(lua.LNumber)
	q, qok := t.RawGetString("q").(lua.LNumber)
	if !rok || !qok {
		L.ArgError(n, "position needs numeric r and q")
	}
	return hex.P(int(r), int(q))
}

// posTable converts p into a {r, q} table.
func posTable(L *lua.LState, p hex.Pos) *lua.LTable {
	t := L.CreateTable(0, 2)
	t.RawSetString("r", lua.LNumber(p.R))
	t.RawSetString("q", lua.LNumber(p.Q))
	return t
}

// tablePos reads an {r, q} table produced by a script.
func tablePos(v lua.LValue) (hex.Pos, bool) {
	t, ok := v.(*lua.LTable)
	if !ok {
		return hex.Pos{}, false
	}
	r, rok := t.RawGetString("r").(lua.LNumber)
	q, qok := t.RawGetString("q").(lua.LNumber)
	if !rok || !qok {
		return hex.Pos{}, false
	}
	return hex.P(int(r), int(q)), true
}
