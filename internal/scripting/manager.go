package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/hexcombat/internal/game/dice"
)

// vm is one loaded script. An LState is single-threaded; mu serializes calls.
type vm struct {
	mu sync.Mutex
	L  *lua.LState
}

// Manager owns one sandboxed LState per script file and dispatches calls to
// the globals those scripts define.
//
// Manager is safe for concurrent Call after all Load calls complete. Calls to
// the same script are serialized; different scripts run concurrently.
type Manager struct {
	mu        sync.RWMutex
	vms       map[string]*vm
	roller    *dice.Roller
	logger    *zap.Logger
	instLimit int
}

// NewManager creates a Manager. Every Call gets a fresh budget of instLimit
// Lua opcodes; instLimit <= 0 uses DefaultInstructionLimit.
//
// Precondition: roller and logger must be non-nil.
// Postcondition: Returns a non-nil Manager with no scripts loaded.
func NewManager(roller *dice.Roller, logger *zap.Logger, instLimit int) *Manager {
	if roller == nil {
		panic("scripting.NewManager: roller must not be nil")
	}
	if logger == nil {
		panic("scripting.NewManager: logger must not be nil")
	}
	if instLimit <= 0 {
		instLimit = DefaultInstructionLimit
	}
	return &Manager{
		vms:       make(map[string]*vm),
		roller:    roller,
		logger:    logger,
		instLimit: instLimit,
	}
}

// Load creates a sandboxed VM named name, registers the engine.* modules and
// executes the file at path. A previously loaded script of the same name is
// closed and replaced.
//
// Precondition: name must be non-empty.
// Postcondition: The script is callable by name; returns error on read or Lua
// load failure, leaving any earlier script of that name in place.
func (m *Manager) Load(name, path string) error {
	if name == "" {
		return fmt.Errorf("scripting: loading %q: empty script name", path)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("scripting: reading %q: %w", path, err)
	}

	L, cancel := NewSandboxedState(m.instLimit)
	m.registerModules(L, name)
	err = L.DoString(string(src))
	cancel()
	if err != nil {
		L.Close()
		return fmt.Errorf("scripting: loading %q: %w", path, err)
	}

	m.mu.Lock()
	if old, ok := m.vms[name]; ok {
		old.mu.Lock()
		old.L.Close()
		old.mu.Unlock()
	}
	m.vms[name] = &vm{L: L}
	m.mu.Unlock()

	m.logger.Debug("script loaded", zap.String("script", name), zap.String("path", path))
	return nil
}

// LoadDir loads every *.lua file in dir as its own script, named by file
// name, in lexicographic order.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns the loaded names; stops at the first failure.
func (m *Manager) LoadDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scripting: reading script dir %q: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	for _, name := range names {
		if err := m.Load(name, filepath.Join(dir, name)); err != nil {
			return nil, err
		}
	}
	return names, nil
}

// Has reports whether a script named name is loaded.
func (m *Manager) Has(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.vms[name]
	return ok
}

// Scripts returns the loaded script names in lexicographic order.
func (m *Manager) Scripts() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.vms))
	for name := range m.vms {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Call calls the global function fn in the named script's VM with a fresh
// instruction budget. Returns (LNil, nil) if fn is not defined. Lua runtime
// errors, including an exhausted budget, are logged at Warn level and
// returned as (LNil, nil) so a misbehaving script never stops the caller.
//
// Precondition: args must be valid lua.LValue instances created from this
// script's LState or scalar values.
// Postcondition: Returns the first return value of fn, or LNil; returns an
// error only when no script named script is loaded.
func (m *Manager) Call(script, fn string, args ...lua.LValue) (lua.LValue, error) {
	return m.With(script, fn, func(*lua.LState) []lua.LValue { return args })
}

// With runs build against the named script's LState while holding its lock,
// then calls fn with the value build returns. Use it when arguments are
// tables that must be created in the script's own state.
//
// Precondition: build must not retain L.
// Postcondition: Same as Call.
func (m *Manager) With(script, fn string, build func(L *lua.LState) []lua.LValue) (lua.LValue, error) {
	m.mu.RLock()
	v, ok := m.vms[script]
	m.mu.RUnlock()
	if !ok {
		return lua.LNil, fmt.Errorf("scripting: no script named %q", script)
	}

	v.mu.Lock()
	f := v.L.GetGlobal(fn)
	if f.Type() != lua.LTFunction {
		v.mu.Unlock()
		return lua.LNil, nil
	}
	args := build(v.L)
	done := budget(v.L, m.instLimit)
	err := v.L.CallByParam(lua.P{Fn: f, NRet: 1, Protect: true}, args...)
	done()
	var ret lua.LValue = lua.LNil
	if err == nil {
		ret = v.L.Get(-1)
		v.L.Pop(1)
	}
	v.mu.Unlock()

	if err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("script", script),
			zap.String("fn", fn),
			zap.Error(err),
		)
	}
	return ret, nil
}

// Close releases every loaded VM.
//
// Postcondition: No scripts remain loaded.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for name, v := range m.vms {
		v.mu.Lock()
		v.L.Close()
		v.mu.Unlock()
		delete(m.vms, name)
	}
}
