package skirmish

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/cory-johannsen/hexcombat/internal/config"
	"github.com/cory-johannsen/hexcombat/internal/game/combat"
	"github.com/cory-johannsen/hexcombat/internal/game/condition"
	"github.com/cory-johannsen/hexcombat/internal/game/content"
	"github.com/cory-johannsen/hexcombat/internal/game/dice"
	"github.com/cory-johannsen/hexcombat/internal/render"
	"github.com/cory-johannsen/hexcombat/internal/scripting"
)

// New loads the content, conditions, AI scripts and the encounter at
// encounterPath, and returns a Runner with every combatant driven by its
// Lua script. The returned close func releases the script VMs.
//
// Precondition: cfg is valid; logger is non-nil.
// Postcondition: on error nothing needs closing.
func New(cfg config.Config, encounterPath string, logger *zap.Logger, out io.Writer) (*Runner, func(), error) {
	cat, err := content.Load(cfg.Content.Cards, cfg.Content.Items)
	if err != nil {
		return nil, nil, fmt.Errorf("loading content: %w", err)
	}
	conds, err := condition.LoadDirectory(cfg.Content.Conditions)
	if err != nil {
		return nil, nil, fmt.Errorf("loading conditions: %w", err)
	}
	if missing := conds.Missing(); len(missing) > 0 {
		logger.Warn("conditions without a definition", zap.Stringers("kinds", missing))
	}
	enc, err := content.LoadEncounter(encounterPath, cat)
	if err != nil {
		return nil, nil, fmt.Errorf("loading encounter: %w", err)
	}

	src := dice.NewCryptoSource()
	if cfg.Engine.Seed != 0 {
		src = dice.NewSeededSource(cfg.Engine.Seed)
	}
	mgr := scripting.NewManager(dice.NewRoller(src, logger.Named("dice")), logger.Named("lua"), cfg.Scripting.InstructionLimit)
	if _, err := mgr.LoadDir(cfg.Scripting.AIDir); err != nil {
		mgr.Close()
		return nil, nil, fmt.Errorf("loading AI scripts: %w", err)
	}

	ai := scripting.NewAI(mgr, cat, cfg.Scripting.DefaultScript, logger.Named("ai"))
	for i, c := range enc.Combatants {
		script := c.Script
		if script == "" {
			script = cfg.Scripting.DefaultScript
		}
		if !mgr.Has(script) {
			mgr.Close()
			return nil, nil, fmt.Errorf("combatant %q: no AI script %q in %s", c.Character.Name, script, cfg.Scripting.AIDir)
		}
		ai.Control(i, scripting.Controller{Script: script, Hand: c.Hand})
	}

	state := combat.NewState(enc.Roster(), cat,
		combat.WithLogger(logger.Named("engine")),
		combat.WithTurnHolder(enc.TurnHolder),
	)
	logger.Info("encounter loaded",
		zap.String("name", enc.Name),
		zap.Int("combatants", state.Len()),
		zap.Strings("scripts", mgr.Scripts()),
	)

	r := &Runner{
		State:      state,
		Input:      ai,
		MaxSteps:   cfg.Engine.MaxSteps,
		IdleRounds: cfg.Engine.IdleRounds,
		Conditions: conds,
		Logger:     logger,
		Layout: render.Layout{
			FlatWidth:  cfg.Render.FlatWidth,
			HalfHeight: cfg.Render.HalfHeight,
			Color:      cfg.Render.Color,
		},
	}
	if cfg.Render.Enabled {
		r.Out = out
	}
	return r, mgr.Close, nil
}
