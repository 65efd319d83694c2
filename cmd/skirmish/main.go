// Package main provides the skirmish binary: it loads an encounter file and
// plays it out with every combatant driven by its Lua AI script, drawing the
// hex board after each turn.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/hexcombat/internal/config"
	"github.com/cory-johannsen/hexcombat/internal/observability"
	"github.com/cory-johannsen/hexcombat/internal/skirmish"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file; empty = defaults and HEX_* environment")
	encounter := flag.String("encounter", "ford_ambush.yaml", "encounter file, relative to content.encounters unless absolute")
	seed := flag.Uint64("seed", 0, "AI dice seed; overrides engine.seed when non-zero")
	quiet := flag.Bool("quiet", false, "skip drawing the board")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *seed != 0 {
		cfg.Engine.Seed = *seed
	}
	if *quiet {
		cfg.Render.Enabled = false
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	path := *encounter
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.Content.Encounters, path)
	}

	runner, closeScripts, err := skirmish.New(cfg, path, logger, os.Stdout)
	if err != nil {
		logger.Fatal("setting up skirmish", zap.Error(err))
	}
	defer closeScripts()
	logger.Info("skirmish ready", zap.String("encounter", path), zap.Duration("elapsed", time.Since(start)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := runner.Run(ctx)
	if err != nil {
		logger.Error("skirmish stopped", zap.Error(err), zap.Int("steps", res.Steps))
		stop()
		closeScripts()
		_ = logger.Sync()
		os.Exit(1)
	}
	fmt.Println(skirmish.Summary(res))
	logger.Info("skirmish finished",
		zap.Stringer("reason", res.Reason),
		zap.Int("turns", res.Turns),
		zap.Duration("elapsed", time.Since(start)),
	)
}
