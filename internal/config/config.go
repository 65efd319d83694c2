// Package config provides Viper-based configuration loading for the skirmish driver.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is a zap sink such as "stderr", "stdout" or a file path.
	Output string `mapstructure:"output"`
}

// ContentConfig locates the static YAML content.
type ContentConfig struct {
	Cards      string `mapstructure:"cards"`
	Items      string `mapstructure:"items"`
	Conditions string `mapstructure:"conditions"`
	Encounters string `mapstructure:"encounters"`
}

// ScriptingConfig holds the Lua AI settings.
type ScriptingConfig struct {
	// AIDir holds one *.lua file per AI script.
	AIDir string `mapstructure:"ai_dir"`
	// DefaultScript runs combatants whose encounter entry names no script.
	DefaultScript string `mapstructure:"default_script"`
	// InstructionLimit caps the Lua opcodes of each script call.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// EngineConfig bounds a skirmish run.
type EngineConfig struct {
	// MaxSteps stops a run that has not finished after this many steps.
	MaxSteps int `mapstructure:"max_steps"`
	// IdleRounds declares a draw after this many full rounds without a card played.
	IdleRounds int `mapstructure:"idle_rounds"`
	// Seed seeds the AI dice; 0 draws from crypto/rand.
	Seed uint64 `mapstructure:"seed"`
}

// RenderConfig sizes the hex-grid view.
type RenderConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	FlatWidth  int  `mapstructure:"flat_width"`
	HalfHeight int  `mapstructure:"half_height"`
	Color      bool `mapstructure:"color"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Content   ContentConfig   `mapstructure:"content"`
	Scripting ScriptingConfig `mapstructure:"scripting"`
	Engine    EngineConfig    `mapstructure:"engine"`
	Render    RenderConfig    `mapstructure:"render"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string
	for _, err := range []error{
		validateLogging(c.Logging),
		validateContent(c.Content),
		validateScripting(c.Scripting),
		validateEngine(c.Engine),
		validateRender(c.Render),
	} {
		if err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	var errs []string
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		errs = append(errs, fmt.Sprintf("logging.level must be one of [debug, info, warn, error], got %q", l.Level))
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		errs = append(errs, fmt.Sprintf("logging.format must be one of [json, console], got %q", l.Format))
	}
	if l.Output == "" {
		errs = append(errs, "logging.output must not be empty")
	}
	return joined(errs)
}

func validateContent(c ContentConfig) error {
	var errs []string
	for key, dir := range map[string]string{
		"content.cards":      c.Cards,
		"content.items":      c.Items,
		"content.conditions": c.Conditions,
	} {
		if dir == "" {
			errs = append(errs, key+" must not be empty")
		}
	}
	return joined(errs)
}

func validateScripting(s ScriptingConfig) error {
	var errs []string
	if s.AIDir == "" {
		errs = append(errs, "scripting.ai_dir must not be empty")
	}
	if s.DefaultScript != "" && !strings.HasSuffix(s.DefaultScript, ".lua") {
		errs = append(errs, fmt.Sprintf("scripting.default_script must name a .lua file, got %q", s.DefaultScript))
	}
	if s.InstructionLimit < 1 {
		errs = append(errs, fmt.Sprintf("scripting.instruction_limit must be >= 1, got %d", s.InstructionLimit))
	}
	return joined(errs)
}

func validateEngine(e EngineConfig) error {
	var errs []string
	if e.MaxSteps < 1 {
		errs = append(errs, fmt.Sprintf("engine.max_steps must be >= 1, got %d", e.MaxSteps))
	}
	if e.IdleRounds < 1 {
		errs = append(errs, fmt.Sprintf("engine.idle_rounds must be >= 1, got %d", e.IdleRounds))
	}
	return joined(errs)
}

func validateRender(r RenderConfig) error {
	if !r.Enabled {
		return nil
	}
	var errs []string
	if r.FlatWidth < 1 {
		errs = append(errs, fmt.Sprintf("render.flat_width must be >= 1, got %d", r.FlatWidth))
	}
	if r.HalfHeight < 1 {
		errs = append(errs, fmt.Sprintf("render.half_height must be >= 1, got %d", r.HalfHeight))
	}
	return joined(errs)
}

func joined(errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	return errors.New(strings.Join(errs, "; "))
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and the
// environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with HEX_ prefix
	v.SetEnvPrefix("HEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance holding only the default settings.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("content.cards", "content/cards")
	v.SetDefault("content.items", "content/items")
	v.SetDefault("content.conditions", "content/conditions")
	v.SetDefault("content.encounters", "content/encounters")

	v.SetDefault("scripting.ai_dir", "content/scripts/ai")
	v.SetDefault("scripting.default_script", "brute.lua")
	v.SetDefault("scripting.instruction_limit", 100_000)

	v.SetDefault("engine.max_steps", 10_000)
	v.SetDefault("engine.idle_rounds", 2)
	v.SetDefault("engine.seed", 0)

	v.SetDefault("render.enabled", true)
	v.SetDefault("render.flat_width", 7)
	v.SetDefault("render.half_height", 3)
	v.SetDefault("render.color", false)
}
