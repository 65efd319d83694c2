package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stderr",
		},
		Content: ContentConfig{
			Cards:      "content/cards",
			Items:      "content/items",
			Conditions: "content/conditions",
		},
		Scripting: ScriptingConfig{
			AIDir:            "content/scripts/ai",
			DefaultScript:    "brute.lua",
			InstructionLimit: 1000,
		},
		Engine: EngineConfig{
			MaxSteps:   100,
			IdleRounds: 2,
		},
		Render: RenderConfig{
			Enabled:    true,
			FlatWidth:  7,
			HalfHeight: 3,
		},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestDefaultsAreValid(t *testing.T) {
	cfg, err := LoadFromViper(Defaults())
	require.NoError(t, err)
	assert.Equal(t, "brute.lua", cfg.Scripting.DefaultScript)
	assert.Equal(t, 100_000, cfg.Scripting.InstructionLimit)
	assert.Equal(t, 10_000, cfg.Engine.MaxSteps)
	assert.Equal(t, "content/encounters", cfg.Content.Encounters)
	assert.True(t, cfg.Render.Enabled)
	assert.Equal(t, uint64(0), cfg.Engine.Seed)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
logging:
  level: debug
  format: console
content:
  cards: /srv/cards
scripting:
  default_script: coward.lua
  instruction_limit: 500
engine:
  max_steps: 40
  seed: 7
render:
  color: true
`), 0o644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "stderr", cfg.Logging.Output, "unset keys keep their defaults")
	assert.Equal(t, "/srv/cards", cfg.Content.Cards)
	assert.Equal(t, "content/items", cfg.Content.Items)
	assert.Equal(t, "coward.lua", cfg.Scripting.DefaultScript)
	assert.Equal(t, 500, cfg.Scripting.InstructionLimit)
	assert.Equal(t, 40, cfg.Engine.MaxSteps)
	assert.Equal(t, uint64(7), cfg.Engine.Seed)
	assert.True(t, cfg.Render.Color)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HEX_ENGINE_MAX_STEPS", "12")
	t.Setenv("HEX_LOGGING_LEVEL", "warn")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Engine.MaxSteps)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoadInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logging:
  level: loud
engine:
  max_steps: 0
`), 0o644))
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "engine.max_steps")
}

func TestValidateLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), "level %q should be valid", level)
	}
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingFormat(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		cfg := validConfig()
		cfg.Logging.Format = format
		assert.NoError(t, cfg.Validate(), "format %q should be valid", format)
	}
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidate_CollectsEveryViolation(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Output = ""
	cfg.Content.Items = ""
	cfg.Scripting.AIDir = ""
	cfg.Scripting.DefaultScript = "brute.py"
	cfg.Scripting.InstructionLimit = 0
	cfg.Engine.IdleRounds = 0
	cfg.Render.FlatWidth = 0
	cfg.Render.HalfHeight = 0

	err := cfg.Validate()
	require.Error(t, err)
	for _, key := range []string{
		"logging.output", "content.items", "scripting.ai_dir", "scripting.default_script",
		"scripting.instruction_limit", "engine.idle_rounds", "render.flat_width", "render.half_height",
	} {
		assert.Contains(t, err.Error(), key)
	}
}

func TestValidateRender_DisabledSkipsSizes(t *testing.T) {
	cfg := validConfig()
	cfg.Render = RenderConfig{Enabled: false}
	assert.NoError(t, cfg.Validate())
}

func TestValidateScripting_NoDefaultScriptIsValid(t *testing.T) {
	cfg := validConfig()
	cfg.Scripting.DefaultScript = ""
	assert.NoError(t, cfg.Validate())
}

// Property-based tests

func TestPropertyPositiveLimitsAccepted(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := validConfig()
		cfg.Engine.MaxSteps = rapid.IntRange(1, 1_000_000).Draw(t, "max_steps")
		cfg.Engine.IdleRounds = rapid.IntRange(1, 100).Draw(t, "idle_rounds")
		cfg.Scripting.InstructionLimit = rapid.IntRange(1, 10_000_000).Draw(t, "instruction_limit")
		if err := cfg.Validate(); err != nil {
			t.Fatalf("valid limits rejected: %v", err)
		}
	})
}

func TestPropertyNonPositiveMaxStepsRejected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := validConfig()
		cfg.Engine.MaxSteps = rapid.IntRange(-1000, 0).Draw(t, "max_steps")
		if err := cfg.Validate(); err == nil {
			t.Fatalf("max_steps %d accepted", cfg.Engine.MaxSteps)
		}
	})
}
