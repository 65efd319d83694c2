package condition_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/hexcombat/internal/game/condition"
)

func TestRegistry_Get_Found(t *testing.T) {
	reg := condition.NewRegistry()
	def := &condition.Def{ID: condition.Stunned, Name: "Stunned"}
	reg.Register(def)
	got, ok := reg.Get(condition.Stunned)
	require.True(t, ok)
	assert.Equal(t, def, got)
}

func TestRegistry_Get_NotFound(t *testing.T) {
	reg := condition.NewRegistry()
	_, ok := reg.Get(condition.Poison)
	assert.False(t, ok)
}

func TestRegistry_All_ReturnsCopy(t *testing.T) {
	reg := condition.NewRegistry()
	reg.Register(&condition.Def{ID: condition.Weak, Name: "Weak"})
	reg.Register(&condition.Def{ID: condition.Poison, Name: "Poison"})
	all := reg.All()
	require.Len(t, all, 2)
	assert.Equal(t, condition.Poison, all[0].ID)
	all[0] = nil
	for _, d := range reg.All() {
		assert.NotNil(t, d)
	}
}

func TestRegistry_Visible(t *testing.T) {
	reg := condition.NewRegistry()
	assert.True(t, reg.Visible(condition.Poison))
	assert.False(t, reg.Visible(condition.Fury))
	reg.Register(&condition.Def{ID: condition.Invisible, Name: "Invisible", Hidden: true})
	assert.False(t, reg.Visible(condition.Invisible))
}

func TestDef_Validate(t *testing.T) {
	assert.NoError(t, (&condition.Def{ID: condition.Fury, Name: "Fury", Hidden: true}).Validate())
	assert.Error(t, (&condition.Def{ID: condition.Fury, Name: "Fury"}).Validate())
	assert.Error(t, (&condition.Def{ID: condition.Poison}).Validate())
}

func TestLoadDirectory_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	yaml := `
id: stunned
name: Stunned
description: "You can't perform any actions."
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stunned.yaml"), []byte(yaml), 0644))

	reg, err := condition.LoadDirectory(dir)
	require.NoError(t, err)
	got, ok := reg.Get(condition.Stunned)
	require.True(t, ok)
	assert.Equal(t, "Stunned", got.Name)
	assert.False(t, got.Hidden)
}

func TestLoadDirectory_EmptyDir(t *testing.T) {
	dir := t.TempDir()
	reg, err := condition.LoadDirectory(dir)
	require.NoError(t, err)
	assert.Empty(t, reg.All())
	assert.Len(t, reg.Missing(), len(condition.All()))
}

func TestLoadDirectory_UnknownField(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "weak.yaml"), []byte("id: weak\nname: Weak\nmax_stacks: 3\n"), 0644))
	_, err := condition.LoadDirectory(dir)
	assert.Error(t, err)
}

func TestLoadDirectory_UnknownKind(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prone.yaml"), []byte("id: prone\nname: Prone\n"), 0644))
	_, err := condition.LoadDirectory(dir)
	assert.ErrorContains(t, err, "prone")
}

func TestLoadDirectory_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(":\t:bad"), 0644))
	_, err := condition.LoadDirectory(dir)
	assert.Error(t, err)
}

func TestLoadDirectory_NonexistentDir(t *testing.T) {
	_, err := condition.LoadDirectory("/nonexistent/path/that/does/not/exist")
	assert.Error(t, err)
}

func TestLoadDirectory_RealConditions(t *testing.T) {
	reg, err := condition.LoadDirectory("../../../content/conditions")
	require.NoError(t, err)
	assert.Empty(t, reg.Missing())
	fury, ok := reg.Get(condition.Fury)
	require.True(t, ok)
	assert.True(t, fury.Hidden)
}

func TestPropertyKind_ParseString(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		k := rapid.SampledFrom(condition.All()).Draw(t, "kind")
		got, err := condition.Parse(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	})
}
