// Package testutil provides helpers shared by content-backed tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/hexcombat/internal/game/content"
)

// RepoRoot walks up from the test's working directory to find the module root.
//
// Postcondition: Returns a directory containing go.mod, or fails the test.
func RepoRoot(t testing.TB) string {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	root := wd
	for {
		if _, err := os.Stat(filepath.Join(root, "go.mod")); err == nil {
			return root
		}
		parent := filepath.Dir(root)
		if parent == root {
			t.Fatalf("could not find repo root from %s", wd)
		}
		root = parent
	}
}

// ContentDir returns the path of a directory under the repository's content/ tree.
func ContentDir(t testing.TB, elem ...string) string {
	t.Helper()
	return filepath.Join(append([]string{RepoRoot(t), "content"}, elem...)...)
}

// Catalogue loads the repository's cards and items, failing the test on error.
func Catalogue(t testing.TB) *content.Catalogue {
	t.Helper()
	cat, err := content.Load(ContentDir(t, "cards"), ContentDir(t, "items"))
	require.NoError(t, err)
	return cat
}
