package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilAndDisabledMatcherIgnoreNothing(t *testing.T) {
	var nilMatcher *Matcher
	assert.False(t, nilMatcher.ShouldIgnore("anything", false))

	m, err := New(t.TempDir(), WithDisabled(true))
	require.NoError(t, err)
	assert.False(t, m.ShouldIgnore(".git", true))
	assert.False(t, m.ShouldIgnore("build/out.o", false))
}

func TestRootIsNeverIgnored(t *testing.T) {
	m, err := New(t.TempDir())
	require.NoError(t, err)

	assert.False(t, m.ShouldIgnore("", true))
	assert.False(t, m.ShouldIgnore(".", true))
}

func TestGitDirAlwaysExcluded(t *testing.T) {
	m, err := New(t.TempDir())
	require.NoError(t, err)

	assert.True(t, m.ShouldIgnore(".git", true))
	assert.True(t, m.ShouldIgnore(filepath.Join(".git", "config"), false))
	assert.False(t, m.ShouldIgnore(".gitignore", false))
}

func TestGitDirCanBeKept(t *testing.T) {
	m, err := New(t.TempDir(), WithGitDirSkipped(false))
	require.NoError(t, err)

	assert.False(t, m.ShouldIgnore(".git", true))
}

func TestRepositoryRules(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("*.log\n!keep.log\n"), 0o644))

	m, err := New(dir)
	require.NoError(t, err)

	assert.True(t, m.ShouldIgnore("debug.log", false))
	assert.False(t, m.ShouldIgnore("keep.log", false))
	assert.False(t, m.ShouldIgnore("notes.txt", false))
}

func TestRulesApplyOutsideWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("*.log\n"), 0o644))

	// Matching must not depend on the process working directory or on the
	// matched entries existing on disk.
	oldWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(oldWD) })

	m, err := New(dir)
	require.NoError(t, err)

	assert.True(t, m.ShouldIgnore("app.log", false))
	assert.True(t, m.ShouldIgnore(filepath.Join("sub", "nested.log"), false))
	assert.False(t, m.ShouldIgnore("app.txt", false))
}

func TestRepoRulesCanBeDisabled(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("*.log\n"), 0o644))

	m, err := New(dir, WithRepoRules(false), WithCustomRules([]string{"*.tmp"}))
	require.NoError(t, err)

	// Custom patterns still apply, the repository's .gitignore does not.
	assert.False(t, m.ShouldIgnore("app.log", false))
	assert.True(t, m.ShouldIgnore("scratch.tmp", false))
}

func TestCustomRules(t *testing.T) {
	m, err := New(t.TempDir(), WithCustomRules([]string{"build/", "*.tmp"}))
	require.NoError(t, err)

	assert.True(t, m.ShouldIgnore("build", true))
	assert.True(t, m.ShouldIgnore("scratch.tmp", false))
	assert.False(t, m.ShouldIgnore("main.go", false))
}
