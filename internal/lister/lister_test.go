package lister

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bethropolis/dir-lens/internal/filter"
	"github.com/bethropolis/dir-lens/internal/ignore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func mkdir(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(path, 0o755))
	return path
}

func disabledMatcher(t *testing.T, dir string) *ignore.Matcher {
	t.Helper()
	m, err := ignore.New(dir, ignore.WithDisabled(true))
	require.NoError(t, err)
	return m
}

func names(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.RelPath)
	}
	return out
}

// ---------------------------------------------------------------------------
// Flat listing
// ---------------------------------------------------------------------------

func TestFlatListingDefaultFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "plain text\n")
	writeFile(t, dir, ".hidden", "secret\n")
	mkdir(t, dir, "sub")

	result, err := List(dir, filter.New(), disabledMatcher(t, dir))
	require.NoError(t, err)

	// Directories first, then case-insensitive by name.
	assert.Equal(t, []string{"sub", ".hidden", "notes.txt"}, names(result.Items))
	assert.Empty(t, result.Skipped)
}

func TestFlatListingResolvesMimeTypes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "plain text content\n")
	mkdir(t, dir, "sub")

	result, err := List(dir, filter.New(), disabledMatcher(t, dir))
	require.NoError(t, err)
	require.Len(t, result.Items, 2)

	byPath := map[string]Item{}
	for _, it := range result.Items {
		byPath[it.RelPath] = it
	}
	assert.Equal(t, "inode/directory", byPath["sub"].Mime)
	assert.Equal(t, "text/plain", byPath["notes.txt"].Mime)
	assert.True(t, byPath["sub"].Dir)
	assert.False(t, byPath["notes.txt"].Dir)
}

func TestFlatListingHiddenFiltered(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "text\n")
	writeFile(t, dir, ".hidden", "secret\n")

	f := filter.New()
	f.SetHiddenFilesShown(false)

	result, err := List(dir, f, disabledMatcher(t, dir))
	require.NoError(t, err)

	assert.Equal(t, []string{"notes.txt"}, names(result.Items))
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, ".hidden", result.Skipped[0].Path)
	assert.Equal(t, ReasonFilteredHidden, result.Skipped[0].Reason)
}

func TestFlatListingWhitelistedHiddenShown(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".gitignore", "*.log\n")
	writeFile(t, dir, ".env", "KEY=value\n")

	f := filter.New()
	f.SetHiddenFilesShown(false)
	f.SetHiddenFilesWhitelistEnabled(true)
	f.SetHiddenFilesWhitelist([]string{".gitignore"})

	result, err := List(dir, f, disabledMatcher(t, dir))
	require.NoError(t, err)

	assert.Equal(t, []string{".gitignore"}, names(result.Items))
}

func TestFlatListingPatternFiltered(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "report.txt", "text\n")
	writeFile(t, dir, "image.bin", "\x00\x01\x02")
	mkdir(t, dir, "docs")

	f := filter.New()
	f.SetPattern("*.txt")

	result, err := List(dir, f, disabledMatcher(t, dir))
	require.NoError(t, err)

	assert.Equal(t, []string{"report.txt"}, names(result.Items))

	reasons := map[string]SkippedReason{}
	for _, s := range result.Skipped {
		reasons[s.Path] = s.Reason
	}
	assert.Equal(t, ReasonFilteredPattern, reasons["image.bin"])
	assert.Equal(t, ReasonFilteredPattern, reasons["docs"])
}

func TestFlatListingMimeFiltered(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "some plain text\n")
	mkdir(t, dir, "sub")

	f := filter.New()
	f.SetExcludeMimeTypes([]string{"inode/directory"})

	result, err := List(dir, f, disabledMatcher(t, dir))
	require.NoError(t, err)

	assert.Equal(t, []string{"notes.txt"}, names(result.Items))
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, ReasonFilteredType, result.Skipped[0].Reason)
}

// ---------------------------------------------------------------------------
// Recursive listing
// ---------------------------------------------------------------------------

func TestRecursiveListing(t *testing.T) {
	dir := t.TempDir()
	sub := mkdir(t, dir, "sub")
	writeFile(t, dir, "top.txt", "text\n")
	writeFile(t, sub, "nested.txt", "text\n")

	result, err := List(dir, filter.New(), disabledMatcher(t, dir), WithRecursive(true))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"sub",
		filepath.Join("sub", "nested.txt"),
		"top.txt",
	}, names(result.Items))
}

func TestRecursiveDescendsIntoNonMatchingDirs(t *testing.T) {
	dir := t.TempDir()
	sub := mkdir(t, dir, "docs")
	writeFile(t, sub, "readme.txt", "text\n")

	f := filter.New()
	f.SetPattern("*.txt")

	result, err := List(dir, f, disabledMatcher(t, dir), WithRecursive(true))
	require.NoError(t, err)

	// The directory itself fails the pattern but its children still match.
	assert.Equal(t, []string{filepath.Join("docs", "readme.txt")}, names(result.Items))
}

func TestRecursivePrunesFilteredHiddenDirs(t *testing.T) {
	dir := t.TempDir()
	hidden := mkdir(t, dir, ".cache")
	writeFile(t, hidden, "entry.txt", "text\n")
	writeFile(t, dir, "top.txt", "text\n")

	f := filter.New()
	f.SetHiddenFilesShown(false)

	result, err := List(dir, f, disabledMatcher(t, dir), WithRecursive(true))
	require.NoError(t, err)

	// Nothing below .cache appears: the hidden rule takes the subtree.
	assert.Equal(t, []string{"top.txt"}, names(result.Items))
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, ".cache", result.Skipped[0].Path)
	assert.Equal(t, ReasonFilteredHidden, result.Skipped[0].Reason)
}

// ---------------------------------------------------------------------------
// Ignore rules and concurrency
// ---------------------------------------------------------------------------

func TestGitignoreRulesExcludeEntries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".gitignore", "*.log\n")
	writeFile(t, dir, "app.log", "log line\n")
	writeFile(t, dir, "notes.txt", "text\n")

	matcher, err := ignore.New(dir)
	require.NoError(t, err)

	result, err := List(dir, filter.New(), matcher)
	require.NoError(t, err)

	assert.Equal(t, []string{".gitignore", "notes.txt"}, names(result.Items))

	reasons := map[string]SkippedReason{}
	for _, s := range result.Skipped {
		reasons[s.Path] = s.Reason
	}
	assert.Equal(t, ReasonIgnoredRule, reasons["app.log"])
}

func TestConcurrentMatchesSequential(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.md", "d.log", ".e"} {
		writeFile(t, dir, name, "content of "+name+"\n")
	}

	f := filter.New()
	f.SetPattern("*.*")

	sequential, err := List(dir, f, disabledMatcher(t, dir))
	require.NoError(t, err)

	concurrent, err := List(dir, f, disabledMatcher(t, dir),
		WithConcurrency(true), WithMaxWorkers(4))
	require.NoError(t, err)

	assert.Equal(t, names(sequential.Items), names(concurrent.Items))
}

func TestCancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "text\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := List(dir, filter.New(), disabledMatcher(t, dir), WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}
