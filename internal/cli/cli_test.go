package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codescope-dev/codescope/internal/assemble"
)

// Test Plan for the CLI:
// - extract prints the structured payload of a file as JSON
// - context prints a selection for a changed line range
// - index populates the symbol database, symbols reads it back
// - graph deps/dependents/cycles answer over a fresh extraction
// - search finds symbols by name over a fresh extraction
//
// Command tests share the package-level cobra state, so they run
// sequentially and reset flags between invocations.

const cliMainSource = `#include <stdio.h>
#include "util.h"

// Entry point
int main(void) {
    return helper();
}
`

const cliUtilSource = `#include "util.h"

int helper(void) {
    return 42;
}
`

func newTestProject(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.c"), []byte(cliMainSource), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "util.h"), []byte("int helper(void);\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "util.c"), []byte(cliUtilSource), 0o644))
	return dir
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Reset state shared between invocations.
	rootFlag = ""
	quietFlag = false
	extractLanguage = ""
	contextStartLine = 0
	contextEndLine = 0
	watchFlag = false
	searchLimit = 0
	searchKind = ""
	searchLanguage = ""
	symbolsFile = ""

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestFormatNumber(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0", formatNumber(0))
	assert.Equal(t, "999", formatNumber(999))
	assert.Equal(t, "1,000", formatNumber(1000))
	assert.Equal(t, "1,234,567", formatNumber(1234567))
}

func TestExtractCommand(t *testing.T) {
	dir := newTestProject(t)

	out, err := runCommand(t, "--root", dir, "extract", filepath.Join(dir, "main.c"))
	require.NoError(t, err)

	var payload assemble.Payload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))

	assert.Equal(t, "c", payload.Language)
	require.Len(t, payload.Imports, 2)
	require.Len(t, payload.Symbols, 1)
	assert.Equal(t, "main", payload.Symbols[0].Name)
}

func TestExtractCommand_MissingFile(t *testing.T) {
	dir := newTestProject(t)

	_, err := runCommand(t, "--root", dir, "extract", filepath.Join(dir, "ghost.c"))
	require.Error(t, err)
}

func TestContextCommand(t *testing.T) {
	dir := newTestProject(t)

	out, err := runCommand(t, "--root", dir, "context",
		filepath.Join(dir, "main.c"), "--start-line", "6")
	require.NoError(t, err)

	var selection assemble.Selection
	require.NoError(t, json.Unmarshal([]byte(out), &selection))

	assert.Len(t, selection.Imports, 2)
	require.Len(t, selection.Blocks, 1)
	assert.Equal(t, "module/main", selection.Blocks[0].ScopePath)
}

func TestIndexAndSymbolsCommands(t *testing.T) {
	dir := newTestProject(t)

	_, err := runCommand(t, "--root", dir, "--quiet", "index")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, ".codescope", "symbols.db"))

	out, err := runCommand(t, "--root", dir, "symbols", "helper")
	require.NoError(t, err)
	assert.Contains(t, out, "util.c")
	assert.Contains(t, out, "function")

	none, err := runCommand(t, "--root", dir, "symbols", "nonexistent")
	require.NoError(t, err)
	assert.Contains(t, none, "No symbols found.")
}

func TestGraphCommands(t *testing.T) {
	dir := newTestProject(t)

	deps, err := runCommand(t, "--root", dir, "graph", "deps", "main.c")
	require.NoError(t, err)
	assert.Contains(t, deps, "util.h")
	assert.Contains(t, deps, "stdio.h")

	dependents, err := runCommand(t, "--root", dir, "graph", "dependents", "util.h")
	require.NoError(t, err)
	assert.Contains(t, dependents, "main.c")
	assert.Contains(t, dependents, "util.c")

	cycles, err := runCommand(t, "--root", dir, "graph", "cycles")
	require.NoError(t, err)
	assert.Contains(t, cycles, "No import cycles.")

	_, err = runCommand(t, "--root", dir, "graph", "deps", "ghost.c")
	require.Error(t, err)
}

func TestSearchCommand(t *testing.T) {
	dir := newTestProject(t)

	out, err := runCommand(t, "--root", dir, "search", "helper")
	require.NoError(t, err)
	assert.Contains(t, out, "util.c")
	assert.Contains(t, out, "1 result(s)")

	none, err := runCommand(t, "--root", dir, "search", "zebra")
	require.NoError(t, err)
	assert.Contains(t, none, "No results.")
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Codescope")
}
