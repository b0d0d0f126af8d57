package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codescope-dev/codescope/internal/extract"
)

// Test Plan for SQLite persistence:
// - Schema creation is idempotent
// - Save then read round-trips symbols and imports, ordered
// - Re-saving a path replaces its rows instead of duplicating
// - Deleting a file cascades to symbols and imports
// - Symbol lookup by name spans files

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "codescope.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, CreateSchema(db))
	return db
}

func extractSource(t *testing.T, path, source string) (*extract.FileContext, []byte) {
	t.Helper()
	text := []byte(source)
	fc, err := extract.New(extract.Options{}).Extract(context.Background(),
		extract.SourceUnit{Path: path, Text: text})
	require.NoError(t, err)
	return fc, text
}

const calcSource = `#include <stdio.h>

#define LIMIT 10

int add(int a, int b) {
    int check(int v) {
        return v < LIMIT;
    }
    return check(a) ? a + b : 0;
}
`

func TestCreateSchema_Idempotent(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	assert.NoError(t, CreateSchema(db))
}

func TestSaveAndRead_RoundTrip(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	fc, source := extractSource(t, "calc.c", calcSource)

	require.NoError(t, NewWriter(db).SaveFileContext(fc, source, "run-1"))

	reader := NewReader(db)

	symbols, err := reader.SymbolsForFile("calc.c")
	require.NoError(t, err)
	require.Len(t, symbols, 3)
	assert.Equal(t, "LIMIT", symbols[0].Name)
	assert.Equal(t, "macro-constant", symbols[0].Kind)
	assert.Equal(t, "add", symbols[1].Name)
	assert.Equal(t, "module", symbols[1].ScopePath)
	assert.Equal(t, "check", symbols[2].Name)
	assert.Equal(t, "nested-function", symbols[2].Kind)
	assert.Equal(t, "module/add", symbols[2].ScopePath)

	imports, err := reader.ImportsForFile("calc.c")
	require.NoError(t, err)
	require.Len(t, imports, 1)
	assert.Equal(t, "stdio.h", imports[0].Target)
	assert.Equal(t, 1, imports[0].StartLine)

	count, err := reader.FileCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSave_ReplacesExistingRows(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	writer := NewWriter(db)

	fc, source := extractSource(t, "calc.c", calcSource)
	require.NoError(t, writer.SaveFileContext(fc, source, "run-1"))

	// Same path, shrunken content.
	fc2, source2 := extractSource(t, "calc.c", "int lone(void) { return 1; }\n")
	require.NoError(t, writer.SaveFileContext(fc2, source2, "run-2"))

	symbols, err := NewReader(db).SymbolsForFile("calc.c")
	require.NoError(t, err)
	require.Len(t, symbols, 1)
	assert.Equal(t, "lone", symbols[0].Name)

	count, err := NewReader(db).FileCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count, "re-save must not duplicate the file row")
}

func TestDeleteFile_Cascades(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	writer := NewWriter(db)

	fc, source := extractSource(t, "calc.c", calcSource)
	require.NoError(t, writer.SaveFileContext(fc, source, "run-1"))
	require.NoError(t, writer.DeleteFile("calc.c"))

	symbols, err := NewReader(db).SymbolsForFile("calc.c")
	require.NoError(t, err)
	assert.Empty(t, symbols)

	imports, err := NewReader(db).ImportsForFile("calc.c")
	require.NoError(t, err)
	assert.Empty(t, imports)
}

func TestSymbolsByName_AcrossFiles(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	writer := NewWriter(db)

	a, aSrc := extractSource(t, "a.c", "int shared(void) { return 1; }\n")
	b, bSrc := extractSource(t, "b.c", "int shared(void) { return 2; }\n")
	require.NoError(t, writer.SaveFileContext(a, aSrc, "run-1"))
	require.NoError(t, writer.SaveFileContext(b, bSrc, "run-1"))

	rows, err := NewReader(db).SymbolsByName("shared")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "a.c", rows[0].FilePath)
	assert.Equal(t, "b.c", rows[1].FilePath)
}
