package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codescope-dev/codescope/internal/extract"
)

// Test Plan for the symbol search index:
// - Indexed symbols are findable by name token
// - Kind and language filters narrow hits exactly
// - Re-indexing a file replaces its documents
// - Removing a file drops its documents
// - Limit caps results

func indexedFixture(t *testing.T) *Index {
	t.Helper()

	ix, err := NewIndex()
	require.NoError(t, err)
	t.Cleanup(func() { ix.Close() })

	sources := map[string]string{
		"calc.c": `// Fast integer add
int add_numbers(int a, int b) {
    return a + b;
}

#define PRECISION 2
`,
		"util.py": `def add_numbers(a, b):
    return a + b

def format_output(value):
    return str(value)
`,
	}

	e := extract.New(extract.Options{})
	for path, src := range sources {
		fc, err := e.Extract(context.Background(),
			extract.SourceUnit{Path: path, Text: []byte(src)})
		require.NoError(t, err)
		require.NoError(t, ix.IndexFileContext(context.Background(), fc))
	}

	return ix
}

func TestSearch_ByName(t *testing.T) {
	t.Parallel()

	ix := indexedFixture(t)

	results, err := ix.Search(context.Background(), "add_numbers", Options{})
	require.NoError(t, err)
	require.Len(t, results, 2, "the name exists in both files")

	paths := []string{results[0].FilePath, results[1].FilePath}
	assert.ElementsMatch(t, []string{"calc.c", "util.py"}, paths)
}

func TestSearch_LanguageFilter(t *testing.T) {
	t.Parallel()

	ix := indexedFixture(t)

	results, err := ix.Search(context.Background(), "add_numbers",
		Options{Language: "python"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "util.py", results[0].FilePath)
}

func TestSearch_KindFilter(t *testing.T) {
	t.Parallel()

	ix := indexedFixture(t)

	results, err := ix.Search(context.Background(), "PRECISION",
		Options{Kind: "macro-constant"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "macro-constant", results[0].Kind)

	none, err := ix.Search(context.Background(), "PRECISION",
		Options{Kind: "function"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSearch_DocText(t *testing.T) {
	t.Parallel()

	ix := indexedFixture(t)

	// Doc comments are searchable alongside names and signatures.
	results, err := ix.Search(context.Background(), "integer", Options{})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "add_numbers", results[0].Name)
}

func TestSearch_Limit(t *testing.T) {
	t.Parallel()

	ix := indexedFixture(t)

	results, err := ix.Search(context.Background(), "add_numbers", Options{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestIndex_ReindexReplaces(t *testing.T) {
	t.Parallel()

	ix, err := NewIndex()
	require.NoError(t, err)
	defer ix.Close()

	e := extract.New(extract.Options{})

	fc, err := e.Extract(context.Background(), extract.SourceUnit{
		Path: "a.c", Text: []byte("int old_name(void) { return 1; }\n"),
	})
	require.NoError(t, err)
	require.NoError(t, ix.IndexFileContext(context.Background(), fc))

	fc2, err := e.Extract(context.Background(), extract.SourceUnit{
		Path: "a.c", Text: []byte("int new_name(void) { return 1; }\n"),
	})
	require.NoError(t, err)
	require.NoError(t, ix.IndexFileContext(context.Background(), fc2))

	stale, err := ix.Search(context.Background(), "old_name", Options{})
	require.NoError(t, err)
	assert.Empty(t, stale, "stale documents must be replaced")

	fresh, err := ix.Search(context.Background(), "new_name", Options{})
	require.NoError(t, err)
	assert.Len(t, fresh, 1)
}

func TestIndex_RemoveFile(t *testing.T) {
	t.Parallel()

	ix := indexedFixture(t)

	require.NoError(t, ix.RemoveFile(context.Background(), "calc.c"))

	results, err := ix.Search(context.Background(), "add_numbers", Options{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "util.py", results[0].FilePath)

	// Removing an unknown file is a no-op.
	assert.NoError(t, ix.RemoveFile(context.Background(), "ghost.c"))
}
