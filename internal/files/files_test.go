package files

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for file discovery and loading:
// - Include patterns select matching files, root-level files included
// - Ignore patterns drop files and whole directories
// - Unsupported extensions are skipped even when a pattern matches
// - The .codescope directory is always ignored
// - Loading rejects binary content, accepts text

func writeFile(t *testing.T, root, rel string, content []byte) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, content, 0o644))
}

func TestDiscover_IncludeAndIgnore(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "main.c", []byte("int main(void) { return 0; }\n"))
	writeFile(t, root, "src/util.c", []byte("int util(void) { return 1; }\n"))
	writeFile(t, root, "src/util.h", []byte("int util(void);\n"))
	writeFile(t, root, "vendor/dep.c", []byte("int dep(void) { return 2; }\n"))
	writeFile(t, root, "README.md", []byte("# readme\n"))
	writeFile(t, root, ".codescope/config.yml", []byte("paths: {}\n"))

	d, err := NewDiscovery(root, []string{"**/*.c", "**/*.h"}, []string{"vendor/**"}, nil)
	require.NoError(t, err)

	found, err := d.Discover()
	require.NoError(t, err)

	rels := make([]string, len(found))
	for i, f := range found {
		rel, err := filepath.Rel(root, f)
		require.NoError(t, err)
		rels[i] = filepath.ToSlash(rel)
	}

	assert.ElementsMatch(t, []string{"main.c", "src/util.c", "src/util.h"}, rels)
}

func TestDiscover_DirectoryIgnoreWithoutSuffix(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "app.js", []byte("const x = 1;\n"))
	writeFile(t, root, "node_modules/lib/index.js", []byte("module.exports = {};\n"))

	// The "dir/**" form covers every file under the directory.
	d, err := NewDiscovery(root, []string{"**/*.js"}, []string{"node_modules/**"}, nil)
	require.NoError(t, err)

	found, err := d.Discover()
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Contains(t, found[0], "app.js")
}

func TestDiscover_SkipsUnsupportedLanguages(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "query.sql", []byte("select 1;\n"))
	writeFile(t, root, "tool.py", []byte("x = 1\n"))

	d, err := NewDiscovery(root, []string{"**/*"}, nil, nil)
	require.NoError(t, err)

	found, err := d.Discover()
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Contains(t, found[0], "tool.py")
}

func TestDiscover_LanguageRestriction(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "main.c", []byte("int main(void) { return 0; }\n"))
	writeFile(t, root, "tool.py", []byte("x = 1\n"))
	writeFile(t, root, "app.js", []byte("const x = 1;\n"))

	d, err := NewDiscovery(root, []string{"**/*"}, nil, []string{"c", "python"})
	require.NoError(t, err)

	found, err := d.Discover()
	require.NoError(t, err)

	rels := make([]string, len(found))
	for i, f := range found {
		rel, err := filepath.Rel(root, f)
		require.NoError(t, err)
		rels[i] = filepath.ToSlash(rel)
	}
	assert.ElementsMatch(t, []string{"main.c", "tool.py"}, rels)
}

func TestNewDiscovery_BadPattern(t *testing.T) {
	t.Parallel()

	_, err := NewDiscovery(t.TempDir(), []string{"[unclosed"}, nil, nil)
	assert.Error(t, err)
}

func TestLoad_TextFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "calc.c", []byte("int one(void) { return 1; }\n"))

	unit, err := Load(filepath.Join(root, "calc.c"))
	require.NoError(t, err)
	assert.Contains(t, unit.Path, "calc.c")
	assert.Contains(t, string(unit.Text), "int one")
	assert.Empty(t, unit.Language, "language detection belongs to the extractor")
}

func TestLoad_BinaryFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "blob.c", []byte{0x7f, 'E', 'L', 'F', 0x00, 0x01, 0x02})

	_, err := Load(filepath.Join(root, "blob.c"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBinaryFile))
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.c"))
	assert.Error(t, err)
}
