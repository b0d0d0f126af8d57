package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the language registry:
// - Detect languages from file extensions, case-insensitively
// - Resolve profiles by name; cpp and tsx carry their own grammars
// - Report unknown extensions and names cleanly
// - Parse source into a tree with the profile's root kind
// - Classify node kinds into extraction categories

func TestDetect(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"src/calc.c":       "c",
		"include/calc.h":   "c",
		"src/engine.cpp":   "cpp",
		"src/engine.CC":    "cpp",
		"cmd/main.go":      "go",
		"scripts/tool.py":  "python",
		"app/Main.java":    "java",
		"web/app.js":       "javascript",
		"web/app.jsx":      "javascript",
		"web/app.ts":       "typescript",
		"web/app.tsx":      "tsx",
		"src/lib.rs":       "rust",
		"lib/helper.rb":    "ruby",
		"public/index.php": "php",
		"README.md":        "",
		"Makefile":         "",
		"archive.tar.gz":   "",
	}

	for path, want := range cases {
		assert.Equal(t, want, Detect(path), path)
	}
}

func TestByName(t *testing.T) {
	t.Parallel()

	c, ok := ByName("c")
	require.True(t, ok)
	assert.Equal(t, "c", c.Name)
	assert.Equal(t, "translation_unit", c.RootKind)

	// cpp has its own grammar but shares the C root kind.
	cpp, ok := ByName("cpp")
	require.True(t, ok)
	assert.NotSame(t, c, cpp)
	assert.Equal(t, "translation_unit", cpp.RootKind)
	assert.Equal(t, ClassAggregate, cpp.Classify("namespace_definition"))
	assert.Equal(t, ClassAggregate, cpp.Classify("class_specifier"))

	_, ok = ByName("cobol")
	assert.False(t, ok)
}

func TestSupported(t *testing.T) {
	t.Parallel()

	names := Supported()
	assert.IsNonDecreasing(t, names)
	for _, want := range []string{"c", "cpp", "go", "python", "java", "javascript", "typescript", "tsx", "rust", "ruby", "php"} {
		assert.Contains(t, names, want)
	}
}

func TestProfile_Parse(t *testing.T) {
	t.Parallel()

	profile, ok := ByName("c")
	require.True(t, ok)

	tree, err := profile.Parse([]byte("int main(void) { return 0; }\n"))
	require.NoError(t, err)
	defer tree.Close()

	root := tree.RootNode()
	assert.Equal(t, profile.RootKind, root.Kind())
	assert.False(t, root.HasError())
}

func TestProfile_ParsePartialTree(t *testing.T) {
	t.Parallel()

	profile, ok := ByName("c")
	require.True(t, ok)

	// Broken syntax still yields a tree; error nodes mark the damage.
	tree, err := profile.Parse([]byte("int main( { return 0; }\n"))
	require.NoError(t, err)
	defer tree.Close()

	assert.True(t, tree.RootNode().HasError())
}

func TestProfile_Classify(t *testing.T) {
	t.Parallel()

	c, _ := ByName("c")
	assert.Equal(t, ClassFunction, c.Classify("function_definition"))
	assert.Equal(t, ClassTypedef, c.Classify("type_definition"))
	assert.Equal(t, ClassMacro, c.Classify("preproc_def"))
	assert.Equal(t, ClassImport, c.Classify("preproc_include"))
	assert.Equal(t, ClassGuard, c.Classify("preproc_ifdef"))
	assert.Equal(t, ClassNone, c.Classify("binary_expression"))

	py, _ := ByName("python")
	assert.Equal(t, ClassFunction, py.Classify("function_definition"))
	assert.Equal(t, ClassAggregate, py.Classify("class_definition"))

	rb, _ := ByName("ruby")
	assert.Equal(t, ClassImport, rb.Classify("call"))
}

func TestProfile_NameOf(t *testing.T) {
	t.Parallel()

	profile, ok := ByName("c")
	require.True(t, ok)

	source := []byte("static char *(*lookup(void))[3];\n")
	tree, err := profile.Parse(source)
	require.NoError(t, err)
	defer tree.Close()

	decl := tree.RootNode().Child(0)
	require.NotNil(t, decl)
	assert.Equal(t, "declaration", decl.Kind())
	assert.Equal(t, "lookup", profile.NameOf(decl, source),
		"name resolution must descend through wrapped declarators")
}
