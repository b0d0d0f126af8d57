package lang

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
)

// newGoProfile maps the Go grammar. Grouped declarations (`const (...)`,
// `type (...)`, `import (...)`) classify at the spec level, not the
// declaration level, so every member of a group yields its own entry.
func newGoProfile() *Profile {
	return &Profile{
		Name:       "go",
		Extensions: []string{".go"},
		RootKind:   "source_file",
		language:   sitter.NewLanguage(tree_sitter_go.Language()),
		classes: map[string]NodeClass{
			"function_declaration": ClassFunction,
			"method_declaration":   ClassFunction,
			"func_literal":         ClassFunction,
			"type_spec":            ClassTypedef,
			"const_spec":           ClassDeclaration,
			"import_spec":          ClassImport,
			"comment":              ClassComment,
		},
		importTarget: goImportTarget,
	}
}

// goImportTarget resolves one import_spec's path. Grouped import blocks
// yield one reference per import_spec, since that node, not the enclosing
// declaration, is the classified one.
func goImportTarget(n *sitter.Node, source []byte) string {
	return strings.Trim(fieldText(n, "path", source), "`\"")
}
