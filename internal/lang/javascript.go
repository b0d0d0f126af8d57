package lang

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
)

func newJavaScriptProfile() *Profile {
	return &Profile{
		Name:         "javascript",
		Extensions:   []string{".js", ".jsx", ".cjs", ".mjs"},
		RootKind:     "program",
		language:     sitter.NewLanguage(tree_sitter_javascript.Language()),
		classes:      jsClasses(),
		nameOf:       jsNameOf,
		importTarget: jsImportTarget,
	}
}

func jsImportTarget(n *sitter.Node, source []byte) string {
	return strings.Trim(fieldText(n, "source", source), "\"'`")
}

func jsNameOf(n *sitter.Node, source []byte) string {
	if n.Kind() == "lexical_declaration" {
		if decl := findChildByKind(n, "variable_declarator"); decl != nil {
			return fieldText(decl, "name", source)
		}
		return ""
	}
	return fieldText(n, "name", source)
}

// jsClasses is shared with the TypeScript profile, which extends it.
func jsClasses() map[string]NodeClass {
	return map[string]NodeClass{
		"function_declaration":           ClassFunction,
		"generator_function_declaration": ClassFunction,
		"method_definition":              ClassFunction,
		"arrow_function":                 ClassFunction,
		"class_declaration":              ClassAggregate,
		"lexical_declaration":            ClassDeclaration,
		"import_statement":               ClassImport,
		"comment":                        ClassComment,
	}
}
