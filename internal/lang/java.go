package lang

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

func newJavaProfile() *Profile {
	return &Profile{
		Name:       "java",
		Extensions: []string{".java"},
		RootKind:   "program",
		language:   sitter.NewLanguage(tree_sitter_java.Language()),
		classes: map[string]NodeClass{
			"class_declaration":       ClassAggregate,
			"interface_declaration":   ClassAggregate,
			"enum_declaration":        ClassAggregate,
			"record_declaration":      ClassAggregate,
			"method_declaration":      ClassFunction,
			"constructor_declaration": ClassFunction,
			"field_declaration":       ClassDeclaration,
			"import_declaration":      ClassImport,
			"line_comment":            ClassComment,
			"block_comment":           ClassComment,
		},
		nameOf:       javaNameOf,
		importTarget: javaImportTarget,
	}
}

func javaImportTarget(n *sitter.Node, source []byte) string {
	s := strings.TrimPrefix(Text(n, source), "import")
	s = strings.TrimSuffix(strings.TrimSpace(s), ";")
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "static "))
	return s
}

func javaNameOf(n *sitter.Node, source []byte) string {
	if n.Kind() == "field_declaration" {
		if decl := findChildByKind(n, "variable_declarator"); decl != nil {
			return fieldText(decl, "name", source)
		}
		return ""
	}
	return fieldText(n, "name", source)
}
