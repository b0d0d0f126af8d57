package lang

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_php "github.com/tree-sitter/tree-sitter-php/bindings/go"
)

func newPhpProfile() *Profile {
	return &Profile{
		Name:       "php",
		Extensions: []string{".php"},
		RootKind:   "program",
		language:   sitter.NewLanguage(tree_sitter_php.LanguagePHP()),
		classes: map[string]NodeClass{
			"function_definition":       ClassFunction,
			"method_declaration":        ClassFunction,
			"class_declaration":         ClassAggregate,
			"interface_declaration":     ClassAggregate,
			"trait_declaration":         ClassAggregate,
			"enum_declaration":          ClassAggregate,
			"const_declaration":         ClassDeclaration,
			"namespace_use_declaration": ClassImport,
			"comment":                   ClassComment,
		},
		importTarget: phpUseTarget,
	}
}

func phpUseTarget(n *sitter.Node, source []byte) string {
	if clause := findChildByKind(n, "namespace_use_clause"); clause != nil {
		return Text(clause, source)
	}
	return ""
}
