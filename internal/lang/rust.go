package lang

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
)

func newRustProfile() *Profile {
	return &Profile{
		Name:       "rust",
		Extensions: []string{".rs"},
		RootKind:   "source_file",
		language:   sitter.NewLanguage(tree_sitter_rust.Language()),
		classes: map[string]NodeClass{
			"function_item":   ClassFunction,
			"struct_item":     ClassAggregate,
			"enum_item":       ClassAggregate,
			"trait_item":      ClassAggregate,
			"impl_item":       ClassAggregate,
			"type_item":       ClassTypedef,
			"const_item":      ClassDeclaration,
			"static_item":     ClassDeclaration,
			"use_declaration": ClassImport,
			"line_comment":    ClassComment,
			"block_comment":   ClassComment,
		},
		importTarget: rustUseTarget,
	}
}

func rustUseTarget(n *sitter.Node, source []byte) string {
	return fieldText(n, "argument", source)
}
