package lang

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
)

// newCppProfile maps the C++ grammar. The grammar extends C's node kinds,
// so the C name/include/guard helpers carry over; classes, namespaces, and
// using-aliases are the additions.
func newCppProfile() *Profile {
	return &Profile{
		Name:       "cpp",
		Extensions: []string{".cpp", ".cc", ".hpp"},
		RootKind:   "translation_unit",
		language:   sitter.NewLanguage(tree_sitter_cpp.Language()),
		classes: map[string]NodeClass{
			"function_definition":  ClassFunction,
			"class_specifier":      ClassAggregate,
			"struct_specifier":     ClassAggregate,
			"union_specifier":      ClassAggregate,
			"enum_specifier":       ClassAggregate,
			"namespace_definition": ClassAggregate,
			"type_definition":      ClassTypedef,
			"alias_declaration":    ClassTypedef,
			"preproc_def":          ClassMacro,
			"preproc_function_def": ClassMacro,
			"declaration":          ClassDeclaration,
			"preproc_include":      ClassImport,
			"preproc_ifdef":        ClassGuard,
			"preproc_if":           ClassGuard,
			"comment":              ClassComment,
		},
		nameOf:         cNameOf,
		importTarget:   cIncludeTarget,
		guardCondition: cGuardCondition,
	}
}
