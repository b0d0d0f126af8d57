package lang

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

func newTypeScriptProfile() *Profile {
	return &Profile{
		Name:         "typescript",
		Extensions:   []string{".ts"},
		RootKind:     "program",
		language:     sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
		classes:      tsClasses(),
		nameOf:       jsNameOf,
		importTarget: jsImportTarget,
	}
}

// newTSXProfile uses the grammar's TSX dialect. The plain typescript
// grammar rejects JSX elements, so .tsx files need their own parser even
// though the classification is identical.
func newTSXProfile() *Profile {
	return &Profile{
		Name:         "tsx",
		Extensions:   []string{".tsx"},
		RootKind:     "program",
		language:     sitter.NewLanguage(tree_sitter_typescript.LanguageTSX()),
		classes:      tsClasses(),
		nameOf:       jsNameOf,
		importTarget: jsImportTarget,
	}
}

func tsClasses() map[string]NodeClass {
	classes := jsClasses()
	classes["interface_declaration"] = ClassAggregate
	classes["enum_declaration"] = ClassAggregate
	classes["type_alias_declaration"] = ClassTypedef
	return classes
}
