package lang

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

func newPythonProfile() *Profile {
	return &Profile{
		Name:       "python",
		Extensions: []string{".py"},
		RootKind:   "module",
		language:   sitter.NewLanguage(tree_sitter_python.Language()),
		classes: map[string]NodeClass{
			"function_definition":   ClassFunction,
			"class_definition":      ClassAggregate,
			"assignment":            ClassDeclaration,
			"import_statement":      ClassImport,
			"import_from_statement": ClassImport,
			"comment":               ClassComment,
		},
		nameOf:       pythonNameOf,
		importTarget: pythonImportTarget,
	}
}

func pythonNameOf(n *sitter.Node, source []byte) string {
	if n.Kind() == "assignment" {
		return Text(n.ChildByFieldName("left"), source)
	}
	return fieldText(n, "name", source)
}

// pythonImportTarget resolves the module an import refers to: the
// module_name of a from-import, otherwise the first imported name.
func pythonImportTarget(n *sitter.Node, source []byte) string {
	if m := n.ChildByFieldName("module_name"); m != nil {
		return Text(m, source)
	}
	name := n.ChildByFieldName("name")
	if name != nil && name.Kind() == "aliased_import" {
		return fieldText(name, "name", source)
	}
	return Text(name, source)
}
