package lang

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_c "github.com/tree-sitter/tree-sitter-c/bindings/go"
)

// newCProfile maps the C grammar. The same grammar serves .c and .h files;
// the C++ profile shares this file's name/include/guard helpers.
func newCProfile() *Profile {
	return &Profile{
		Name:       "c",
		Extensions: []string{".c", ".h"},
		RootKind:   "translation_unit",
		language:   sitter.NewLanguage(tree_sitter_c.Language()),
		classes: map[string]NodeClass{
			"function_definition":  ClassFunction,
			"struct_specifier":     ClassAggregate,
			"union_specifier":      ClassAggregate,
			"enum_specifier":       ClassAggregate,
			"type_definition":      ClassTypedef,
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

func cNameOf(n *sitter.Node, source []byte) string {
	switch n.Kind() {
	case "function_definition", "declaration":
		return cDeclaratorName(n.ChildByFieldName("declarator"), source)
	case "type_definition":
		return cDeclaratorName(n.ChildByFieldName("declarator"), source)
	case "struct_specifier", "union_specifier", "enum_specifier",
		"preproc_def", "preproc_function_def":
		return fieldText(n, "name", source)
	case "init_declarator":
		return cDeclaratorName(n.ChildByFieldName("declarator"), source)
	}
	return fieldText(n, "name", source)
}

// cDeclaratorName descends through pointer/array/function declarators to the
// underlying identifier. Declarations wrap the name arbitrarily deep, e.g.
// `static char *(*fn(void))[3]`.
func cDeclaratorName(n *sitter.Node, source []byte) string {
	for n != nil {
		switch n.Kind() {
		// field_identifier names in-class method definitions and
		// qualified_identifier names out-of-class ones (Counter::bump).
		case "identifier", "type_identifier", "field_identifier",
			"qualified_identifier", "destructor_name", "operator_name":
			return Text(n, source)
		case "function_declarator", "pointer_declarator",
			"array_declarator", "parenthesized_declarator",
			"init_declarator":
			if inner := n.ChildByFieldName("declarator"); inner != nil {
				n = inner
				continue
			}
			n = findChildByKind(n, "identifier")
		default:
			if id := findChildByKind(n, "identifier"); id != nil {
				return Text(id, source)
			}
			return ""
		}
	}
	return ""
}

// cIncludeTarget strips the <> or "" wrapping from an include path.
func cIncludeTarget(n *sitter.Node, source []byte) string {
	path := n.ChildByFieldName("path")
	if path == nil {
		return ""
	}
	return strings.Trim(Text(path, source), `<>"`)
}

// cGuardCondition renders #ifdef NAME as NAME, #ifndef NAME as !NAME, and
// #if EXPR as the expression text.
func cGuardCondition(n *sitter.Node, source []byte) string {
	if n.Kind() == "preproc_if" {
		return strings.TrimSpace(fieldText(n, "condition", source))
	}
	name := fieldText(n, "name", source)
	if n.ChildCount() > 0 && Text(n.Child(0), source) == "#ifndef" {
		return "!" + name
	}
	return name
}
