package lang

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"
)

func newRubyProfile() *Profile {
	return &Profile{
		Name:       "ruby",
		Extensions: []string{".rb"},
		RootKind:   "program",
		language:   sitter.NewLanguage(tree_sitter_ruby.Language()),
		classes: map[string]NodeClass{
			"method":           ClassFunction,
			"singleton_method": ClassFunction,
			"class":            ClassAggregate,
			"module":           ClassAggregate,
			"assignment":       ClassDeclaration,
			"call":             ClassImport,
			"comment":          ClassComment,
		},
		nameOf:       rubyNameOf,
		importTarget: rubyRequireTarget,
		acceptImport: rubyIsRequire,
	}
}

func rubyNameOf(n *sitter.Node, source []byte) string {
	if n.Kind() == "assignment" {
		return Text(n.ChildByFieldName("left"), source)
	}
	return fieldText(n, "name", source)
}

// Ruby has no import node kind; requires are ordinary method calls.
func rubyIsRequire(n *sitter.Node, source []byte) bool {
	method := fieldText(n, "method", source)
	return method == "require" || method == "require_relative"
}

func rubyRequireTarget(n *sitter.Node, source []byte) string {
	args := n.ChildByFieldName("arguments")
	if args == nil {
		return ""
	}
	return strings.Trim(Text(args, source), `("')`)
}
