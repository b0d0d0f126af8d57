// Package lang wraps tree-sitter grammars behind a uniform capability set:
// parse source text into a syntax tree, classify node kinds, and resolve
// declaration names. Each supported language contributes one Profile; the
// extraction pipeline never touches grammar-specific node kinds directly.
package lang

import (
	"errors"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// NodeClass is the grammar-independent category of a syntax node kind.
type NodeClass int

const (
	// ClassNone marks node kinds with no extraction significance.
	ClassNone NodeClass = iota

	// ClassFunction marks scope-introducing function definitions,
	// including local functions nested inside other function bodies.
	ClassFunction

	// ClassAggregate marks scope-introducing type bodies (struct, class,
	// union, enum, interface).
	ClassAggregate

	// ClassTypedef marks type alias declarations (typedef, type alias).
	ClassTypedef

	// ClassMacro marks preprocessor macro definitions.
	ClassMacro

	// ClassDeclaration marks value declarations that may yield
	// module-constant symbols when they appear at module scope.
	ClassDeclaration

	// ClassImport marks import/include directives.
	ClassImport

	// ClassGuard marks conditional-compilation blocks wrapping directives.
	ClassGuard

	// ClassComment marks comment nodes.
	ClassComment
)

// ErrParseFailed is returned when the grammar cannot produce a tree at all.
// Partial trees with embedded error nodes are not failures; they degrade.
var ErrParseFailed = errors.New("lang: parse failed")

// Profile describes how one grammar maps onto the extraction model.
// Profiles are immutable after construction and safe for concurrent use.
type Profile struct {
	// Name is the canonical language identifier (e.g. "c", "python").
	Name string

	// Extensions are the file extensions owned by this language,
	// including the leading dot.
	Extensions []string

	// RootKind is the node kind of the grammar's root (module) node.
	RootKind string

	language *sitter.Language
	classes  map[string]NodeClass

	// nameOf resolves the declared name of a classified node, or "" when
	// the node is malformed or anonymous.
	nameOf func(n *sitter.Node, source []byte) string

	// importTarget resolves the module/path an import node refers to.
	importTarget func(n *sitter.Node, source []byte) string

	// acceptImport optionally narrows ClassImport nodes (e.g. Ruby
	// require() calls are plain call nodes). Nil accepts all.
	acceptImport func(n *sitter.Node, source []byte) bool

	// guardCondition extracts the condition text of a ClassGuard node.
	guardCondition func(n *sitter.Node, source []byte) string
}

// Classify returns the extraction category of a node kind.
func (p *Profile) Classify(kind string) NodeClass {
	return p.classes[kind]
}

// Parse parses source text into a concrete syntax tree. Subregion syntax
// errors produce error nodes inside a best-effort tree, not a failure.
// The caller owns the returned tree and must Close it.
func (p *Profile) Parse(source []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(p.language); err != nil {
		return nil, err
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, ErrParseFailed
	}
	return tree, nil
}

// NameOf resolves the declared name of a node, or "" when none can be found.
func (p *Profile) NameOf(n *sitter.Node, source []byte) string {
	if p.nameOf == nil {
		return fieldText(n, "name", source)
	}
	return p.nameOf(n, source)
}

// ImportTargetOf resolves the target module/path of an import node.
func (p *Profile) ImportTargetOf(n *sitter.Node, source []byte) string {
	if p.importTarget == nil {
		return Text(n, source)
	}
	return p.importTarget(n, source)
}

// AcceptImport reports whether a ClassImport node is a real import.
func (p *Profile) AcceptImport(n *sitter.Node, source []byte) bool {
	if p.acceptImport == nil {
		return true
	}
	return p.acceptImport(n, source)
}

// GuardConditionOf extracts the condition text of a guard node.
func (p *Profile) GuardConditionOf(n *sitter.Node, source []byte) string {
	if p.guardCondition == nil {
		return ""
	}
	return p.guardCondition(n, source)
}

// Text returns the source text covered by a node.
func Text(n *sitter.Node, source []byte) string {
	if n == nil {
		return ""
	}
	return string(source[n.StartByte():n.EndByte()])
}

func fieldText(n *sitter.Node, field string, source []byte) string {
	if n == nil {
		return ""
	}
	return Text(n.ChildByFieldName(field), source)
}

// findChildByKind finds the first direct child with the given kind.
func findChildByKind(n *sitter.Node, kind string) *sitter.Node {
	if n == nil {
		return nil
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}
