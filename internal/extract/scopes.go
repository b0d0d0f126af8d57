package extract

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/codescope-dev/codescope/internal/lang"
)

// scopeBuilder walks the syntax tree in pre-order and records every
// scope-introducing node into a flat arena. The symbol walker later repeats
// the exact same traversal, so arena indices are assigned deterministically:
// the k-th scope-introducing node encountered is always arena entry k.
type scopeBuilder struct {
	profile *lang.Profile
	source  []byte
	arena   []ScopeNode
}

func buildScopes(profile *lang.Profile, root *sitter.Node, source []byte) []ScopeNode {
	b := &scopeBuilder{profile: profile, source: source}
	b.arena = append(b.arena, ScopeNode{
		Kind:   ScopeModule,
		Name:   "module",
		Span:   nodeSpan(root),
		Parent: -1,
	})
	b.walk(root, 0)
	return b.arena
}

func (b *scopeBuilder) walk(n *sitter.Node, parent int) {
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		// Error nodes are opaque leaves: no scopes, no recursion.
		if child.IsError() {
			continue
		}

		switch b.profile.Classify(child.Kind()) {
		case lang.ClassFunction:
			b.walk(child, b.push(child, parent, ScopeFunction))
		case lang.ClassAggregate:
			// Body-less aggregate nodes are type references
			// (`struct point p;`), not scopes.
			if hasBody(child) {
				b.walk(child, b.push(child, parent, ScopeStruct))
			} else {
				b.walk(child, parent)
			}
		case lang.ClassTypedef:
			// A typedef'd aggregate body is a scope of its own, but
			// nothing inside it can introduce further scopes.
			b.push(child, parent, ScopeStruct)
		default:
			b.walk(child, parent)
		}
	}
}

func (b *scopeBuilder) push(n *sitter.Node, parent int, kind ScopeKind) int {
	name := b.profile.NameOf(n, b.source)
	if name == "" {
		name = anonymousName(int(n.StartByte()))
	}

	idx := len(b.arena)
	b.arena = append(b.arena, ScopeNode{
		Kind:   kind,
		Name:   name,
		Span:   nodeSpan(n),
		Parent: parent,
	})
	b.arena[parent].Children = append(b.arena[parent].Children, idx)
	return idx
}

func nodeSpan(n *sitter.Node) Span {
	return Span{Start: int(n.StartByte()), End: int(n.EndByte())}
}

func hasBody(n *sitter.Node) bool {
	return n.ChildByFieldName("body") != nil
}
