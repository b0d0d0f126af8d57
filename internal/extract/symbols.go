package extract

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/codescope-dev/codescope/internal/lang"
)

// symbolWalker yields one Symbol per declaration-bearing node, in source
// order. It repeats the scope builder's traversal step for step so that its
// running scope counter stays aligned with the arena indices: both walkers
// must skip and recurse through exactly the same nodes.
type symbolWalker struct {
	profile   *lang.Profile
	source    []byte
	scopes    []ScopeNode
	opts      Options
	nextScope int
	symbols   []Symbol
	diags     []Diagnostic
}

func extractSymbols(profile *lang.Profile, root *sitter.Node, source []byte, scopes []ScopeNode, opts Options) ([]Symbol, []Diagnostic) {
	w := &symbolWalker{
		profile:   profile,
		source:    source,
		scopes:    scopes,
		opts:      opts,
		nextScope: 1,
	}
	w.walk(root, 0)
	return w.symbols, w.diags
}

func (w *symbolWalker) walk(n *sitter.Node, scope int) {
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child.IsError() {
			continue
		}

		switch w.profile.Classify(child.Kind()) {
		case lang.ClassFunction:
			own := w.nextScope
			w.nextScope++
			w.emitFunction(child, scope)
			w.walk(child, own)
		case lang.ClassAggregate:
			if hasBody(child) {
				own := w.nextScope
				w.nextScope++
				w.emitNamed(child, scope, SymbolStruct, headerSignature(child, w.source))
				w.walk(child, own)
			} else {
				w.walk(child, scope)
			}
		case lang.ClassTypedef:
			w.nextScope++
			w.emitNamed(child, scope, SymbolTypedef, elidedSignature(child, w.source))
		case lang.ClassMacro:
			w.emitNamed(child, scope, SymbolMacroConstant, collapse(lang.Text(child, w.source)))
		case lang.ClassDeclaration:
			w.maybeEmitConstant(child, scope)
			w.walk(child, scope)
		default:
			w.walk(child, scope)
		}
	}
}

// emitFunction classifies a definition as function or nested-function based
// on the scope it appears in, so local functions keep their textual owner
// even when they shadow an outer name.
func (w *symbolWalker) emitFunction(n *sitter.Node, scope int) {
	name := w.profile.NameOf(n, w.source)
	if name == "" {
		if n.HasError() {
			w.emitMalformed(n, scope)
		}
		// Anonymous function expressions carry no symbol of their
		// own; the enclosing declaration names them.
		return
	}

	kind := SymbolFunction
	if w.scopes[scope].Kind == ScopeFunction {
		kind = SymbolNestedFunction
	}

	w.symbols = append(w.symbols, Symbol{
		Kind:      kind,
		Name:      name,
		Signature: headerSignature(n, w.source),
		Span:      nodeSpan(n),
		Scope:     scope,
		Doc:       w.docFor(n),
	})
}

func (w *symbolWalker) emitNamed(n *sitter.Node, scope int, kind SymbolKind, signature string) {
	name := w.profile.NameOf(n, w.source)
	if name == "" {
		if n.HasError() {
			w.emitMalformed(n, scope)
		}
		return
	}

	w.symbols = append(w.symbols, Symbol{
		Kind:      kind,
		Name:      name,
		Signature: signature,
		Span:      nodeSpan(n),
		Scope:     scope,
		Doc:       w.docFor(n),
	})
}

// maybeEmitConstant handles value declarations. Only module-scope constants
// become symbols; locals belong to the function body, not the context.
func (w *symbolWalker) maybeEmitConstant(n *sitter.Node, scope int) {
	if w.scopes[scope].Kind != ScopeModule {
		return
	}
	if w.profile.Name == "c" || w.profile.Name == "cpp" {
		if !cConstQualified(n, w.source) {
			return
		}
	}

	name := w.profile.NameOf(n, w.source)
	if name == "" {
		if n.HasError() {
			w.emitMalformed(n, scope)
		}
		return
	}

	w.symbols = append(w.symbols, Symbol{
		Kind:      SymbolModuleConstant,
		Name:      name,
		Signature: declHeaderSignature(n, w.source),
		Span:      nodeSpan(n),
		Scope:     scope,
		Doc:       w.docFor(n),
	})
}

// emitMalformed keeps extraction going when a declaration has no
// recoverable name: one bad declaration must not cost the rest of the file.
func (w *symbolWalker) emitMalformed(n *sitter.Node, scope int) {
	w.symbols = append(w.symbols, Symbol{
		Kind:  SymbolUnknown,
		Span:  nodeSpan(n),
		Scope: scope,
	})
	w.diags = append(w.diags, Diagnostic{
		Kind:    DiagMalformedDeclaration,
		Message: "declaration has no resolvable name",
		Span:    nodeSpan(n),
	})
}

// docFor associates an immediately preceding comment block with a
// declaration. Consecutive comment lines separated by single newlines form
// one block; the gap between the block and the declaration may contain at
// most Options.DocCommentBlankLines blank lines and nothing else. Comments
// inside the declaration's own body never qualify.
func (w *symbolWalker) docFor(n *sitter.Node) string {
	anchor, prev := w.docAnchor(n)
	if prev == nil || w.profile.Classify(prev.Kind()) != lang.ClassComment {
		return ""
	}
	if blanks, ok := w.gapBlankLines(prev, anchor); !ok || blanks > w.opts.DocCommentBlankLines {
		return ""
	}

	block := []string{lang.Text(prev, w.source)}
	for {
		above := prev.PrevSibling()
		if above == nil || w.profile.Classify(above.Kind()) != lang.ClassComment {
			break
		}
		if blanks, ok := w.gapBlankLines(above, prev); !ok || blanks > 0 {
			break
		}
		block = append([]string{lang.Text(above, w.source)}, block...)
		prev = above
	}
	return strings.Join(block, "\n")
}

// docAnchor finds the node a declaration's doc comment sits beside. Some
// grammars classify a child of the written declaration (a spec inside a
// grouped block, an assignment inside an expression statement); the comment
// is then a sibling of the enclosing wrapper, not of the classified node.
// Climbing stops as soon as a named sibling exists, so a comment can never
// be borrowed across another declaration.
func (w *symbolWalker) docAnchor(n *sitter.Node) (*sitter.Node, *sitter.Node) {
	anchor := n
	for {
		prev := anchor.PrevSibling()
		for prev != nil && !prev.IsNamed() {
			prev = prev.PrevSibling()
		}
		if prev != nil {
			return anchor, prev
		}
		parent := anchor.Parent()
		if parent == nil || parent.Parent() == nil {
			return anchor, nil
		}
		anchor = parent
	}
}

// gapBlankLines counts blank lines between two nodes. ok is false when the
// gap contains anything besides whitespace.
func (w *symbolWalker) gapBlankLines(before, after *sitter.Node) (int, bool) {
	if before.EndByte() > after.StartByte() {
		return 0, false
	}
	gap := string(w.source[before.EndByte():after.StartByte()])
	if strings.TrimSpace(gap) != "" {
		return 0, false
	}
	blanks := strings.Count(gap, "\n") - 1
	if blanks < 0 {
		blanks = 0
	}
	return blanks, true
}

// headerSignature is the declaration header up to (not including) the body,
// with internal whitespace collapsed so multi-line headers stay one line.
func headerSignature(n *sitter.Node, source []byte) string {
	body := n.ChildByFieldName("body")
	if body == nil {
		return collapse(lang.Text(n, source))
	}
	return collapse(string(source[n.StartByte():body.StartByte()]))
}

// elidedSignature renders a declaration with aggregate bodies replaced by
// "{ ... }", for typedefs whose underlying struct carries a field list.
func elidedSignature(n *sitter.Node, source []byte) string {
	var sb strings.Builder
	pos := n.StartByte()
	var elide func(*sitter.Node)
	elide = func(cur *sitter.Node) {
		switch cur.Kind() {
		case "field_declaration_list", "enumerator_list", "declaration_list":
			sb.Write(source[pos:cur.StartByte()])
			sb.WriteString("{ ... }")
			pos = cur.EndByte()
			return
		}
		for i := uint(0); i < cur.ChildCount(); i++ {
			elide(cur.Child(i))
		}
	}
	elide(n)
	sb.Write(source[pos:n.EndByte()])
	return collapse(sb.String())
}

// declHeaderSignature is a value declaration without its initializer, so a
// multi-line designated-initializer literal cannot leak into the signature.
func declHeaderSignature(n *sitter.Node, source []byte) string {
	if value := findInitValue(n); value != nil && value.StartByte() > n.StartByte() {
		header := string(source[n.StartByte():value.StartByte()])
		header = strings.TrimRight(collapse(header), "= ")
		return header
	}
	return strings.TrimSuffix(collapse(lang.Text(n, source)), ";")
}

// findInitValue locates the initializer expression across the per-language
// declarator shapes (C init_declarator, JS variable_declarator, Python
// assignment).
func findInitValue(n *sitter.Node) *sitter.Node {
	for _, field := range []string{"value", "right"} {
		if v := n.ChildByFieldName(field); v != nil {
			return v
		}
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		switch child.Kind() {
		case "init_declarator", "variable_declarator":
			if v := child.ChildByFieldName("value"); v != nil {
				return v
			}
		}
	}
	return nil
}

// cConstQualified reports whether a C declaration carries a const
// qualifier, scanning only the declaration's own specifiers.
func cConstQualified(n *sitter.Node, source []byte) bool {
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child.Kind() == "type_qualifier" && lang.Text(child, source) == "const" {
			return true
		}
	}
	// const may sit inside the type node: `char *const x` style types.
	if t := n.ChildByFieldName("type"); t != nil {
		for i := uint(0); i < t.ChildCount(); i++ {
			q := t.Child(i)
			if q.Kind() == "type_qualifier" && lang.Text(q, source) == "const" {
				return true
			}
		}
	}
	return false
}

// collapse joins any run of whitespace, including newlines and backslash
// continuations, into single spaces.
func collapse(s string) string {
	s = strings.ReplaceAll(s, "\\\n", " ")
	return strings.Join(strings.Fields(s), " ")
}
