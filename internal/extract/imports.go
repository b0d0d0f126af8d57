package extract

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/codescope-dev/codescope/internal/lang"
)

// normalizeImports collects import/include directives in source order. A
// directive spanning several physical lines (trailing-backslash
// continuation, wrapped module lists) is joined into one logical reference;
// normalization changes formatting only, never count or order, so
// duplicate targets survive.
func normalizeImports(profile *lang.Profile, root *sitter.Node, source []byte) []ImportReference {
	var out []ImportReference

	var walk func(n *sitter.Node, guard string)
	walk = func(n *sitter.Node, guard string) {
		for i := uint(0); i < n.ChildCount(); i++ {
			child := n.Child(i)
			if child.IsError() {
				continue
			}

			switch profile.Classify(child.Kind()) {
			case lang.ClassGuard:
				walk(child, joinGuard(guard, profile.GuardConditionOf(child, source)))
			case lang.ClassImport:
				if !profile.AcceptImport(child, source) {
					walk(child, guard)
					continue
				}
				raw := lang.Text(child, source)
				startLine := int(child.StartPosition().Row) + 1
				out = append(out, ImportReference{
					Raw:       collapse(raw),
					Target:    profile.ImportTargetOf(child, source),
					Guard:     guard,
					StartLine: startLine,
					// Directive nodes may swallow the trailing newline;
					// count lines from the trimmed text instead.
					EndLine: startLine + strings.Count(strings.TrimRight(raw, "\n"), "\n"),
				})
			default:
				walk(child, guard)
			}
		}
	}
	walk(root, "")

	return out
}

// joinGuard nests guard conditions when directives sit inside stacked
// conditional blocks.
func joinGuard(outer, inner string) string {
	switch {
	case outer == "":
		return inner
	case inner == "":
		return outer
	default:
		return outer + " && " + inner
	}
}
