package assemble

import (
	"sort"

	"github.com/codescope-dev/codescope/internal/extract"
)

// LineRange is a 1-based inclusive range of physical lines, typically the
// changed hunk of a diff.
type LineRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Block is one selected context region: a top-level scope (or module-level
// declaration) that encloses a changed line range.
type Block struct {
	ScopePath string `json:"scope_path"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
	Text      string `json:"text"`
}

// Selection is the context picked for a set of changed line ranges: every
// import directive plus the enclosing top-level blocks, in source order.
type Selection struct {
	Path    string   `json:"path"`
	Imports []string `json:"imports"`
	Blocks  []Block  `json:"blocks"`
}

// Select picks the context blocks enclosing the given changed line ranges.
// Only outermost scopes are returned: a change inside a nested function
// selects the whole top-level function, never an inner fragment. Imports
// always travel with the selection regardless of where the change landed.
func Select(fc *extract.FileContext, source []byte, ranges []LineRange) *Selection {
	sel := &Selection{Path: fc.Path}
	for _, imp := range fc.Imports {
		sel.Imports = append(sel.Imports, imp.Raw)
	}

	starts := lineStarts(source)

	var spans []extract.Span
	for _, lr := range ranges {
		if sp, ok := rangeToSpan(lr, starts, len(source)); ok {
			spans = append(spans, sp)
		}
	}
	if len(spans) == 0 {
		return sel
	}

	type candidate struct {
		path string
		span extract.Span
	}
	var picked []candidate

	// Top-level scopes whose span overlaps any changed range.
	for i := 1; i < len(fc.Scopes); i++ {
		sc := fc.Scopes[i]
		if sc.Parent != 0 {
			continue
		}
		if overlapsAny(sc.Span, spans) {
			picked = append(picked, candidate{path: fc.ScopePath(i), span: sc.Span})
		}
	}

	// Module-level declarations (constants, macros) outside any scope.
	for sym := range fc.SymbolSeq() {
		if sym.Scope != 0 || !overlapsAny(sym.Span, spans) {
			continue
		}
		covered := false
		for _, c := range picked {
			if c.span.Contains(sym.Span) {
				covered = true
				break
			}
		}
		if !covered {
			picked = append(picked, candidate{
				path: fc.ScopePath(0) + "/" + sym.Name,
				span: sym.Span,
			})
		}
	}

	sort.Slice(picked, func(i, j int) bool {
		return picked[i].span.Start < picked[j].span.Start
	})

	for _, c := range picked {
		sel.Blocks = append(sel.Blocks, Block{
			ScopePath: c.path,
			StartLine: lineAt(c.span.Start, starts),
			EndLine:   lineAt(c.span.End-1, starts),
			Text:      string(source[c.span.Start:c.span.End]),
		})
	}

	return sel
}

// lineStarts returns the byte offset of the first character of each line.
func lineStarts(source []byte) []int {
	starts := []int{0}
	for i, b := range source {
		if b == '\n' && i+1 < len(source) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// rangeToSpan converts a 1-based inclusive line range to a byte span,
// clamped to the file. ok is false when the range lies entirely past EOF.
func rangeToSpan(lr LineRange, starts []int, size int) (extract.Span, bool) {
	if lr.Start < 1 || lr.End < lr.Start || lr.Start > len(starts) {
		return extract.Span{}, false
	}
	start := starts[lr.Start-1]
	end := size
	if lr.End < len(starts) {
		end = starts[lr.End]
	}
	return extract.Span{Start: start, End: end}, true
}

func lineAt(offset int, starts []int) int {
	line := sort.SearchInts(starts, offset+1)
	return line
}

func overlapsAny(span extract.Span, spans []extract.Span) bool {
	for _, other := range spans {
		if span.Overlaps(other) {
			return true
		}
	}
	return false
}
