// Package extract turns a single source file into a structured context
// record: a nested scope tree, an ordered symbol list, and a normalized
// import list. Extraction is a pure function of the input text; it keeps no
// state between calls and never shares anything mutable across files.
package extract

import (
	"fmt"
	"iter"
	"strings"
)

// SourceUnit is one file handed to the extractor. The raw text is supplied
// by the caller; the core never reads from disk. The unit (and any syntax
// tree derived from it) lives only for the duration of one Extract call.
type SourceUnit struct {
	Path     string
	Language string // empty means detect from Path
	Text     []byte
}

// Span is a half-open byte range [Start, End) in the original source.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains reports whether other lies fully inside s.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Overlaps reports whether the two spans share at least one byte.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// ScopeKind classifies a lexical scope.
type ScopeKind string

const (
	ScopeModule   ScopeKind = "module"
	ScopeFunction ScopeKind = "function"
	ScopeStruct   ScopeKind = "struct"
)

// ScopeNode is one lexical scope. Nodes live in FileContext.Scopes, an
// arena ordered by pre-order traversal; Parent and Children are indices
// into that arena, so the tree carries no owning pointers and no cycles.
type ScopeNode struct {
	Kind     ScopeKind `json:"kind"`
	Name     string    `json:"name"`
	Span     Span      `json:"span"`
	Parent   int       `json:"-"` // -1 for the module root
	Children []int     `json:"-"`
}

// SymbolKind classifies a named declaration.
type SymbolKind string

const (
	SymbolFunction       SymbolKind = "function"
	SymbolNestedFunction SymbolKind = "nested-function"
	SymbolStruct         SymbolKind = "struct"
	SymbolTypedef        SymbolKind = "typedef"
	SymbolMacroConstant  SymbolKind = "macro-constant"
	SymbolModuleConstant SymbolKind = "module-constant"
	SymbolUnknown        SymbolKind = "unknown"
)

// Symbol is one extracted declaration. Scope is an index into the owning
// FileContext's scope arena and points at the scope the declaration appears
// in, not the scope the declaration introduces.
type Symbol struct {
	Kind      SymbolKind `json:"kind"`
	Name      string     `json:"name"`
	Signature string     `json:"signature"`
	Span      Span       `json:"span"`
	Scope     int        `json:"-"`
	Doc       string     `json:"doc,omitempty"`
}

// ImportReference is one normalized import/include directive. Raw is the
// logical single-line form of the directive: physical line wrapping is
// joined, nothing else changes. Duplicates are preserved in source order.
type ImportReference struct {
	Raw       string `json:"raw"`
	Target    string `json:"target"`
	Guard     string `json:"guard,omitempty"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

// DiagnosticKind tags recoverable extraction problems.
type DiagnosticKind string

const (
	// DiagParseDegraded means the grammar produced a partial tree; error
	// regions were treated as opaque leaves.
	DiagParseDegraded DiagnosticKind = "parse-degraded"

	// DiagMalformedDeclaration means a declaration yielded no name; an
	// unknown-kind symbol was emitted in its place.
	DiagMalformedDeclaration DiagnosticKind = "malformed-declaration"
)

// Diagnostic is a non-fatal annotation attached to the affected region.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Message string         `json:"message"`
	Span    Span           `json:"span"`
}

// FileContext is the extraction result for one SourceUnit. Scopes[0] is
// always the module root covering the whole file.
type FileContext struct {
	Path        string
	Language    string
	Imports     []ImportReference
	Scopes      []ScopeNode
	Symbols     []Symbol
	Diagnostics []Diagnostic
}

// ScopePath renders the arena path from the module root to scope i,
// e.g. "module/add_numbers/calculate_product".
func (fc *FileContext) ScopePath(i int) string {
	if i < 0 || i >= len(fc.Scopes) {
		return ""
	}
	var parts []string
	for i >= 0 {
		parts = append(parts, fc.Scopes[i].Name)
		i = fc.Scopes[i].Parent
	}
	for l, r := 0, len(parts)-1; l < r; l, r = l+1, r-1 {
		parts[l], parts[r] = parts[r], parts[l]
	}
	return strings.Join(parts, "/")
}

// SymbolSeq iterates symbols in source order. The sequence is restartable:
// extraction is pure, so ranging twice yields identical elements.
func (fc *FileContext) SymbolSeq() iter.Seq[Symbol] {
	return func(yield func(Symbol) bool) {
		for _, sym := range fc.Symbols {
			if !yield(sym) {
				return
			}
		}
	}
}

func anonymousName(offset int) string {
	return fmt.Sprintf("<anonymous@%d>", offset)
}
