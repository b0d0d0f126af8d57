// Package assemble is the context-assembler boundary: it turns extraction
// results into the serializable payload consumed by downstream tooling, and
// selects the context blocks enclosing a set of changed line ranges.
package assemble

import (
	"encoding/json"

	"github.com/codescope-dev/codescope/internal/extract"
)

// Payload is the per-file output contract: ordered imports, the nested
// scope tree, ordered symbols, and any diagnostics. Field order and nesting
// are fixed, so marshaling identical extraction results yields identical
// bytes.
type Payload struct {
	Path        string               `json:"path"`
	Language    string               `json:"language"`
	Imports     []ImportPayload      `json:"imports"`
	Scopes      *ScopePayload        `json:"scopes"`
	Symbols     []SymbolPayload      `json:"symbols"`
	Diagnostics []extract.Diagnostic `json:"diagnostics,omitempty"`
}

// ImportPayload is one normalized directive with its physical line range.
type ImportPayload struct {
	Raw    string `json:"raw"`
	Target string `json:"target"`
	Guard  string `json:"guard,omitempty"`
	Lines  [2]int `json:"lines"`
}

// ScopePayload is the nested rendering of the scope arena. Span is the
// half-open byte range [start, end).
type ScopePayload struct {
	Kind     string          `json:"kind"`
	Name     string          `json:"name"`
	Span     [2]int          `json:"span"`
	Children []*ScopePayload `json:"children,omitempty"`
}

// SymbolPayload is one symbol with its scope rendered as a path, so
// consumers never need the arena indices.
type SymbolPayload struct {
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Signature string `json:"signature"`
	Span      [2]int `json:"span"`
	ScopePath string `json:"scopePath"`
	Doc       string `json:"doc,omitempty"`
}

// Build converts a FileContext into its payload form.
func Build(fc *extract.FileContext) *Payload {
	p := &Payload{
		Path:        fc.Path,
		Language:    fc.Language,
		Imports:     make([]ImportPayload, 0, len(fc.Imports)),
		Symbols:     make([]SymbolPayload, 0, len(fc.Symbols)),
		Diagnostics: fc.Diagnostics,
	}

	for _, imp := range fc.Imports {
		p.Imports = append(p.Imports, ImportPayload{
			Raw:    imp.Raw,
			Target: imp.Target,
			Guard:  imp.Guard,
			Lines:  [2]int{imp.StartLine, imp.EndLine},
		})
	}

	if len(fc.Scopes) > 0 {
		p.Scopes = buildScopePayload(fc, 0)
	}

	for sym := range fc.SymbolSeq() {
		p.Symbols = append(p.Symbols, SymbolPayload{
			Kind:      string(sym.Kind),
			Name:      sym.Name,
			Signature: sym.Signature,
			Span:      [2]int{sym.Span.Start, sym.Span.End},
			ScopePath: fc.ScopePath(sym.Scope),
			Doc:       sym.Doc,
		})
	}

	return p
}

func buildScopePayload(fc *extract.FileContext, idx int) *ScopePayload {
	sc := fc.Scopes[idx]
	out := &ScopePayload{
		Kind: string(sc.Kind),
		Name: sc.Name,
		Span: [2]int{sc.Span.Start, sc.Span.End},
	}
	for _, child := range sc.Children {
		out.Children = append(out.Children, buildScopePayload(fc, child))
	}
	return out
}

// Marshal renders the payload as indented JSON. Output is deterministic for
// identical extraction results.
func Marshal(fc *extract.FileContext) ([]byte, error) {
	return json.MarshalIndent(Build(fc), "", "  ")
}
