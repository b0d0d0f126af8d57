package extract

import (
	"context"
	"fmt"

	"github.com/codescope-dev/codescope/internal/lang"
)

// Options tunes extraction policy.
type Options struct {
	// DocCommentBlankLines is how many blank lines may separate a
	// comment block from the declaration it documents. Zero means the
	// comment must touch the declaration.
	DocCommentBlankLines int
}

// Extractor runs the per-file pipeline: parse, build the scope tree,
// extract symbols, normalize imports. An Extractor holds no per-file state
// and may be shared by any number of goroutines; parallelism across files
// is the caller's business.
type Extractor struct {
	opts Options
}

// New creates an Extractor with the given options.
func New(opts Options) *Extractor {
	return &Extractor{opts: opts}
}

// Extract processes one source unit. File-level failures (no text, no
// grammar) return an error wrapping ErrInvalidInput or
// ErrUnsupportedLanguage; everything else degrades into diagnostics on the
// returned context. Extract is pure: identical input yields an identical
// FileContext.
func (e *Extractor) Extract(ctx context.Context, unit SourceUnit) (*FileContext, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(unit.Text) == 0 {
		return nil, &FileError{Path: unit.Path, Err: ErrInvalidInput}
	}

	language := unit.Language
	if language == "" {
		language = lang.Detect(unit.Path)
	}
	profile, ok := lang.ByName(language)
	if !ok {
		return nil, &FileError{
			Path: unit.Path,
			Err:  fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language),
		}
	}

	tree, err := profile.Parse(unit.Text)
	if err != nil {
		return nil, &FileError{Path: unit.Path, Err: err}
	}
	defer tree.Close()

	root := tree.RootNode()
	fc := &FileContext{
		Path:     unit.Path,
		Language: language,
	}

	if root.HasError() {
		fc.Diagnostics = append(fc.Diagnostics, Diagnostic{
			Kind:    DiagParseDegraded,
			Message: "syntax errors produced a partial tree",
			Span:    nodeSpan(root),
		})
	}

	fc.Scopes = buildScopes(profile, root, unit.Text)

	symbols, diags := extractSymbols(profile, root, unit.Text, fc.Scopes, e.opts)
	fc.Symbols = symbols
	fc.Diagnostics = append(fc.Diagnostics, diags...)

	fc.Imports = normalizeImports(profile, root, unit.Text)

	return fc, nil
}
