package storage

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/codescope-dev/codescope/internal/extract"
)

// Writer persists extraction results. DB must have the schema created via
// CreateSchema().
type Writer struct {
	db *sql.DB
}

// NewWriter creates a Writer instance.
func NewWriter(db *sql.DB) *Writer {
	return &Writer{db: db}
}

// SaveFileContext replaces a file's stored extraction result atomically:
// old rows for the path go away with the file row, new rows come in under
// one transaction.
func (w *Writer) SaveFileContext(fc *extract.FileContext, source []byte, runID string) error {
	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := sq.Delete("files").
		Where(sq.Eq{"file_path": fc.Path}).
		RunWith(tx).
		Exec(); err != nil {
		return fmt.Errorf("failed to delete stale rows for %s: %w", fc.Path, err)
	}

	sum := sha256.Sum256(source)
	if _, err := sq.Insert("files").
		Columns("file_path", "language", "file_hash", "run_id", "extracted_at").
		Values(fc.Path, fc.Language, hex.EncodeToString(sum[:]), runID,
			time.Now().UTC().Format(time.RFC3339)).
		RunWith(tx).
		Exec(); err != nil {
		return fmt.Errorf("failed to insert file row for %s: %w", fc.Path, err)
	}

	for sym := range fc.SymbolSeq() {
		if _, err := sq.Insert("symbols").
			Columns("file_path", "kind", "name", "signature", "scope_path",
				"doc", "span_start", "span_end").
			Values(fc.Path, string(sym.Kind), sym.Name, sym.Signature,
				fc.ScopePath(sym.Scope), sym.Doc, sym.Span.Start, sym.Span.End).
			RunWith(tx).
			Exec(); err != nil {
			return fmt.Errorf("failed to insert symbol %s: %w", sym.Name, err)
		}
	}

	for i, imp := range fc.Imports {
		if _, err := sq.Insert("imports").
			Columns("file_path", "position", "raw", "target", "guard",
				"start_line", "end_line").
			Values(fc.Path, i, imp.Raw, imp.Target, imp.Guard,
				imp.StartLine, imp.EndLine).
			RunWith(tx).
			Exec(); err != nil {
			return fmt.Errorf("failed to insert import %s: %w", imp.Target, err)
		}
	}

	for _, diag := range fc.Diagnostics {
		if _, err := sq.Insert("diagnostics").
			Columns("file_path", "kind", "message", "span_start", "span_end").
			Values(fc.Path, string(diag.Kind), diag.Message,
				diag.Span.Start, diag.Span.End).
			RunWith(tx).
			Exec(); err != nil {
			return fmt.Errorf("failed to insert diagnostic: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", fc.Path, err)
	}

	return nil
}

// DeleteFile removes a file and its dependent rows (cascade).
func (w *Writer) DeleteFile(path string) error {
	if _, err := sq.Delete("files").
		Where(sq.Eq{"file_path": path}).
		RunWith(w.db).
		Exec(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}
