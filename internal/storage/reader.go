package storage

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// SymbolRow is one stored symbol with its owning file.
type SymbolRow struct {
	FilePath  string
	Kind      string
	Name      string
	Signature string
	ScopePath string
	Doc       string
	SpanStart int
	SpanEnd   int
}

// ImportRow is one stored import directive.
type ImportRow struct {
	FilePath  string
	Raw       string
	Target    string
	Guard     string
	StartLine int
	EndLine   int
}

// Reader queries stored extraction results.
type Reader struct {
	db *sql.DB
}

// NewReader creates a Reader instance.
func NewReader(db *sql.DB) *Reader {
	return &Reader{db: db}
}

// SymbolsByName returns all stored symbols with the exact name, across
// files, ordered by file then source position.
func (r *Reader) SymbolsByName(name string) ([]SymbolRow, error) {
	rows, err := sq.Select("file_path", "kind", "name", "signature",
		"scope_path", "doc", "span_start", "span_end").
		From("symbols").
		Where(sq.Eq{"name": name}).
		OrderBy("file_path", "span_start").
		RunWith(r.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query symbols by name: %w", err)
	}
	return scanSymbols(rows)
}

// SymbolsForFile returns a file's stored symbols in source order.
func (r *Reader) SymbolsForFile(path string) ([]SymbolRow, error) {
	rows, err := sq.Select("file_path", "kind", "name", "signature",
		"scope_path", "doc", "span_start", "span_end").
		From("symbols").
		Where(sq.Eq{"file_path": path}).
		OrderBy("span_start").
		RunWith(r.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query symbols for %s: %w", path, err)
	}
	return scanSymbols(rows)
}

// ImportsForFile returns a file's stored imports in source order.
func (r *Reader) ImportsForFile(path string) ([]ImportRow, error) {
	rows, err := sq.Select("file_path", "raw", "target", "guard",
		"start_line", "end_line").
		From("imports").
		Where(sq.Eq{"file_path": path}).
		OrderBy("position").
		RunWith(r.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query imports for %s: %w", path, err)
	}
	defer rows.Close()

	var out []ImportRow
	for rows.Next() {
		var imp ImportRow
		if err := rows.Scan(&imp.FilePath, &imp.Raw, &imp.Target, &imp.Guard,
			&imp.StartLine, &imp.EndLine); err != nil {
			return nil, fmt.Errorf("failed to scan import row: %w", err)
		}
		out = append(out, imp)
	}
	return out, rows.Err()
}

// FileCount returns the number of stored files.
func (r *Reader) FileCount() (int, error) {
	var count int
	err := sq.Select("COUNT(*)").
		From("files").
		RunWith(r.db).
		QueryRow().
		Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count files: %w", err)
	}
	return count, nil
}

func scanSymbols(rows *sql.Rows) ([]SymbolRow, error) {
	defer rows.Close()

	var out []SymbolRow
	for rows.Next() {
		var sym SymbolRow
		if err := rows.Scan(&sym.FilePath, &sym.Kind, &sym.Name, &sym.Signature,
			&sym.ScopePath, &sym.Doc, &sym.SpanStart, &sym.SpanEnd); err != nil {
			return nil, fmt.Errorf("failed to scan symbol row: %w", err)
		}
		out = append(out, sym)
	}
	return out, rows.Err()
}
