// Package storage persists extraction results in SQLite so the MCP server
// and CLI can query symbols without re-parsing the tree.
package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens (or creates) the SQLite database at path with foreign keys on.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// CreateSchema creates all tables and indexes. Uses one transaction so
// schema creation succeeds or fails together; calling it on an existing
// schema is a no-op.
func CreateSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	tables := []struct {
		name string
		ddl  string
	}{
		{"files", createFilesTable},
		{"symbols", createSymbolsTable},
		{"imports", createImportsTable},
		{"diagnostics", createDiagnosticsTable},
	}

	for _, table := range tables {
		if _, err := tx.Exec(table.ddl); err != nil {
			return fmt.Errorf("failed to create %s table: %w", table.name, err)
		}
	}

	for i, idx := range schemaIndexes {
		if _, err := tx.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema transaction: %w", err)
	}

	return nil
}

const createFilesTable = `
CREATE TABLE IF NOT EXISTS files (
    file_path TEXT PRIMARY KEY,     -- Natural key: path as extracted
    language TEXT NOT NULL,
    file_hash TEXT NOT NULL,        -- SHA-256 for change detection
    run_id TEXT NOT NULL,           -- Batch run that produced this row
    extracted_at TEXT NOT NULL      -- ISO 8601
)
`

const createSymbolsTable = `
CREATE TABLE IF NOT EXISTS symbols (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    file_path TEXT NOT NULL REFERENCES files(file_path) ON DELETE CASCADE,
    kind TEXT NOT NULL,             -- function, nested-function, struct, ...
    name TEXT NOT NULL,
    signature TEXT NOT NULL,
    scope_path TEXT NOT NULL,       -- module/outer/inner
    doc TEXT NOT NULL DEFAULT '',
    span_start INTEGER NOT NULL,
    span_end INTEGER NOT NULL
)
`

const createImportsTable = `
CREATE TABLE IF NOT EXISTS imports (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    file_path TEXT NOT NULL REFERENCES files(file_path) ON DELETE CASCADE,
    position INTEGER NOT NULL,      -- Source order within the file
    raw TEXT NOT NULL,
    target TEXT NOT NULL,
    guard TEXT NOT NULL DEFAULT '',
    start_line INTEGER NOT NULL,
    end_line INTEGER NOT NULL
)
`

const createDiagnosticsTable = `
CREATE TABLE IF NOT EXISTS diagnostics (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    file_path TEXT NOT NULL REFERENCES files(file_path) ON DELETE CASCADE,
    kind TEXT NOT NULL,
    message TEXT NOT NULL,
    span_start INTEGER NOT NULL,
    span_end INTEGER NOT NULL
)
`

var schemaIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_symbols_file ON symbols(file_path)`,
	`CREATE INDEX IF NOT EXISTS idx_symbols_name ON symbols(name)`,
	`CREATE INDEX IF NOT EXISTS idx_symbols_kind ON symbols(kind)`,
	`CREATE INDEX IF NOT EXISTS idx_imports_file ON imports(file_path)`,
	`CREATE INDEX IF NOT EXISTS idx_imports_target ON imports(target)`,
}
