package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/codescope-dev/codescope/internal/config"
	"github.com/codescope-dev/codescope/internal/extract"
	"github.com/codescope-dev/codescope/internal/files"
	"github.com/codescope-dev/codescope/internal/lang"
	"github.com/codescope-dev/codescope/internal/storage"
	"github.com/codescope-dev/codescope/internal/watcher"
)

var watchFlag bool

// indexCmd represents the index command
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Extract the project into the symbol database",
	Long: `Index extracts every configured source file and stores the results in the
project's SQLite symbol database (.codescope/symbols.db by default).

The indexer:
  - Discovers source files via the configured include/ignore patterns
  - Parses each file into imports, scopes, and symbols
  - Stores the results for symbol lookup and context assembly

Examples:
  # Index the current directory
  codescope index

  # Index without progress output
  codescope index --quiet

  # Keep watching for changes and re-index changed files
  codescope index --watch
`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "watch for file changes and re-index incrementally")
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted! Cancelling indexing...")
		cancel()
	}()

	rootDir, err := projectRoot()
	if err != nil {
		return err
	}
	cfg, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbPath := filepath.Join(rootDir, cfg.Storage.Location)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open symbol database: %w", err)
	}
	defer db.Close()

	if err := storage.CreateSchema(db); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	writer := storage.NewWriter(db)

	report, units, err := extractProject(ctx, rootDir, cfg, quietFlag)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return fmt.Errorf("indexing cancelled")
	}

	for i, res := range report.Results {
		if res.Err != nil {
			log.Printf("Warning: extraction failed for %s: %v", res.Path, res.Err)
			continue
		}
		if err := writer.SaveFileContext(res.Context, units[i].Text, report.RunID); err != nil {
			return fmt.Errorf("failed to store %s: %w", res.Path, err)
		}
	}

	if !quietFlag {
		fmt.Printf("✓ Indexing complete: %s files (%s extracted, %s cached, %s failed) in %.1fs\n",
			formatNumber(len(report.Results)),
			formatNumber(report.Extracted),
			formatNumber(report.Cached),
			formatNumber(report.Failed),
			report.Duration.Seconds())
	}

	if !watchFlag {
		return nil
	}

	return watchAndReindex(ctx, rootDir, cfg, writer)
}

// watchAndReindex blocks, re-extracting changed files until cancellation.
func watchAndReindex(ctx context.Context, rootDir string, cfg *config.Config,
	writer *storage.Writer) error {

	w, err := watcher.New([]string{rootDir}, time.Duration(cfg.Watch.DebounceMS)*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer w.Stop()

	extractor := extract.New(extract.Options{
		DocCommentBlankLines: cfg.Extraction.DocCommentBlankLines,
	})

	var allowed map[string]bool
	if len(cfg.Extraction.Languages) > 0 {
		allowed = make(map[string]bool, len(cfg.Extraction.Languages))
		for _, name := range cfg.Extraction.Languages {
			allowed[name] = true
		}
	}

	err = w.Start(ctx, func(changed []string) {
		runID := uuid.NewString()
		for _, path := range changed {
			rel := path
			if r, err := filepath.Rel(rootDir, path); err == nil {
				rel = filepath.ToSlash(r)
			}
			if allowed != nil && !allowed[lang.Detect(rel)] {
				continue
			}

			unit, err := files.Load(path)
			if err != nil {
				// Deleted files leave the database.
				if errors.Is(err, fs.ErrNotExist) {
					if err := writer.DeleteFile(rel); err != nil {
						log.Printf("Warning: failed to remove %s: %v", rel, err)
					} else if !quietFlag {
						log.Printf("Removed %s", rel)
					}
					continue
				}
				log.Printf("Warning: skipping %s: %v", rel, err)
				continue
			}
			unit.Path = rel

			fc, err := extractor.Extract(ctx, unit)
			if err != nil {
				log.Printf("Warning: extraction failed for %s: %v", rel, err)
				continue
			}
			if err := writer.SaveFileContext(fc, unit.Text, runID); err != nil {
				log.Printf("Warning: failed to store %s: %v", rel, err)
				continue
			}
			if !quietFlag {
				log.Printf("Re-indexed %s", rel)
			}
		}
	})
	if err != nil {
		return fmt.Errorf("failed to start watch mode: %w", err)
	}

	if !quietFlag {
		log.Println("Watching for changes (Ctrl+C to stop)...")
	}

	<-ctx.Done()
	return nil
}
