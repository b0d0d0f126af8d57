package cli

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/codescope-dev/codescope/internal/batch"
	"github.com/codescope-dev/codescope/internal/config"
	"github.com/codescope-dev/codescope/internal/extract"
	"github.com/codescope-dev/codescope/internal/files"
)

// loadProjectUnits discovers and loads every configured source file under
// the project root. Unit paths are project-relative.
func loadProjectUnits(rootDir string, cfg *config.Config) ([]extract.SourceUnit, error) {
	discovery, err := files.NewDiscovery(rootDir, cfg.Paths.Code, cfg.Paths.Ignore,
		cfg.Extraction.Languages)
	if err != nil {
		return nil, fmt.Errorf("invalid path patterns: %w", err)
	}
	paths, err := discovery.Discover()
	if err != nil {
		return nil, fmt.Errorf("file discovery failed: %w", err)
	}

	var units []extract.SourceUnit
	for _, path := range paths {
		unit, err := files.Load(path)
		if err != nil {
			log.Printf("Warning: skipping %s: %v", path, err)
			continue
		}
		if rel, err := filepath.Rel(rootDir, path); err == nil {
			unit.Path = filepath.ToSlash(rel)
		}
		units = append(units, unit)
	}

	return units, nil
}

// extractProject runs the batch extraction pipeline over the project.
func extractProject(ctx context.Context, rootDir string, cfg *config.Config,
	quiet bool) (*batch.Report, []extract.SourceUnit, error) {

	units, err := loadProjectUnits(rootDir, cfg)
	if err != nil {
		return nil, nil, err
	}

	runner, err := batch.NewRunner(extract.New(extract.Options{
		DocCommentBlankLines: cfg.Extraction.DocCommentBlankLines,
	}), batch.Options{
		CacheCapacity: cfg.Cache.Capacity,
		Progress:      newExtractionProgress(quiet, len(units)),
	})
	if err != nil {
		return nil, nil, err
	}
	defer runner.Close()

	return runner.Run(ctx, units), units, nil
}

// contextsFrom collects the successful results of a batch report, logging
// each failure.
func contextsFrom(report *batch.Report) []*extract.FileContext {
	var contexts []*extract.FileContext
	for _, res := range report.Results {
		if res.Err != nil {
			log.Printf("Warning: extraction failed for %s: %v", res.Path, res.Err)
			continue
		}
		contexts = append(contexts, res.Context)
	}
	return contexts
}

// formatNumber renders an integer with thousands separators.
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	str := fmt.Sprintf("%d", n)
	var result string
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result += ","
		}
		result += string(c)
	}
	return result
}
