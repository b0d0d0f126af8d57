// Package mcp exposes extraction results over the Model Context Protocol:
// a stdio server with tools for context assembly, symbol search, and the
// import graph.
package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/codescope-dev/codescope/internal/batch"
	"github.com/codescope-dev/codescope/internal/config"
	"github.com/codescope-dev/codescope/internal/extract"
	"github.com/codescope-dev/codescope/internal/files"
	"github.com/codescope-dev/codescope/internal/graph"
	"github.com/codescope-dev/codescope/internal/search"
)

// Server manages the MCP server lifecycle and the project state behind its
// tools: extraction results, the symbol index, and the import graph.
type Server struct {
	rootDir string
	cfg     *config.Config
	mcp     *server.MCPServer
	index   *search.Index

	mu          sync.RWMutex
	contexts    map[string]*extract.FileContext
	sources     map[string][]byte
	importGraph *graph.ImportGraph
}

// NewServer creates an MCP server rooted at the given project directory.
// Call LoadProject before Serve to populate the tools.
func NewServer(rootDir string, cfg *config.Config) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	index, err := search.NewIndex()
	if err != nil {
		return nil, fmt.Errorf("failed to create search index: %w", err)
	}

	mcpServer := server.NewMCPServer(
		"codescope-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s := &Server{
		rootDir:  rootDir,
		cfg:      cfg,
		mcp:      mcpServer,
		index:    index,
		contexts: make(map[string]*extract.FileContext),
		sources:  make(map[string][]byte),
	}

	AddContextTool(mcpServer, s)
	AddSymbolsTool(mcpServer, s)
	AddGraphTool(mcpServer, s)

	return s, nil
}

// LoadProject discovers, extracts, and indexes the project's source files.
func (s *Server) LoadProject(ctx context.Context) (*batch.Report, error) {
	discovery, err := files.NewDiscovery(s.rootDir, s.cfg.Paths.Code, s.cfg.Paths.Ignore,
		s.cfg.Extraction.Languages)
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
		// Tools address files by project-relative path.
		if rel, err := filepath.Rel(s.rootDir, path); err == nil {
			unit.Path = filepath.ToSlash(rel)
		}
		units = append(units, unit)
	}

	runner, err := batch.NewRunner(extract.New(extract.Options{
		DocCommentBlankLines: s.cfg.Extraction.DocCommentBlankLines,
	}), batch.Options{CacheCapacity: s.cfg.Cache.Capacity})
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	report := runner.Run(ctx, units)

	for i, res := range report.Results {
		if res.Err != nil {
			log.Printf("Warning: extraction failed for %s: %v", res.Path, res.Err)
			continue
		}
		if err := s.addFileContext(ctx, res.Context, units[i].Text); err != nil {
			return nil, err
		}
	}

	if err := s.rebuildGraph(); err != nil {
		return nil, err
	}

	return report, nil
}

// addFileContext stores one extraction result and indexes its symbols.
func (s *Server) addFileContext(ctx context.Context, fc *extract.FileContext, source []byte) error {
	if err := s.index.IndexFileContext(ctx, fc); err != nil {
		return fmt.Errorf("failed to index %s: %w", fc.Path, err)
	}

	s.mu.Lock()
	s.contexts[fc.Path] = fc
	s.sources[fc.Path] = source
	s.mu.Unlock()

	return nil
}

// rebuildGraph rebuilds the import graph over every stored file context.
func (s *Server) rebuildGraph() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	contexts := make([]*extract.FileContext, 0, len(s.contexts))
	for _, fc := range s.contexts {
		contexts = append(contexts, fc)
	}

	ig, err := graph.Build(contexts)
	if err != nil {
		return fmt.Errorf("failed to build import graph: %w", err)
	}
	s.importGraph = ig
	return nil
}

// fileContext returns the stored result and source for one file.
func (s *Server) fileContext(path string) (*extract.FileContext, []byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fc, ok := s.contexts[path]
	if !ok {
		return nil, nil, false
	}
	return fc, s.sources[path], true
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio...")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		cancel()
		return nil
	case err := <-errCh:
		cancel()
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases the search index.
func (s *Server) Close() error {
	if s.index != nil {
		return s.index.Close()
	}
	return nil
}
