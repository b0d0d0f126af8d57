// Package search maintains an in-memory full-text index over extracted
// symbols, queried by the CLI and the MCP server.
package search

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/codescope-dev/codescope/internal/extract"
)

// Result is one symbol hit.
type Result struct {
	FilePath  string  `json:"file_path"`
	Name      string  `json:"name"`
	Kind      string  `json:"kind"`
	Signature string  `json:"signature"`
	ScopePath string  `json:"scope_path"`
	Doc       string  `json:"doc,omitempty"`
	Score     float64 `json:"score"`
}

// Options narrows a search.
type Options struct {
	// Limit caps the number of hits. Zero or out-of-range means 15.
	Limit int

	// Kind filters to one symbol kind, exact match.
	Kind string

	// Language filters to one language, exact match.
	Language string
}

// Index is a symbol search index. Queries may run concurrently with
// updates.
type Index struct {
	index bleve.Index
	mu    sync.RWMutex

	// docIDs remembers which documents each file contributed, so
	// re-indexing or removing a file can drop its stale documents.
	docIDs map[string][]string
}

// NewIndex creates an empty in-memory symbol index.
func NewIndex() (*Index, error) {
	index, err := bleve.NewMemOnly(buildMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create bleve index: %w", err)
	}
	return &Index{index: index, docIDs: make(map[string][]string)}, nil
}

// buildMapping indexes name/signature/doc/path with the standard analyzer
// for token search and kind/language with the keyword analyzer for exact
// filtering.
func buildMapping() *mapping.IndexMappingImpl {
	indexMapping := bleve.NewIndexMapping()

	text := bleve.NewTextFieldMapping()
	text.Analyzer = "standard"
	text.Store = true
	text.Index = true

	keyword := bleve.NewTextFieldMapping()
	keyword.Analyzer = "keyword"
	keyword.Store = true
	keyword.Index = true

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("name", text)
	docMapping.AddFieldMappingsAt("signature", text)
	docMapping.AddFieldMappingsAt("doc", text)
	docMapping.AddFieldMappingsAt("file_path", text)
	docMapping.AddFieldMappingsAt("scope_path", text)
	docMapping.AddFieldMappingsAt("kind", keyword)
	docMapping.AddFieldMappingsAt("language", keyword)

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// IndexFileContext (re)indexes one file's symbols. Documents are keyed by
// path and span, so re-indexing the same extraction result is idempotent.
func (ix *Index) IndexFileContext(ctx context.Context, fc *extract.FileContext) error {
	const batchSize = 1000

	ix.mu.Lock()
	defer ix.mu.Unlock()

	batch := ix.index.NewBatch()
	for _, id := range ix.docIDs[fc.Path] {
		batch.Delete(id)
	}

	var ids []string
	i := 0
	for sym := range fc.SymbolSeq() {
		if i%batchSize == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		i++

		id := fc.Path + "#" + strconv.Itoa(sym.Span.Start)
		ids = append(ids, id)
		doc := map[string]interface{}{
			"name":       sym.Name,
			"signature":  sym.Signature,
			"doc":        sym.Doc,
			"file_path":  fc.Path,
			"scope_path": fc.ScopePath(sym.Scope),
			"kind":       string(sym.Kind),
			"language":   fc.Language,
		}
		if err := batch.Index(id, doc); err != nil {
			return fmt.Errorf("failed to add symbol %s to batch: %w", sym.Name, err)
		}

		if batch.Size() >= batchSize {
			if err := ix.index.Batch(batch); err != nil {
				return fmt.Errorf("failed to execute batch: %w", err)
			}
			batch = ix.index.NewBatch()
		}
	}

	if batch.Size() > 0 {
		if err := ix.index.Batch(batch); err != nil {
			return fmt.Errorf("failed to execute final batch: %w", err)
		}
	}

	ix.docIDs[fc.Path] = ids
	return nil
}

// Search runs a bleve query-string query over the indexed symbols.
func (ix *Index) Search(ctx context.Context, queryStr string, opts Options) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	limit := opts.Limit
	if limit <= 0 || limit > 100 {
		limit = 15
	}

	var queries []query.Query
	queries = append(queries, bleve.NewQueryStringQuery(queryStr))

	if opts.Kind != "" {
		kindQuery := bleve.NewTermQuery(opts.Kind)
		kindQuery.SetField("kind")
		queries = append(queries, kindQuery)
	}
	if opts.Language != "" {
		langQuery := bleve.NewTermQuery(opts.Language)
		langQuery.SetField("language")
		queries = append(queries, langQuery)
	}

	var finalQuery query.Query
	if len(queries) == 1 {
		finalQuery = queries[0]
	} else {
		finalQuery = bleve.NewConjunctionQuery(queries...)
	}

	request := bleve.NewSearchRequestOptions(finalQuery, limit, 0, false)
	request.Fields = []string{"name", "signature", "doc", "file_path", "scope_path", "kind"}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	searchResult, err := ix.index.Search(request)
	if err != nil {
		return nil, fmt.Errorf("bleve search failed: %w", err)
	}

	results := make([]Result, 0, len(searchResult.Hits))
	for _, hit := range searchResult.Hits {
		name, _ := hit.Fields["name"].(string)
		signature, _ := hit.Fields["signature"].(string)
		doc, _ := hit.Fields["doc"].(string)
		filePath, _ := hit.Fields["file_path"].(string)
		scopePath, _ := hit.Fields["scope_path"].(string)
		kind, _ := hit.Fields["kind"].(string)

		results = append(results, Result{
			FilePath:  filePath,
			Name:      name,
			Kind:      kind,
			Signature: signature,
			ScopePath: scopePath,
			Doc:       doc,
			Score:     hit.Score,
		})
	}

	return results, nil
}

// RemoveFile drops a file's symbols from the index.
func (ix *Index) RemoveFile(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	ids := ix.docIDs[path]
	if len(ids) == 0 {
		return nil
	}

	batch := ix.index.NewBatch()
	for _, id := range ids {
		batch.Delete(id)
	}
	if err := ix.index.Batch(batch); err != nil {
		return fmt.Errorf("failed to delete documents for %s: %w", path, err)
	}

	delete(ix.docIDs, path)
	return nil
}

// Close releases the index.
func (ix *Index) Close() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.index.Close()
}
