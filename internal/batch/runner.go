// Package batch runs extraction across many files with bounded parallelism.
// Failures stay isolated per file: one bad unit never affects another's
// result slot.
package batch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/maypok86/otter"

	"github.com/codescope-dev/codescope/internal/extract"
)

// Result is one file's outcome. Exactly one of Context and Err is set.
type Result struct {
	Path    string
	Context *extract.FileContext
	Err     error
	Cached  bool
}

// Report summarizes one batch run.
type Report struct {
	RunID     string
	Results   []Result
	Extracted int
	Cached    int
	Failed    int
	Duration  time.Duration
}

// Progress is called after each file completes. Calls are serialized.
type Progress func(done, total int, path string)

// Options configures a Runner.
type Options struct {
	// Workers bounds extraction parallelism. Zero means GOMAXPROCS.
	Workers int

	// CacheCapacity sizes the content-hash result cache. Zero disables
	// caching.
	CacheCapacity int

	// Progress, when set, receives per-file completion callbacks.
	Progress Progress
}

// Runner extracts batches of source units. Safe for sequential reuse; each
// Run call gets a fresh report and run ID.
type Runner struct {
	extractor *extract.Extractor
	workers   int
	progress  Progress

	cache    otter.Cache[string, *extract.FileContext]
	hasCache bool
}

// NewRunner builds a Runner around an extractor.
func NewRunner(extractor *extract.Extractor, opts Options) (*Runner, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	r := &Runner{
		extractor: extractor,
		workers:   workers,
		progress:  opts.Progress,
	}

	if opts.CacheCapacity > 0 {
		cache, err := otter.MustBuilder[string, *extract.FileContext](opts.CacheCapacity).Build()
		if err != nil {
			return nil, err
		}
		r.cache = cache
		r.hasCache = true
	}

	return r, nil
}

// Close releases the result cache.
func (r *Runner) Close() {
	if r.hasCache {
		r.cache.Close()
	}
}

// Run extracts every unit and returns a report with one result per input,
// in input order. Cancellation marks the remaining files failed with the
// context's error; completed results are kept.
func (r *Runner) Run(ctx context.Context, units []extract.SourceUnit) *Report {
	start := time.Now()
	report := &Report{
		RunID:   uuid.NewString(),
		Results: make([]Result, len(units)),
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	var mu sync.Mutex
	done := 0

	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				report.Results[idx] = r.extractOne(ctx, units[idx])

				mu.Lock()
				done++
				if r.progress != nil {
					r.progress(done, len(units), units[idx].Path)
				}
				mu.Unlock()
			}
		}()
	}

	for i := range units {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, res := range report.Results {
		switch {
		case res.Err != nil:
			report.Failed++
		case res.Cached:
			report.Cached++
		default:
			report.Extracted++
		}
	}
	report.Duration = time.Since(start)

	return report
}

func (r *Runner) extractOne(ctx context.Context, unit extract.SourceUnit) Result {
	res := Result{Path: unit.Path}

	var key string
	if r.hasCache {
		key = cacheKey(unit)
		if fc, ok := r.cache.Get(key); ok {
			res.Context = fc
			res.Cached = true
			return res
		}
	}

	fc, err := r.extractor.Extract(ctx, unit)
	if err != nil {
		res.Err = err
		return res
	}

	res.Context = fc
	if r.hasCache {
		r.cache.Set(key, fc)
	}
	return res
}

// cacheKey ties a cached result to both the path and the exact content, so
// edits invalidate implicitly.
func cacheKey(unit extract.SourceUnit) string {
	sum := sha256.Sum256(unit.Text)
	return unit.Path + ":" + hex.EncodeToString(sum[:])
}
