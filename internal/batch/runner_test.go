package batch

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codescope-dev/codescope/internal/extract"
)

// Test Plan for the batch runner:
// - One result per input unit, in input order
// - Per-file failures never disturb sibling results
// - Content-hash cache serves repeat runs without re-extraction
// - Changed content misses the cache
// - Progress fires once per file with a monotonically growing counter
// - Every run gets a distinct run ID

func testUnits() []extract.SourceUnit {
	return []extract.SourceUnit{
		{Path: "good.c", Text: []byte("int one(void) { return 1; }\n")},
		{Path: "empty.c", Text: nil},
		{Path: "notes.txt", Text: []byte("plain text")},
		{Path: "also_good.py", Text: []byte("def two():\n    return 2\n")},
	}
}

func TestRun_FailureIsolation(t *testing.T) {
	t.Parallel()

	r, err := NewRunner(extract.New(extract.Options{}), Options{Workers: 2})
	require.NoError(t, err)
	defer r.Close()

	report := r.Run(context.Background(), testUnits())

	require.Len(t, report.Results, 4)
	assert.Equal(t, 2, report.Extracted)
	assert.Equal(t, 2, report.Failed)

	assert.NoError(t, report.Results[0].Err)
	require.NotNil(t, report.Results[0].Context)
	assert.Equal(t, "good.c", report.Results[0].Path)

	assert.True(t, errors.Is(report.Results[1].Err, extract.ErrInvalidInput))
	assert.True(t, errors.Is(report.Results[2].Err, extract.ErrUnsupportedLanguage))

	assert.NoError(t, report.Results[3].Err)
	require.NotNil(t, report.Results[3].Context)
	assert.Equal(t, "python", report.Results[3].Context.Language)
}

func TestRun_CacheHitsOnRepeat(t *testing.T) {
	t.Parallel()

	r, err := NewRunner(extract.New(extract.Options{}), Options{Workers: 2, CacheCapacity: 64})
	require.NoError(t, err)
	defer r.Close()

	units := []extract.SourceUnit{
		{Path: "a.c", Text: []byte("int a(void) { return 0; }\n")},
	}

	first := r.Run(context.Background(), units)
	assert.Equal(t, 1, first.Extracted)
	assert.Equal(t, 0, first.Cached)

	second := r.Run(context.Background(), units)
	assert.Equal(t, 0, second.Extracted)
	assert.Equal(t, 1, second.Cached)
	assert.True(t, second.Results[0].Cached)

	// Same path, new content: the key changes with the hash.
	units[0].Text = []byte("int a(void) { return 42; }\n")
	third := r.Run(context.Background(), units)
	assert.Equal(t, 1, third.Extracted)
	assert.Equal(t, 0, third.Cached)
}

func TestRun_Progress(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var counts []int

	r, err := NewRunner(extract.New(extract.Options{}), Options{
		Workers: 3,
		Progress: func(done, total int, path string) {
			mu.Lock()
			defer mu.Unlock()
			assert.Equal(t, 4, total)
			counts = append(counts, done)
		},
	})
	require.NoError(t, err)
	defer r.Close()

	r.Run(context.Background(), testUnits())

	require.Len(t, counts, 4)
	assert.IsIncreasing(t, counts, "progress counter is serialized")
	assert.Equal(t, 4, counts[len(counts)-1])
}

func TestRun_DistinctRunIDs(t *testing.T) {
	t.Parallel()

	r, err := NewRunner(extract.New(extract.Options{}), Options{})
	require.NoError(t, err)
	defer r.Close()

	a := r.Run(context.Background(), nil)
	b := r.Run(context.Background(), nil)

	assert.NotEmpty(t, a.RunID)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestRun_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, err := NewRunner(extract.New(extract.Options{}), Options{Workers: 1})
	require.NoError(t, err)
	defer r.Close()

	report := r.Run(ctx, testUnits())
	assert.Equal(t, len(testUnits()), report.Failed)
	for _, res := range report.Results {
		assert.Error(t, res.Err)
	}
}
