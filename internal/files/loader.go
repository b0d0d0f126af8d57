package files

import (
	"fmt"
	"os"

	"github.com/codescope-dev/codescope/internal/extract"
)

// ErrBinaryFile marks files rejected by the null-byte sniff.
var ErrBinaryFile = fmt.Errorf("files: binary file")

// Load reads one source file into a SourceUnit, rejecting binaries. The
// language is left for the extractor to detect from the path.
func Load(path string) (extract.SourceUnit, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return extract.SourceUnit{}, fmt.Errorf("files: read %s: %w", path, err)
	}
	if !isText(text) {
		return extract.SourceUnit{}, fmt.Errorf("%w: %s", ErrBinaryFile, path)
	}
	return extract.SourceUnit{Path: path, Text: text}, nil
}

// isText sniffs the first 512 bytes for null bytes, the same heuristic git
// uses to separate text from binary.
func isText(content []byte) bool {
	limit := len(content)
	if limit > 512 {
		limit = 512
	}
	for i := 0; i < limit; i++ {
		if content[i] == 0 {
			return false
		}
	}
	return true
}
