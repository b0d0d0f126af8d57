package cli

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/codescope-dev/codescope/internal/batch"
)

// newExtractionProgress returns a batch.Progress callback backed by a
// progress bar, or nil when quiet output was requested.
func newExtractionProgress(quiet bool, total int) batch.Progress {
	if quiet || total == 0 {
		return nil
	}

	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Extracting files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)

	return func(done, total int, path string) {
		bar.Add(1)
	}
}
