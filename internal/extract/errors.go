package extract

import (
	"errors"
	"fmt"
)

// File-level failures. These abort extraction of the offending file only;
// batch callers report them next to successful results for other files.
var (
	// ErrUnsupportedLanguage means no grammar profile exists for the unit.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrInvalidInput means the unit carried no text to parse.
	ErrInvalidInput = errors.New("invalid input")
)

// FileError wraps a file-level failure with the path it belongs to.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
