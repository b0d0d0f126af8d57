package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/codescope-dev/codescope/internal/lang"
)

var (
	// ErrNoCodePatterns indicates that no source file patterns are configured
	ErrNoCodePatterns = errors.New("no code patterns")

	// ErrUnknownLanguage indicates an unsupported language identifier
	ErrUnknownLanguage = errors.New("unknown language")

	// ErrInvalidExtraction indicates invalid extraction settings
	ErrInvalidExtraction = errors.New("invalid extraction settings")

	// ErrInvalidCacheSettings indicates invalid cache configuration
	ErrInvalidCacheSettings = errors.New("invalid cache settings")

	// ErrEmptyStorageLocation indicates a missing database location
	ErrEmptyStorageLocation = errors.New("empty storage location")

	// ErrInvalidWatchSettings indicates invalid watch configuration
	ErrInvalidWatchSettings = errors.New("invalid watch settings")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validatePaths(&cfg.Paths); err != nil {
		errs = append(errs, err)
	}

	if err := validateExtraction(&cfg.Extraction); err != nil {
		errs = append(errs, err)
	}

	if err := validateCache(&cfg.Cache); err != nil {
		errs = append(errs, err)
	}

	if err := validateStorage(&cfg.Storage); err != nil {
		errs = append(errs, err)
	}

	if err := validateWatch(&cfg.Watch); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validatePaths(cfg *PathsConfig) error {
	if len(cfg.Code) == 0 {
		return fmt.Errorf("%w: at least one paths.code pattern is required", ErrNoCodePatterns)
	}
	return nil
}

func validateExtraction(cfg *ExtractionConfig) error {
	var errs []error

	if cfg.DocCommentBlankLines < 0 {
		errs = append(errs, fmt.Errorf("%w: doc_comment_blank_lines cannot be negative, got %d",
			ErrInvalidExtraction, cfg.DocCommentBlankLines))
	}

	supported := make(map[string]bool)
	for _, name := range lang.Supported() {
		supported[name] = true
	}
	for _, name := range cfg.Languages {
		if !supported[name] {
			errs = append(errs, fmt.Errorf("%w: %s (valid: %s)",
				ErrUnknownLanguage, name, supportedList()))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateCache(cfg *CacheConfig) error {
	// Zero disables caching, negative makes no sense.
	if cfg.Capacity < 0 {
		return fmt.Errorf("%w: capacity cannot be negative, got %d",
			ErrInvalidCacheSettings, cfg.Capacity)
	}
	return nil
}

func validateStorage(cfg *StorageConfig) error {
	if strings.TrimSpace(cfg.Location) == "" {
		return fmt.Errorf("%w: storage.location is required", ErrEmptyStorageLocation)
	}
	return nil
}

func validateWatch(cfg *WatchConfig) error {
	if cfg.DebounceMS < 0 {
		return fmt.Errorf("%w: debounce_ms cannot be negative, got %d",
			ErrInvalidWatchSettings, cfg.DebounceMS)
	}
	return nil
}

func supportedList() string {
	return strings.Join(lang.Supported(), ", ")
}

// joinErrors combines multiple errors into a single error, keeping every
// sentinel reachable through errors.Is.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	return fmt.Errorf("validation failed:\n%w", errors.Join(errs...))
}
