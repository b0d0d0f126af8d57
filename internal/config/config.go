// Package config defines the project configuration: which paths to scan,
// extraction policy, cache sizing, storage location, and watch behavior.
// Configuration lives in .codescope/config.yml at the project root and can
// be overridden through CODESCOPE_* environment variables.
package config

// Config is the complete project configuration.
type Config struct {
	Paths      PathsConfig      `yaml:"paths" mapstructure:"paths"`
	Extraction ExtractionConfig `yaml:"extraction" mapstructure:"extraction"`
	Cache      CacheConfig      `yaml:"cache" mapstructure:"cache"`
	Storage    StorageConfig    `yaml:"storage" mapstructure:"storage"`
	Watch      WatchConfig      `yaml:"watch" mapstructure:"watch"`
}

// PathsConfig selects which files are scanned.
type PathsConfig struct {
	// Code holds glob patterns for source files, matched against
	// project-relative paths.
	Code []string `yaml:"code" mapstructure:"code"`

	// Ignore holds glob patterns for paths to skip. Use the "dir/**"
	// form to skip a whole subtree.
	Ignore []string `yaml:"ignore" mapstructure:"ignore"`
}

// ExtractionConfig tunes the per-file extraction pipeline.
type ExtractionConfig struct {
	// DocCommentBlankLines is how many blank lines may separate a doc
	// comment from the declaration it documents. Zero means the comment
	// must touch the declaration.
	DocCommentBlankLines int `yaml:"doc_comment_blank_lines" mapstructure:"doc_comment_blank_lines"`

	// Languages restricts extraction to these language identifiers.
	// Empty means every supported language.
	Languages []string `yaml:"languages" mapstructure:"languages"`
}

// CacheConfig sizes the in-memory extraction result cache.
type CacheConfig struct {
	// Capacity is the number of file results the cache holds. Zero
	// disables caching.
	Capacity int `yaml:"capacity" mapstructure:"capacity"`
}

// StorageConfig locates the SQLite symbol database.
type StorageConfig struct {
	// Location is the database path relative to the project root.
	Location string `yaml:"location" mapstructure:"location"`
}

// WatchConfig tunes the file watcher.
type WatchConfig struct {
	// DebounceMS is the quiet period in milliseconds before changed
	// files are re-extracted. Zero means the built-in default.
	DebounceMS int `yaml:"debounce_ms" mapstructure:"debounce_ms"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Code: []string{
				"**/*.c", "**/*.h",
				"**/*.cpp", "**/*.cc", "**/*.hpp",
				"**/*.go",
				"**/*.py",
				"**/*.js", "**/*.jsx", "**/*.mjs", "**/*.cjs",
				"**/*.ts", "**/*.tsx",
				"**/*.java",
				"**/*.rs",
				"**/*.rb",
				"**/*.php",
			},
			Ignore: []string{
				"node_modules/**",
				"vendor/**",
				".git/**",
				"dist/**",
				"build/**",
				"target/**",
				"__pycache__/**",
			},
		},
		Extraction: ExtractionConfig{
			DocCommentBlankLines: 0,
		},
		Cache: CacheConfig{
			Capacity: 10000,
		},
		Storage: StorageConfig{
			Location: ".codescope/symbols.db",
		},
		Watch: WatchConfig{
			DebounceMS: 500,
		},
	}
}
