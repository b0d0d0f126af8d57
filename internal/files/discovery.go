// Package files finds and loads the source files handed to extraction. The
// extraction core never touches the filesystem; this package is the
// file-loading collaborator in front of it.
package files

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/codescope-dev/codescope/internal/lang"
)

// compiledPattern keeps the pattern text next to its compiled form so
// ignore-suffix rewrites can reuse it.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Discovery walks a root directory and returns the source files matching
// the include patterns, minus ignores and files in unsupported languages.
type Discovery struct {
	rootDir        string
	includes       []compiledPattern
	ignorePatterns []compiledPattern
	languages      map[string]bool
}

// NewDiscovery compiles the include and ignore glob patterns. Patterns use
// '/' as the separator regardless of platform. A non-empty languages list
// restricts discovery to files of those languages; empty means all
// supported languages.
func NewDiscovery(rootDir string, includes, ignores, languages []string) (*Discovery, error) {
	d := &Discovery{rootDir: rootDir}
	if len(languages) > 0 {
		d.languages = make(map[string]bool, len(languages))
		for _, name := range languages {
			d.languages[name] = true
		}
	}

	for _, pattern := range includes {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		d.includes = append(d.includes, compiledPattern{pattern: pattern, glob: g})
	}
	for _, pattern := range ignores {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		d.ignorePatterns = append(d.ignorePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	return d, nil
}

// Discover returns the matching source file paths under the root, in walk
// order. Files whose extension maps to no supported language are skipped
// even when a pattern matches them.
func (d *Discovery) Discover() ([]string, error) {
	var found []string

	err := filepath.WalkDir(d.rootDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(d.rootDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if d.shouldIgnore(relPath) {
			return nil
		}
		if !matchesAny(relPath, d.includes) {
			return nil
		}
		language := lang.Detect(relPath)
		if language == "" {
			return nil
		}
		if d.languages != nil && !d.languages[language] {
			return nil
		}

		found = append(found, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return found, nil
}

// shouldIgnore checks the ignore patterns, including the directory form:
// "node_modules" in a path matches the pattern "node_modules/**".
func (d *Discovery) shouldIgnore(relPath string) bool {
	if strings.HasPrefix(relPath, ".codescope/") || relPath == ".codescope" {
		return true
	}
	if matchesAny(relPath, d.ignorePatterns) {
		return true
	}
	return matchesAny(relPath+"/**", d.ignorePatterns)
}

// matchesAny checks a path against the patterns. Root-level files also
// match "**/"-prefixed patterns with the prefix stripped, so "**/*.c"
// covers both "main.c" and "src/main.c".
func matchesAny(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if g, err := glob.Compile(simplified, '/'); err == nil && g.Match(path) {
					return true
				}
			}
		}
	}

	return false
}
