package lang

import (
	"path/filepath"
	"sort"
	"strings"
)

// The registry is built once at package init and never mutated afterwards,
// so it can be shared across extraction workers without locking.
var (
	profiles   map[string]*Profile
	extensions map[string]string
)

func init() {
	all := []*Profile{
		newCProfile(),
		newCppProfile(),
		newGoProfile(),
		newPythonProfile(),
		newJavaProfile(),
		newJavaScriptProfile(),
		newTypeScriptProfile(),
		newTSXProfile(),
		newRustProfile(),
		newRubyProfile(),
		newPhpProfile(),
	}

	profiles = make(map[string]*Profile, len(all))
	extensions = make(map[string]string)
	for _, p := range all {
		profiles[p.Name] = p
		for _, ext := range p.Extensions {
			extensions[ext] = p.Name
		}
	}
}

// ByName returns the profile for a language identifier.
func ByName(name string) (*Profile, bool) {
	p, ok := profiles[name]
	return p, ok
}

// Detect maps a file path to a language identifier by extension, or "".
func Detect(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	return extensions[ext]
}

// Supported returns the sorted list of supported language identifiers.
func Supported() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
