// Package filtering provides include/exclude path filtering for snapshot
// capture, using doublestar glob patterns matched against slash-separated
// paths relative to the scan root.
package filtering

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter restricts the set of paths recorded during a scan. A nil Filter
// admits every path.
type Filter struct {
	// includes are the inclusion patterns. If empty, all files are included.
	includes []string
	// excludes are the exclusion patterns. Exclusions take precedence over
	// inclusions.
	excludes []string
}

// New creates a new filter from the specified include and exclude patterns,
// validating each pattern up front.
func New(includes, excludes []string) (*Filter, error) {
	// Validate patterns.
	for _, pattern := range includes {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid include pattern: %s", pattern)
		}
	}
	for _, pattern := range excludes {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern: %s", pattern)
		}
	}

	// Success.
	return &Filter{
		includes: includes,
		excludes: excludes,
	}, nil
}

// Excluded indicates whether or not the specified slash-separated relative
// path matches an exclusion pattern. Excluded directories are pruned from
// scans entirely.
func (f *Filter) Excluded(path string) bool {
	// A nil filter excludes nothing.
	if f == nil {
		return false
	}

	// Check exclusion patterns. Patterns have been validated by New, so match
	// errors can't occur here.
	for _, pattern := range f.excludes {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return true
		}
	}

	// Done.
	return false
}

// Included indicates whether or not an entry at the specified slash-separated
// relative path should be recorded. Directories are always recorded (unless
// excluded) so that tree structure is preserved; files must match an
// inclusion pattern when inclusion patterns are present.
func (f *Filter) Included(path string, directory bool) bool {
	// A nil filter includes everything.
	if f == nil {
		return true
	}

	// Exclusions take precedence.
	if f.Excluded(path) {
		return false
	}

	// Directories are structural and always included.
	if directory {
		return true
	}

	// Without inclusion patterns, all files are included.
	if len(f.includes) == 0 {
		return true
	}

	// Check inclusion patterns.
	for _, pattern := range f.includes {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return true
		}
	}

	// No inclusion pattern matched.
	return false
}

// Describe returns a human-readable description of the filter's patterns,
// suitable for recording in diff metadata.
func (f *Filter) Describe() []string {
	// A nil filter has no description.
	if f == nil {
		return nil
	}

	// Describe patterns.
	var result []string
	for _, pattern := range f.includes {
		result = append(result, "include: "+pattern)
	}
	for _, pattern := range f.excludes {
		result = append(result, "exclude: "+pattern)
	}
	return result
}
