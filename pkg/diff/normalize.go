package diff

import (
	"path/filepath"
	"strings"

	"github.com/treediff-io/treediff/pkg/snapshot"
)

// normalizePath rewrites a node path to be relative to the comparison root so
// that absolute paths from live scans and relative paths from persisted
// snapshots compare equal. Normalization is best-effort: if no relative
// mapping can be established, the original path is returned unmodified (in
// slash form) and simply won't match any relative entry. It never fails.
func normalizePath(path, comparisonRoot string) string {
	// Relative paths only need their "current directory" segments removed so
	// that "./a/b" and "a/b" compare equal.
	if !filepath.IsAbs(path) {
		return stripCurrentDirSegments(filepath.ToSlash(path))
	}

	// Try to relativize against the comparison root directly.
	if relative, ok := relativeWithin(comparisonRoot, path); ok {
		return relative
	}

	// Retry with symlink-resolved paths.
	canonicalPath, pathErr := filepath.EvalSymlinks(path)
	canonicalRoot, rootErr := filepath.EvalSymlinks(comparisonRoot)
	if pathErr == nil && rootErr == nil {
		if relative, ok := relativeWithin(canonicalRoot, canonicalPath); ok {
			return relative
		}
	}

	// Fall back to the original path.
	return filepath.ToSlash(path)
}

// relativeWithin attempts to express path relative to root, succeeding only
// if path actually lies within root.
func relativeWithin(root, path string) (string, bool) {
	relative, err := filepath.Rel(root, path)
	if err != nil {
		return "", false
	}
	if relative == ".." || strings.HasPrefix(relative, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(relative), true
}

// stripCurrentDirSegments removes "." segments from a slash-separated
// relative path without performing any other simplification.
func stripCurrentDirSegments(path string) string {
	segments := strings.Split(path, "/")
	filtered := segments[:0]
	for _, segment := range segments {
		if segment != "." && segment != "" {
			filtered = append(filtered, segment)
		}
	}
	return strings.Join(filtered, "/")
}

// normalizeNode clones a node, rewriting its path to the normalized form.
func normalizeNode(node *snapshot.NodeInfo, comparisonRoot string) *snapshot.NodeInfo {
	result := node.Copy()
	result.Path = normalizePath(node.Path, comparisonRoot)
	return result
}
