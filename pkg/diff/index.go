package diff

import (
	"path"
	"sort"

	"github.com/treediff-io/treediff/pkg/snapshot"
)

// buildPathMap indexes a flat node list by normalized path. If two nodes
// normalize to the same path (a degenerate input), the last one wins.
func buildPathMap(nodes []*snapshot.NodeInfo, comparisonRoot string) map[string]*snapshot.NodeInfo {
	result := make(map[string]*snapshot.NodeInfo, len(nodes))
	for _, node := range nodes {
		result[normalizePath(node.Path, comparisonRoot)] = node
	}
	return result
}

// buildChildrenMap precomputes, for each directory path appearing as a
// parent, the sorted list of its immediate children's normalized paths. Paths
// equal to their own computed parent are excluded to avoid self-references.
func buildChildrenMap(pathMap map[string]*snapshot.NodeInfo) map[string][]string {
	// Record each path under its parent.
	result := make(map[string][]string)
	for p := range pathMap {
		if parent := path.Dir(p); parent != p {
			result[parent] = append(result[parent], p)
		}
	}

	// Sort child lists so that traversal order is deterministic.
	for _, children := range result {
		sort.Strings(children)
	}

	// Done.
	return result
}

// sortedPaths returns the keys of a path map in ascending lexicographic
// order. Sorted iteration keeps classification deterministic and guarantees
// that directories are visited before their descendants, since a parent path
// is always a proper prefix of its children's paths.
func sortedPaths(pathMap map[string]*snapshot.NodeInfo) []string {
	result := make([]string, 0, len(pathMap))
	for p := range pathMap {
		result = append(result, p)
	}
	sort.Strings(result)
	return result
}
