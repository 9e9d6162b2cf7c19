// Package diff implements the snapshot comparison engine: path
// normalization, node indexing, heuristic move detection, recursive change
// classification with cycle protection, and summary aggregation.
package diff

import (
	"sort"

	"github.com/treediff-io/treediff/pkg/snapshot"
)

// Engine compares two snapshots' node lists and produces a structured
// description of what changed. It holds no state across comparisons and is
// safe for reuse.
type Engine struct {
	// options are the options applied to each comparison.
	options *Options
}

// NewEngine creates a diff engine with the specified options. If options is
// nil, defaults are used.
func NewEngine(options *Options) *Engine {
	if options == nil {
		options = DefaultOptions()
	}
	return &Engine{options: options}
}

// traversalContext bundles the per-comparison lookup structures and scratch
// state threaded through recursive classification. It is local to one Compare
// call and never shared.
type traversalContext struct {
	// previousPaths and currentPaths index each side by normalized path.
	previousPaths map[string]*snapshot.NodeInfo
	currentPaths  map[string]*snapshot.NodeInfo
	// previousChildren and currentChildren are the precomputed adjacency
	// structures for each side.
	previousChildren map[string][]string
	currentChildren  map[string][]string
	// moves maps current paths to accepted move matches.
	moves map[string]moveMatch
	// processedPrevious and processedCurrent record nodes that have already
	// received a verdict, preventing a node from being counted once as a
	// top-level entry and again as someone's recursed child.
	processedPrevious map[string]bool
	processedCurrent  map[string]bool
	// inProgress is the set of directory paths currently on the recursion
	// stack, used to stop infinite recursion on cyclic children data.
	inProgress map[string]bool
	// comparisonRoot is the root against which node paths are normalized.
	comparisonRoot string
}

// Compare diffs the previous node list against the current node list and
// returns the resulting change forest, summary, and echoed metadata. It is
// total for well-formed inputs: the engine has no failure modes of its own
// and relies on its callers to have surfaced I/O and format errors already.
func (e *Engine) Compare(previousNodes, currentNodes []*snapshot.NodeInfo, metadata *Metadata) *Result {
	// Build both indices against the comparison root.
	previousPaths := buildPathMap(previousNodes, metadata.ComparisonRoot)
	currentPaths := buildPathMap(currentNodes, metadata.ComparisonRoot)

	// Set up the traversal context.
	ctx := &traversalContext{
		previousPaths:     previousPaths,
		currentPaths:      currentPaths,
		previousChildren:  buildChildrenMap(previousPaths),
		currentChildren:   buildChildrenMap(currentPaths),
		moves:             map[string]moveMatch{},
		processedPrevious: make(map[string]bool),
		processedCurrent:  make(map[string]bool),
		inProgress:        make(map[string]bool),
		comparisonRoot:    metadata.ComparisonRoot,
	}

	// Detect moves if enabled.
	if e.options.DetectMoves && !e.options.IgnoreMoves {
		ctx.moves = detectMoves(previousPaths, currentPaths, e.options.MoveThreshold)
	}

	// Classify every current node. Iteration is in sorted path order, so
	// directories are reached before their descendants and descendants of
	// diffed directories are already claimed (and skipped here) by the time
	// iteration reaches them.
	var changes []*Change
	for _, p := range sortedPaths(currentPaths) {
		if ctx.processedCurrent[p] {
			continue
		}
		changes = append(changes, classify(p, currentPaths[p], ctx))
	}

	// Every previous entry that never received a verdict is a removal. This
	// also covers descendants of removed directories, which no current-side
	// traversal can reach.
	for _, p := range sortedPaths(previousPaths) {
		if !ctx.processedPrevious[p] {
			changes = append(changes, &Change{
				Type:     ChangeTypeRemoved,
				Previous: normalizeNode(previousPaths[p], metadata.ComparisonRoot),
			})
		}
	}

	// Sort by path for stable output independent of input order.
	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Path() < changes[j].Path()
	})

	// Fold the sorted changes into a summary.
	summary := &Summary{}
	for _, change := range changes {
		summary.AddChange(change)
	}

	// Done.
	return &Result{
		Changes:  changes,
		Summary:  summary,
		Metadata: metadata,
	}
}

// classify produces the verdict for a single current-side node, consulting
// the previous index and the move table, and recursing into directory
// contents. It marks every node it touches as processed.
func classify(p string, current *snapshot.NodeInfo, ctx *traversalContext) *Change {
	// If the path exists on both sides, the node survived: check for a type
	// change, diff directory contents, or report it unchanged. No file
	// content comparison is performed.
	if previous, ok := ctx.previousPaths[p]; ok {
		ctx.processedPrevious[p] = true
		ctx.processedCurrent[p] = true
		if current.Type != previous.Type {
			return &Change{
				Type:     ChangeTypeTypeChanged,
				Current:  normalizeNode(current, ctx.comparisonRoot),
				Previous: normalizeNode(previous, ctx.comparisonRoot),
				FromType: previous.Type,
				ToType:   current.Type,
			}
		} else if current.Type == snapshot.NodeTypeDirectory {
			change := &Change{
				Type:     ChangeTypeUnchanged,
				Current:  normalizeNode(current, ctx.comparisonRoot),
				Previous: normalizeNode(previous, ctx.comparisonRoot),
			}
			checkDirectoryModified(change, ctx)
			return change
		}
		return &Change{
			Type:     ChangeTypeUnchanged,
			Current:  normalizeNode(current, ctx.comparisonRoot),
			Previous: normalizeNode(previous, ctx.comparisonRoot),
		}
	}

	// If the path is the target of an accepted move, report the move. If the
	// recorded source is somehow missing from the previous index, degrade to
	// an addition.
	if match, ok := ctx.moves[p]; ok {
		ctx.processedCurrent[p] = true
		if previous, ok := ctx.previousPaths[match.fromPath]; ok {
			ctx.processedPrevious[match.fromPath] = true
			return &Change{
				Type:       ChangeTypeMoved,
				Current:    normalizeNode(current, ctx.comparisonRoot),
				Previous:   normalizeNode(previous, ctx.comparisonRoot),
				MovedFrom:  match.fromPath,
				Similarity: match.similarity,
			}
		}
		return &Change{
			Type:    ChangeTypeAdded,
			Current: normalizeNode(current, ctx.comparisonRoot),
		}
	}

	// Otherwise the node is new.
	ctx.processedCurrent[p] = true
	return &Change{
		Type:    ChangeTypeAdded,
		Current: normalizeNode(current, ctx.comparisonRoot),
	}
}

// checkDirectoryModified diffs the contents of a directory that exists with
// directory type on both sides, attaching child verdicts to the directory's
// change and upgrading its type to Modified if any child actually changed.
// The context's in-progress set guards against unbounded recursion on
// pathological children data that reaches a directory already on the
// recursion stack.
func checkDirectoryModified(dirChange *Change, ctx *traversalContext) {
	dirPath := dirChange.Path()

	// Stop immediately if this directory is already being diffed.
	if ctx.inProgress[dirPath] {
		return
	}
	ctx.inProgress[dirPath] = true
	defer delete(ctx.inProgress, dirPath)

	hasChanges := false

	// Classify current-side children that haven't been claimed yet. A child
	// verdict other than unchanged marks this directory's contents as
	// differing.
	for _, childPath := range ctx.currentChildren[dirPath] {
		if ctx.processedCurrent[childPath] {
			continue
		}
		childChange := classify(childPath, ctx.currentPaths[childPath], ctx)
		if childChange.Type != ChangeTypeUnchanged {
			hasChanges = true
		}
		dirChange.Children = append(dirChange.Children, childChange)
	}

	// Any previous-side child that never received a verdict was removed.
	for _, childPath := range ctx.previousChildren[dirPath] {
		if ctx.processedPrevious[childPath] {
			continue
		}
		ctx.processedPrevious[childPath] = true
		dirChange.Children = append(dirChange.Children, &Change{
			Type:     ChangeTypeRemoved,
			Previous: normalizeNode(ctx.previousPaths[childPath], ctx.comparisonRoot),
		})
		hasChanges = true
	}

	// Upgrade the directory's verdict if its contents differ.
	if hasChanges {
		dirChange.Type = ChangeTypeModified
	}
}
