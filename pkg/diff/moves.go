package diff

import (
	"sort"

	"github.com/treediff-io/treediff/pkg/snapshot"
)

const (
	// moveCandidateLimit is the unmatched-set size above which the
	// comparison budget is checked before attempting move detection.
	moveCandidateLimit = 1000
	// moveComparisonBudget is the maximum number of pairwise comparisons
	// move detection is allowed to imply. Inputs exceeding it skip move
	// detection entirely rather than paying quadratic cost.
	moveComparisonBudget = 10000

	// nameSimilarityWeight is the weight of name similarity in the overall
	// similarity score.
	nameSimilarityWeight = 0.4
	// sizeSimilarityWeight is the weight of size similarity in the overall
	// similarity score. It only applies when both nodes report a size.
	sizeSimilarityWeight = 0.4
	// timeSimilarityWeight is the weight of modification time similarity in
	// the overall similarity score. It only applies when both nodes report a
	// modification time.
	timeSimilarityWeight = 0.2

	// timeSimilarityWindowSeconds is the window over which modification time
	// similarity decays linearly to zero.
	timeSimilarityWindowSeconds = 3600.0
)

// moveMatch records the source and confidence of one accepted move match.
type moveMatch struct {
	// fromPath is the matched node's path in the previous snapshot.
	fromPath string
	// similarity is the similarity score that justified the match.
	similarity float64
}

// moveBucketKey groups move candidates that could plausibly match: nodes must
// share an exact type and an exact size (including size absence) to be
// considered.
type moveBucketKey struct {
	// nodeType is the candidate node type.
	nodeType snapshot.NodeType
	// hasSize indicates whether or not the candidates report a size.
	hasSize bool
	// size is the candidate size. It is 0 when hasSize is false.
	size uint64
}

// bucketKeyFor computes the move bucket key for a node.
func bucketKeyFor(node *snapshot.NodeInfo) moveBucketKey {
	key := moveBucketKey{nodeType: node.Type}
	if node.Size != nil {
		key.hasSize = true
		key.size = *node.Size
	}
	return key
}

// detectMoves finds plausible rename/move pairs among nodes that exist
// exclusively on one side, returning a mapping from current path to match.
// Each previous node is claimed by at most one current node, first come first
// served in sorted current-path order. If the unmatched sets are too large to
// compare within budget, an empty mapping is returned.
func detectMoves(previousPaths, currentPaths map[string]*snapshot.NodeInfo, threshold float64) map[string]moveMatch {
	moves := make(map[string]moveMatch)

	// Compute the unmatched sets. Exact-path survivors are handled by the
	// classifier as non-moves.
	var unmatchedPrevious []string
	for p := range previousPaths {
		if _, ok := currentPaths[p]; !ok {
			unmatchedPrevious = append(unmatchedPrevious, p)
		}
	}
	var unmatchedCurrent []string
	for p := range currentPaths {
		if _, ok := previousPaths[p]; !ok {
			unmatchedCurrent = append(unmatchedCurrent, p)
		}
	}

	// Enforce the comparison budget on large inputs.
	if len(unmatchedPrevious) > moveCandidateLimit || len(unmatchedCurrent) > moveCandidateLimit {
		if len(unmatchedPrevious)*len(unmatchedCurrent) > moveComparisonBudget {
			return moves
		}
	}

	// Sort both sets so that matching is deterministic: ties between equally
	// similar candidates resolve to the first candidate scanned.
	sort.Strings(unmatchedPrevious)
	sort.Strings(unmatchedCurrent)

	// Bucket previous candidates by type and size.
	buckets := make(map[moveBucketKey][]string)
	for _, p := range unmatchedPrevious {
		key := bucketKeyFor(previousPaths[p])
		buckets[key] = append(buckets[key], p)
	}

	// Match current nodes against their buckets.
	for _, currentPath := range unmatchedCurrent {
		currentNode := currentPaths[currentPath]
		key := bucketKeyFor(currentNode)
		candidates := buckets[key]
		if len(candidates) == 0 {
			continue
		}

		// Find the best candidate at or above the threshold. Only a strictly
		// greater score displaces an earlier candidate.
		bestIndex := -1
		bestSimilarity := 0.0
		for index, candidatePath := range candidates {
			similarity := calculateSimilarity(previousPaths[candidatePath], currentNode)
			if similarity >= threshold && similarity > bestSimilarity {
				bestSimilarity = similarity
				bestIndex = index
			}
		}

		// Record the match and remove the claimed candidate from its bucket.
		if bestIndex >= 0 {
			moves[currentPath] = moveMatch{
				fromPath:   candidates[bestIndex],
				similarity: bestSimilarity,
			}
			buckets[key] = append(candidates[:bestIndex:bestIndex], candidates[bestIndex+1:]...)
		}
	}

	// Done.
	return moves
}

// calculateSimilarity computes a heuristic confidence (between 0 and 1) that
// current is a renamed or relocated version of previous. Each component is
// scaled by its weight and the total is renormalized by the sum of the
// weights that were actually applicable, so a node missing size and
// modification time is judged purely on name.
func calculateSimilarity(previous, current *snapshot.NodeInfo) float64 {
	var score, factors float64

	// Compare names.
	if previous.Name == current.Name {
		score += nameSimilarityWeight
	} else {
		score += nameSimilarityWeight * calculateNameSimilarity(previous.Name, current.Name)
	}
	factors += nameSimilarityWeight

	// Compare sizes, if both are reported.
	if previous.Size != nil && current.Size != nil {
		previousSize, currentSize := *previous.Size, *current.Size
		if previousSize == currentSize {
			score += sizeSimilarityWeight
		} else {
			smaller, larger := previousSize, currentSize
			if smaller > larger {
				smaller, larger = larger, smaller
			}
			score += sizeSimilarityWeight * (float64(smaller) / float64(larger))
		}
		factors += sizeSimilarityWeight
	}

	// Compare modification times, if both are reported. Times within an hour
	// of each other are considered potentially similar, with similarity
	// decaying linearly across that window.
	if previous.MTime != nil && current.MTime != nil {
		difference := previous.MTime.Sub(*current.MTime).Seconds()
		if difference < 0 {
			difference = -difference
		}
		if difference == 0 {
			score += timeSimilarityWeight
		} else if difference < timeSimilarityWindowSeconds {
			score += timeSimilarityWeight * (1.0 - difference/timeSimilarityWindowSeconds)
		}
		factors += timeSimilarityWeight
	}

	// Renormalize.
	if factors > 0 {
		return score / factors
	}
	return 0
}

// calculateNameSimilarity computes a cheap positional name similarity: the
// number of positions at which both names carry the same character, divided
// by the longer name's length. It is a deliberate approximation, not a true
// edit distance.
func calculateNameSimilarity(first, second string) float64 {
	if first == second {
		return 1.0
	}

	// Compare runes positionally.
	firstRunes := []rune(first)
	secondRunes := []rune(second)
	longer := len(firstRunes)
	if len(secondRunes) > longer {
		longer = len(secondRunes)
	}
	if longer == 0 {
		return 1.0
	}
	shorter := len(firstRunes)
	if len(secondRunes) < shorter {
		shorter = len(secondRunes)
	}
	matches := 0
	for i := 0; i < shorter; i++ {
		if firstRunes[i] == secondRunes[i] {
			matches++
		}
	}

	// Done.
	return float64(matches) / float64(longer)
}
