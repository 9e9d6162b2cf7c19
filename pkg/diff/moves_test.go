package diff

import (
	"fmt"
	"math"
	"testing"

	"github.com/treediff-io/treediff/pkg/snapshot"
)

// similarityTolerance is the tolerance applied to floating point similarity
// comparisons.
const similarityTolerance = 1e-9

func TestCalculateNameSimilarity(t *testing.T) {
	tests := []struct {
		first    string
		second   string
		expected float64
	}{
		{"same", "same", 1.0},
		{"", "", 1.0},
		{"test", "best", 0.75},
		{"abc", "xyz", 0.0},
		{"ab", "abcd", 0.5},
		{"abcd", "ab", 0.5},
		{"a", "", 0.0},
	}
	for _, test := range tests {
		similarity := calculateNameSimilarity(test.first, test.second)
		if math.Abs(similarity-test.expected) > similarityTolerance {
			t.Error("unexpected similarity for", test.first, "/", test.second, ":",
				similarity, "!=", test.expected)
		}
	}
}

func TestCalculateSimilarityIdentical(t *testing.T) {
	previous := testFile("a/file.txt", 100)
	current := testFile("b/file.txt", 100)
	if similarity := calculateSimilarity(previous, current); math.Abs(similarity-1.0) > similarityTolerance {
		t.Error("identical metadata similarity:", similarity, "!=", 1.0)
	}
}

func TestCalculateSimilarityRenormalization(t *testing.T) {
	// Nodes without size or modification time are judged purely on name.
	previous := &snapshot.NodeInfo{Path: "a", Name: "test", Type: snapshot.NodeTypeFile, Depth: 1}
	current := &snapshot.NodeInfo{Path: "b", Name: "best", Type: snapshot.NodeTypeFile, Depth: 1}
	if similarity := calculateSimilarity(previous, current); math.Abs(similarity-0.75) > similarityTolerance {
		t.Error("name-only similarity not renormalized:", similarity, "!=", 0.75)
	}
}

func TestCalculateSimilaritySizeRatio(t *testing.T) {
	previous := testFile("a.bin", 50)
	current := testFile("a.bin", 100)
	// Name and modification time match exactly, size contributes half its
	// weight: 0.4 + 0.4*0.5 + 0.2 = 0.8.
	if similarity := calculateSimilarity(previous, current); math.Abs(similarity-0.8) > similarityTolerance {
		t.Error("unexpected similarity:", similarity, "!=", 0.8)
	}
}

func TestDetectMovesBasic(t *testing.T) {
	previousPaths := buildPathMap([]*snapshot.NodeInfo{testFile("old_name.txt", 100)}, "")
	currentPaths := buildPathMap([]*snapshot.NodeInfo{testFile("new_name.txt", 100)}, "")
	moves := detectMoves(previousPaths, currentPaths, DefaultMoveThreshold)
	match, ok := moves["new_name.txt"]
	if !ok {
		t.Fatal("expected move not detected")
	}
	if match.fromPath != "old_name.txt" {
		t.Error("unexpected move source:", match.fromPath)
	}
	if match.similarity < DefaultMoveThreshold {
		t.Error("similarity below threshold:", match.similarity)
	}
}

func TestDetectMovesSizeBucketing(t *testing.T) {
	// Identical names but different sizes land in different buckets and
	// can't match.
	previousPaths := buildPathMap([]*snapshot.NodeInfo{testFile("a/data.bin", 100)}, "")
	currentPaths := buildPathMap([]*snapshot.NodeInfo{testFile("b/data.bin", 200)}, "")
	moves := detectMoves(previousPaths, currentPaths, 0.0)
	if len(moves) != 0 {
		t.Error("nodes with differing sizes were matched:", moves)
	}
}

func TestDetectMovesCandidateClaiming(t *testing.T) {
	// Two current nodes compete for one previous candidate. The first in
	// sorted order claims it and the second is left unmatched.
	previousPaths := buildPathMap([]*snapshot.NodeInfo{testFile("source.txt", 100)}, "")
	currentPaths := buildPathMap([]*snapshot.NodeInfo{
		testFile("a/source.txt", 100),
		testFile("b/source.txt", 100),
	}, "")
	moves := detectMoves(previousPaths, currentPaths, 0.5)
	if len(moves) != 1 {
		t.Fatal("unexpected match count:", len(moves), "!=", 1)
	}
	if _, ok := moves["a/source.txt"]; !ok {
		t.Error("candidate not claimed by first sorted target")
	}
}

func TestDetectMovesBudget(t *testing.T) {
	// Build unmatched sets large enough to exceed the comparison budget and
	// verify that detection bails rather than running quadratically.
	previousNodes := make([]*snapshot.NodeInfo, 0, moveCandidateLimit+1)
	currentNodes := make([]*snapshot.NodeInfo, 0, moveCandidateLimit+1)
	for i := 0; i <= moveCandidateLimit; i++ {
		previousNodes = append(previousNodes, testFile(fmt.Sprintf("old/%04d.txt", i), 100))
		currentNodes = append(currentNodes, testFile(fmt.Sprintf("new/%04d.txt", i), 100))
	}
	previousPaths := buildPathMap(previousNodes, "")
	currentPaths := buildPathMap(currentNodes, "")
	moves := detectMoves(previousPaths, currentPaths, 0.0)
	if len(moves) != 0 {
		t.Error("move detection ran despite exceeding its budget")
	}
}
