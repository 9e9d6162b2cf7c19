package identifier

import (
	"strings"
	"testing"
)

// TestIdentifierCreation tests identifier creation.
func TestIdentifierCreation(t *testing.T) {
	// Set up test cases.
	testCases := []string{
		PrefixSnapshot,
		PrefixDiff,
	}

	// Process test cases.
	for _, prefix := range testCases {
		// Create an identifier with the specified prefix.
		identifier, err := New(prefix)
		if err != nil {
			t.Fatal("unable to create identifier:", err)
		}

		// Ensure that the prefix is present.
		if !strings.HasPrefix(identifier, prefix) {
			t.Error("identifier does not have correct prefix")
		}

		// Ensure that the identifier carries an encoded payload.
		if len(identifier) == len(prefix) {
			t.Error("identifier has no random component")
		}
	}
}

// TestIdentifierUniqueness tests that consecutively created identifiers
// differ.
func TestIdentifierUniqueness(t *testing.T) {
	first, err := New(PrefixSnapshot)
	if err != nil {
		t.Fatal("unable to create first identifier:", err)
	}
	second, err := New(PrefixSnapshot)
	if err != nil {
		t.Fatal("unable to create second identifier:", err)
	}
	if first == second {
		t.Error("consecutive identifiers collide")
	}
}
