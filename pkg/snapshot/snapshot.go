// Package snapshot provides the node model for filesystem tree snapshots,
// snapshot persistence, and the live filesystem scanner that produces them.
package snapshot

import (
	"errors"
	"fmt"
	"time"

	"github.com/treediff-io/treediff/pkg/identifier"
)

// Snapshot represents one complete flat capture of a filesystem tree at a
// point in time.
type Snapshot struct {
	// Identifier is the snapshot's unique identifier.
	Identifier string `json:"identifier"`
	// Root is the path of the tree root that was captured.
	Root string `json:"root"`
	// GeneratedAt is the time at which the snapshot was captured.
	GeneratedAt time.Time `json:"generatedAt"`
	// Filters describes any filters that were applied during capture.
	Filters []string `json:"filters,omitempty"`
	// Nodes is the flat list of captured entries, in traversal order.
	Nodes []*NodeInfo `json:"nodes"`
}

// New creates an empty snapshot for the specified root with a fresh
// identifier and the current time.
func New(root string, filters []string) (*Snapshot, error) {
	// Create an identifier.
	id, err := identifier.New(identifier.PrefixSnapshot)
	if err != nil {
		return nil, fmt.Errorf("unable to create snapshot identifier: %w", err)
	}

	// Create the snapshot.
	return &Snapshot{
		Identifier:  id,
		Root:        root,
		GeneratedAt: time.Now(),
		Filters:     filters,
	}, nil
}

// EnsureValid ensures that Snapshot's invariants are respected.
func (s *Snapshot) EnsureValid() error {
	// A nil snapshot is not valid.
	if s == nil {
		return errors.New("nil snapshot")
	}

	// Verify that the root is present.
	if s.Root == "" {
		return errors.New("empty snapshot root")
	}

	// Verify nodes.
	for _, node := range s.Nodes {
		if err := node.EnsureValid(); err != nil {
			return fmt.Errorf("invalid node: %w", err)
		}
	}

	// Success.
	return nil
}
