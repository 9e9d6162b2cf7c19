package diff

import (
	"fmt"

	"github.com/treediff-io/treediff/pkg/snapshot"
)

// ChangeType encodes the verdict for a single node in a comparison.
type ChangeType uint8

const (
	// ChangeTypeAdded indicates an entry present only in the current
	// snapshot.
	ChangeTypeAdded ChangeType = iota
	// ChangeTypeRemoved indicates an entry present only in the previous
	// snapshot.
	ChangeTypeRemoved
	// ChangeTypeModified indicates a directory whose descendant set differs
	// but which itself still exists with the same type.
	ChangeTypeModified
	// ChangeTypeMoved indicates an entry that was relocated or renamed.
	ChangeTypeMoved
	// ChangeTypeTypeChanged indicates an entry whose node type changed (e.g.
	// a file that became a directory).
	ChangeTypeTypeChanged
	// ChangeTypeUnchanged indicates an entry present and identical (by type
	// and path) in both snapshots.
	ChangeTypeUnchanged
)

// String provides a human-readable representation of a change type.
func (t ChangeType) String() string {
	switch t {
	case ChangeTypeAdded:
		return "added"
	case ChangeTypeRemoved:
		return "removed"
	case ChangeTypeModified:
		return "modified"
	case ChangeTypeMoved:
		return "moved"
	case ChangeTypeTypeChanged:
		return "type-changed"
	case ChangeTypeUnchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.MarshalText.
func (t ChangeType) MarshalText() ([]byte, error) {
	switch t {
	case ChangeTypeAdded, ChangeTypeRemoved, ChangeTypeModified,
		ChangeTypeMoved, ChangeTypeTypeChanged, ChangeTypeUnchanged:
		return []byte(t.String()), nil
	default:
		return nil, fmt.Errorf("invalid change type: %d", t)
	}
}

// Change represents the verdict for one node. At least one of Current and
// Previous is always populated; constructing a Change with both nil is a
// programming error and the accessors below will panic on such a value.
type Change struct {
	// Type is the change type.
	Type ChangeType `json:"type"`
	// Current is the node as it exists in the current snapshot. It is nil
	// only for removals.
	Current *snapshot.NodeInfo `json:"current,omitempty"`
	// Previous is the node as it existed in the previous snapshot. It is nil
	// only for additions.
	Previous *snapshot.NodeInfo `json:"previous,omitempty"`
	// MovedFrom is the node's previous path. It is only meaningful when Type
	// is ChangeTypeMoved.
	MovedFrom string `json:"movedFrom,omitempty"`
	// Similarity is the similarity score (between 0 and 1) that justified
	// the move match. It is only meaningful when Type is ChangeTypeMoved.
	Similarity float64 `json:"similarity,omitempty"`
	// FromType is the node's previous type. It is only meaningful when Type
	// is ChangeTypeTypeChanged.
	FromType snapshot.NodeType `json:"fromType,omitempty"`
	// ToType is the node's current type. It is only meaningful when Type is
	// ChangeTypeTypeChanged.
	ToType snapshot.NodeType `json:"toType,omitempty"`
	// Children are nested changes recorded while diffing a directory's
	// contents.
	Children []*Change `json:"children,omitempty"`
}

// Path returns the change's normalized path, preferring the current side. It
// panics if both sides are absent, which can only arise from a classifier
// bug, never from input data.
func (c *Change) Path() string {
	if c.Current != nil {
		return c.Current.Path
	} else if c.Previous != nil {
		return c.Previous.Path
	}
	panic("change has neither current nor previous node")
}

// NodeType returns the change's node type, preferring the current side. It
// panics if both sides are absent.
func (c *Change) NodeType() snapshot.NodeType {
	if c.Current != nil {
		return c.Current.Type
	} else if c.Previous != nil {
		return c.Previous.Type
	}
	panic("change has neither current nor previous node")
}

// IsDirectory indicates whether or not the change refers to a directory.
func (c *Change) IsDirectory() bool {
	return c.NodeType() == snapshot.NodeTypeDirectory
}

// SizeChange returns the signed byte delta for this change, treating missing
// sizes as 0.
func (c *Change) SizeChange() int64 {
	var current, previous int64
	if c.Current != nil && c.Current.Size != nil {
		current = int64(*c.Current.Size)
	}
	if c.Previous != nil && c.Previous.Size != nil {
		previous = int64(*c.Previous.Size)
	}
	return current - previous
}
