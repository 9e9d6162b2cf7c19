package snapshot

import (
	"errors"
	"fmt"
	"time"
)

// NodeType encodes the type of a filesystem entry tracked in a snapshot.
type NodeType uint8

const (
	// NodeTypeUnknown is the zero NodeType value. It is not valid for use in
	// snapshots and exists only to catch unpopulated values.
	NodeTypeUnknown NodeType = iota
	// NodeTypeFile represents a regular file.
	NodeTypeFile
	// NodeTypeDirectory represents a directory.
	NodeTypeDirectory
	// NodeTypeSymlink represents a symbolic link.
	NodeTypeSymlink
)

// String provides a human-readable representation of a node type.
func (t NodeType) String() string {
	switch t {
	case NodeTypeFile:
		return "file"
	case NodeTypeDirectory:
		return "directory"
	case NodeTypeSymlink:
		return "symlink"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.MarshalText.
func (t NodeType) MarshalText() ([]byte, error) {
	switch t {
	case NodeTypeFile, NodeTypeDirectory, NodeTypeSymlink:
		return []byte(t.String()), nil
	default:
		return nil, fmt.Errorf("invalid node type: %d", t)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.UnmarshalText.
func (t *NodeType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "file":
		*t = NodeTypeFile
	case "directory":
		*t = NodeTypeDirectory
	case "symlink":
		*t = NodeTypeSymlink
	default:
		return fmt.Errorf("unknown node type: %s", string(text))
	}
	return nil
}

// NodeInfo represents a single filesystem entry captured by a scan or loaded
// from a persisted snapshot. Optional metadata uses pointer fields so that
// absence can be distinguished from zero values.
type NodeInfo struct {
	// Path is the path of the entry. It may be absolute (for live scans) or
	// relative (for persisted snapshots); the diff engine normalizes it
	// against a comparison root before use.
	Path string `json:"path"`
	// Name is the base name of the entry.
	Name string `json:"name"`
	// Type is the entry's node type.
	Type NodeType `json:"type"`
	// Depth is the depth of the entry relative to the scan root. Direct
	// children of the scan root have depth 1.
	Depth int `json:"depth"`
	// Size is the entry's size in bytes, if reported.
	Size *uint64 `json:"size,omitempty"`
	// Mode is the entry's permission string (e.g. "-rw-r--r--"), if reported.
	Mode string `json:"mode,omitempty"`
	// MTime is the entry's last modification time, if reported.
	MTime *time.Time `json:"mtime,omitempty"`
	// ChangeTime is the entry's last status change time, if reported.
	ChangeTime *time.Time `json:"changeTime,omitempty"`
	// CreateTime is the entry's creation time, if reported.
	CreateTime *time.Time `json:"createTime,omitempty"`
	// LineCount is the number of lines in the file, if counted.
	LineCount *uint64 `json:"lineCount,omitempty"`
	// WordCount is the number of words in the file, if counted.
	WordCount *uint64 `json:"wordCount,omitempty"`
	// Custom is the output of a custom per-file command, if one was applied.
	Custom string `json:"custom,omitempty"`
}

// Copy creates a deep copy of the node.
func (n *NodeInfo) Copy() *NodeInfo {
	// A nil node copies to nil.
	if n == nil {
		return nil
	}

	// Create a shallow copy.
	result := &NodeInfo{}
	*result = *n

	// Duplicate pointer-valued fields so that the copy is independent.
	result.Size = copyUint64(n.Size)
	result.MTime = copyTime(n.MTime)
	result.ChangeTime = copyTime(n.ChangeTime)
	result.CreateTime = copyTime(n.CreateTime)
	result.LineCount = copyUint64(n.LineCount)
	result.WordCount = copyUint64(n.WordCount)

	// Done.
	return result
}

// EnsureValid ensures that NodeInfo's invariants are respected.
func (n *NodeInfo) EnsureValid() error {
	// A nil node is not valid.
	if n == nil {
		return errors.New("nil node")
	}

	// Verify that the path and name are present.
	if n.Path == "" {
		return errors.New("empty node path")
	} else if n.Name == "" {
		return errors.New("empty node name")
	}

	// Verify that the type is known.
	switch n.Type {
	case NodeTypeFile, NodeTypeDirectory, NodeTypeSymlink:
	default:
		return errors.New("unknown node type")
	}

	// Verify that the depth is sane.
	if n.Depth < 0 {
		return errors.New("negative node depth")
	}

	// Success.
	return nil
}

// copyUint64 duplicates an optional unsigned integer.
func copyUint64(value *uint64) *uint64 {
	if value == nil {
		return nil
	}
	result := *value
	return &result
}

// copyTime duplicates an optional time.
func copyTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	result := *value
	return &result
}
