package snapshot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testSnapshot creates a small valid snapshot for persistence tests.
func testSnapshot(t *testing.T) *Snapshot {
	result, err := New("/some/root", []string{"exclude: **/*.log"})
	if err != nil {
		t.Fatal("unable to create snapshot:", err)
	}
	size := uint64(100)
	result.Nodes = []*NodeInfo{
		{Path: "src", Name: "src", Type: NodeTypeDirectory, Depth: 1},
		{Path: "src/main.go", Name: "main.go", Type: NodeTypeFile, Depth: 2, Size: &size},
	}
	return result
}

func TestSaveAndLoad(t *testing.T) {
	original := testSnapshot(t)
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := Save(original, path); err != nil {
		t.Fatal("unable to save snapshot:", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal("unable to load snapshot:", err)
	}
	if loaded.Identifier != original.Identifier {
		t.Error("identifier mismatch:", loaded.Identifier, "!=", original.Identifier)
	}
	if loaded.Root != original.Root {
		t.Error("root mismatch:", loaded.Root, "!=", original.Root)
	}
	if len(loaded.Nodes) != len(original.Nodes) {
		t.Fatal("node count mismatch:", len(loaded.Nodes), "!=", len(original.Nodes))
	}
	if loaded.Nodes[1].Size == nil || *loaded.Nodes[1].Size != 100 {
		t.Error("node size not preserved")
	}
	if len(loaded.Filters) != 1 || loaded.Filters[0] != original.Filters[0] {
		t.Error("filters not preserved")
	}
}

func TestLoadWithByteOrderMark(t *testing.T) {
	// Write a snapshot and then prepend a UTF-8 byte order mark, which other
	// tooling sometimes emits.
	original := testSnapshot(t)
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := Save(original, path); err != nil {
		t.Fatal("unable to save snapshot:", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal("unable to read snapshot file:", err)
	}
	if err := os.WriteFile(path, append([]byte{0xEF, 0xBB, 0xBF}, data...), 0600); err != nil {
		t.Fatal("unable to rewrite snapshot file:", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal("unable to load snapshot with byte order mark:", err)
	}
	if loaded.Identifier != original.Identifier {
		t.Error("identifier mismatch after transcoding")
	}
}

func TestLoadNonExistent(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("loading a non-existent snapshot succeeded")
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, []byte(`{"identifier": "snap_x"}`), 0600); err != nil {
		t.Fatal("unable to write snapshot file:", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("loading a snapshot without a root succeeded")
	} else if !strings.Contains(err.Error(), "invalid snapshot") {
		t.Error("unexpected error:", err)
	}
}

func TestSaveInvalid(t *testing.T) {
	if err := Save(&Snapshot{}, filepath.Join(t.TempDir(), "snapshot.json")); err == nil {
		t.Error("saving an invalid snapshot succeeded")
	}
}

func TestNewIdentifierPrefix(t *testing.T) {
	result, err := New("/some/root", nil)
	if err != nil {
		t.Fatal("unable to create snapshot:", err)
	}
	if !strings.HasPrefix(result.Identifier, "snap_") {
		t.Error("unexpected identifier prefix:", result.Identifier)
	}
}
