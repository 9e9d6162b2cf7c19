package treediff

import (
	"fmt"
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	expected := fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)
	if VersionTag != "" {
		expected += "-" + VersionTag
	}
	if Version != expected {
		t.Error("unexpected version string:", Version, "!=", expected)
	}
	if strings.Contains(Version, " ") {
		t.Error("version string contains spaces:", Version)
	}
}
