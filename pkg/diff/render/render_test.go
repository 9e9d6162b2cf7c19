package render

import (
	"encoding/json"
	"path"
	"strings"
	"testing"
	"time"

	"github.com/treediff-io/treediff/pkg/diff"
	"github.com/treediff-io/treediff/pkg/snapshot"
)

// testNode creates a node for renderer tests.
func testNode(p string, nodeType snapshot.NodeType, size uint64) *snapshot.NodeInfo {
	node := &snapshot.NodeInfo{
		Path:  p,
		Name:  path.Base(p),
		Type:  nodeType,
		Depth: strings.Count(p, "/") + 1,
	}
	if nodeType == snapshot.NodeTypeFile {
		s := size
		node.Size = &s
	}
	return node
}

// testResult assembles a small mixed result for renderer tests.
func testResult(options *diff.Options) *diff.Result {
	if options == nil {
		options = diff.DefaultOptions()
	}
	metadata := diff.NewMetadata("snapshot.json", "/project", nil, options)
	generated := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	metadata.GeneratedAt = generated

	changes := []*diff.Change{
		{
			Type:    diff.ChangeTypeAdded,
			Current: testNode("added.txt", snapshot.NodeTypeFile, 1024),
		},
		{
			Type:       diff.ChangeTypeMoved,
			Current:    testNode("renamed.txt", snapshot.NodeTypeFile, 100),
			Previous:   testNode("original.txt", snapshot.NodeTypeFile, 100),
			MovedFrom:  "original.txt",
			Similarity: 0.9,
		},
		{
			Type:     diff.ChangeTypeModified,
			Current:  testNode("src", snapshot.NodeTypeDirectory, 0),
			Previous: testNode("src", snapshot.NodeTypeDirectory, 0),
			Children: []*diff.Change{
				{
					Type:     diff.ChangeTypeRemoved,
					Previous: testNode("src/gone.go", snapshot.NodeTypeFile, 2048),
				},
				{
					Type:     diff.ChangeTypeUnchanged,
					Current:  testNode("src/kept.go", snapshot.NodeTypeFile, 10),
					Previous: testNode("src/kept.go", snapshot.NodeTypeFile, 10),
				},
			},
		},
		{
			Type:     diff.ChangeTypeTypeChanged,
			Current:  testNode("thing", snapshot.NodeTypeDirectory, 0),
			Previous: testNode("thing", snapshot.NodeTypeFile, 5),
			FromType: snapshot.NodeTypeFile,
			ToType:   snapshot.NodeTypeDirectory,
		},
	}

	summary := &diff.Summary{}
	for _, change := range changes {
		summary.AddChange(change)
	}

	return &diff.Result{
		Changes:  changes,
		Summary:  summary,
		Metadata: metadata,
	}
}

func TestFormatFlag(t *testing.T) {
	format := FormatText
	if err := format.Set("json"); err != nil {
		t.Fatal("unable to set valid format:", err)
	}
	if format != FormatJSON {
		t.Error("unexpected format:", format)
	}
	if err := format.Set("xml"); err == nil {
		t.Error("invalid format accepted")
	}
	if format.Type() != "format" {
		t.Error("unexpected flag type:", format.Type())
	}
}

func TestNewRendererUnknownFormat(t *testing.T) {
	if _, err := NewRenderer(Format("xml"), false); err == nil {
		t.Error("unknown format produced a renderer")
	}
}

func TestTextRenderer(t *testing.T) {
	renderer, err := NewRenderer(FormatText, false)
	if err != nil {
		t.Fatal("unable to create renderer:", err)
	}
	output, err := renderer.Render(testResult(nil))
	if err != nil {
		t.Fatal("rendering failed:", err)
	}

	if !strings.HasPrefix(output, "./\n") {
		t.Error("output missing tree root")
	}
	for _, expected := range []string{
		"[+] added.txt",
		"[~] renamed.txt ← original.txt (90% similar)",
		"[M] src/",
		"[-] src/gone.go",
		"[T] thing/ (file → directory)",
		"Changes Summary:",
		"1 files added (+)",
		"1 files removed (-)",
		"1 files moved (~)",
		"1 type changes (T)",
		"1 directories modified (M)",
	} {
		if !strings.Contains(output, expected) {
			t.Error("output missing:", expected)
		}
	}

	// Unchanged entries are hidden by default.
	if strings.Contains(output, "src/kept.go") {
		t.Error("unchanged entry displayed without show-unchanged")
	}
}

func TestTextRendererShowUnchanged(t *testing.T) {
	options := diff.DefaultOptions()
	options.ShowUnchanged = true
	renderer, err := NewRenderer(FormatText, false)
	if err != nil {
		t.Fatal("unable to create renderer:", err)
	}
	output, err := renderer.Render(testResult(options))
	if err != nil {
		t.Fatal("rendering failed:", err)
	}
	if !strings.Contains(output, "[=] src/kept.go") {
		t.Error("unchanged entry not displayed")
	}
}

func TestTextRendererNoChanges(t *testing.T) {
	metadata := diff.NewMetadata("snapshot.json", "/project", nil, nil)
	result := &diff.Result{Summary: &diff.Summary{}, Metadata: metadata}
	renderer, err := NewRenderer(FormatText, false)
	if err != nil {
		t.Fatal("unable to create renderer:", err)
	}
	output, err := renderer.Render(result)
	if err != nil {
		t.Fatal("rendering failed:", err)
	}
	if !strings.Contains(output, "No changes detected.") {
		t.Error("empty result not reported")
	}
}

func TestJSONRenderer(t *testing.T) {
	renderer, err := NewRenderer(FormatJSON, false)
	if err != nil {
		t.Fatal("unable to create renderer:", err)
	}
	output, err := renderer.Render(testResult(nil))
	if err != nil {
		t.Fatal("rendering failed:", err)
	}

	// The output must be valid JSON with the expected document shape.
	document := make(map[string]json.RawMessage)
	if err := json.Unmarshal([]byte(output), &document); err != nil {
		t.Fatal("output is not valid JSON:", err)
	}
	for _, key := range []string{"diffMetadata", "diffSummary", "changes"} {
		if _, ok := document[key]; !ok {
			t.Error("output missing key:", key)
		}
	}
	if !strings.Contains(output, `"type": "moved"`) {
		t.Error("change types not rendered as text")
	}
}

func TestMarkdownRenderer(t *testing.T) {
	renderer, err := NewRenderer(FormatMarkdown, false)
	if err != nil {
		t.Fatal("unable to create renderer:", err)
	}
	output, err := renderer.Render(testResult(nil))
	if err != nil {
		t.Fatal("rendering failed:", err)
	}
	for _, expected := range []string{
		"# Directory Changes",
		"## Summary",
		"**Comparison Root:** /project",
		"added.txt",
		"src/gone.go",
	} {
		if !strings.Contains(output, expected) {
			t.Error("output missing:", expected)
		}
	}
}

func TestHTMLRenderer(t *testing.T) {
	renderer, err := NewRenderer(FormatHTML, false)
	if err != nil {
		t.Fatal("unable to create renderer:", err)
	}
	result := testResult(nil)
	result.Changes = append(result.Changes, &diff.Change{
		Type:    diff.ChangeTypeAdded,
		Current: testNode("a<b>.txt", snapshot.NodeTypeFile, 1),
	})
	result.Summary.AddChange(result.Changes[len(result.Changes)-1])
	output, err := renderer.Render(result)
	if err != nil {
		t.Fatal("rendering failed:", err)
	}
	if !strings.Contains(output, "<!DOCTYPE html>") {
		t.Error("output is not a standalone document")
	}
	if strings.Contains(output, "a<b>.txt") {
		t.Error("path not escaped")
	}
	if !strings.Contains(output, "a&lt;b&gt;.txt") {
		t.Error("escaped path missing")
	}
}

func TestFormatSizeChange(t *testing.T) {
	if formatted := formatSizeChange(1024); !strings.HasPrefix(formatted, "+") {
		t.Error("positive delta missing sign:", formatted)
	}
	if formatted := formatSizeChange(-1024); !strings.HasPrefix(formatted, "-") {
		t.Error("negative delta missing sign:", formatted)
	}
}
