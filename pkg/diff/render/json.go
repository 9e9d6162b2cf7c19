package render

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/treediff-io/treediff/pkg/diff"
)

// jsonRenderer renders diff results as indented JSON for programmatic
// consumption.
type jsonRenderer struct{}

// jsonDocument is the top-level JSON output shape.
type jsonDocument struct {
	Metadata *diff.Metadata `json:"diffMetadata"`
	Summary  *diff.Summary  `json:"diffSummary"`
	Changes  []*diff.Change `json:"changes"`
}

// Render implements Renderer.Render.
func (r *jsonRenderer) Render(result *diff.Result) (string, error) {
	// Assemble the document, honoring the unchanged-visibility option.
	document := &jsonDocument{
		Metadata: result.Metadata,
		Summary:  result.Summary,
		Changes:  visibleChanges(result.Changes, result.Metadata.Options.ShowUnchanged),
	}

	// Marshal.
	data, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "unable to marshal diff result")
	}

	// Success.
	return string(data) + "\n", nil
}
