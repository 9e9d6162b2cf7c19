// Package render provides renderers that turn diff results into text, JSON,
// Markdown, and HTML representations. Renderers consume results read-only.
package render

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/treediff-io/treediff/pkg/diff"
)

// Format encodes an output format. It implements pflag.Value so that it can
// be bound directly to a command line flag.
type Format string

const (
	// FormatText is the tree-style terminal text format.
	FormatText Format = "text"
	// FormatJSON is the structured JSON format.
	FormatJSON Format = "json"
	// FormatMarkdown is the Markdown report format.
	FormatMarkdown Format = "markdown"
	// FormatHTML is the self-contained HTML document format.
	FormatHTML Format = "html"
)

// String implements pflag.Value.String.
func (f *Format) String() string {
	return string(*f)
}

// Set implements pflag.Value.Set.
func (f *Format) Set(value string) error {
	switch Format(value) {
	case FormatText, FormatJSON, FormatMarkdown, FormatHTML:
		*f = Format(value)
		return nil
	default:
		return fmt.Errorf("unknown format: %s", value)
	}
}

// Type implements pflag.Value.Type.
func (f *Format) Type() string {
	return "format"
}

// Renderer renders a diff result into its string representation.
type Renderer interface {
	// Render renders the result. Implementations must not mutate the result.
	Render(result *diff.Result) (string, error)
}

// NewRenderer creates a renderer for the specified format. The colorize flag
// only affects the text format.
func NewRenderer(format Format, colorize bool) (Renderer, error) {
	switch format {
	case FormatText:
		return &textRenderer{colorize: colorize}, nil
	case FormatJSON:
		return &jsonRenderer{}, nil
	case FormatMarkdown:
		return &markdownRenderer{}, nil
	case FormatHTML:
		return &htmlRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// ShouldColorize indicates whether or not colored output is appropriate for
// the specified file, based on whether it's a terminal.
func ShouldColorize(file *os.File) bool {
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

// changeSymbol returns the display symbol for a change type.
func changeSymbol(changeType diff.ChangeType) string {
	switch changeType {
	case diff.ChangeTypeAdded:
		return "[+]"
	case diff.ChangeTypeRemoved:
		return "[-]"
	case diff.ChangeTypeModified:
		return "[M]"
	case diff.ChangeTypeMoved:
		return "[~]"
	case diff.ChangeTypeTypeChanged:
		return "[T]"
	case diff.ChangeTypeUnchanged:
		return "[=]"
	default:
		return "[?]"
	}
}

// formatSize formats a byte count for display.
func formatSize(size uint64) string {
	return humanize.Bytes(size)
}

// formatSizeChange formats a signed byte delta for display, returning an
// empty string for a zero delta.
func formatSizeChange(delta int64) string {
	if delta == 0 {
		return ""
	}
	if delta > 0 {
		return "+" + humanize.Bytes(uint64(delta))
	}
	return "-" + humanize.Bytes(uint64(-delta))
}

// visibleChanges filters a change list down to the entries that should be
// displayed, dropping unchanged entries unless requested.
func visibleChanges(changes []*diff.Change, showUnchanged bool) []*diff.Change {
	var result []*diff.Change
	for _, change := range changes {
		if change.Type == diff.ChangeTypeUnchanged && !showUnchanged {
			continue
		}
		result = append(result, change)
	}
	return result
}
