package render

import (
	"fmt"
	"path"
	"strings"

	"github.com/fatih/color"

	"github.com/treediff-io/treediff/pkg/diff"
)

// textRenderer renders diff results as tree-style terminal text with change
// markers.
type textRenderer struct {
	// colorize indicates whether or not to apply terminal colors.
	colorize bool
}

// changeColor returns the color used for a change type.
func changeColor(changeType diff.ChangeType) *color.Color {
	switch changeType {
	case diff.ChangeTypeAdded:
		return color.New(color.FgGreen)
	case diff.ChangeTypeRemoved:
		return color.New(color.FgRed)
	case diff.ChangeTypeModified:
		return color.New(color.FgYellow)
	case diff.ChangeTypeMoved:
		return color.New(color.FgMagenta)
	case diff.ChangeTypeTypeChanged:
		return color.New(color.FgCyan)
	default:
		return color.New(color.FgHiBlack)
	}
}

// Render implements Renderer.Render.
func (r *textRenderer) Render(result *diff.Result) (string, error) {
	output := &strings.Builder{}

	// Write the tree root.
	fmt.Fprintln(output, "./")

	// Render visible top-level changes. The change list is already sorted by
	// path.
	options := result.Metadata.Options
	changes := visibleChanges(result.Changes, options.ShowUnchanged)
	for i, change := range changes {
		r.renderChange(output, change, "", i == len(changes)-1, options.ShowSize, options.ShowUnchanged)
	}

	// Write the summary.
	fmt.Fprintln(output)
	fmt.Fprintln(output, "Changes Summary:")
	summary := result.Summary
	if summary.Added > 0 {
		fmt.Fprintf(output, "  %s (+)\n", countPair(summary.DirectoriesAdded, summary.FilesAdded, "added"))
	}
	if summary.Removed > 0 {
		fmt.Fprintf(output, "  %s (-)\n", countPair(summary.DirectoriesRemoved, summary.FilesRemoved, "removed"))
	}
	if summary.Moved > 0 {
		fmt.Fprintf(output, "  %s (~)\n", countPair(summary.DirectoriesMoved, summary.FilesMoved, "moved"))
	}
	if summary.TypeChanged > 0 {
		fmt.Fprintf(output, "  %d type changes (T)\n", summary.TypeChanged)
	}
	if summary.Modified > 0 {
		fmt.Fprintf(output, "  %d directories modified (M)\n", summary.Modified)
	}
	if options.ShowUnchanged && summary.Unchanged > 0 {
		fmt.Fprintf(output, "  %d items unchanged\n", summary.Unchanged)
	}
	if options.ShowSize && summary.SizeChange != 0 {
		fmt.Fprintf(output, "  Total size change: %s\n", formatSizeChange(summary.SizeChange))
	}
	if summary.TotalChanges() == 0 {
		fmt.Fprintln(output, "  No changes detected.")
	}

	// Success.
	return output.String(), nil
}

// renderChange renders one change and its children as tree lines.
func (r *textRenderer) renderChange(output *strings.Builder, change *diff.Change, prefix string, last, showSize, showUnchanged bool) {
	// Determine the tree connector characters.
	connector, extension := "├── ", "│   "
	if last {
		connector, extension = "└── ", "    "
	}

	// Build the line for this change.
	line := &strings.Builder{}
	fmt.Fprintf(line, "%s %s", changeSymbol(change.Type), change.Path())
	if change.IsDirectory() {
		line.WriteString("/")
	}
	switch change.Type {
	case diff.ChangeTypeMoved:
		fmt.Fprintf(line, " ← %s (%.0f%% similar)", path.Base(change.MovedFrom), change.Similarity*100)
	case diff.ChangeTypeTypeChanged:
		fmt.Fprintf(line, " (%s → %s)", change.FromType, change.ToType)
	}
	if showSize && !change.IsDirectory() && change.Current != nil && change.Current.Size != nil {
		fmt.Fprintf(line, " (%s)", formatSize(*change.Current.Size))
	}

	// Write the line, colorized if appropriate.
	text := line.String()
	if r.colorize {
		text = changeColor(change.Type).Sprint(text)
	}
	fmt.Fprintf(output, "%s%s%s\n", prefix, connector, text)

	// Render children.
	children := visibleChanges(change.Children, showUnchanged)
	for i, child := range children {
		r.renderChange(output, child, prefix+extension, i == len(children)-1, showSize, showUnchanged)
	}
}

// countPair formats directory/file counter pairs for the summary, eliding
// whichever count is zero.
func countPair(directories, files uint64, verb string) string {
	if directories > 0 && files > 0 {
		return fmt.Sprintf("%d directories %s, %d files %s", directories, verb, files, verb)
	} else if directories > 0 {
		return fmt.Sprintf("%d directories %s", directories, verb)
	}
	return fmt.Sprintf("%d files %s", files, verb)
}
