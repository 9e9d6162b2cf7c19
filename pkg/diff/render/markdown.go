package render

import (
	"fmt"
	"strings"

	"github.com/treediff-io/treediff/pkg/diff"
)

// markdownRenderer renders diff results as a Markdown report.
type markdownRenderer struct{}

// Render implements Renderer.Render.
func (r *markdownRenderer) Render(result *diff.Result) (string, error) {
	output := &strings.Builder{}

	// Write the header.
	fmt.Fprintln(output, "# Directory Changes")
	fmt.Fprintln(output)
	fmt.Fprintf(output, "**Generated:** %s\n", result.Metadata.GeneratedAt.Format("2006-01-02 15:04:05"))
	if result.Metadata.SnapshotSource != "" {
		fmt.Fprintf(output, "**Snapshot:** %s\n", result.Metadata.SnapshotSource)
	}
	if result.Metadata.SnapshotDate != nil {
		fmt.Fprintf(output, "**Snapshot Date:** %s\n", result.Metadata.SnapshotDate.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(output, "**Comparison Root:** %s\n", result.Metadata.ComparisonRoot)
	fmt.Fprintln(output)

	// Write the summary.
	fmt.Fprintln(output, "## Summary")
	fmt.Fprintln(output)
	summary := result.Summary
	if summary.TotalChanges() == 0 {
		fmt.Fprintln(output, "No changes detected.")
	} else {
		if summary.Added > 0 {
			fmt.Fprintf(output, "- **Added:** %s\n", countPair(summary.DirectoriesAdded, summary.FilesAdded, "added"))
		}
		if summary.Removed > 0 {
			fmt.Fprintf(output, "- **Removed:** %s\n", countPair(summary.DirectoriesRemoved, summary.FilesRemoved, "removed"))
		}
		if summary.Moved > 0 {
			fmt.Fprintf(output, "- **Moved:** %s\n", countPair(summary.DirectoriesMoved, summary.FilesMoved, "moved"))
		}
		if summary.TypeChanged > 0 {
			fmt.Fprintf(output, "- **Type changes:** %d\n", summary.TypeChanged)
		}
		if summary.Modified > 0 {
			fmt.Fprintf(output, "- **Directories modified:** %d\n", summary.Modified)
		}
		if summary.SizeChange != 0 {
			fmt.Fprintf(output, "- **Total size change:** %s\n", formatSizeChange(summary.SizeChange))
		}
	}
	fmt.Fprintln(output)

	// Write per-kind sections.
	r.renderSection(output, result, diff.ChangeTypeAdded, "## Added Entries (+)")
	r.renderSection(output, result, diff.ChangeTypeRemoved, "## Removed Entries (-)")
	r.renderSection(output, result, diff.ChangeTypeMoved, "## Moved Entries (~)")
	r.renderSection(output, result, diff.ChangeTypeTypeChanged, "## Type Changes (T)")
	r.renderSection(output, result, diff.ChangeTypeModified, "## Modified Directories (M)")

	// Success.
	return output.String(), nil
}

// renderSection writes one change-kind section, flattening nested children so
// that every matching change in the forest is listed.
func (r *markdownRenderer) renderSection(output *strings.Builder, result *diff.Result, kind diff.ChangeType, header string) {
	// Collect matching changes.
	var matches []*diff.Change
	var collect func(changes []*diff.Change)
	collect = func(changes []*diff.Change) {
		for _, change := range changes {
			if change.Type == kind {
				matches = append(matches, change)
			}
			if change.Type == diff.ChangeTypeModified {
				collect(change.Children)
			}
		}
	}
	collect(result.Changes)
	if len(matches) == 0 {
		return
	}

	// Write the section.
	fmt.Fprintln(output, header)
	fmt.Fprintln(output)
	for _, change := range matches {
		name := change.Path()
		if change.IsDirectory() {
			name += "/"
		}
		switch change.Type {
		case diff.ChangeTypeMoved:
			fmt.Fprintf(output, "- **%s** ← `%s` (%.0f%% similar)\n", name, change.MovedFrom, change.Similarity*100)
		case diff.ChangeTypeTypeChanged:
			fmt.Fprintf(output, "- **%s** (%s → %s)\n", name, change.FromType, change.ToType)
		default:
			if result.Metadata.Options.ShowSize && change.Current != nil && change.Current.Size != nil {
				fmt.Fprintf(output, "- **%s** (%s)\n", name, formatSize(*change.Current.Size))
			} else {
				fmt.Fprintf(output, "- **%s**\n", name)
			}
		}
	}
	fmt.Fprintln(output)
}
