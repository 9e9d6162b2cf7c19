package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/treediff-io/treediff/pkg/diff"
)

// htmlRenderer renders diff results as a self-contained HTML document.
type htmlRenderer struct{}

// htmlStyle is the embedded stylesheet for HTML reports.
const htmlStyle = `body { font-family: monospace; margin: 2em; }
h1 { font-size: 1.4em; }
ul.changes { list-style: none; padding-left: 1.5em; }
li.added { color: #22863a; }
li.removed { color: #cb2431; }
li.modified { color: #b08800; }
li.moved { color: #6f42c1; }
li.type-changed { color: #0366d6; }
li.unchanged { color: #6a737d; }
table.summary { border-collapse: collapse; margin: 1em 0; }
table.summary td, table.summary th { border: 1px solid #ddd; padding: 0.3em 0.8em; }`

// cssClass returns the CSS class used for a change type.
func cssClass(changeType diff.ChangeType) string {
	return changeType.String()
}

// Render implements Renderer.Render.
func (r *htmlRenderer) Render(result *diff.Result) (string, error) {
	output := &strings.Builder{}

	// Write the document head.
	fmt.Fprintln(output, "<!DOCTYPE html>")
	fmt.Fprintln(output, "<html>")
	fmt.Fprintln(output, "<head>")
	fmt.Fprintln(output, `<meta charset="utf-8">`)
	fmt.Fprintln(output, "<title>Directory Changes</title>")
	fmt.Fprintf(output, "<style>%s</style>\n", htmlStyle)
	fmt.Fprintln(output, "</head>")
	fmt.Fprintln(output, "<body>")
	fmt.Fprintln(output, "<h1>Directory Changes</h1>")
	fmt.Fprintf(output, "<p>Generated %s against <code>%s</code></p>\n",
		html.EscapeString(result.Metadata.GeneratedAt.Format("2006-01-02 15:04:05")),
		html.EscapeString(result.Metadata.ComparisonRoot))

	// Write the summary table.
	summary := result.Summary
	fmt.Fprintln(output, `<table class="summary">`)
	fmt.Fprintln(output, "<tr><th>Added</th><th>Removed</th><th>Modified</th><th>Moved</th><th>Type changes</th><th>Size change</th></tr>")
	fmt.Fprintf(output, "<tr><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%s</td></tr>\n",
		summary.Added, summary.Removed, summary.Modified, summary.Moved,
		summary.TypeChanged, html.EscapeString(formatSizeChange(summary.SizeChange)))
	fmt.Fprintln(output, "</table>")

	// Write the change forest.
	changes := visibleChanges(result.Changes, result.Metadata.Options.ShowUnchanged)
	r.renderList(output, changes, result.Metadata.Options.ShowUnchanged)

	// Close out the document.
	fmt.Fprintln(output, "</body>")
	fmt.Fprintln(output, "</html>")

	// Success.
	return output.String(), nil
}

// renderList writes one nested list of changes.
func (r *htmlRenderer) renderList(output *strings.Builder, changes []*diff.Change, showUnchanged bool) {
	if len(changes) == 0 {
		return
	}
	fmt.Fprintln(output, `<ul class="changes">`)
	for _, change := range changes {
		name := change.Path()
		if change.IsDirectory() {
			name += "/"
		}
		fmt.Fprintf(output, `<li class="%s">%s %s`,
			cssClass(change.Type), changeSymbol(change.Type), html.EscapeString(name))
		switch change.Type {
		case diff.ChangeTypeMoved:
			fmt.Fprintf(output, " &larr; <code>%s</code> (%.0f%% similar)",
				html.EscapeString(change.MovedFrom), change.Similarity*100)
		case diff.ChangeTypeTypeChanged:
			fmt.Fprintf(output, " (%s &rarr; %s)", change.FromType, change.ToType)
		}
		r.renderList(output, visibleChanges(change.Children, showUnchanged), showUnchanged)
		fmt.Fprintln(output, "</li>")
	}
	fmt.Fprintln(output, "</ul>")
}
