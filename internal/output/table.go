package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/spiffcs/teamping/internal/dispatch"
	"github.com/spiffcs/teamping/internal/model"
	"github.com/spiffcs/teamping/internal/query"
)

// Column widths
const (
	colType    = 4
	colRef     = 32
	colTitle   = 48
	colComment = 7
)

// TableFormatter formats output as a terminal table
type TableFormatter struct {
	// Hyperlinks makes titles clickable in terminals that support OSC 8.
	Hyperlinks bool
}

// FormatActions prints one row per item that was, or would be, added to
// the project board.
func (f *TableFormatter) FormatActions(actions []dispatch.Action, w io.Writer) error {
	if len(actions) == 0 {
		fmt.Fprintln(w, "No items.")
		return nil
	}

	fmt.Fprintf(w, "%-*s  %-*s  %-*s  %s\n",
		colType, "Type",
		colRef, "Item",
		colTitle, "Title",
		"Comment")
	fmt.Fprintln(w, strings.Repeat("-", colType+colRef+colTitle+colComment+6))

	var comments int
	for _, a := range actions {
		ref, refWidth := truncateToWidth(a.Ref.String(), colRef)

		title, titleWidth := truncateToWidth(a.Item.Title, colTitle)
		if f.Hyperlinks {
			title = hyperlink(title, a.Item.HTMLURL)
		}

		comment := color.New(color.Faint).Sprint("no")
		if a.Comment != "" {
			comment = color.GreenString("yes")
			comments++
		}

		fmt.Fprintf(w, "%-*s  %s  %s  %s\n",
			colType, kindLabel(a.Ref.Kind),
			padRight(ref, refWidth, colRef),
			padRight(title, titleWidth, colTitle),
			comment,
		)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %d cards, %d comments\n", color.CyanString("●"), len(actions), comments)
	return nil
}

// FormatQueries prints every query in plain and encoded form.
func (f *TableFormatter) FormatQueries(queries []*query.Query, w io.Writer) error {
	for i, q := range queries {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s %s (%d clauses)\n", color.CyanString("●"), q.Mode, len(q.Clauses))
		fmt.Fprintf(w, "  plain:   %s\n", q.String())
		fmt.Fprintf(w, "  encoded: %s\n", q.Encode())
	}
	return nil
}

func kindLabel(kind model.ContentKind) string {
	if kind == model.KindIssue {
		return "ISS"
	}
	return "PR"
}
