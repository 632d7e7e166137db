package form

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/roach88/healthrec/internal/record"
)

// Columns are the grid headings, left to right.
var Columns = []string{"ID", "Name", "Code", "Details", "Status", "Timestamp"}

// Render writes the grid as an aligned text table. The highlighted row,
// if any, is prefixed with '>'.
func (f *Form) Render(w io.Writer) error {
	return RenderRows(w, f.rows, f.selected)
}

// RenderRows writes rows as an aligned text table with the grid columns.
// selected is the index of the highlighted row, or -1 for none.
func RenderRows(w io.Writer, rows []record.HealthRecord, selected int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "  %s\n", strings.Join(Columns, "\t"))
	for i, r := range rows {
		marker := " "
		if i == selected {
			marker = ">"
		}
		fmt.Fprintf(tw, "%s %d\t%s\t%s\t%s\t%s\t%s\n",
			marker, r.ID, r.Name, r.Code, r.Details, r.Status, r.Timestamp)
	}
	if len(rows) == 0 {
		fmt.Fprintln(tw, "  (no records)")
	}

	return tw.Flush()
}
