package reader

import (
	"fmt"
	"io"
	"strconv"

	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/pq2csv/table"
)

// DefaultPreviewRows is the number of rows shown in the report preview.
const DefaultPreviewRows = 5

// maxPreviewCellWidth bounds the display width of a preview cell.
const maxPreviewCellWidth = 40

// Report writes the summary of t: row and column counts, the numbered
// column names, a preview of the first previewRows rows and the inferred
// type of every column.
func Report(w io.Writer, t *table.Table, previewRows int) {
	fmt.Fprintf(w, "\nFile Information:\n")
	fmt.Fprintf(w, "   Total rows: %d\n", t.NumRows())
	fmt.Fprintf(w, "   Total columns: %d\n", t.NumColumns())

	fmt.Fprintf(w, "\nColumn Names:\n")
	for i, name := range t.Names() {
		fmt.Fprintf(w, "   %d. %s\n", i+1, name)
	}

	if previewRows > 0 {
		fmt.Fprintf(w, "\nFirst %d rows preview:\n", previewRows)
		writePreview(w, t, previewRows)
	}

	fmt.Fprintf(w, "\nData Types:\n")
	writeTypes(w, t)

	fmt.Fprintf(w, "\nSuccessfully read %d rows from parquet file\n\n", t.NumRows())
}

// writePreview renders the first n rows as an aligned text grid with a
// leading row index column.
func writePreview(w io.Writer, t *table.Table, n int) {
	if t.Empty() {
		fmt.Fprintf(w, "Empty table\n")
		return
	}
	if n > t.NumRows() {
		n = t.NumRows()
	}

	tw := newTextGrid(w, tablewriter.ALIGN_RIGHT)
	tw.SetHeader(append([]string{""}, t.Names()...))
	for i := 0; i < n; i++ {
		record := t.Record(i)
		row := make([]string, 0, len(record)+1)
		row = append(row, strconv.Itoa(i))
		for _, cell := range record {
			row = append(row, previewCell(cell))
		}
		tw.Append(row)
	}
	tw.Render()
}

// writeTypes renders one "name  type" line per column.
func writeTypes(w io.Writer, t *table.Table) {
	tw := newTextGrid(w, tablewriter.ALIGN_LEFT)
	for _, col := range t.Columns() {
		tw.Append([]string{col.Name, col.Type.String()})
	}
	tw.Render()
}

// newTextGrid returns a borderless tablewriter laid out like a plain
// whitespace-aligned listing.
func newTextGrid(w io.Writer, align int) *tablewriter.Table {
	tw := tablewriter.NewWriter(w)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetAlignment(align)
	tw.SetHeaderAlignment(align)
	tw.SetBorder(false)
	tw.SetCenterSeparator("")
	tw.SetColumnSeparator("")
	tw.SetRowSeparator("")
	tw.SetHeaderLine(false)
	tw.SetTablePadding("  ")
	tw.SetNoWhiteSpace(true)
	return tw
}

// previewCell keeps preview cells on one line and within a readable width.
func previewCell(s string) string {
	s = escapeLineBreaks(s)
	if runewidth.StringWidth(s) > maxPreviewCellWidth {
		return runewidth.Truncate(s, maxPreviewCellWidth, "...")
	}
	return s
}

func escapeLineBreaks(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case '\n':
			out = append(out, '\\', 'n')
		case '\r':
			out = append(out, '\\', 'r')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
