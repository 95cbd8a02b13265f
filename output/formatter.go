// Package output provides formatters for writing a decoded table as
// delimited text.
//
// Example usage:
//
//	formatter := output.NewCSVFormatter(os.Stdout)
//	if err := formatter.Format(t); err != nil {
//	    log.Fatal(err)
//	}
package output

import (
	"io"

	"github.com/vegasq/pq2csv/table"
)

// Formatter defines the interface for output formatters.
//
// Implementers must provide Format to convert a table to the target format
// and SetOutput to change the output destination.
type Formatter interface {
	// Format writes the table in the formatter's specific format
	Format(t *table.Table) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}
