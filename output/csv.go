package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/pq2csv/table"
)

// CSVFormatter outputs a table as delimited text: one header row with the
// column names followed by one record per table row, in table order.
type CSVFormatter struct {
	writer    io.Writer
	delimiter rune
	sanitize  bool
}

// CSVOption configures a CSVFormatter.
type CSVOption func(*CSVFormatter)

// WithDelimiter sets the field delimiter. The default is a comma.
func WithDelimiter(r rune) CSVOption {
	return func(c *CSVFormatter) {
		c.delimiter = r
	}
}

// WithFormulaSanitizing enables prefixing text cells that a spreadsheet
// would evaluate as a formula.
func WithFormulaSanitizing(enabled bool) CSVOption {
	return func(c *CSVFormatter) {
		c.sanitize = enabled
	}
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer, options ...CSVOption) *CSVFormatter {
	c := &CSVFormatter{writer: w, delimiter: ','}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes the table as CSV. Fields containing the delimiter, quotes or
// line breaks are quoted.
func (c *CSVFormatter) Format(t *table.Table) error {
	csvWriter := csv.NewWriter(c.writer)
	csvWriter.Comma = c.delimiter

	// Write header
	if err := c.writeRecord(csvWriter, t.Names()); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write rows
	columns := t.Columns()
	record := make([]string, len(columns))
	for i := 0; i < t.NumRows(); i++ {
		for j, col := range columns {
			record[j] = c.formatCell(col, i)
		}
		if err := c.writeRecord(csvWriter, record); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i+1, err)
		}
	}

	// Flush and check for errors
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}

	return nil
}

// writeRecord writes record through w. A record holding a single empty
// field is written as "" since a blank line is skipped by CSV readers.
func (c *CSVFormatter) writeRecord(w *csv.Writer, record []string) error {
	if len(record) != 1 || record[0] != "" {
		return w.Write(record)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	_, err := io.WriteString(c.writer, "\"\"\n")
	return err
}

func (c *CSVFormatter) formatCell(col *table.Column, row int) string {
	text := col.Text(row)
	if c.sanitize && col.Type.Kind == table.KindString && !col.Type.Repeated {
		return sanitizeFormula(text)
	}
	return text
}

// sanitizeFormula guards against CSV injection by prefixing characters that
// could trigger formula execution in spreadsheet applications.
func sanitizeFormula(val string) string {
	if len(val) == 0 {
		return val
	}
	switch val[0] {
	case '=', '+', '-', '@', '\t', '\r', '\n', '|':
		// Escape existing single quotes and prefix with quote to prevent formula injection
		return "'" + strings.ReplaceAll(val, "'", "''")
	}
	return val
}
