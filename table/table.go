// Package table holds the in-memory representation of a decoded Parquet
// file: an ordered set of named columns of equal length.
package table

import (
	"fmt"
)

// Column is a named, typed sequence of values. A nil entry is a null.
type Column struct {
	Name   string
	Type   Type
	Values []any
}

// Len returns the number of values in the column.
func (c *Column) Len() int {
	return len(c.Values)
}

// Table is an ordered sequence of columns sharing the same row count.
//
// Tables are built once by New and never mutated afterwards, so they can be
// handed from the reader to the writer without copying.
type Table struct {
	columns []*Column
	rows    int
}

// New builds a Table from columns, checking that every column has the same
// length and that column names are unique.
func New(columns []*Column) (*Table, error) {
	t := &Table{columns: columns}
	seen := make(map[string]int, len(columns))

	for i, col := range columns {
		if col == nil {
			return nil, fmt.Errorf("column %d is nil", i+1)
		}
		if prev, ok := seen[col.Name]; ok {
			return nil, fmt.Errorf("duplicate column name %q (columns %d and %d)", col.Name, prev+1, i+1)
		}
		seen[col.Name] = i

		if i == 0 {
			t.rows = col.Len()
			continue
		}
		if col.Len() != t.rows {
			return nil, fmt.Errorf("column %q has %d values, want %d", col.Name, col.Len(), t.rows)
		}
	}

	return t, nil
}

// NumRows returns the row count.
func (t *Table) NumRows() int {
	return t.rows
}

// NumColumns returns the column count.
func (t *Table) NumColumns() int {
	return len(t.columns)
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool {
	return t.rows == 0
}

// Columns returns the columns in their original order.
func (t *Table) Columns() []*Column {
	return t.columns
}

// Column returns the i-th column.
func (t *Table) Column(i int) *Column {
	return t.columns[i]
}

// Names returns the column names in their original order.
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}
	return names
}

// Record renders row i as text, one field per column. Row i must be in range.
func (t *Table) Record(i int) []string {
	record := make([]string, len(t.columns))
	for j, col := range t.columns {
		record[j] = col.Text(i)
	}
	return record
}

// Row returns the raw values of row i in column order.
func (t *Table) Row(i int) []any {
	row := make([]any, len(t.columns))
	for j, col := range t.columns {
		row[j] = col.Values[i]
	}
	return row
}
