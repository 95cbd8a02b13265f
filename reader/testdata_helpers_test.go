package reader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/require"
)

// BasicDataRow defines a simple test data structure with common data types
type BasicDataRow struct {
	ID     int64   `parquet:"id"`
	Name   string  `parquet:"name"`
	Age    int32   `parquet:"age"`
	Score  float64 `parquet:"score"`
	Active bool    `parquet:"active"`
}

// ComplexDataRow defines a test data structure with nullable, timestamp and list fields
type ComplexDataRow struct {
	ID        int64     `parquet:"id"`
	Age       *int64    `parquet:"age,optional"`
	Timestamp time.Time `parquet:"timestamp"`
	Tags      []string  `parquet:"tags,list"`
	Note      *string   `parquet:"note,optional"`
}

// Item is a list element with an optional and a required field
type Item struct {
	Qty  *int64 `parquet:"qty,optional"`
	Code string `parquet:"code"`
}

// ItemListRow defines a test data structure with a required list of groups
type ItemListRow struct {
	ID    int64  `parquet:"id"`
	Items []Item `parquet:"items,list"`
}

// Address is a nested group used by NestedDataRow
type Address struct {
	Street string `parquet:"street"`
	City   string `parquet:"city"`
}

// NestedDataRow defines a test data structure with a nested group
type NestedDataRow struct {
	ID      int64   `parquet:"id"`
	Address Address `parquet:"address"`
}

// writeParquetFile writes rows to dir/filename and returns the path.
func writeParquetFile[T any](t *testing.T, dir, filename string, rows []T) string {
	t.Helper()
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	require.NoError(t, err, "failed to create test file")

	writer := parquet.NewGenericWriter[T](f)
	_, err = writer.Write(rows)
	require.NoError(t, err, "failed to write test data")
	require.NoError(t, writer.Close(), "failed to close writer")
	require.NoError(t, f.Close(), "failed to close file")

	return path
}

// createBasicParquetFile creates a temporary parquet file with BasicDataRow structure
func createBasicParquetFile(t *testing.T, rows []BasicDataRow) string {
	t.Helper()
	return writeParquetFile(t, t.TempDir(), "basic.parquet", rows)
}

func basicRows() []BasicDataRow {
	return []BasicDataRow{
		{ID: 1, Name: "alice", Age: 30, Score: 95.5, Active: true},
		{ID: 2, Name: "bob", Age: 25, Score: 82.25, Active: false},
		{ID: 3, Name: "charlie", Age: 35, Score: 88, Active: true},
	}
}

func ptr[T any](v T) *T {
	return &v
}
