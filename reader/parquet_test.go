package reader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/pq2csv/internal/errs"
	"github.com/vegasq/pq2csv/table"
)

func TestReader_ReadTable_Basic(t *testing.T) {
	path := createBasicParquetFile(t, basicRows())

	r, err := NewReader(path)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	assert.Equal(t, int64(3), r.NumRows())

	tbl, err := r.ReadTable()
	require.NoError(t, err)

	assert.Equal(t, 3, tbl.NumRows())
	assert.Equal(t, 5, tbl.NumColumns())
	assert.Equal(t, []string{"id", "name", "age", "score", "active"}, tbl.Names())

	assert.Equal(t, []any{int64(1), "alice", int64(30), 95.5, true}, tbl.Row(0))
	assert.Equal(t, []any{int64(2), "bob", int64(25), 82.25, false}, tbl.Row(1))
	assert.Equal(t, []string{"3", "charlie", "35", "88", "true"}, tbl.Record(2))
}

func TestReader_ColumnTypes(t *testing.T) {
	path := createBasicParquetFile(t, basicRows())

	r, err := NewReader(path)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	want := map[string]string{
		"id":     "int64",
		"name":   "string",
		"age":    "int32",
		"score":  "float64",
		"active": "bool",
	}
	for _, col := range r.Columns() {
		assert.Equal(t, want[col.Name], col.Type.String(), "column %s", col.Name)
	}

	physical := map[string]string{
		"id":     "INT64",
		"name":   "BYTE_ARRAY",
		"age":    "INT32",
		"score":  "DOUBLE",
		"active": "BOOLEAN",
	}
	for _, col := range r.Columns() {
		assert.Equal(t, physical[col.Name], col.Type.Physical, "column %s", col.Name)
	}
}

func TestReader_ComplexTypes(t *testing.T) {
	ts := time.Date(2025, 12, 4, 9, 15, 0, 0, time.UTC)
	path := writeParquetFile(t, t.TempDir(), "complex.parquet", []ComplexDataRow{
		{ID: 1, Age: ptr(int64(30)), Timestamp: ts, Tags: []string{"a", "b"}, Note: ptr("first")},
		{ID: 2, Age: nil, Timestamp: ts.Add(time.Hour), Tags: nil, Note: nil},
		{ID: 3, Age: ptr(int64(41)), Timestamp: ts.Add(2 * time.Hour), Tags: []string{"c"}, Note: ptr("x,y")},
	})

	tbl, err := ReadFile(path)
	require.NoError(t, err)

	require.Equal(t, []string{"id", "age", "timestamp", "tags", "note"}, tbl.Names())
	require.Equal(t, 3, tbl.NumRows())

	age := tbl.Column(1)
	assert.True(t, age.Type.Nullable)
	assert.Equal(t, "int64 (nullable)", age.Type.String())
	assert.Equal(t, []any{int64(30), nil, int64(41)}, age.Values)

	stamp := tbl.Column(2)
	assert.Equal(t, table.KindTimestamp, stamp.Type.Kind)
	assert.Contains(t, stamp.Type.String(), "timestamp[")
	require.IsType(t, time.Time{}, stamp.Values[1])
	assert.True(t, ts.Add(time.Hour).Equal(stamp.Values[1].(time.Time)))

	tags := tbl.Column(3)
	assert.True(t, tags.Type.Repeated)
	assert.Equal(t, "list<string>", tags.Type.String())
	assert.Equal(t, []any{"a", "b"}, tags.Values[0])
	assert.Equal(t, []any{}, tags.Values[1])
	assert.Equal(t, `["c"]`, tags.Text(2))

	note := tbl.Column(4)
	assert.Equal(t, "string (nullable)", note.Type.String())
	assert.Equal(t, []any{"first", nil, "x,y"}, note.Values)

	t.Run("list of groups", func(t *testing.T) {
		path := writeParquetFile(t, t.TempDir(), "items.parquet", []ItemListRow{
			{ID: 1, Items: []Item{{Qty: ptr(int64(2)), Code: "x"}, {Qty: nil, Code: "y"}}},
			{ID: 2, Items: []Item{}},
			{ID: 3, Items: nil},
		})

		tbl, err := ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, []string{"id", "items.qty", "items.code"}, tbl.Names())

		qty, code := tbl.Column(1), tbl.Column(2)
		// Element optionality does not make the list itself nullable.
		assert.Equal(t, "list<int64>", qty.Type.String())
		assert.Equal(t, "list<string>", code.Type.String())

		assert.Equal(t, []any{int64(2), nil}, qty.Values[0])
		assert.Equal(t, []any{"x", "y"}, code.Values[0])
		for row := 1; row < 3; row++ {
			assert.Equal(t, []any{}, qty.Values[row], "row %d", row)
			assert.Equal(t, []any{}, code.Values[row], "row %d", row)
			assert.Equal(t, []string{tbl.Record(row)[0], "[]", "[]"}, tbl.Record(row))
		}
	})
}

func TestReader_NestedColumns(t *testing.T) {
	path := writeParquetFile(t, t.TempDir(), "nested.parquet", []NestedDataRow{
		{ID: 1, Address: Address{Street: "1 Main St", City: "Springfield"}},
		{ID: 2, Address: Address{Street: "2 Elm St", City: "Shelbyville"}},
	})

	tbl, err := ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "address.street", "address.city"}, tbl.Names())
	assert.Equal(t, []string{"2", "2 Elm St", "Shelbyville"}, tbl.Record(1))
}

func TestReader_EmptyFile(t *testing.T) {
	path := createBasicParquetFile(t, []BasicDataRow{})

	tbl, err := ReadFile(path)
	require.NoError(t, err)

	assert.True(t, tbl.Empty())
	assert.Equal(t, 0, tbl.NumRows())
	assert.Equal(t, 5, tbl.NumColumns())
	assert.Equal(t, []string{"id", "name", "age", "score", "active"}, tbl.Names())
}

func TestReader_LargeFileSpansBatches(t *testing.T) {
	rows := make([]BasicDataRow, 3*readBatchSize+7)
	for i := range rows {
		rows[i] = BasicDataRow{ID: int64(i), Name: "row", Age: int32(i % 90), Score: float64(i) / 4}
	}
	path := createBasicParquetFile(t, rows)

	tbl, err := ReadFile(path)
	require.NoError(t, err)

	require.Equal(t, len(rows), tbl.NumRows())
	for i := range rows {
		require.Equal(t, int64(i), tbl.Column(0).Values[i], "row order must be preserved")
	}
}

func TestNewReader_Errors(t *testing.T) {
	dir := t.TempDir()

	valid := createBasicParquetFile(t, basicRows())
	data, err := os.ReadFile(valid)
	require.NoError(t, err)

	truncated := filepath.Join(dir, "truncated.parquet")
	require.NoError(t, os.WriteFile(truncated, data[:len(data)/2], 0o644))

	garbage := filepath.Join(dir, "garbage.parquet")
	require.NoError(t, os.WriteFile(garbage, []byte("this is not a parquet file"), 0o644))

	empty := filepath.Join(dir, "empty.parquet")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))

	tests := []struct {
		name string
		path string
		kind error
	}{
		{"missing file", filepath.Join(dir, "missing.parquet"), errs.ErrPathNotFound},
		{"directory", dir, errs.ErrIO},
		{"truncated file", truncated, errs.ErrFormat},
		{"not parquet", garbage, errs.ErrFormat},
		{"zero bytes", empty, errs.ErrFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReader(tt.path)
			require.Error(t, err)
			assert.Nil(t, r)
			assert.ErrorIs(t, err, tt.kind)
			assert.Contains(t, err.Error(), tt.path)
		})
	}
}

func TestReader_CloseIsIdempotent(t *testing.T) {
	r, err := NewReader(createBasicParquetFile(t, basicRows()))
	require.NoError(t, err)

	assert.NoError(t, r.Close())
	assert.NoError(t, r.Close())
}

func TestPreallocRows(t *testing.T) {
	assert.Equal(t, 0, preallocRows(-1))
	assert.Equal(t, 0, preallocRows(0))
	assert.Equal(t, 10, preallocRows(10))
	assert.Equal(t, maxPreallocRows, preallocRows(maxPreallocRows))
	// A forged footer must not size the columns.
	assert.Equal(t, maxPreallocRows, preallocRows(1<<62))
}
