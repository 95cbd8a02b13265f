// Package reader loads Apache Parquet files into memory as a table.Table.
//
// It uses the parquet-go library to decode the file and maps the embedded
// schema to ordered, typed columns.
package reader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/parquet-go/parquet-go"
	"go.uber.org/zap"

	"github.com/vegasq/pq2csv/internal/errs"
	"github.com/vegasq/pq2csv/table"
)

const (
	// readBatchSize is the number of rows requested from parquet-go per call.
	readBatchSize = 256

	// maxPreallocRows caps the per-column capacity taken from the footer row
	// count, which is not trusted until the rows are actually decoded.
	maxPreallocRows = 64 * readBatchSize
)

// Reader reads a parquet file into a table.
//
// It maintains both an OS file handle and a parquet file handle to enable
// proper resource cleanup.
type Reader struct {
	path    string
	file    *os.File
	pqFile  *parquet.File
	columns []ColumnInfo
	logger  *zap.Logger
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *zap.Logger) ReaderOption {
	return func(r *Reader) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewReader creates a new parquet reader for the specified file path.
//
// The file is opened and validated as a parquet file. A missing file is
// reported as errs.ErrPathNotFound, a file that is not valid parquet as
// errs.ErrFormat, and any other filesystem failure as errs.ErrIO.
//
// Example:
//
//	r, err := NewReader("data.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
func NewReader(path string, options ...ReaderOption) (*Reader, error) {
	r := &Reader{path: path, logger: zap.NewNop()}
	for _, opt := range options {
		opt(r)
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errs.PathNotFound(path, err)
		}
		return nil, errs.IO("open", path, err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, errs.IO("stat", path, err)
	}
	if stat.IsDir() {
		_ = file.Close()
		return nil, errs.IO("open", path, errors.New("is a directory"))
	}

	pqFile, err := openParquet(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, errs.Format("open parquet file", path, err)
	}

	r.file = file
	r.pqFile = pqFile
	r.columns = extractColumns(pqFile.Schema())

	r.logger.Debug("opened parquet file",
		zap.String("path", path),
		zap.Int64("size", stat.Size()),
		zap.Int64("rows", pqFile.NumRows()),
		zap.Int("row_groups", len(pqFile.RowGroups())),
		zap.Int("columns", len(r.columns)),
	)

	return r, nil
}

// openParquet wraps parquet.OpenFile, turning decoder panics on corrupt
// metadata into errors.
func openParquet(file *os.File, size int64) (pqFile *parquet.File, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("corrupt parquet metadata: %v", p)
		}
	}()
	return parquet.OpenFile(file, size)
}

// Schema returns the parquet file schema.
func (r *Reader) Schema() *parquet.Schema {
	return r.pqFile.Schema()
}

// Columns returns the flattened leaf columns in schema order.
func (r *Reader) Columns() []ColumnInfo {
	return r.columns
}

// NumRows returns the row count declared by the file metadata.
func (r *Reader) NumRows() int64 {
	return r.pqFile.NumRows()
}

// ReadTable reads all rows from the parquet file into memory.
//
// The entire file is loaded, so this method may not be suitable for very
// large files. Decode failures and a row count that disagrees with the file
// metadata are reported as errs.ErrFormat.
func (r *Reader) ReadTable() (*table.Table, error) {
	values, err := r.readColumns()
	if err != nil {
		return nil, errs.Format("read rows from", r.path, err)
	}

	columns := make([]*table.Column, len(r.columns))
	for i, info := range r.columns {
		columns[i] = &table.Column{Name: info.Name, Type: info.Type, Values: values[i]}
	}

	t, err := table.New(columns)
	if err != nil {
		return nil, errs.Format("build table from", r.path, err)
	}
	if int64(t.NumRows()) != r.NumRows() && len(columns) > 0 {
		return nil, errs.Format("read rows from", r.path,
			fmt.Errorf("decoded %d rows, file metadata declares %d", t.NumRows(), r.NumRows()))
	}

	r.logger.Debug("decoded parquet rows",
		zap.String("path", r.path),
		zap.Int("rows", t.NumRows()),
		zap.Int("columns", t.NumColumns()),
	)
	return t, nil
}

func (r *Reader) readColumns() (values [][]any, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("corrupt parquet data: %v", p)
		}
	}()

	positions := make(map[int]int, len(r.columns))
	values = make([][]any, len(r.columns))
	for i, info := range r.columns {
		positions[info.Index] = i
		values[i] = make([]any, 0, preallocRows(r.NumRows()))
	}

	pr := parquet.NewReader(r.pqFile)
	defer func() { _ = pr.Close() }()

	rows := make([]parquet.Row, readBatchSize)
	leaves := make([][]parquet.Value, len(r.columns))

	for {
		n, readErr := pr.ReadRows(rows)
		for _, row := range rows[:n] {
			for i := range leaves {
				leaves[i] = leaves[i][:0]
			}
			for _, v := range row {
				pos, ok := positions[v.Column()]
				if !ok {
					return nil, fmt.Errorf("value for unknown column index %d", v.Column())
				}
				leaves[pos] = append(leaves[pos], v)
			}
			for i := range r.columns {
				cell, err := r.columns[i].cell(leaves[i])
				if err != nil {
					return nil, err
				}
				values[i] = append(values[i], cell)
			}
		}

		if readErr != nil {
			// Use errors.Is for proper EOF detection
			if errors.Is(readErr, io.EOF) {
				return values, nil
			}
			return nil, readErr
		}
		if n == 0 {
			return values, nil
		}
	}
}

// preallocRows returns the initial column capacity for n declared rows.
func preallocRows(n int64) int {
	if n <= 0 {
		return 0
	}
	return int(min(n, maxPreallocRows))
}

// Close closes the underlying file and releases associated resources.
//
// It is safe to call Close multiple times.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	if err != nil {
		return errs.IO("close", r.path, err)
	}
	return nil
}
