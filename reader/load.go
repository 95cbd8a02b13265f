package reader

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/vegasq/pq2csv/table"
)

// Options controls Load.
type Options struct {
	// Out receives progress and the summary report.
	Out io.Writer
	// Err receives the error line printed on failure.
	Err io.Writer
	// PreviewRows is the number of rows shown in the preview; 0 hides it.
	PreviewRows int
	Logger      *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Out == nil {
		o.Out = io.Discard
	}
	if o.Err == nil {
		o.Err = io.Discard
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Load reads the parquet file at path into a table and prints its summary.
//
// On failure the error is printed to opts.Err with context and returned
// unchanged; the file handle is released on every path.
func Load(path string, opts Options) (*table.Table, error) {
	opts = opts.withDefaults()
	fmt.Fprintf(opts.Out, "Reading parquet file: %s\n", path)

	t, err := ReadFile(path, WithLogger(opts.Logger))
	if err != nil {
		fmt.Fprintf(opts.Err, "Error reading parquet file: %v\n", err)
		return nil, err
	}

	Report(opts.Out, t, opts.PreviewRows)
	return t, nil
}

// ReadFile opens path, reads every row and closes the file.
func ReadFile(path string, options ...ReaderOption) (*table.Table, error) {
	r, err := NewReader(path, options...)
	if err != nil {
		return nil, err
	}

	t, readErr := r.ReadTable()
	closeErr := r.Close()

	// Preserve the first error encountered
	if readErr != nil {
		return nil, readErr
	}
	if closeErr != nil {
		return nil, closeErr
	}
	return t, nil
}
