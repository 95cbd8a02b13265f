package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/vegasq/pq2csv/internal/errs"
	"github.com/vegasq/pq2csv/table"
)

// outputFileMode is the permission of a newly written output file.
const outputFileMode = 0o644

// Options controls WriteFile.
type Options struct {
	// Out receives the warning and confirmation lines.
	Out io.Writer
	// Err receives the error line printed on failure.
	Err io.Writer
	// Delimiter separates fields; zero means a comma.
	Delimiter rune
	// SanitizeFormulas prefixes text cells that spreadsheets would
	// evaluate as formulas.
	SanitizeFormulas bool
	Logger           *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Out == nil {
		o.Out = io.Discard
	}
	if o.Err == nil {
		o.Err = io.Discard
	}
	if o.Delimiter == 0 {
		o.Delimiter = ','
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// WriteFile writes t to path as delimited text.
//
// A table without rows is not written: a warning is printed and the file at
// path is left untouched. Otherwise the data is written to a temporary file
// in the destination directory and renamed over path, so a failed write
// never leaves a partial file behind. Failures are printed to opts.Err and
// returned as errs.ErrIO.
func WriteFile(t *table.Table, path string, opts Options) error {
	opts = opts.withDefaults()

	if t.Empty() {
		fmt.Fprintf(opts.Out, "Warning: No data to convert\n")
		return nil
	}

	if err := writeAtomic(t, path, opts); err != nil {
		fmt.Fprintf(opts.Err, "Error converting to CSV: %v\n", err)
		return err
	}

	fmt.Fprintf(opts.Out, "Successfully converted to CSV: %s\n", path)
	fmt.Fprintf(opts.Out, "   Total rows: %d\n", t.NumRows())
	fmt.Fprintf(opts.Out, "   Total columns: %d\n", t.NumColumns())
	return nil
}

func writeAtomic(t *table.Table, path string, opts Options) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errs.IO("create output file in", dir, err)
	}
	tmpPath := tmp.Name()
	opts.Logger.Debug("writing temporary output", zap.String("path", tmpPath))

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	buf := bufio.NewWriter(tmp)
	formatter := NewCSVFormatter(buf,
		WithDelimiter(opts.Delimiter),
		WithFormulaSanitizing(opts.SanitizeFormulas),
	)
	if err := formatter.Format(t); err != nil {
		return errs.IO("write", tmpPath, err)
	}
	if err := buf.Flush(); err != nil {
		return errs.IO("write", tmpPath, err)
	}
	if err := tmp.Chmod(outputFileMode); err != nil {
		return errs.IO("chmod", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return errs.IO("close", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errs.IO("rename output to", path, err)
	}

	opts.Logger.Debug("wrote output file",
		zap.String("path", path),
		zap.Int("rows", t.NumRows()),
		zap.Int("columns", t.NumColumns()),
	)
	return nil
}
