// Package reader provides functionality for reading Apache Parquet files.
//
// This package loads a whole parquet file into an in-memory table.Table,
// keeping column order, row order and the types declared by the embedded
// schema.
//
// # Basic Usage
//
// Reading a single parquet file:
//
//	r, err := reader.NewReader("data.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	t, err := r.ReadTable()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for i := 0; i < t.NumRows(); i++ {
//	    fmt.Println(t.Record(i))
//	}
//
// # Summary Report
//
// Load reads a file and prints the row and column counts, the numbered
// column names, a preview of the first rows and the inferred column types:
//
//	t, err := reader.Load("data.parquet", reader.Options{
//	    Out:         os.Stdout,
//	    Err:         os.Stderr,
//	    PreviewRows: reader.DefaultPreviewRows,
//	})
//
// # Column Mapping
//
// Every leaf of the parquet schema becomes one column. Nested groups use
// dot notation ("address.street") and LIST fields keep their own name, with
// each cell holding the list elements.
//
// # Errors
//
// Failures are classified with the kinds from internal/errs: a missing file
// is ErrPathNotFound, bytes that are not valid parquet are ErrFormat and
// other filesystem failures are ErrIO.
package reader
