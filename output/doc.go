// Package output provides formatters for writing a decoded table as
// delimited text.
//
// # Basic Usage
//
// Writing CSV to any io.Writer:
//
//	formatter := output.NewCSVFormatter(os.Stdout)
//	if err := formatter.Format(t); err != nil {
//	    log.Fatal(err)
//	}
//
// Tab-separated output with formula sanitising:
//
//	formatter := output.NewCSVFormatter(w,
//	    output.WithDelimiter('\t'),
//	    output.WithFormulaSanitizing(true),
//	)
//
// # Writing Files
//
// WriteFile writes a table to a path, printing a confirmation with the row
// and column counts. Tables without rows are skipped with a warning and the
// destination is not touched:
//
//	err := output.WriteFile(t, "out.csv", output.Options{Out: os.Stdout, Err: os.Stderr})
//
// The file is written to a temporary sibling and renamed into place, so
// readers never observe a partially written file.
//
// # Layout
//
// The output has one header line with the column names in table order,
// followed by one line per row. No index column is added. Nulls are empty
// fields; fields containing the delimiter, quotes or line breaks are quoted
// following RFC 4180.
package output
