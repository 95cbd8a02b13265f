// Package cli implements the pq2csv command: it resolves the input and
// output paths, reads and reports the parquet file and, unless running in
// read-only mode, converts it to delimited text.
package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/vegasq/pq2csv/internal/config"
	"github.com/vegasq/pq2csv/internal/errs"
	"github.com/vegasq/pq2csv/internal/logging"
	"github.com/vegasq/pq2csv/output"
	"github.com/vegasq/pq2csv/reader"
)

var version = "0.1.0"

// reportedError marks an error whose message has already been printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// Execute runs the command with args and returns the process exit status.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand(stdout, stderr)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.CommandPath())
		}
		return 1
	}
	return 0
}

// NewRootCommand builds the pq2csv command writing its report to stdout and
// its errors and diagnostics to stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	v := config.New()
	var configFile string

	cmd := &cobra.Command{
		Use:   "pq2csv [input_file] [output_file]",
		Short: "Read a parquet file, summarise it and convert it to CSV",
		Long: `pq2csv reads a parquet file, prints its row and column counts, column names,
a preview of the first rows and the inferred column types, then writes the
same data as delimited text.

Relative paths are resolved against the project root (--root, default: the
current directory). Without positional arguments the configured default
input and output files are used.`,
		Example: `  pq2csv data.parquet data.csv
  pq2csv data.parquet --read-only
  pq2csv data.parquet data.tsv --delimiter tab
  PQ2CSV_ROOT=/srv/snapshots pq2csv`,
		Args:          cobra.MaximumNArgs(2),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, configFile)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				cfg.Input = args[0]
			}
			if len(args) > 1 {
				cfg.Output = args[1]
			}
			return run(cfg, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.Bool("read-only", false, "Only read the file, do not convert to CSV")
	flags.String("root", "", "Directory that relative paths are resolved against (default: current directory, not the binary's location)")
	flags.String("delimiter", ",", `Output field delimiter, a single character or "tab"`)
	flags.Int("preview-rows", reader.DefaultPreviewRows, "Number of rows shown in the preview (0 disables it)")
	flags.Bool("sanitize-formulas", false, "Prefix text cells that spreadsheets would evaluate as formulas")
	flags.String("log-level", "warn", "Diagnostic log level (debug, info, warn, error)")
	flags.StringVar(&configFile, "config", "", "Path to a config file (yaml, json or toml)")

	bindFlags(v, cmd)
	return cmd
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) {
	bindings := map[string]string{
		config.KeyReadOnly:         "read-only",
		config.KeyRoot:             "root",
		config.KeyDelimiter:        "delimiter",
		config.KeyPreviewRows:      "preview-rows",
		config.KeySanitizeFormulas: "sanitize-formulas",
		config.KeyLogLevel:         "log-level",
	}
	for key, name := range bindings {
		_ = v.BindPFlag(key, cmd.Flags().Lookup(name))
	}
}

// run performs [validate input path] → [read] → [optionally write].
func run(cfg *config.Config, stdout, stderr io.Writer) error {
	logger, err := logging.New(cfg.LogLevel, stderr)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	root, err := projectRoot(cfg.Root)
	if err != nil {
		return err
	}
	inputPath := ResolvePath(root, cfg.Input)
	outputPath := ResolvePath(root, cfg.Output)

	logger.Debug("resolved paths",
		zap.String("root", root),
		zap.String("input", inputPath),
		zap.String("output", outputPath),
		zap.Bool("read_only", cfg.ReadOnly),
	)

	if _, err := os.Stat(inputPath); errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(stderr, "File not found: %s\n", inputPath)
		return &reportedError{errs.PathNotFound(inputPath, err)}
	}

	t, err := reader.Load(inputPath, reader.Options{
		Out:         stdout,
		Err:         stderr,
		PreviewRows: cfg.PreviewRows,
		Logger:      logger,
	})
	if err != nil {
		return failed(stderr, err)
	}

	if !cfg.ReadOnly {
		fmt.Fprintf(stdout, "\nConverting to CSV...\n")
		err := output.WriteFile(t, outputPath, output.Options{
			Out:              stdout,
			Err:              stderr,
			Delimiter:        cfg.DelimiterRune(),
			SanitizeFormulas: cfg.SanitizeFormulas,
			Logger:           logger,
		})
		if err != nil {
			return failed(stderr, err)
		}
	} else {
		fmt.Fprintf(stdout, "\nRead-only mode: CSV conversion skipped\n")
	}

	fmt.Fprintf(stdout, "\nDone!\n")
	return nil
}

func failed(w io.Writer, err error) error {
	fmt.Fprintf(w, "Failed: %v\n", err)
	return &reportedError{err}
}

// projectRoot returns dir, or the working directory when dir is empty.
func projectRoot(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to determine working directory: %w", err)
	}
	return wd, nil
}

// ResolvePath returns p unchanged when it is absolute, otherwise p joined to
// root.
func ResolvePath(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
