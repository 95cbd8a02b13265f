// Package errs classifies the failures the converter can report.
package errs

import (
	"errors"
	"fmt"
)

// Failure kinds. Match them with errors.Is.
var (
	// ErrPathNotFound means the resolved input path does not exist.
	ErrPathNotFound = errors.New("path not found")
	// ErrFormat means the input bytes are not a readable Parquet file.
	ErrFormat = errors.New("invalid parquet data")
	// ErrIO means opening, writing or renaming a file failed.
	ErrIO = errors.New("i/o failure")
)

// Error carries the kind of a failure together with the operation and path
// that produced it.
type Error struct {
	Kind error
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return fmt.Sprintf("%s: %v", msg, e.Kind)
}

// Unwrap exposes both the kind and the cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// PathNotFound reports a missing input path.
func PathNotFound(path string, err error) error {
	return &Error{Kind: ErrPathNotFound, Op: "file not found", Path: path, Err: err}
}

// Format reports data that could not be decoded as Parquet.
func Format(op, path string, err error) error {
	return &Error{Kind: ErrFormat, Op: op, Path: path, Err: err}
}

// IO reports a filesystem failure.
func IO(op, path string, err error) error {
	return &Error{Kind: ErrIO, Op: op, Path: path, Err: err}
}

// KindOf returns the failure kind of err, or nil when err is not classified.
func KindOf(err error) error {
	for _, kind := range []error{ErrPathNotFound, ErrFormat, ErrIO} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
