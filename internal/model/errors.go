package model

import (
	"errors"

	"github.com/rotisserie/eris"
)

// ErrEmptyDataset is returned when an aggregate needs a latest year but the table has no rows.
var ErrEmptyDataset = eris.New("empty dataset")

// LoadError wraps a failure to read the input dataset (missing file, unreadable
// content, missing country/year column, or a cell of the wrong type).
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return "load " + e.Path + ": " + e.Err.Error()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError wraps err as a load failure for path.
func NewLoadError(path string, err error) *LoadError {
	return &LoadError{Path: path, Err: err}
}

// OutputError wraps a failure to create or write an output artifact.
type OutputError struct {
	Path string
	Err  error
}

func (e *OutputError) Error() string {
	return "write " + e.Path + ": " + e.Err.Error()
}

func (e *OutputError) Unwrap() error {
	return e.Err
}

// NewOutputError wraps err as an output failure for path.
func NewOutputError(path string, err error) *OutputError {
	return &OutputError{Path: path, Err: err}
}

// IsLoadFailure returns true if err (or any error in its chain) is a LoadError.
func IsLoadFailure(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

// IsOutputFailure returns true if err (or any error in its chain) is an OutputError.
func IsOutputFailure(err error) bool {
	var oe *OutputError
	return errors.As(err, &oe)
}

// IsEmptyDataset returns true if err wraps ErrEmptyDataset.
func IsEmptyDataset(err error) bool {
	return eris.Is(err, ErrEmptyDataset)
}
