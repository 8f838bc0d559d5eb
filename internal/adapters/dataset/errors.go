package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel error kinds for this package.
var (
	ErrLoad   = errors.New("dataset load failed")
	ErrSchema = errors.New("dataset schema invalid")
)

// LoadError reports a file that could not be read or parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() []error { return []error{ErrLoad, e.Err} }

// SchemaError lists required columns absent from a loaded table.
type SchemaError struct {
	Path    string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required columns: %s", e.Path, strings.Join(e.Missing, ", "))
}

func (e *SchemaError) Unwrap() error { return ErrSchema }
