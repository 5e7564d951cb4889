package evconf

import (
	"errors"
	"fmt"

	"github.com/cooper/evented-configuration/value"
)

var (
	// ErrNoPath indicates a Config was constructed without a file path.
	ErrNoPath = errors.New("configuration file path is required")

	// ErrLineSyntax indicates a line matched none of the recognized
	// statement shapes.
	ErrLineSyntax = errors.New("unrecognized configuration line")

	// ErrKeyOutsideBlock indicates a key-value line appeared before any
	// block header. It is a flavor of ErrLineSyntax and matches it under
	// errors.Is.
	ErrKeyOutsideBlock = fmt.Errorf("%w: key-value pair outside any block", ErrLineSyntax)

	// ErrValueSyntax indicates a key's value expression failed to parse.
	// It is value.ErrSyntax re-exported; the error chain also carries a
	// *value.SyntaxError locating the failure within the expression.
	ErrValueSyntax = value.ErrSyntax

	// ErrKeyNotFound indicates a typed accessor was asked for a key that
	// has never been set.
	ErrKeyNotFound = errors.New("configuration key not found")

	// ErrTypeMismatch indicates a stored value could not serve the type a
	// typed accessor was asked for.
	ErrTypeMismatch = errors.New("configuration value has wrong type")
)

// ParseError describes a failure while reading or parsing a configuration
// file. Line is 1-based; a Line of 0 means the failure was not tied to a
// line, such as the file failing to open.
//
// The wrapped error identifies the failure: ErrLineSyntax or
// ErrKeyOutsideBlock for malformed lines, a *value.SyntaxError (matching
// ErrValueSyntax) for a bad value literal, or the underlying I/O error.
type ParseError struct {
	Path string
	Line int
	Err  error
}

// Error returns a description including the file and, when known, the line.
func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("parse %s, line %d: %v", e.Path, e.Line, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error { return e.Err }

// TypeError describes a typed accessor finding a value that cannot serve
// the requested type.
type TypeError struct {
	Block    string // block address as the file would declare it
	Key      string
	Expected string // requested type
	Actual   string // stored value kind
	Err      error  // underlying conversion error, may be nil
}

// Error returns a description of the mismatch.
func (e *TypeError) Error() string {
	return fmt.Sprintf("%s.%s: cannot use %s value as %s", e.Block, e.Key, e.Actual, e.Expected)
}

// Is reports whether target is ErrTypeMismatch, so callers can test with
// errors.Is without holding the concrete type.
func (e *TypeError) Is(target error) bool { return target == ErrTypeMismatch }

// Unwrap returns the underlying conversion error, if any.
func (e *TypeError) Unwrap() error { return e.Err }
