package value

import (
	"errors"
	"fmt"
)

// ErrSyntax is matched by every *SyntaxError under errors.Is, so callers
// can classify a failure without holding the concrete type.
var ErrSyntax = errors.New("invalid value literal")

// SyntaxError describes a value literal that does not conform to the
// grammar. Offset is the byte position within Expr at which parsing
// failed, starting at 0.
type SyntaxError struct {
	Expr    string
	Offset  int
	Message string
}

// Error returns a human-readable description of the syntax error.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid value literal %q at offset %d: %s", e.Expr, e.Offset, e.Message)
}

// Is reports whether target is ErrSyntax.
func (e *SyntaxError) Is(target error) bool { return target == ErrSyntax }
