package l5x

import (
	"errors"
	"fmt"
)

// StructuralError reports input that cannot become a tree: malformed
// markup, an unexpected document element, or an encoding failure.
// Ingestion of the file aborts; no partial tree is ever returned.
type StructuralError struct {
	// Msg describes what went wrong.
	Msg string

	// Line is the 1-based input line, when the decoder reported one.
	Line int

	// Err is the underlying decoder error, if any.
	Err error
}

// Error implements the error interface.
func (e *StructuralError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("l5x: line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("l5x: %s", e.Msg)
}

// Unwrap returns the underlying decoder error.
func (e *StructuralError) Unwrap() error { return e.Err }

// IsStructural reports whether err is (or wraps) a StructuralError.
func IsStructural(err error) bool {
	var se *StructuralError
	return errors.As(err, &se)
}
