package build

import (
	"errors"
	"fmt"
)

// ValidationError reports a document that parsed as XML but does not
// form a valid controller project. Path locates the offending node,
// e.g. "/RSLogix5000Content/Controller/Programs/Program[MainProgram]".
type ValidationError struct {
	Path string
	Msg  string
	Err  error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("build: %s: %s", e.Path, e.Msg)
}

// Unwrap returns the underlying cause, if any.
func (e *ValidationError) Unwrap() error { return e.Err }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func invalid(path, format string, args ...any) error {
	return &ValidationError{Path: path, Msg: fmt.Sprintf(format, args...)}
}

func invalidWrap(path string, err error) error {
	return &ValidationError{Path: path, Msg: err.Error(), Err: err}
}
