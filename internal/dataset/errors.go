package dataset

import (
	"errors"
	"fmt"
)

// NotFoundError indicates a storage artifact is missing or unreadable.
// For auxiliary artifacts this disables the corresponding feature; for the
// primary dataset it is fatal to the session.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("artifact not found: %s: %v", e.Path, e.Err)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// ParseError indicates an artifact exists but is malformed. Row is the
// 1-based data row that failed, or 0 when the failure is not row-specific.
type ParseError struct {
	Path   string
	Row    int
	Column string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("parse %s: row %d, column %s: %v", e.Path, e.Row, e.Column, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsParseFailure reports whether err is a ParseError.
func IsParseFailure(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
