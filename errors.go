package jsonedit

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyInput   = errors.New("jsonedit: input is empty or contains only whitespace")
	ErrTrailingData = errors.New("jsonedit: trailing data after first value")
	ErrNotFound     = errors.New("jsonedit: no node at path")
)

// ParseError wraps a decoder failure on document text.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("jsonedit: invalid document: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// KindMismatchError reports a path segment whose expected container kind
// conflicts with the value found during traversal. Patching never
// coerces an existing value to the other container kind; it fails with
// this error and leaves the document untouched.
type KindMismatchError struct {
	Path Path
	Want Kind
	Got  Kind
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("jsonedit: %s: expected %s, found %s", FormatPath(e.Path), e.Want, e.Got)
}

// PathSyntaxError reports malformed bracket-notation path text.
type PathSyntaxError struct {
	Input  string
	Offset int
	Reason string
}

func (e *PathSyntaxError) Error() string {
	return fmt.Sprintf("jsonedit: bad path %q at offset %d: %s", e.Input, e.Offset, e.Reason)
}
