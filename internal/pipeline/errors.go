package pipeline

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by Convert, Describe and Preview wraps
// exactly one of these; test with errors.Is.
var (
	ErrSourceNotFound   = errors.New("source not found")
	ErrDecodeFailure    = errors.New("cannot decode image")
	ErrImageTooSmall    = errors.New("image too small")
	ErrOutputUnwritable = errors.New("output not writable")
	ErrPipelineFailure  = errors.New("icon pipeline failed")
)

// Error is a pipeline failure of a known kind. Path names the offending file
// or directory when there is one; Err is the underlying cause, if any.
type Error struct {
	Kind error
	Path string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	s := e.Kind.Error()
	if e.Path != "" {
		s += " (" + e.Path + ")"
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, path string, cause error, format string, args ...any) error {
	return &Error{Kind: kind, Path: path, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// KindOf returns the kind of err, or nil when err did not come from this
// package.
func KindOf(err error) error {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return nil
}
