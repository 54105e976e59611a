// Package errors provides structured error handling for the visualizer.
//
// Only invalid arguments at construction time are returned to callers. Every
// other failure in the visual layer is reported to the global [ErrorHandler]
// and swallowed, so a rendering glitch never takes the host down.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindInvalidArgument indicates a constructor received an unusable argument.
	KindInvalidArgument
	// KindRender indicates a drawer failed while updating its layer.
	KindRender
	// KindConfig indicates a props document or scenario could not be decoded.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindRender:
		return "render"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// ErrInvalidArgument is wrapped by every invalid-argument VizError, so callers
// can test with errors.Is.
var ErrInvalidArgument = stderrors.New("invalid argument")

// VizError represents a structured error raised by the visualizer.
type VizError struct {
	// Op is the operation that failed (e.g., "render.NewStack").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *VizError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *VizError) Unwrap() error {
	return e.Err
}

// InvalidArgument builds a KindInvalidArgument error for op. The message is
// formatted with fmt.Sprintf and wraps ErrInvalidArgument.
func InvalidArgument(op, format string, args ...any) *VizError {
	return &VizError{
		Op:        op,
		Kind:      KindInvalidArgument,
		Err:       fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...)),
		Timestamp: time.Now(),
	}
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "render.BoxDrawer.Update").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the visual layer.
type ErrorHandler interface {
	// HandleError is called when an error is reported.
	HandleError(err *VizError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}
