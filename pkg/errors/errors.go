// Package errors provides structured error handling for the ember widget core.
//
// Most failures inside the core are absorbed by policy (queue overflow, events
// with no target, degenerate constraints). The ones that reach the caller are
// surface failures from a render pass and tree-structure misuse; both are
// reported as *Error values that wrap a sentinel or the underlying cause.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindSurface indicates a drawable surface failure during a render pass.
	KindSurface
	// KindLayout indicates a layout failure.
	KindLayout
	// KindDispatch indicates an event dispatch failure.
	KindDispatch
	// KindTree indicates invalid tree manipulation.
	KindTree
	// KindConfig indicates a configuration or theme loading error.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindSurface:
		return "surface"
	case KindLayout:
		return "layout"
	case KindDispatch:
		return "dispatch"
	case KindTree:
		return "tree"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Sentinel errors wrapped by *Error.
var (
	ErrNotFound           = errors.New("node not found")
	ErrAttached           = errors.New("widget already attached")
	ErrCycle              = errors.New("insertion would create a cycle")
	ErrReentrant          = errors.New("dispatch already in progress")
	ErrUnsupportedVersion = errors.New("unsupported version")
)

// Error represents a structured error raised by the core.
type Error struct {
	// Op is the operation that failed (e.g., "rendering.Render").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Node is the ID of the node involved, or zero.
	Node uint64
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error, if captured.
	StackTrace string
	// Timestamp is when the error was reported.
	Timestamp time.Time
}

func (e *Error) Error() string {
	if e.Node != 0 {
		return fmt.Sprintf("%s [%s] node=%d: %v", e.Op, e.Kind, e.Node, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New returns an *Error for op wrapping err.
func New(op string, kind ErrorKind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "dispatch.Dispatch").
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

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Handler receives errors reported by the core.
type Handler interface {
	// HandleError is called when an error is reported.
	HandleError(err *Error)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}

// Is, As and Unwrap forward to the standard library so callers need a single import.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)
