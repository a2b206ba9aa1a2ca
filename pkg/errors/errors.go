// Package errors provides the structured errors raised by animation commands
// and carried by rejected promises.
//
// Errors are classified by [ErrorKind], whose String method returns the
// DOMException name script would observe ("InvalidStateError", "AbortError").
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
	// KindInvalidState indicates a command that cannot be applied in the
	// animation's current state.
	KindInvalidState
	// KindAbort indicates an operation superseded before it completed.
	KindAbort
	// KindType indicates an argument of the wrong shape.
	KindType
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindUnhandledRejection indicates a promise rejected with no handler.
	KindUnhandledRejection
	// KindQueueOverflow indicates a task queue grew past its warning limit.
	KindQueueOverflow
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidState:
		return "InvalidStateError"
	case KindAbort:
		return "AbortError"
	case KindType:
		return "TypeError"
	case KindPanic:
		return "panic"
	case KindUnhandledRejection:
		return "unhandled rejection"
	case KindQueueOverflow:
		return "queue overflow"
	default:
		return "unknown"
	}
}

// Sentinel errors usable with errors.Is against any *Error of the same kind.
var (
	ErrInvalidState = &Error{Kind: KindInvalidState}
	ErrAbort        = &Error{Kind: KindAbort}
	ErrType         = &Error{Kind: KindType}
)

// Error represents a structured animation error.
type Error struct {
	// Op is the operation that failed (e.g., "Animation.finish").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *Error) Error() string {
	if e.Op == "" {
		if e.Err == nil {
			return e.Kind.String()
		}
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	if e.Err == nil {
		return fmt.Sprintf("%s [%s]", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same Kind, so sentinels compare by kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// InvalidState returns an InvalidStateError for op.
func InvalidState(op, msg string) *Error {
	return &Error{Op: op, Kind: KindInvalidState, Err: stderrors.New(msg)}
}

// Abort returns an AbortError for op.
func Abort(op, msg string) *Error {
	return &Error{Op: op, Kind: KindAbort, Err: stderrors.New(msg)}
}

// TypeErr returns a TypeError for op.
func TypeErr(op, msg string) *Error {
	return &Error{Op: op, Kind: KindType, Err: stderrors.New(msg)}
}

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "dom.EventLoop.microtask").
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

// ErrorHandler receives errors reported outside of a synchronous return path.
type ErrorHandler interface {
	// HandleError is called when an error is reported.
	HandleError(err *Error)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
