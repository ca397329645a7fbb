package pagesim

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the failures of a simulation run.
type ErrorKind int

const (
	// ErrKindUnknown is the kind of errors not produced by this package.
	ErrKindUnknown ErrorKind = iota

	// ErrKindConfiguration marks an invalid frame count or page size.
	ErrKindConfiguration

	// ErrKindResource marks a failure to set up the simulated memory.
	ErrKindResource

	// ErrKindIO marks a trace source that cannot be read.
	ErrKindIO

	// ErrKindMalformedTrace marks a trace line that is not an address.
	ErrKindMalformedTrace

	// ErrKindCapacity marks a page number above the configured maximum.
	ErrKindCapacity
)

func (k ErrorKind) String() string {
	switch k {
	case ErrKindConfiguration:
		return "configuration error"
	case ErrKindResource:
		return "resource error"
	case ErrKindIO:
		return "io error"
	case ErrKindMalformedTrace:
		return "malformed trace line"
	case ErrKindCapacity:
		return "capacity error"
	default:
		return "unknown error"
	}
}

// Sentinels for errors.Is. Any *Error of the same kind matches.
var (
	ErrConfiguration  = &Error{Kind: ErrKindConfiguration}
	ErrResource       = &Error{Kind: ErrKindResource}
	ErrIO             = &Error{Kind: ErrKindIO}
	ErrMalformedTrace = &Error{Kind: ErrKindMalformedTrace}
	ErrCapacity       = &Error{Kind: ErrKindCapacity}
)

// Error is a simulation error with context.
type Error struct {
	Kind    ErrorKind
	Op      string // Operation that failed
	Message string
	Err     error // Underlying error, if any
}

// NewError creates a new Error.
func NewError(kind ErrorKind, op, message string, err error) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}

	if e.Op != "" {
		msg = e.Op + ": " + msg
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.Kind == t.Kind
}

// KindOf returns the kind of the first *Error in the chain of err.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return ErrKindUnknown
}
