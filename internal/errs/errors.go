// Package errs provides the error type shared by the gallery core and its handlers.
//
// The object store driver wraps native SDK errors into *errs.Error; handlers
// inspect the kind with the Is* predicates to pick an HTTP status.
//
//	if errs.IsNotFound(err) {
//	    return c.JSON(http.StatusNotFound, ...)
//	}
package errs

import (
	"errors"
	"fmt"
)

// ErrKind categorises an error without exposing SDK-specific codes.
type ErrKind int

const (
	ErrKindUnknown          ErrKind = iota
	ErrKindInvalidArgument          // malformed or missing caller input
	ErrKindNotFound                 // object absent
	ErrKindStoreUnavailable         // any failure of the underlying object store call
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindInvalidArgument:
		return "invalid_argument"
	case ErrKindNotFound:
		return "not_found"
	case ErrKindStoreUnavailable:
		return "store_unavailable"
	default:
		return "unknown"
	}
}

// Error carries a kind, a caller-facing message and the original cause.
type Error struct {
	Kind    ErrKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is / errors.As to traverse the cause chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an *Error with the given kind and message and no cause.
func New(kind ErrKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap creates an *Error with the given kind, message, and an underlying cause.
func Wrap(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// InvalidArgument is shorthand for New(ErrKindInvalidArgument, msg).
func InvalidArgument(msg string) *Error {
	return New(ErrKindInvalidArgument, msg)
}

// IsInvalidArgument reports whether err was caused by bad input from the caller.
func IsInvalidArgument(err error) bool {
	return KindOf(err) == ErrKindInvalidArgument
}

// IsNotFound reports whether err represents a missing object.
func IsNotFound(err error) bool {
	return KindOf(err) == ErrKindNotFound
}

// IsStoreUnavailable reports whether err is a failure of the object store.
func IsStoreUnavailable(err error) bool {
	return KindOf(err) == ErrKindStoreUnavailable
}

// KindOf extracts the ErrKind from any error in the chain.
func KindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrKindUnknown
}

// MessageOf returns the caller-facing message of err, or fallback when err
// carries none.
func MessageOf(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}
