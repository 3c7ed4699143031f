package ledger

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by Service matches exactly one of them
// under errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal error")
)

// Error is a classified service failure. Message is safe to show to clients;
// Err holds the underlying cause and is only meant for logs.
type Error struct {
	Kind    error  // One of the Err* kinds above
	Message string // Client facing description
	Field   string // Offending input field, validation errors only
	Err     error  // Underlying cause
}

// Error includes the cause, so it is meant for logs rather than clients.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for the kind sentinels.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func validationError(field, format string, args ...any) error {
	return &Error{Kind: ErrValidation, Field: field, Message: fmt.Sprintf(format, args...)}
}

func notFound(what string) error {
	return &Error{Kind: ErrNotFound, Message: what + " not found"}
}

func forbidden(what string) error {
	return &Error{Kind: ErrForbidden, Message: "not allowed to access this " + what}
}

func conflict(format string, args ...any) error {
	return &Error{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

func unauthorized(message string) error {
	return &Error{Kind: ErrUnauthorized, Message: message}
}
