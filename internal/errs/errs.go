package errs

import (
	"errors"
	"fmt"
)

// Code is a stable machine-readable identifier for an error class. Handlers
// map codes to HTTP statuses without inspecting message text.
type Code string

const (
	CodeNotFound               Code = "not_found"
	CodeInvalidLocation        Code = "invalid_location"
	CodeSelfReference          Code = "self_reference"
	CodeCyclicReference        Code = "cyclic_reference"
	CodeBrokenChain            Code = "broken_chain"
	CodeConcurrentModification Code = "concurrent_modification"
	CodeValidation             Code = "validation"
	CodeConflict               Code = "conflict"
	CodeInternal               Code = "internal"
)

type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes two *Error values match when their codes match, so callers can use
// errors.Is(err, errs.NotFound("")) style sentinels if they want to.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func NotFound(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func InvalidLocation(format string, args ...any) *Error {
	return &Error{Code: CodeInvalidLocation, Message: fmt.Sprintf(format, args...)}
}

func SelfReference(format string, args ...any) *Error {
	return &Error{Code: CodeSelfReference, Message: fmt.Sprintf(format, args...)}
}

func CyclicReference(format string, args ...any) *Error {
	return &Error{Code: CodeCyclicReference, Message: fmt.Sprintf(format, args...)}
}

func BrokenChain(format string, args ...any) *Error {
	return &Error{Code: CodeBrokenChain, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

func ConcurrentModification(err error) *Error {
	return &Error{Code: CodeConcurrentModification, Message: "operation conflicted with a concurrent writer", Err: err}
}

func Internal(err error) *Error {
	return &Error{Code: CodeInternal, Message: "internal error", Err: err}
}

// CodeOf extracts the application error code. A nil error yields the zero
// Code; errors that did not originate in this package map to CodeInternal.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// Retryable reports whether the caller may retry the operation. Validation
// failures are deterministic; only transient classes qualify.
func Retryable(err error) bool {
	switch CodeOf(err) {
	case CodeConcurrentModification, CodeBrokenChain:
		return true
	}
	return false
}
