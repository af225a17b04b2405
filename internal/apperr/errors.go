// Package apperr holds the request failure conditions and the single place
// where they are turned into HTTP responses.
package apperr

import "fmt"

// Kind names a failure condition. Each kind maps to exactly one status code.
type Kind int

const (
	KindUnhandled Kind = iota
	KindNotFound
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation_failed"
	default:
		return "unhandled"
	}
}

// ValidationMessage is the fixed message reported for rejected input.
const ValidationMessage = "Validation Failed"

// Violation describes one field that failed a constraint.
type Violation struct {
	Field         string `json:"field"`
	RejectedValue any    `json:"rejectedValue"`
	Message       string `json:"message"`
}

// Error is a failure raised during request handling.
type Error struct {
	Kind       Kind
	Message    string
	Violations []Violation
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound builds a not-found condition with a formatted message.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// ValidationFailed builds a validation condition carrying the violations.
func ValidationFailed(violations []Violation) *Error {
	return &Error{Kind: KindValidation, Message: ValidationMessage, Violations: violations}
}
