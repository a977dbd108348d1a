package errors

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
)

// Legacy error codes understood by existing clients.
const (
	CodeGeneric      = 0
	CodeBadFilter    = 1
	CodeKindMismatch = 2
)

// Error represents a typed domain error with HTTP awareness.
//
// Only Message, LegacyCode and Line are serialised; the remaining fields drive
// status selection and logging.
type Error struct {
	Code       string `json:"-"`
	Message    string `json:"message"`
	LegacyCode int    `json:"error_code"`
	Line       int    `json:"error_line"`
	Status     int    `json:"-"`
	Err        error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches errors sharing the same Code so clones compare equal to their template.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, legacy int, status int, message string) *Error {
	return &Error{Code: code, LegacyCode: legacy, Status: status, Message: message, Line: callerLine(2)}
}

// Wrap attaches context to an existing error, inheriting code and status from tmpl.
func Wrap(err error, tmpl *Error, message string) *Error {
	if message == "" {
		message = tmpl.Message
	}
	return &Error{
		Code:       tmpl.Code,
		LegacyCode: tmpl.LegacyCode,
		Status:     tmpl.Status,
		Message:    message,
		Err:        err,
		Line:       callerLine(2),
	}
}

// Predefined errors for common scenarios.
var (
	ErrEmptyFilter    = New("EMPTY_FILTER", CodeBadFilter, http.StatusBadRequest, "no usable filter parameters were given")
	ErrValidation     = New("VALIDATION_ERROR", CodeBadFilter, http.StatusBadRequest, "validation failed")
	ErrNotFound       = New("NOT_FOUND", CodeGeneric, http.StatusNotFound, "resource not found")
	ErrKindMismatch   = New("KIND_MISMATCH", CodeKindMismatch, http.StatusInternalServerError, "unexpected record type")
	ErrNotInitialized = New("NOT_INITIALIZED", CodeGeneric, http.StatusServiceUnavailable, "collection is not initialized yet")
	ErrInternal       = New("INTERNAL_ERROR", CodeGeneric, http.StatusInternalServerError, "internal server error")

	ErrCacheMiss = errors.New("cache miss")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{
		Code:       ErrInternal.Code,
		LegacyCode: ErrInternal.LegacyCode,
		Status:     ErrInternal.Status,
		Message:    fmt.Sprintf("unexpected error has occurred: %v", err),
		Err:        err,
		Line:       callerLine(2),
	}
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	clone.Line = callerLine(2)
	return &clone
}

func callerLine(skip int) int {
	_, _, line, ok := runtime.Caller(skip)
	if !ok {
		return 0
	}
	return line
}
