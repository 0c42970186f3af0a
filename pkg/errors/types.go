// Package errors provides the structured error type shared by every core
// subsystem (storage, feed, download, audio). Each subsystem defines its own
// Code constants on top of this machinery rather than reusing one flat enum,
// so that a NotFound from Storage can never be confused with an Io error
// from Download.
package errors

import "fmt"

// Code is a subsystem-scoped error classification. Subsystem packages
// declare their own Code constants (e.g. storage.ErrCodePodcastNotFound)
// built from a short namespaced string so log output stays unambiguous.
type Code string

// AppError is a structured error carrying a classification Code, a
// human-readable message, optional structured details, and an optional
// wrapped cause. Callers classify a failure by its Code (see
// storage.IsNotFound) rather than by matching on Message.
type AppError struct {
	Code    Code
	Message string
	Details map[string]any
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap allows errors.Is/As to see through to the underlying cause.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetail attaches a structured detail and returns the receiver for chaining.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates an AppError with no cause.
func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Newf creates an AppError with a formatted message.
func Newf(code Code, format string, args ...any) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an AppError around an existing cause.
func Wrap(cause error, code Code, message string) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause}
}

// Wrapf creates an AppError around an existing cause with a formatted message.
func Wrapf(cause error, code Code, format string, args ...any) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether err is an *AppError carrying the given code.
func Is(err error, code Code) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the Code from err, or "" if err is not an *AppError.
func GetCode(err error) Code {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return ""
}
