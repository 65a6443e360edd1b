// Package errors defines common error types for the application.
package errors

import (
	"errors"
	"fmt"
)

// Error codes for the application.
const (
	CodeUnknown      = "UNKNOWN_ERROR"
	CodeNotText      = "NOT_TEXT"
	CodeUnrecognized = "UNRECOGNIZED_FORMAT"
	CodeParseError   = "PARSE_ERROR"
	CodePersistence  = "PERSISTENCE_ERROR"
	CodeDatabase     = "DATABASE_ERROR"
	CodeInvalidInput = "INVALID_INPUT"
	CodeNotFound     = "NOT_FOUND"
	CodeConfigError  = "CONFIG_ERROR"
)

// AppError represents an application error with a code and message.
type AppError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches the target by code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError.
func New(code string, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an AppError.
func Wrap(code string, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error instances.
var (
	// ErrNotText means the payload matched no binary schema and is not
	// valid UTF-8 text, so no text-based decoding is attempted.
	ErrNotText = New(CodeNotText, "input is neither a known binary schema nor UTF-8 text")

	// ErrUnrecognized means the payload is valid text but matched none of
	// the known encodings.
	ErrUnrecognized = New(CodeUnrecognized, "input matched no known format")

	ErrParseError   = New(CodeParseError, "parse error")
	ErrPersistence  = New(CodePersistence, "persistence error")
	ErrDatabase     = New(CodeDatabase, "database error")
	ErrInvalidInput = New(CodeInvalidInput, "invalid input")
	ErrNotFound     = New(CodeNotFound, "resource not found")
	ErrConfigError  = New(CodeConfigError, "configuration error")
)

// IsNotText checks if the error is a not-text decode error.
func IsNotText(err error) bool {
	return errors.Is(err, ErrNotText)
}

// IsUnrecognized checks if the error is an unrecognized-format decode error.
func IsUnrecognized(err error) bool {
	return errors.Is(err, ErrUnrecognized)
}

// IsPersistence checks if the error is a persistence error.
func IsPersistence(err error) bool {
	return errors.Is(err, ErrPersistence)
}

// IsDatabase checks if the error is a database error.
func IsDatabase(err error) bool {
	return errors.Is(err, ErrDatabase)
}

// IsNotFound checks if the error is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetErrorMessage extracts the error message from an error.
func GetErrorMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
