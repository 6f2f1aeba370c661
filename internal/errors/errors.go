package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context, keeping the code of a wrapped AppError
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode wraps err under the given code
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid     = "CONFIG_INVALID"
	CodeInputUnreadable   = "INPUT_UNREADABLE"
	CodeSchemaMismatch    = "SCHEMA_MISMATCH"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeEmptyTable        = "EMPTY_TABLE"
	CodeOutputWriteFailed = "OUTPUT_WRITE_FAILED"
	CodeRenderFailed      = "RENDER_FAILED"
	CodeInternalError     = "INTERNAL_ERROR"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InputUnreadable(path string, cause error) *AppError {
	return &AppError{
		Code:    CodeInputUnreadable,
		Message: fmt.Sprintf("cannot read input %s", path),
		Cause:   cause,
	}
}

func SchemaMismatch(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeSchemaMismatch,
		Message: message,
		Cause:   cause,
	}
}

func EmptyTable(cause error) *AppError {
	return &AppError{
		Code:    CodeEmptyTable,
		Message: "table has no rows",
		Cause:   cause,
	}
}

func OutputWriteFailed(path string, cause error) *AppError {
	return &AppError{
		Code:    CodeOutputWriteFailed,
		Message: fmt.Sprintf("failed to write %s", path),
		Cause:   cause,
	}
}

func RenderFailed(chart string, cause error) *AppError {
	return &AppError{
		Code:    CodeRenderFailed,
		Message: fmt.Sprintf("failed to render %s", chart),
		Cause:   cause,
	}
}
