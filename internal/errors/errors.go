// Package errors defines the coded error type shared by the calculator
// services. Transport layers read the code to pick an HTTP status; the
// engine's failure kinds get their codes attached at the service layer.
package errors

import (
	"fmt"
)

// Codes carried across service boundaries.
const (
	CodeConfigInvalid   = "CONFIG_INVALID"
	CodeDatabaseError   = "DATABASE_ERROR"
	CodeValidationError = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeCalculation     = "CALCULATION_ERROR"
	CodeNoSolution      = "NO_SOLUTION_IN_RANGE"
	CodeExport          = "EXPORT_ERROR"
	CodeInternalError   = "INTERNAL_ERROR"
	CodeInvalidInput    = "INVALID_INPUT"
)

// AppError pairs a message with a code and an optional cause.
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

// New creates an AppError with the given code and message.
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap adds context to an error, keeping the code of an existing AppError.
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

// WithCode attaches a code to an existing error.
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// IsAppError checks if an error carries a code.
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code, "UNKNOWN" for plain errors.
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Validation marks a parameter schema or domain failure.
func Validation(err error) error {
	return WithCode(CodeValidationError, err)
}

// NoSolution marks a solve whose search range held no answer.
func NoSolution(err error) error {
	return WithCode(CodeNoSolution, err)
}

// Numeric marks a calculation that failed to converge or went non-finite.
func Numeric(err error) error {
	return WithCode(CodeCalculation, err)
}

// ExportFailed marks a workbook export failure.
func ExportFailed(err error) error {
	return WithCode(CodeExport, err)
}

// Storage marks a history persistence failure.
func Storage(err error) error {
	return WithCode(CodeDatabaseError, err)
}

// ConfigInvalid reports a bad environment configuration value.
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// NotFound reports a missing resource.
func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

// InvalidInput reports a malformed request.
func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}
