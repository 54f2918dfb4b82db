package errors

import (
	stderrors "errors"
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

// ErrorCode returns the error code
func (e *AppError) ErrorCode() string {
	return e.Code
}

// coder is implemented by errors that carry their own code
type coder interface {
	ErrorCode() string
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
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

// WithCode adds an error code to an existing error
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
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetCode returns the code of the outermost error in the chain that carries
// one, otherwise "UNKNOWN"
func GetCode(err error) string {
	var c coder
	if stderrors.As(err, &c) {
		return c.ErrorCode()
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid   = "CONFIG_INVALID"
	CodeStorageError    = "STORAGE_ERROR"
	CodeInvalidState    = "INVALID_STATE"
	CodeArgumentDomain  = "ARGUMENT_DOMAIN"
	CodeArrayDimensions = "ARRAY_DIMENSIONS"
	CodeWeights         = "WEIGHTS"
	CodeSampleSize      = "SAMPLE_SIZE"
	CodeImmutableState  = "IMMUTABLE_STATE"
	CodeInternalError   = "INTERNAL_ERROR"
	CodeInvalidInput    = "INVALID_INPUT"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func StorageError(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeStorageError,
		Message: message,
		Cause:   cause,
	}
}

func InvalidState(cause error) *AppError {
	return &AppError{
		Code:    CodeInvalidState,
		Message: "persisted random state is not usable",
		Cause:   cause,
	}
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}
