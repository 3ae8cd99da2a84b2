package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a specific error type for recommendation operations.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a referenced user or course does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInvalidArgument indicates invalid input parameters.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeStorageFailure indicates a failed store transaction.
	ErrCodeStorageFailure ErrorCode = "STORAGE_FAILURE"
	// ErrCodeScoringUnavailable indicates the embedding subsystem failed.
	ErrCodeScoringUnavailable ErrorCode = "SCORING_UNAVAILABLE"
	// ErrCodeUnauthorized indicates authentication failure.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
)

// CodedError represents a structured error with a stable code.
type CodedError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *CodedError) Unwrap() error {
	return e.Cause
}

// GetCode returns the error code.
func (e *CodedError) GetCode() ErrorCode {
	return e.Code
}

// Convenience constructors for the error taxonomy.

// NotFound creates a not found error.
func NotFound(msg string) *CodedError {
	return &CodedError{Code: ErrCodeNotFound, Message: msg}
}

// NotFoundf creates a not found error with a formatted message.
func NotFoundf(format string, args ...any) *CodedError {
	return &CodedError{Code: ErrCodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// InvalidArgument creates an invalid argument error.
func InvalidArgument(msg string) *CodedError {
	return &CodedError{Code: ErrCodeInvalidArgument, Message: msg}
}

// StorageFailure creates a storage failure error wrapping its cause.
func StorageFailure(msg string, cause error) *CodedError {
	return &CodedError{Code: ErrCodeStorageFailure, Message: msg, Cause: cause}
}

// ScoringUnavailable creates a scoring unavailable error wrapping its cause.
func ScoringUnavailable(msg string, cause error) *CodedError {
	return &CodedError{Code: ErrCodeScoringUnavailable, Message: msg, Cause: cause}
}

// Unauthorized creates an unauthorized error.
func Unauthorized(msg string) *CodedError {
	return &CodedError{Code: ErrCodeUnauthorized, Message: msg}
}

// Wrap wraps an existing error with a code and message.
func Wrap(cause error, code ErrorCode, msg string) *CodedError {
	return &CodedError{Code: code, Message: msg, Cause: cause}
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsCode checks if an error (or any error in its chain) carries a code.
func IsCode(err error, code ErrorCode) bool {
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code == code
	}
	return false
}

// GetCodeFromError extracts the error code from any error.
// Returns the provided default code if the error carries no code.
func GetCodeFromError(err error, defaultCode ErrorCode) ErrorCode {
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code
	}
	return defaultCode
}
