package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// NotFound indicates the requested phone number has no record
	NotFound ErrorCode = "NOT_FOUND"
	// AlreadyExists indicates a record for the phone number exists on create
	AlreadyExists ErrorCode = "ALREADY_EXISTS"
	// ValidationFailed indicates a request field violated the schema
	ValidationFailed ErrorCode = "VALIDATION_FAILED"
	// InvalidBody indicates the request body could not be parsed
	InvalidBody ErrorCode = "INVALID_BODY"
	// StoreUnavailable indicates the key-value store is unreachable or failing
	StoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
	// InternalError indicates an unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// ServiceError carries a stable code alongside a human-readable message
type ServiceError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	cause   error
}

// New creates a ServiceError without an underlying cause
func New(code ErrorCode, message string) *ServiceError {
	return &ServiceError{Code: code, Message: message}
}

// Wrap creates a ServiceError around an underlying cause
func Wrap(code ErrorCode, message string, cause error) *ServiceError {
	return &ServiceError{Code: code, Message: message, cause: cause}
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *ServiceError) Unwrap() error {
	return e.cause
}

// CodeOf extracts the error code from err, returning InternalError for
// anything that is not a ServiceError.
func CodeOf(err error) ErrorCode {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Code
	}
	return InternalError
}

// IsCode reports whether err carries the given code
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
