package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents different types of errors
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation_error"
	ErrorTypeNotFound   ErrorType = "not_found_error"
	ErrorTypeExternal   ErrorType = "external_service_error"
	ErrorTypeDatabase   ErrorType = "database_error"
)

// AppError represents an application error with an HTTP status mapping
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	StatusCode int       `json:"status_code"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is/As
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Validation creates a validation error (bad or missing input)
func Validation(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NotFound creates a not-found error for the given resource
func NotFound(resource string, id interface{}) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    fmt.Sprintf("%s %v not found", resource, id),
		StatusCode: http.StatusNotFound,
	}
}

// External creates an external-service error. The collaborator's error
// text is relayed verbatim, never retried.
func External(service, message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeExternal,
		Message:    fmt.Sprintf("%s: %s", service, message),
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// Database wraps an unexpected database failure
func Database(operation string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeDatabase,
		Message:    fmt.Sprintf("database operation failed: %s", operation),
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsNotFound reports whether err is a not-found error
func IsNotFound(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsExternal reports whether err is an external-service error
func IsExternal(err error) bool {
	return isType(err, ErrorTypeExternal)
}

func isType(err error, t ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}
