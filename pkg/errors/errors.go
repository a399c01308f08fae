package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeTransport  ErrorType = "transport"
	ErrorTypeHTTPStatus ErrorType = "http_status"
	ErrorTypeParse      ErrorType = "parse"
	ErrorTypeConflict   ErrorType = "conflict"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeInternal   ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	// UpstreamStatus is the status the process endpoint answered with, for http_status errors.
	UpstreamStatus int   `json:"upstream_status,omitempty"`
	StatusCode     int   `json:"-"`
	Cause          error `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		Details:    detail,
		StatusCode: http.StatusBadRequest,
	}
}

// NewTransportError creates an error for a request that never got a response.
// The message is the underlying failure's text.
func NewTransportError(cause error) *AppError {
	message := "network request failed"
	if cause != nil {
		message = cause.Error()
	}
	return &AppError{
		Type:       ErrorTypeTransport,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewHTTPStatusError creates an error for a non-2xx answer from the process endpoint
func NewHTTPStatusError(upstreamStatus int) *AppError {
	return &AppError{
		Type:           ErrorTypeHTTPStatus,
		Message:        fmt.Sprintf("Upload failed with status: %d", upstreamStatus),
		UpstreamStatus: upstreamStatus,
		StatusCode:     http.StatusBadGateway,
	}
}

// NewParseError creates an error for a response body that is not JSON
func NewParseError(cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeParse,
		Message:    "Could not read the server response",
		Details:    causeText(cause),
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewConflictError creates a new conflict error
func NewConflictError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewInternalError creates a new internal server error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// GetStatusCode returns the HTTP status code for an error
func GetStatusCode(err error) int {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// UserMessage returns the text a person should see for err.
// AppErrors show their message, anything else its Error text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		if appErr.Type == ErrorTypeParse && appErr.Details != "" {
			return appErr.Message + ": " + appErr.Details
		}
		return appErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "An unknown error occurred"
}

func causeText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
