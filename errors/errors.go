// Package errors defines the structured application error type and the
// taxonomy used across the service and transport layers.
package errors

import (
	"fmt"
	"net/http"

	"github.com/feedbackform/feedback-backend/logger"
)

type ErrorType string

const (
	ValidationError  ErrorType = "VALIDATION_ERROR"
	NotFoundError    ErrorType = "NOT_FOUND"
	AuthError        ErrorType = "AUTHENTICATION_ERROR"
	StorageError     ErrorType = "STORAGE_ERROR"
	UpstreamError    ErrorType = "UPSTREAM_ERROR"
	UnsupportedError ErrorType = "UNSUPPORTED"
	ServerError      ErrorType = "SERVER_ERROR"
)

// AppError is a structured application error carrying the HTTP status the
// transport layer should respond with.
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Raw        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Raw
}

// GetHTTPStatus returns the HTTP status code this error maps to.
func (e *AppError) GetHTTPStatus() int {
	if e.HTTPStatus != 0 {
		return e.HTTPStatus
	}
	return getHTTPStatus(e.Type)
}

// New creates a new AppError with the status derived from the error type.
func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: getHTTPStatus(errType),
	}
}

// Wrap wraps a raw error with AppError context.
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: getHTTPStatus(errType),
		Raw:        err,
	}
}

// Helper constructors for common errors.

func NotFound(entity string, id interface{}) *AppError {
	return &AppError{
		Type:       NotFoundError,
		Message:    fmt.Sprintf("%s not found", entity),
		Detail:     fmt.Sprintf("ID: %v", id),
		HTTPStatus: http.StatusNotFound,
	}
}

func ValidationFailed(message string, detail string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Message:    message,
		Detail:     detail,
		HTTPStatus: http.StatusBadRequest,
	}
}

func AuthenticationFailed(message string) *AppError {
	return &AppError{
		Type:       AuthError,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewStorageError logs the raw storage failure and returns a sanitized error
// so backend details never reach the client.
func NewStorageError(err error) *AppError {
	logger.GetLogger().Errorw("Storage error", "error", err)
	return &AppError{
		Type:       StorageError,
		Message:    "Storage operation failed",
		Detail:     "Please try again later",
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}

// NewUpstreamError wraps a failure from an external provider (LLM, identity).
func NewUpstreamError(provider string, err error) *AppError {
	logger.GetLogger().Errorw("Upstream error", "provider", provider, "error", err)
	return &AppError{
		Type:       UpstreamError,
		Message:    fmt.Sprintf("%s request failed", provider),
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}

// Unsupported reports an operation the selected storage backend cannot serve.
func Unsupported(operation string) *AppError {
	return &AppError{
		Type:       UnsupportedError,
		Message:    fmt.Sprintf("%s is not supported by the configured storage backend", operation),
		HTTPStatus: http.StatusNotImplemented,
	}
}

func InternalServerError(message string) *AppError {
	return &AppError{
		Type:       ServerError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case ValidationError:
		return http.StatusBadRequest
	case NotFoundError:
		return http.StatusNotFound
	case AuthError:
		return http.StatusUnauthorized
	case UnsupportedError:
		return http.StatusNotImplemented
	case StorageError, UpstreamError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
