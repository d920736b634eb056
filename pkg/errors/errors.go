// Package errors provides structured error handling for the application
package errors

import (
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"
)

// ErrorCode represents an error code
type ErrorCode string

// Error codes for the generation contract and the REST surface
const (
	// Generation failures
	CodeTransportError    ErrorCode = "TRANSPORT_ERROR"
	CodeAuthError         ErrorCode = "AUTH_ERROR"
	CodeQuotaExceeded     ErrorCode = "QUOTA_EXCEEDED"
	CodeModelUnavailable  ErrorCode = "MODEL_UNAVAILABLE"
	CodeMalformedResponse ErrorCode = "MALFORMED_RESPONSE"

	// Client errors (4xx)
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodePlanNotFound     ErrorCode = "PLAN_NOT_FOUND"

	// Server errors (5xx)
	CodeInternal      ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"
)

// AppError represents an application error with structured information
type AppError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	Cause      error                  `json:"-"`
	StackTrace string                 `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// StatusCode returns the appropriate HTTP status code
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidationFailed:
		return http.StatusBadRequest
	case CodeAuthError:
		return http.StatusUnauthorized
	case CodeNotFound, CodePlanNotFound:
		return http.StatusNotFound
	case CodeQuotaExceeded:
		return http.StatusTooManyRequests
	case CodeTransportError, CodeMalformedResponse:
		return http.StatusBadGateway
	case CodeModelUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WithMetadata adds metadata to the error
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// WithCause adds a cause error
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message, details string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		Details:    details,
		StackTrace: getStackTrace(),
	}
}

// Predefined error constructors for common scenarios

// NewTransportError creates a transport error for a failed backend call
func NewTransportError(backend string, cause error) *AppError {
	return NewAppError(
		CodeTransportError,
		"Generation backend unreachable",
		fmt.Sprintf("Failed to reach %s", backend),
	).WithCause(cause).WithMetadata("backend", backend)
}

// NewAuthError creates an authentication error for a missing or rejected credential
func NewAuthError(backend string) *AppError {
	return NewAppError(
		CodeAuthError,
		"Generation credential missing or rejected",
		fmt.Sprintf("Backend %s rejected the configured credential", backend),
	).WithMetadata("backend", backend)
}

// NewQuotaExceededError creates a quota exceeded error
func NewQuotaExceededError(backend string) *AppError {
	return NewAppError(
		CodeQuotaExceeded,
		"Generation quota exceeded",
		fmt.Sprintf("Backend %s reported a rate or usage limit", backend),
	).WithMetadata("backend", backend)
}

// NewModelUnavailableError creates an error for an inaccessible model
func NewModelUnavailableError(backend, model string) *AppError {
	return NewAppError(
		CodeModelUnavailable,
		"Requested model not accessible",
		fmt.Sprintf("Model %s is not available on %s", model, backend),
	).WithMetadata("backend", backend).WithMetadata("model", model)
}

// NewMalformedResponseError creates an error for an unparseable model reply.
// The raw text is carried in metadata for diagnostics.
func NewMalformedResponseError(details, raw string) *AppError {
	return NewAppError(
		CodeMalformedResponse,
		"Model response could not be parsed",
		details,
	).WithMetadata("raw_response", raw)
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *AppError {
	return NewAppError(CodeBadRequest, message, "")
}

// NewValidationError creates a validation error
func NewValidationError(details string) *AppError {
	return NewAppError(CodeValidationFailed, "Validation failed", details)
}

// NewPlanNotFoundError creates a meal plan not found error
func NewPlanNotFoundError(planID string) *AppError {
	return NewAppError(
		CodePlanNotFound,
		"Meal plan not found",
		fmt.Sprintf("Meal plan with ID %s does not exist", planID),
	).WithMetadata("plan_id", planID)
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *AppError {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return NewAppError(CodeInternal, message, "")
}

// NewDatabaseError creates a database error
func NewDatabaseError(operation string, cause error) *AppError {
	return NewAppError(
		CodeDatabaseError,
		"Database operation failed",
		fmt.Sprintf("Failed to %s", operation),
	).WithCause(cause)
}

// Utility functions

// Wrap wraps an error as an internal error if it's not already an AppError
func Wrap(err error, message string) *AppError {
	if err == nil {
		return nil
	}

	if appErr, ok := err.(*AppError); ok {
		return appErr
	}

	return NewInternalError(message).WithCause(err)
}

// Is checks if an error is of a specific error code
func Is(err error, code ErrorCode) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return CodeInternal
}

// Retryable reports whether the single-fallback policy applies to err.
// Malformed responses and validation failures are never retried: re-prompting
// would mask a systemic prompt/schema mismatch.
func Retryable(err error) bool {
	switch GetCode(err) {
	case CodeTransportError, CodeAuthError, CodeQuotaExceeded, CodeModelUnavailable:
		return true
	default:
		return false
	}
}

// getStackTrace captures the current stack trace
func getStackTrace() string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var builder strings.Builder
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "pkg/errors") {
			builder.WriteString(fmt.Sprintf("%s:%d %s\n", frame.File, frame.Line, frame.Function))
		}
		if !more {
			break
		}
	}

	return builder.String()
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails represents the error details in API responses
type ErrorDetails struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp string    `json:"timestamp"`
}

// ToErrorResponse converts an AppError to an API error response
func ToErrorResponse(err *AppError, requestID string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetails{
			Code:      err.Code,
			Message:   err.Message,
			Details:   err.Details,
			RequestID: requestID,
			Timestamp: fmt.Sprintf("%d", time.Now().Unix()),
		},
	}
}
