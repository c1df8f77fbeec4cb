// Package errors provides the standardized error taxonomy shared by the
// remote API client and the client-side state components.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Transport and remote-rejection errors.
const (
	ErrCodeNetwork          ErrorCode = "NETWORK_ERROR"
	ErrCodeTimeout          ErrorCode = "TIMEOUT_ERROR"
	ErrCodeRequestRejected  ErrorCode = "REQUEST_REJECTED"
	ErrCodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	ErrCodeDecodeFailed     ErrorCode = "DECODE_FAILED"
	ErrCodeRequestBuildFail ErrorCode = "HTTP_REQUEST_ERROR"
)

// Local state errors. These never reach the network.
const (
	ErrCodeValidationFailed  ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidTransition ErrorCode = "INVALID_TRANSITION"
	ErrCodeNotAuthenticated  ErrorCode = "NOT_AUTHENTICATED"
	ErrCodeAlreadyApplied    ErrorCode = "ALREADY_APPLIED"
	ErrCodeStaleResponse     ErrorCode = "STALE_RESPONSE"
	ErrCodeAccessDenied      ErrorCode = "ACCESS_DENIED"
	ErrCodeStorageFailed     ErrorCode = "STORAGE_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	StatusCode int                    `json:"statusCode,omitempty"`
	Retryable  bool                   `json:"retryable"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
	cause      error
}

func (e *StandardError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("StandardError[%s/%d]: %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// ==========================
// 2. Error Constructors
// ==========================

// NewNetworkError wraps a transport failure: the request never reached the
// service or no response came back.
func NewNetworkError(endpoint string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNetwork,
		Message:   "Network error. Please try again.",
		Details:   fmt.Sprintf("endpoint: %s, error: %v", endpoint, err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewTimeoutError is a network failure caused by the bounded request timeout.
func NewTimeoutError(endpoint string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTimeout,
		Message:   fmt.Sprintf("Request to %s timed out", endpoint),
		Details:   fmt.Sprintf("%v", err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewRejectedError creates an error for a non-2xx response. message is the
// remote service's own error text when it sent one.
func NewRejectedError(endpoint string, status int, message string) *StandardError {
	code := ErrCodeRequestRejected
	if status == 401 || status == 422 {
		code = ErrCodeUnauthorized
	}
	if message == "" {
		message = fmt.Sprintf("Server error: %d", status)
	}
	return &StandardError{
		Code:       code,
		Message:    message,
		Details:    fmt.Sprintf("endpoint: %s", endpoint),
		StatusCode: status,
		Retryable:  status >= 500,
		Timestamp:  time.Now().UTC(),
	}
}

// NewDecodeError reports a 2xx response whose body could not be decoded.
func NewDecodeError(endpoint string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDecodeFailed,
		Message:   "Unexpected response from server",
		Details:   fmt.Sprintf("endpoint: %s, error: %v", endpoint, err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewRequestBuildError reports a request that could not be constructed.
func NewRequestBuildError(endpoint string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestBuildFail,
		Message:   "Failed to create HTTP request",
		Details:   fmt.Sprintf("endpoint: %s, error: %v", endpoint, err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewValidationError creates a client-side validation failure.
func NewValidationError(message string, details ...string) *StandardError {
	e := &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   message,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
	if len(details) > 0 {
		e.Details = fmt.Sprintf("%v", details)
		e.Metadata = map[string]interface{}{"fields": details}
	}
	return e
}

// NewInvalidTransitionError reports a local state transition that was refused.
func NewInvalidTransitionError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidTransition,
		Message:   "Invalid state transition",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewNotAuthenticatedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotAuthenticated,
		Message:   "Please login to continue",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewAlreadyAppliedError(listingID int) *StandardError {
	return &StandardError{
		Code:      ErrCodeAlreadyApplied,
		Message:   "Already applied to this internship",
		Details:   fmt.Sprintf("internshipId: %d", listingID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewStaleResponseError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeStaleResponse,
		Message:   "Response superseded by a newer request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewAccessDeniedError(role string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAccessDenied,
		Message:   fmt.Sprintf("Invalid %s credentials", role),
		Details:   fmt.Sprintf("role: %s", role),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewViewDeniedError reports a route guard refusal. Details carry the redirect target.
func NewViewDeniedError(role, redirect string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAccessDenied,
		Message:   fmt.Sprintf("Please login as %s to continue", role),
		Details:   fmt.Sprintf("role: %s, redirect: %s", role, redirect),
		Retryable: false,
		Metadata:  map[string]interface{}{"redirect": redirect},
		Timestamp: time.Now().UTC(),
	}
}

func NewStorageError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageFailed,
		Message:   "Failed to access persisted client state",
		Details:   fmt.Sprintf("op: %s, error: %v", op, err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// 3. Inspection Helpers
// ==========================

// AsStandard returns the StandardError in err's chain, if any.
func AsStandard(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// CodeOf returns the error code, or "UNKNOWN_ERROR" for foreign errors.
func CodeOf(err error) ErrorCode {
	if stdErr, ok := AsStandard(err); ok {
		return stdErr.Code
	}
	return "UNKNOWN_ERROR"
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// IsTransport reports whether the request never completed.
func IsTransport(err error) bool {
	switch CodeOf(err) {
	case ErrCodeNetwork, ErrCodeTimeout:
		return true
	}
	return false
}

// IsRejected reports whether the service answered with a non-2xx status.
func IsRejected(err error) bool {
	switch CodeOf(err) {
	case ErrCodeRequestRejected, ErrCodeUnauthorized:
		return true
	}
	return false
}

// StatusCodeOf returns the HTTP status attached to err, or 0.
func StatusCodeOf(err error) int {
	if stdErr, ok := AsStandard(err); ok {
		return stdErr.StatusCode
	}
	return 0
}

// GetErrorCategory groups codes for logging and metrics labels.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeNetwork, ErrCodeTimeout:
		return "transport"
	case ErrCodeRequestRejected, ErrCodeUnauthorized, ErrCodeDecodeFailed:
		return "remote"
	case ErrCodeValidationFailed:
		return "validation"
	case ErrCodeInvalidTransition, ErrCodeAlreadyApplied, ErrCodeStaleResponse, ErrCodeNotAuthenticated, ErrCodeAccessDenied:
		return "state"
	case ErrCodeStorageFailed:
		return "storage"
	default:
		return "unknown"
	}
}
