// internal/common/errors/handler.go
package errors

import (
	"time"
)

// ErrorHandler turns any error into the single user-visible message a view
// shows, and logs the structured details once.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Surface logs err and returns the message to display. Nil errors surface as "".
func (h *ErrorHandler) Surface(operation string, err error) string {
	if err == nil {
		return ""
	}
	stdErr := Normalize(err)
	fields := map[string]interface{}{
		"operation":     operation,
		"errorCode":     string(stdErr.Code),
		"errorCategory": GetErrorCategory(stdErr.Code),
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
	}
	if stdErr.StatusCode != 0 {
		fields["statusCode"] = stdErr.StatusCode
	}
	if h.logger != nil {
		// Validation and state refusals are expected user input, not faults.
		switch GetErrorCategory(stdErr.Code) {
		case "validation", "state":
			h.logger.Warn("operation refused", fields)
		default:
			h.logger.Error("operation failed", fields)
		}
	}
	return stdErr.Message
}

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	if stdErr, ok := AsStandard(err); ok {
		return stdErr
	}
	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}
