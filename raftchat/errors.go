package raftchat

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes the failures this SDK can produce. The server
// has no error protocol of its own; everything here is client-side.
type ErrorCode int

const (
	ErrorUnknown ErrorCode = iota
	ErrorConnection
	ErrorDisconnected
	ErrorTimeout
	ErrorInvalidConfig
	ErrorNotConnected
	ErrorSerialization
	ErrorHTTP
)

// String returns the string representation of an ErrorCode.
func (e ErrorCode) String() string {
	switch e {
	case ErrorUnknown:
		return "unknown"
	case ErrorConnection:
		return "connection_error"
	case ErrorDisconnected:
		return "disconnected"
	case ErrorTimeout:
		return "timeout"
	case ErrorInvalidConfig:
		return "invalid_config"
	case ErrorNotConnected:
		return "not_connected"
	case ErrorSerialization:
		return "serialization_error"
	case ErrorHTTP:
		return "http_error"
	default:
		return fmt.Sprintf("unknown_code_%d", e)
	}
}

// ClientError is a structured error with code and context.
type ClientError struct {
	Code    ErrorCode
	Message string
	Wrapped error
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s (wrapped: %v)", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error for errors.Unwrap support.
func (e *ClientError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface for error comparison.
func (e *ClientError) Is(target error) bool {
	t, ok := target.(*ClientError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewError creates a new ClientError with the given code and message.
func NewError(code ErrorCode, message string) *ClientError {
	return &ClientError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with a ClientError.
func WrapError(code ErrorCode, message string, err error) *ClientError {
	return &ClientError{
		Code:    code,
		Message: message,
		Wrapped: err,
	}
}

// IsConnectionError checks if an error is a connection-related error.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var ce *ClientError
	if !errors.As(err, &ce) {
		return false
	}
	return ce.Code == ErrorConnection || ce.Code == ErrorDisconnected || ce.Code == ErrorTimeout
}
