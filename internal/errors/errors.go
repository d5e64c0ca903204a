// Package errors provides unified error handling with a structured error
// code taxonomy shared across the engine.
package errors

import "fmt"

// ErrorCode classifies failures so callers can branch on kind rather than
// on message text.
type ErrorCode int

const (
	CodeUnknown ErrorCode = iota

	// CodeTransport marks a failed remote call. Never retried by the
	// match loop; propagates to the caller and aborts polling.
	CodeTransport

	// CodeOutOfBounds marks a coordinate or region lookup outside the
	// known screenshot extent. Trigger recorders recover from it by
	// dropping the input; everywhere else it propagates.
	CodeOutOfBounds

	// CodeCodec marks malformed buffers handed to the delta codec.
	// Recovered locally by falling back to the uncompressed payload.
	CodeCodec

	// CodeConfigInvalid marks a configuration value that is present but
	// unusable (e.g. a negative retry budget).
	CodeConfigInvalid

	// CodeConfigMissing marks a required setting or collaborator that
	// was never supplied.
	CodeConfigMissing

	// CodeCapture marks a failed screenshot acquisition.
	CodeCapture
)

var codeNames = map[ErrorCode]string{
	CodeUnknown:       "UNKNOWN",
	CodeTransport:     "TRANSPORT",
	CodeOutOfBounds:   "OUT_OF_BOUNDS",
	CodeCodec:         "CODEC",
	CodeConfigInvalid: "CONFIG_INVALID",
	CodeConfigMissing: "CONFIG_MISSING",
	CodeCapture:       "CAPTURE",
}

// String returns the symbolic name of the code.
func (c ErrorCode) String() string {
	if n, ok := codeNames[c]; ok {
		return n
	}
	return "UNKNOWN"
}

// AppError is the base error type with structured error code and metadata.
type AppError struct {
	Code     ErrorCode
	Message  string
	Metadata map[string]string
	Cause    error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	s := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if len(e.Metadata) > 0 {
		s += fmt.Sprintf(" %v", e.Metadata)
	}
	if e.Cause != nil {
		s += fmt.Sprintf(" caused by: %v", e.Cause)
	}
	return s
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *AppError) Unwrap() error { return e.Cause }

// New creates a new AppError with the given code and message.
func New(code ErrorCode, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}

// Newf creates a new AppError with formatted message.
func Newf(code ErrorCode, format string, args ...any) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error with an AppError.
func Wrap(err error, code ErrorCode, msg string) *AppError {
	return &AppError{Code: code, Message: msg, Cause: err}
}

// Wrapf wraps an existing error with formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// WithMetadata adds metadata to an AppError.
func (e *AppError) WithMetadata(key, value string) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]string)
	}
	e.Metadata[key] = value
	return e
}

// IsCode checks if an error (anywhere in its chain) has a specific code.
func IsCode(err error, code ErrorCode) bool {
	for err != nil {
		if appErr, ok := err.(*AppError); ok && appErr.Code == code {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
