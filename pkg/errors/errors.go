package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for the different failure categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Descriptor errors
	ErrConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrConfigParse    ErrorCode = "CONFIG_PARSE"
	ErrConfigInvalid  ErrorCode = "CONFIG_INVALID"

	// Parameter errors
	ErrParamCoerce   ErrorCode = "PARAM_COERCE"
	ErrParamRequired ErrorCode = "PARAM_REQUIRED"
	ErrParamChoice   ErrorCode = "PARAM_CHOICE"
	ErrParamUnknown  ErrorCode = "PARAM_UNKNOWN"

	// Render errors
	ErrRenderSyntax ErrorCode = "RENDER_SYNTAX"
	ErrRenderExec   ErrorCode = "RENDER_EXEC"

	// Materialization errors
	ErrCollision     ErrorCode = "COLLISION"
	ErrMergeConflict ErrorCode = "MERGE_CONFLICT"
	ErrFileRead      ErrorCode = "FILE_READ"
	ErrFileWrite     ErrorCode = "FILE_WRITE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"

	// Hook errors
	ErrHookFailed ErrorCode = "HOOK_FAILED"
	ErrHookSplit  ErrorCode = "HOOK_SPLIT"

	// Template source errors
	ErrSourceNotFound ErrorCode = "SOURCE_NOT_FOUND"
	ErrSourceFetch    ErrorCode = "SOURCE_FETCH"
)

// SkaffError represents a structured error with code and details
type SkaffError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SkaffError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SkaffError) Unwrap() error {
	return e.Wrapped
}

// Is matches two SkaffErrors by code
func (e *SkaffError) Is(target error) bool {
	var targetErr *SkaffError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SkaffError with the given code and message
func New(code ErrorCode, message string) *SkaffError {
	return &SkaffError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SkaffError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SkaffError {
	return &SkaffError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a SkaffError
func Wrap(err error, code ErrorCode, message string) *SkaffError {
	if err == nil {
		return nil
	}
	return &SkaffError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SkaffError {
	if err == nil {
		return nil
	}
	return &SkaffError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SkaffError) WithDetail(key string, value interface{}) *SkaffError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// GetCode extracts the error code from an error, returning ErrUnknown for
// errors that did not originate here
func GetCode(err error) ErrorCode {
	var skaffErr *SkaffError
	if errors.As(err, &skaffErr) {
		return skaffErr.Code
	}
	return ErrUnknown
}

// IsCode reports whether err carries the given code anywhere in its chain
func IsCode(err error, code ErrorCode) bool {
	var skaffErr *SkaffError
	if errors.As(err, &skaffErr) {
		return skaffErr.Code == code
	}
	return false
}
