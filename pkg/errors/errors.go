package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"
	ErrTemplate      ErrorCode = "TEMPLATE"

	// Plugin errors
	ErrPluginNotInstalled ErrorCode = "PLUGIN_NOT_INSTALLED"
	ErrDelegateExecute    ErrorCode = "DELEGATE_EXECUTE"
	ErrLifecycleOrder     ErrorCode = "LIFECYCLE_ORDER"

	// Deployment gate errors
	ErrPostPublishVerify ErrorCode = "POST_PUBLISH_VERIFY"
	ErrCommandExecute    ErrorCode = "COMMAND_EXECUTE"
	ErrRegistryLookup    ErrorCode = "REGISTRY_LOOKUP"

	// Git errors
	ErrTagDelete ErrorCode = "TAG_DELETE"
)

// Detail keys shared by the packages that attach context to errors
const (
	DetailPlugin      = "plugin"
	DetailHook        = "hook"
	DetailVersion     = "version"
	DetailRegistry    = "registry"
	DetailTag         = "tag"
	DetailCommand     = "command"
	DetailExitCode    = "exitCode"
	DetailOutput      = "output"
	DetailRemediation = "remediation"
)

// Error represents a structured error with code and details
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new Error with the given code and message
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new Error with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an Error
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *Error) WithDetails(details map[string]interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var precheckErr *Error
	if errors.As(err, &precheckErr) {
		return precheckErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an Error
func GetErrorCode(err error) ErrorCode {
	var precheckErr *Error
	if errors.As(err, &precheckErr) {
		return precheckErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an Error
func GetErrorDetails(err error) map[string]interface{} {
	var precheckErr *Error
	if errors.As(err, &precheckErr) {
		return precheckErr.Details
	}
	return nil
}

// Remediation returns the markdown remediation text attached to err, if any.
func Remediation(err error) string {
	details := GetErrorDetails(err)
	if details == nil {
		return ""
	}
	text, _ := details[DetailRemediation].(string)
	return text
}
