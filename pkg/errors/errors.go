package errors

import (
	"errors"
	"fmt"
)

// Error codes surfaced by the resolver.
const (
	CodeNetwork      = "network"
	CodeResolution   = "resolution"
	CodeInvalidInput = "invalid_input"
)

// Common errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNetwork      = errors.New("network error")
	ErrResolution   = errors.New("resolution error")
)

// Error represents a custom error type
type Error struct {
	Code    string
	Message string
	Err     error
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel that belongs to the error's code.
func (e *Error) Is(target error) bool {
	switch e.Code {
	case CodeNetwork:
		return target == ErrNetwork
	case CodeResolution:
		return target == ErrResolution
	case CodeInvalidInput:
		return target == ErrInvalidInput
	}
	return false
}

// New creates a new error with a message
func New(message string) error {
	return &Error{
		Message: message,
	}
}

// Wrap wraps an error with additional message
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Message: message,
		Err:     err,
	}
}

// WrapWithCode wraps an error with a code and message
func WrapWithCode(err error, code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewNetwork reports a request that could not complete. The cause is kept verbatim.
func NewNetwork(url string, cause error) error {
	return &Error{
		Code:    CodeNetwork,
		Message: fmt.Sprintf("fetch %s", url),
		Err:     cause,
	}
}

// NewInvalidInput reports a caller-supplied value that cannot be used.
func NewInvalidInput(message string) error {
	return &Error{
		Code:    CodeInvalidInput,
		Message: message,
	}
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// GetCode returns the error code if it exists
func GetCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// GetMessage returns the error message
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsNetwork returns true if the error is a network error
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// IsResolution returns true if the error is a resolution error
func IsResolution(err error) bool {
	return errors.Is(err, ErrResolution)
}

// IsInvalidInput returns true if the error is an invalid input error
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
