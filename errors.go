package xform

import (
	"fmt"
)

// Wrap wraps an error by prepending additional text.
// The text can contain formatting parameters.
func Wrap(err error, msg string, v ...interface{}) error {
	msg = fmt.Sprintf(msg, v...)
	return fmt.Errorf("%v: %w", msg, err)
}

type notFound struct {
	message string
}

// NewNotFound creates a new "not found" error.
func NewNotFound(s string, v ...interface{}) error {
	return asNotFound(fmt.Errorf(s, v...))
}

func (n notFound) Error() string {
	return n.message
}

func asNotFound(e error) error {
	return notFound{fmt.Sprintf("Not found: %v", e)}
}

// IsNotFound checks if the given error is a "not found" error.
func IsNotFound(err error) bool {
	_, ok := err.(notFound)
	return ok
}

type validationError struct {
	message string
}

func (v validationError) Error() string {
	return v.message
}

// NewValidationError creates an error of from the given format string.
func NewValidationError(msg string, v ...interface{}) error {
	return validationError{fmt.Sprintf(msg, v...)}
}

// IsValidationError checks if the given error was caused by invalid input.
// Wrapped validation errors are recognized, too.
func IsValidationError(err error) bool {
	for err != nil {
		if _, ok := err.(validationError); ok {
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
