// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Input errors.
	ErrInvalidInput = errors.New("invalid input")
	ErrEncoding     = errors.New("value outside encoding vocabulary")

	// Result errors.
	ErrEmptyResult = errors.New("no records match the current filters")
	ErrNotFound    = errors.New("not found")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// InvalidInput returns an ErrInvalidInput naming the offending field.
func InvalidInput(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidInput, field, reason)
}

// IsRecoverable reports whether an interaction error leaves the session usable.
// Input, encoding and empty-result errors only affect the current request.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEncoding) ||
		errors.Is(err, ErrEmptyResult)
}

// Describe returns the message to show a user for err.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	return err.Error()
}
