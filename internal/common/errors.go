// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Session errors.
	ErrAuth      = errors.New("authentication failed")
	ErrDecode    = errors.New("malformed session data")
	ErrNoSession = errors.New("not logged in")

	// Branch errors.
	ErrNoBranches       = errors.New("no accessible branches")
	ErrNoBranchSelected = errors.New("no branch selected")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
)

// RequestError represents a failed backend call. Any non-success HTTP
// status is surfaced this way; the client does not interpret status codes
// beyond success/failure. Call sites recover by notifying the user and
// leaving prior state unchanged.
type RequestError struct {
	Message string
	Status  int
}

func (e *RequestError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed: status %d", e.Status)
	}
	return fmt.Sprintf("request failed: %s", e.Message)
}

// IsRequestError reports whether err is (or wraps) a backend call failure.
func IsRequestError(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr)
}

// UserError represents an error that should be shown to the user. The
// wrapped cause stays out of the user-facing message so login failures do
// not leak which factor was wrong.
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
