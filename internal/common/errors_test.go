package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestErrorMessage(t *testing.T) {
	assert.Equal(t, "request failed: 403 Forbidden", (&RequestError{Message: "403 Forbidden", Status: 403}).Error())
	assert.Equal(t, "request failed: status 500", (&RequestError{Status: 500}).Error())
}

func TestIsRequestError(t *testing.T) {
	err := fmt.Errorf("listing products: %w", &RequestError{Status: 502})
	assert.True(t, IsRequestError(err))
	assert.False(t, IsRequestError(errors.New("plain")))
	assert.False(t, IsRequestError(nil))
}

func TestUserErrorKeepsCauseOutOfUserMessage(t *testing.T) {
	cause := fmt.Errorf("%w: password mismatch", ErrAuth)
	err := NewUserError("login failed", cause)

	var userErr *UserError
	assert.ErrorAs(t, err, &userErr)
	assert.Equal(t, "login failed", userErr.UserMessage)
	assert.NotContains(t, userErr.UserMessage, "password")

	assert.ErrorIs(t, err, ErrAuth, "the cause stays reachable for callers")
	assert.Contains(t, err.Error(), "password mismatch", "the full chain stays available for logs")
}

func TestUserErrorWithoutCause(t *testing.T) {
	err := &UserError{UserMessage: "nothing to do"}
	assert.Equal(t, "nothing to do", err.Error())
	assert.Nil(t, err.Unwrap())
}
