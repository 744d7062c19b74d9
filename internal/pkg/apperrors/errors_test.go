package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		argument bool
		state    bool
		notFound bool
	}{
		{name: "user not found", err: ErrUserNotFound, argument: true, notFound: true},
		{name: "class not found", err: ErrClassNotFound, argument: true, notFound: true},
		{name: "enrollment not found", err: ErrEnrollmentNotFound, argument: true, notFound: true},
		{name: "not enrolled", err: ErrNotEnrolled, argument: true},
		{name: "unsupported repetition", err: ErrUnsupportedRepetition, argument: true},
		{name: "already enrolled", err: ErrAlreadyEnrolled, state: true},
		{name: "capacity reached", err: ErrCapacityReached, state: true},
		{name: "already confirmed", err: ErrAlreadyConfirmed, state: true},
		{name: "no attendance", err: ErrNoAttendance, state: true},
		{name: "email exists", err: ErrEmailAlreadyExists, state: true},
		{name: "token invalid", err: ErrTokenInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := NewCustomError(tt.err, "message for "+tt.name)
			assert.Equal(t, tt.argument, errors.Is(wrapped, ErrInvalidArgument))
			assert.Equal(t, tt.state, errors.Is(wrapped, ErrInvalidState))
			assert.Equal(t, tt.notFound, IsNotFound(wrapped))
			assert.True(t, errors.Is(wrapped, tt.err))
		})
	}
}

func TestCustomErrorMessage(t *testing.T) {
	assert.Equal(t, "user already enrolled", NewCustomError(ErrAlreadyEnrolled, "user already enrolled").Error())
	assert.Equal(t, ErrCapacityReached.Error(), (&CustomError{Err: ErrCapacityReached}).Error())
	assert.Equal(t, "unknown error", (&CustomError{}).Error())

	err := fmt.Errorf("enroll: %w", NewConflictError("duplicate"))
	var custom *CustomError
	assert.True(t, errors.As(err, &custom))
	assert.Equal(t, "duplicate", custom.Message)
	assert.True(t, Is(err, ErrResourceNotFound, ErrConflict))
	assert.False(t, Is(err, ErrResourceNotFound))
}
