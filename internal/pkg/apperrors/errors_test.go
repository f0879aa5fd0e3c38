package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntitySentinelsCarryTaxonomy(t *testing.T) {
	err := fmt.Errorf("get course 7: %w", ErrCourseNotFound)

	assert.ErrorIs(t, err, ErrCourseNotFound)
	assert.ErrorIs(t, err, ErrResourceNotFound)
	assert.NotErrorIs(t, err, ErrConflict)

	msg, ok := UserMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "Course not found", msg)

	assert.ErrorIs(t, ErrAlreadySubmitted, ErrConflict)
	assert.ErrorIs(t, ErrNotOwner, ErrPermissionDenied)
}

func TestUnauthenticatedKeepsCause(t *testing.T) {
	cause := errors.New("token is malformed")
	err := NewUnauthenticatedError("Authentication required", cause)

	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "token is malformed", err.Error())

	msg, _ := UserMessage(err)
	assert.Equal(t, "Authentication required", msg)
}

func TestIsAny(t *testing.T) {
	err := NewValidationError("title is required")
	assert.True(t, errors.Is(err, ErrConflict) || errors.Is(err, ErrValidationFailed))
	assert.False(t, errors.Is(err, ErrConflict) || errors.Is(err, ErrResourceNotFound))
}

func TestUserMessageAbsent(t *testing.T) {
	_, ok := UserMessage(errors.New("plain"))
	assert.False(t, ok)
}
