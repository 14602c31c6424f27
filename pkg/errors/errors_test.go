package errors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap_NilPassthrough(t *testing.T) {
	assert.NoError(t, Wrap(nil, "ignored"))
	assert.NoError(t, Wrapf(nil, "ignored %d", 1))
}

func TestWrap_PreservesChain(t *testing.T) {
	err := Wrapf(context.DeadlineExceeded, "gemini call for %s", "planner")

	assert.True(t, Is(err, context.DeadlineExceeded))
	assert.Equal(t, "gemini call for planner: context deadline exceeded", err.Error())
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("age", "must be a positive integer", 0)

	assert.Equal(t, "validation error: field 'age': must be a positive integer (value: 0)", err.Error())
	assert.True(t, Is(err, ErrInvalidInput))

	var target *ValidationError
	wrapped := Wrap(err, "decode profile")
	assert.True(t, As(wrapped, &target))
	assert.Equal(t, "age", target.Field)
}
