package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	wrapped := Wrap(errors.New("boom"), ErrValidation.Code, ErrValidation.Status, "bad marks")
	got := FromError(wrapped)
	assert.Same(t, wrapped, got)
	assert.Equal(t, "bad marks: boom", got.Error())
	assert.EqualError(t, errors.Unwrap(got), "boom")
}

func TestFromErrorDefaultsToInternal(t *testing.T) {
	got := FromError(errors.New("db down"))
	assert.Equal(t, ErrInternal.Code, got.Code)
	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.Nil(t, FromError(nil))
}

func TestCloneOverridesMessageOnly(t *testing.T) {
	clone := Clone(ErrNotFound, "student not found")
	assert.Equal(t, "student not found", clone.Message)
	assert.Equal(t, ErrNotFound.Code, clone.Code)
	assert.Equal(t, "resource not found", ErrNotFound.Message)
	assert.True(t, errors.Is(clone, clone))
}
