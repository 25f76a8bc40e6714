package apperr

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreWrapsCause(t *testing.T) {
	cause := errors.New("duplicate key")
	err := Store("create seller", cause)

	assert.ErrorIs(t, err, ErrStore)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrTransient)
	assert.Contains(t, err.Error(), "create seller")
}

func TestStoreMarksTimeoutsTransient(t *testing.T) {
	err := Store("list items", context.DeadlineExceeded)

	assert.ErrorIs(t, err, ErrStore)
	assert.ErrorIs(t, err, ErrTransient)
}

func TestStorageWrapsCause(t *testing.T) {
	err := Storage("upload image", errors.New("bucket missing"))

	assert.ErrorIs(t, err, ErrStorage)
	assert.NotErrorIs(t, err, ErrStore)
}

func TestValidationError(t *testing.T) {
	err := Invalid("email", "must be a valid email address")

	assert.True(t, IsValidation(err))
	assert.Equal(t, "email: must be a valid email address", err.Error())
	assert.False(t, IsValidation(ErrNotFound))
}
