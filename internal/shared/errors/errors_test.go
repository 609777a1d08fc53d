package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Behavior(t *testing.T) {
	err := NewValidationError("invalid input").WithCode("VAL001").WithDetail("field", "name").WithComponent("repository")
	assert.Equal(t, ErrorTypeValidation, err.Type)
	assert.Equal(t, "invalid input", err.Message)
	assert.Equal(t, "VAL001", err.Code)
	assert.Equal(t, "repository", err.Component)
	assert.Equal(t, "name", err.Details["field"])
	assert.Equal(t, "invalid input", err.Error())
}

func TestAppError_WithCause_Unwrap(t *testing.T) {
	cause := ErrNotFound
	err := NewNotFoundError("product").WithCause(cause)
	assert.Equal(t, cause, err.Unwrap())
	assert.Contains(t, err.Error(), "product not found")
}

func TestValidationErrors(t *testing.T) {
	ve := NewValidationErrors()
	ve.Add("name", "must be set", "")
	assert.True(t, ve.HasErrors())
	appErr := ve.ToAppError()
	assert.NotNil(t, appErr)
	assert.Equal(t, ErrorTypeValidation, appErr.Type)
}

func TestValidationErrors_Empty(t *testing.T) {
	ve := NewValidationErrors()
	assert.False(t, ve.HasErrors())
	assert.Nil(t, ve.ToAppError())
	assert.Equal(t, "validation failed", ve.Error())
}

func TestTypeCheckers(t *testing.T) {
	nf := NewNotFoundError("order")
	assert.True(t, IsNotFound(nf))
	assert.False(t, IsValidation(nf))
	assert.False(t, IsAuthentication(nf))

	val := NewValidationError("bad")
	assert.True(t, IsValidation(val))

	pe := NewPersistenceError("write failed")
	assert.True(t, IsPersistence(pe))

	auth := NewAuthenticationError("bad")
	assert.True(t, IsAuthentication(auth))
}

func TestTypeCheckers_Sentinels(t *testing.T) {
	assert.True(t, IsNotFound(ErrEntityNotFound))
	assert.True(t, IsPersistence(fmt.Errorf("saving users: %w", ErrSaveFailed)))
	assert.True(t, IsConfirmationDeclined(fmt.Errorf("delete aborted: %w", ErrConfirmationDeclined)))
	assert.False(t, IsConfirmationDeclined(ErrNotFound))
}

func TestWrapError(t *testing.T) {
	base := fmt.Errorf("disk full")
	wrapped := WrapError(base, "persist users")
	assert.Equal(t, ErrorTypeInternal, wrapped.Type)
	assert.Equal(t, base, wrapped.Unwrap())

	already := NewValidationError("bad")
	assert.Equal(t, already, WrapError(already, "ignored"))
}
