package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errNotFound = NewDomainError("NOT_FOUND", "Resource not found")

func TestDomainError_Is(t *testing.T) {
	t.Run("matches same code with different message", func(t *testing.T) {
		err := NewDomainError("NOT_FOUND", "Product 'tea' not found")
		assert.True(t, errors.Is(err, errNotFound))
	})

	t.Run("matches through wrapping", func(t *testing.T) {
		err := fmt.Errorf("lookup failed: %w", NewDomainError("NOT_FOUND", "missing"))
		assert.True(t, errors.Is(err, errNotFound))
	})

	t.Run("does not match different code", func(t *testing.T) {
		err := NewDomainError("INVALID_INPUT", "bad")
		assert.False(t, errors.Is(err, errNotFound))
	})

	t.Run("does not match plain errors", func(t *testing.T) {
		assert.False(t, errors.Is(errors.New("NOT_FOUND"), errNotFound))
	})
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, "INVALID_STATE", CodeOf(fmt.Errorf("wrap: %w", NewDomainError("INVALID_STATE", "nope"))))
	assert.Equal(t, "", CodeOf(errors.New("plain")))
	assert.Equal(t, "", CodeOf(nil))
}

func TestDomainError_Error(t *testing.T) {
	err := NewDomainError("X", "something broke")
	assert.Equal(t, "something broke", err.Error())
}
