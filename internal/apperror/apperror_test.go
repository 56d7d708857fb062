package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByKind(t *testing.T) {
	err := New(KindInsufficientStock, "product %d variant %d", 1, 0)
	wrapped := fmt.Errorf("place order: %w", err)

	assert.True(t, errors.Is(wrapped, ErrInsufficientStock))
	assert.False(t, errors.Is(wrapped, ErrProductUnavailable))
	assert.Equal(t, KindInsufficientStock, KindOf(wrapped))
	assert.Equal(t, "InsufficientStock: product 1 variant 0", err.Error())
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("name is required")
	err := Wrap(KindInvalidInput, cause, "product input")

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "InvalidInput: product input: name is required", err.Error())
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(errors.New("connection refused")))
}
