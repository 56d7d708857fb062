package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fekuna/omnipos-marketplace-service/internal/apperror"
)

type sample struct {
	Name  string `validate:"required"`
	Price int64  `validate:"min=0"`
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(sample{Name: "mug", Price: 0}))

	err := Struct(sample{Price: -1})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Contains(t, err.Error(), "sample.Name must satisfy required")
	assert.Contains(t, err.Error(), "sample.Price must satisfy min=0")
}
