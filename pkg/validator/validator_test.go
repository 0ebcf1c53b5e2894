package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createProductRequest struct {
	Title        string  `validate:"required,min=1,max=255"`
	Price        float64 `validate:"required,gt=0"`
	Stock        int     `validate:"gte=0"`
	RestaurantID string  `validate:"required,uuid"`
}

func TestValidate_OK(t *testing.T) {
	req := createProductRequest{
		Title:        "Pizza Margherita",
		Price:        35.50,
		Stock:        100,
		RestaurantID: "7a9d2c0e-5f7b-4d49-9f57-2f8e9a1b3c4d",
	}
	assert.NoError(t, Validate(req))
}

func TestValidate_FieldErrors(t *testing.T) {
	req := createProductRequest{
		Title:        "",
		Price:        -3,
		Stock:        -1,
		RestaurantID: "not-a-uuid",
	}

	err := Validate(req)
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))

	fields := valErr.Fields()
	assert.Equal(t, "is required", fields["Title"])
	assert.Equal(t, "must be greater than 0", fields["Price"])
	assert.Equal(t, "must be greater than or equal to 0", fields["Stock"])
	assert.Equal(t, "must be a valid UUID", fields["RestaurantID"])
}

func TestValidationError_ErrorString(t *testing.T) {
	err := Validate(createProductRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Title")
	assert.Contains(t, err.Error(), "is required")
}
