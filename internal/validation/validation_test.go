package validation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"storefront/internal/models"
)

func ptr[T any](v T) *T { return &v }

func TestValidateIdentifier(t *testing.T) {
	assert.True(t, ValidateIdentifier(uuid.NewString()))
	assert.False(t, ValidateIdentifier(""))
	assert.False(t, ValidateIdentifier("prod-1"))
	assert.False(t, ValidateIdentifier("507f1f77bcf86cd799439011"))
	assert.False(t, ValidateIdentifier("{"+uuid.NewString()+"}"))
}

func TestValidateProductCreate(t *testing.T) {
	tests := []struct {
		name string
		in   models.ProductCreateInput
		want []string
	}{
		{
			name: "valid",
			in:   models.ProductCreateInput{Name: ptr("Pen"), Price: ptr(2.0), Stock: ptr(0)},
		},
		{
			name: "everything missing",
			in:   models.ProductCreateInput{},
			want: []string{
				"Product name is required and must be a non-empty string",
				"Product price is required",
				"Product stock is required",
			},
		},
		{
			name: "blank name and out of range numbers",
			in:   models.ProductCreateInput{Name: ptr("   "), Price: ptr(0.0), Stock: ptr(-1)},
			want: []string{
				"Product name is required and must be a non-empty string",
				"Price must be a positive number",
				"Stock must be a non-negative number",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateProductCreate(tt.in))
		})
	}
}

func TestValidateProductUpdate(t *testing.T) {
	assert.Empty(t, ValidateProductUpdate(models.ProductUpdateInput{Name: ptr("Pen")}))

	assert.Equal(t, []string{
		"Price must be a positive number",
		"Stock must be a non-negative number",
	}, ValidateProductUpdate(models.ProductUpdateInput{Name: ptr("Pen"), Price: ptr(-3.0), Stock: ptr(-1)}))

	assert.Equal(t, []string{
		"Product name is required and must be a non-empty string",
	}, ValidateProductUpdate(models.ProductUpdateInput{Price: ptr(3.0)}))
}

func TestValidateCartInput(t *testing.T) {
	assert.Empty(t, ValidateCartInput(models.CartInput{ProductID: uuid.NewString(), Quantity: ptr(1)}))

	assert.Equal(t, []string{
		"productId is required",
		"quantity is required",
	}, ValidateCartInput(models.CartInput{}))

	assert.Equal(t, []string{
		"Invalid productId format",
		"quantity must be a number greater than or equal to 1",
	}, ValidateCartInput(models.CartInput{ProductID: "abc", Quantity: ptr(0)}))
}
