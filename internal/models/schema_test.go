package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductValidate(t *testing.T) {
	valid := &Product{Name: "Pen", Price: 2, Stock: 5}
	assert.NoError(t, valid.Validate())

	err := (&Product{Name: "", Price: 0, Stock: -1}).Validate()
	assert.Error(t, err)
	assert.ElementsMatch(t, []string{
		"Product name is required",
		"Price must be positive",
		"Stock must be non-negative",
	}, ConstraintMessages(err))
}

func TestCartItemValidate(t *testing.T) {
	err := (&CartItem{Quantity: 0}).Validate()
	assert.ElementsMatch(t, []string{
		"Product reference is required",
		"Quantity must be at least 1",
	}, ConstraintMessages(err))
}

func TestOrderValidate(t *testing.T) {
	order := &Order{
		Total: -1,
		Items: []OrderLine{{ProductID: "p", Quantity: 0, PriceAtPurchase: 1}},
	}
	assert.ElementsMatch(t, []string{
		"Quantity must be at least 1",
		"Total must be non-negative",
	}, ConstraintMessages(order.Validate()))
}

func TestConstraintMessages_IgnoresOtherErrors(t *testing.T) {
	assert.Nil(t, ConstraintMessages(errors.New("boom")))
	assert.Nil(t, ConstraintMessages(nil))
}

func TestProductFilterMatches(t *testing.T) {
	low, high := 5.0, 10.0
	p := Product{Category: "office", Price: 7}

	assert.True(t, ProductFilter{}.Matches(p))
	assert.True(t, ProductFilter{Category: "office", MinPrice: &low, MaxPrice: &high}.Matches(p))
	assert.False(t, ProductFilter{Category: "kitchen"}.Matches(p))
	assert.False(t, ProductFilter{MinPrice: &high}.Matches(p))
	assert.False(t, ProductFilter{MaxPrice: &low}.Matches(p))
}
