package models

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var schema = validator.New()

// constraintMessages maps "<Struct>.<Field>.<tag>" to the message reported
// when a stored record violates that constraint.
var constraintMessages = map[string]string{
	"Product.Name.required":        "Product name is required",
	"Product.Price.gt":             "Price must be positive",
	"Product.Stock.gte":            "Stock must be non-negative",
	"CartItem.ProductID.required":  "Product reference is required",
	"CartItem.Quantity.gte":        "Quantity must be at least 1",
	"OrderLine.ProductID.required": "Product reference is required",
	"OrderLine.Quantity.gte":       "Quantity must be at least 1",
	"Order.Total.gte":              "Total must be non-negative",
}

// ConstraintMessages itemizes the schema violations carried by err. It
// returns nil when err holds no validator.ValidationErrors.
func ConstraintMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		key := stripIndexes(fe.StructNamespace())
		if msg, ok := constraintMessages[key+"."+fe.Tag()]; ok {
			messages = append(messages, msg)
			continue
		}
		messages = append(messages, fe.Error())
	}
	return messages
}

// stripIndexes turns "Order.Items[0].Quantity" into "OrderLine.Quantity".
func stripIndexes(ns string) string {
	for i := len(ns) - 1; i >= 0; i-- {
		if ns[i] == ']' {
			return "OrderLine" + ns[i+1:]
		}
	}
	return ns
}
