package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"storefront/internal/models"
)

var validate = newValidator()

// messages maps "<Struct>.<Field>.<tag>" to the message reported to clients.
var messages = map[string]string{
	"ProductCreateInput.Name.required":  nameMessage,
	"ProductCreateInput.Name.notblank":  nameMessage,
	"ProductCreateInput.Price.required": "Product price is required",
	"ProductCreateInput.Price.gt":       "Price must be a positive number",
	"ProductCreateInput.Stock.required": "Product stock is required",
	"ProductCreateInput.Stock.gte":      "Stock must be a non-negative number",
	"ProductUpdateInput.Name.required":  nameMessage,
	"ProductUpdateInput.Name.notblank":  nameMessage,
	"ProductUpdateInput.Price.gt":       "Price must be a positive number",
	"ProductUpdateInput.Stock.gte":      "Stock must be a non-negative number",
	"CartInput.ProductID.required":      "productId is required",
	"CartInput.ProductID.identifier":    "Invalid productId format",
	"CartInput.Quantity.required":       "quantity is required",
	"CartInput.Quantity.gte":            "quantity must be a number greater than or equal to 1",
}

const nameMessage = "Product name is required and must be a non-empty string"

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("identifier", func(fl validator.FieldLevel) bool {
		return ValidateIdentifier(fl.Field().String())
	}); err != nil {
		panic(fmt.Errorf("register identifier validator: %w", err))
	}
	if err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		panic(fmt.Errorf("register notblank validator: %w", err))
	}
	return v
}

// ValidateIdentifier reports whether id is a well formed record identifier.
func ValidateIdentifier(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// ValidateProductCreate lists every problem with a product creation body.
func ValidateProductCreate(in models.ProductCreateInput) []string {
	return check(in)
}

// ValidateProductUpdate lists every problem with a product update body.
// Absent price and stock are accepted and mean "unchanged".
func ValidateProductUpdate(in models.ProductUpdateInput) []string {
	return check(in)
}

// ValidateCartInput lists every problem with an add-to-cart or update-cart body.
func ValidateCartInput(in models.CartInput) []string {
	return check(in)
}

func check(s any) []string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	errs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if msg, ok := messages[fe.StructNamespace()+"."+fe.Tag()]; ok {
			errs = append(errs, msg)
			continue
		}
		errs = append(errs, fmt.Sprintf("%s is invalid", fe.Field()))
	}
	return errs
}
