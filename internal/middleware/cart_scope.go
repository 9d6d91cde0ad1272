package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"storefront/internal/apperr"
	"storefront/internal/models"
)

// CartHeader names the request header that selects a cart.
const CartHeader = "X-Cart-ID"

const (
	cartLocalsKey = "cartID"
	maxCartIDLen  = 64
)

// CartScope resolves the cart a request operates on from CartHeader and
// stores it in the request locals. Requests without the header share
// models.DefaultCartID.
func CartScope() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cartID := strings.TrimSpace(utils.CopyString(c.Get(CartHeader)))
		if cartID == "" {
			cartID = models.DefaultCartID
		}
		if len(cartID) > maxCartIDLen {
			return apperr.InvalidInput([]string{
				fmt.Sprintf("%s must be at most %d characters", CartHeader, maxCartIDLen),
			})
		}
		c.Locals(cartLocalsKey, cartID)
		return c.Next()
	}
}

// CartID returns the cart resolved by CartScope.
func CartID(c *fiber.Ctx) string {
	if cartID, ok := c.Locals(cartLocalsKey).(string); ok {
		return cartID
	}
	return models.DefaultCartID
}
