package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"
)

// CartHandler handles HTTP requests for the cart selected by middleware.CartScope.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service: service,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart", middleware.CartScope())
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/", h.HandleAddToCart)
	cartRoutes.Put("/", h.HandleUpdateCartItem)
	cartRoutes.Delete("/:productId", h.HandleRemoveFromCart)
}

// HandleGetCart lists the lines of the cart.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	items, err := h.service.GetCart(c.UserContext(), middleware.CartID(c))
	if err != nil {
		return err
	}
	return respondList(c, items)
}

// HandleAddToCart adds a product to the cart, merging with an existing line.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	var in models.CartInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	item, created, err := h.service.AddToCart(c.UserContext(), middleware.CartID(c), in)
	if err != nil {
		return err
	}
	if created {
		return respond(c, fiber.StatusCreated, "Item added to cart", item)
	}
	return respond(c, fiber.StatusOK, "Cart item updated", item)
}

// HandleUpdateCartItem sets the quantity of an existing cart line.
func (h *CartHandler) HandleUpdateCartItem(c *fiber.Ctx) error {
	var in models.CartInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	item, err := h.service.UpdateCartItem(c.UserContext(), middleware.CartID(c), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Cart item updated", item)
}

// HandleRemoveFromCart removes the line for a product from the cart.
func (h *CartHandler) HandleRemoveFromCart(c *fiber.Ctx) error {
	if err := h.service.RemoveFromCart(c.UserContext(), middleware.CartID(c), c.Params("productId")); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Item removed from cart", nil)
}
