package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// APIVersion is reported by the index route.
const APIVersion = "1.0.0"

// SystemHandler serves the API index and the health check.
type SystemHandler struct {
	now func() time.Time
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{now: time.Now}
}

// RegisterRoutes registers the index and health routes with the Fiber app.
func (h *SystemHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleIndex)
	router.Get("/health", h.HandleHealth)
}

// HandleIndex describes the available endpoints.
func (h *SystemHandler) HandleIndex(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Welcome to E-Commerce Backend API",
		"version": APIVersion,
		"endpoints": fiber.Map{
			"health": "GET /health",
			"products": fiber.Map{
				"getAll":  "GET /products",
				"getById": "GET /products/:id",
				"create":  "POST /products",
				"update":  "PUT /products/:id",
				"delete":  "DELETE /products/:id",
				"filters": "?category=, ?minPrice=, ?maxPrice=",
			},
			"cart": fiber.Map{
				"get":    "GET /cart",
				"add":    "POST /cart",
				"update": "PUT /cart",
				"remove": "DELETE /cart/:productId",
				"scope":  "X-Cart-ID header, default cart when absent",
			},
			"orders": fiber.Map{
				"create":  "POST /orders",
				"getAll":  "GET /orders",
				"getById": "GET /orders/:id",
			},
		},
	})
}

// HandleHealth reports that the server is up.
func (h *SystemHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Server is running",
		"timestamp": h.now().UTC().Format(time.RFC3339Nano),
	})
}
