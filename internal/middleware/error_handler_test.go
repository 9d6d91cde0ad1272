package middleware_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"storefront/internal/apperr"
	"storefront/internal/logging"
	"storefront/internal/middleware"
	"storefront/internal/models"
)

func newTestApp(production bool, route fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.NewErrorHandler(production, logging.Discard())})
	app.Get("/boom", route)
	return app
}

func call(t *testing.T, app *fiber.App, path string, headers ...string) (int, models.Response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body models.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		production bool
		status     int
		message    string
		errors     []string
		stack      bool
	}{
		{
			name:    "not found",
			err:     apperr.NotFound("Product not found"),
			status:  http.StatusNotFound,
			message: "Product not found",
		},
		{
			name:    "stock validation",
			err:     fmt.Errorf("checkout: %w", apperr.StockValidationFailed([]string{"a", "b"})),
			status:  http.StatusBadRequest,
			message: "Stock validation failed",
			errors:  []string{"a", "b"},
		},
		{
			name:    "schema validation",
			err:     fmt.Errorf("create product: %w", (&models.Product{Name: "Pen", Price: 0, Stock: -1}).Validate()),
			status:  http.StatusBadRequest,
			message: "Validation Error",
			errors:  []string{"Price must be positive", "Stock must be non-negative"},
		},
		{
			name:    "duplicate key",
			err:     fmt.Errorf("create product: %w", gorm.ErrDuplicatedKey),
			status:  http.StatusBadRequest,
			message: "Duplicate field value entered",
		},
		{
			name:    "internal in development",
			err:     errors.New("connection reset"),
			status:  http.StatusInternalServerError,
			message: "Internal Server Error",
			stack:   true,
		},
		{
			name:       "internal in production",
			err:        errors.New("connection reset"),
			production: true,
			status:     http.StatusInternalServerError,
			message:    "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(tt.production, func(c *fiber.Ctx) error { return tt.err })

			status, body := call(t, app, "/boom")

			assert.Equal(t, tt.status, status)
			assert.False(t, body.Success)
			assert.Equal(t, tt.message, body.Message)
			assert.ElementsMatch(t, tt.errors, body.Errors)
			if tt.stack {
				assert.Contains(t, body.Stack, "connection reset")
			} else {
				assert.Empty(t, body.Stack)
			}
		})
	}
}

func TestErrorHandlerUnknownRoute(t *testing.T) {
	app := newTestApp(false, func(c *fiber.Ctx) error { return nil })

	status, body := call(t, app, "/missing?x=1")

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Route not found: GET /missing?x=1", body.Message)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/boom", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, body.Success)
	assert.Equal(t, "Route not found: DELETE /boom", body.Message)
}

func TestCartScope(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.NewErrorHandler(false, logging.Discard())})
	app.Get("/cart", middleware.CartScope(), func(c *fiber.Ctx) error {
		return c.JSON(models.Response{Success: true, Message: middleware.CartID(c)})
	})

	_, body := call(t, app, "/cart")
	assert.Equal(t, models.DefaultCartID, body.Message)

	_, body = call(t, app, "/cart", middleware.CartHeader, " alice ")
	assert.Equal(t, "alice", body.Message)

	long := make([]byte, 65)
	for i := range long {
		long[i] = 'x'
	}
	status, body := call(t, app, "/cart", middleware.CartHeader, string(long))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, []string{"X-Cart-ID must be at most 64 characters"}, body.Errors)
}
