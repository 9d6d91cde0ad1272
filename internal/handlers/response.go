package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/apperr"
	"storefront/internal/models"
)

func respond(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(models.Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func respondList[T any](c *fiber.Ctx, items []T) error {
	if items == nil {
		items = []T{}
	}
	count := len(items)
	return c.Status(fiber.StatusOK).JSON(models.Response{
		Success: true,
		Count:   &count,
		Data:    items,
	})
}

// parseBody decodes the request body into out, reporting a malformed body
// as invalid input carrying the decoder message. A body sent without a
// content type is decoded as JSON.
func parseBody(c *fiber.Ctx, out any) error {
	var err error
	if len(c.Request().Header.ContentType()) == 0 {
		err = c.App().Config().JSONDecoder(c.Body(), out)
	} else {
		err = c.BodyParser(out)
	}
	if err != nil {
		return &apperr.Error{
			Kind:    apperr.KindInvalidInput,
			Message: "Validation error",
			Errors:  []string{err.Error()},
			Err:     err,
		}
	}
	return nil
}
