package middleware

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"storefront/internal/apperr"
	"storefront/internal/models"
)

// NewErrorHandler returns the fiber error handler that turns every error a
// route returns into the response envelope. Outside production, internal
// errors carry their error chain in the stack field.
func NewErrorHandler(production bool, log *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) && !isDomainError(err) {
			code, msg := fe.Code, fe.Message
			if code == fiber.StatusNotFound || code == fiber.StatusMethodNotAllowed {
				code = fiber.StatusNotFound
				msg = fmt.Sprintf("Route not found: %s %s", c.Method(), c.OriginalURL())
			}
			return c.Status(code).JSON(models.Response{Success: false, Message: msg})
		}

		appErr := Classify(err)
		status := appErr.Kind.HTTPStatus()
		body := models.Response{
			Success: false,
			Message: appErr.Message,
			Errors:  appErr.Errors,
		}

		if status >= fiber.StatusInternalServerError {
			log.ErrorContext(c.UserContext(), "request failed",
				"method", c.Method(), "path", c.Path(), "err", err)
			if !production {
				body.Stack = err.Error()
			}
		} else {
			log.DebugContext(c.UserContext(), "request rejected",
				"method", c.Method(), "path", c.Path(), "kind", appErr.Kind.String(), "err", err)
		}

		return c.Status(status).JSON(body)
	}
}

// Classify maps err onto an application error.
func Classify(err error) *apperr.Error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr
	}

	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return apperr.SchemaValidation(models.ConstraintMessages(err), err)
	case errors.Is(err, gorm.ErrDuplicatedKey), mongo.IsDuplicateKeyError(err):
		return apperr.DuplicateKey(err)
	default:
		return apperr.Internal(err)
	}
}

func isDomainError(err error) bool {
	var appErr *apperr.Error
	return errors.As(err, &appErr)
}
