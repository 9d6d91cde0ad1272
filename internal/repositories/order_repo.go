package repositories

import (
	"context"

	"storefront/internal/models"
)

// OrderRepository defines the interface for order data access. Orders are
// immutable, so there is no update or delete.
type OrderRepository interface {
	// GetAll returns every order, newest first, with products resolved.
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
}
