package repositories

import (
	"context"

	"storefront/internal/models"
)

// CartRepository defines the interface for cart line data access. Every
// line read through it carries its product summary.
type CartRepository interface {
	GetAll(ctx context.Context, cartID string) ([]models.CartItem, error)
	GetByID(ctx context.Context, id string) (*models.CartItem, error)
	GetByProduct(ctx context.Context, cartID, productID string) (*models.CartItem, error)
	Create(ctx context.Context, item *models.CartItem) error
	Update(ctx context.Context, item *models.CartItem) error
	DeleteByProduct(ctx context.Context, cartID, productID string) error
	Clear(ctx context.Context, cartID string) error
}
