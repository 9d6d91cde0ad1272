package repositories

import (
	"context"
	"errors"

	"storefront/internal/models"
)

var (
	// ErrNotFound is wrapped by every lookup that matches no record.
	ErrNotFound = errors.New("record not found")
	// ErrInsufficientStock is returned by conditional stock decrements.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	// AdjustStock adds delta (possibly negative) to the stock without any
	// lower bound check.
	AdjustStock(ctx context.Context, id string, delta int) error
	// DecrementStockIfAvailable subtracts quantity only when the stock
	// covers it, otherwise it returns ErrInsufficientStock.
	DecrementStockIfAvailable(ctx context.Context, id string, quantity int) error
}
