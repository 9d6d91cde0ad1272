package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront/internal/models"
)

// MemoryCartRepository is an in-memory implementation of CartRepository.
type MemoryCartRepository struct {
	items    map[string]models.CartItem
	products *MemoryProductRepository
	mu       sync.RWMutex
}

// NewMemoryCartRepository creates a new instance of MemoryCartRepository.
// Product summaries are resolved from products.
func NewMemoryCartRepository(products *MemoryProductRepository) *MemoryCartRepository {
	return &MemoryCartRepository{
		items:    make(map[string]models.CartItem),
		products: products,
	}
}

func (r *MemoryCartRepository) resolve(item models.CartItem) models.CartItem {
	item.Product = r.products.summary(item.ProductID)
	return item
}

// GetAll returns every line of a cart in insertion order.
func (r *MemoryCartRepository) GetAll(_ context.Context, cartID string) ([]models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.CartItem, 0, len(r.items))
	for _, item := range r.items {
		if item.CartID == cartID {
			items = append(items, r.resolve(item))
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

// GetByID returns one cart line.
func (r *MemoryCartRepository) GetByID(_ context.Context, id string) (*models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("cart item with ID %s: %w", id, ErrNotFound)
	}
	item = r.resolve(item)
	return &item, nil
}

// GetByProduct returns the line of a cart that references productID.
func (r *MemoryCartRepository) GetByProduct(_ context.Context, cartID, productID string) (*models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.CartID == cartID && item.ProductID == productID {
			item = r.resolve(item)
			return &item, nil
		}
	}
	return nil, fmt.Errorf("cart item for product %s: %w", productID, ErrNotFound)
}

// Create adds a new cart line.
func (r *MemoryCartRepository) Create(_ context.Context, item *models.CartItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CartID == "" {
		item.CartID = models.DefaultCartID
	}
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	stored := *item
	stored.Product = nil
	r.items[item.ID] = stored
	return nil
}

// Update stores the quantity of an existing cart line.
func (r *MemoryCartRepository) Update(_ context.Context, item *models.CartItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[item.ID]
	if !ok {
		return fmt.Errorf("cart item with ID %s for update: %w", item.ID, ErrNotFound)
	}
	stored.Quantity = item.Quantity
	stored.UpdatedAt = time.Now()
	item.UpdatedAt = stored.UpdatedAt
	r.items[item.ID] = stored
	return nil
}

// DeleteByProduct removes the line of a cart that references productID.
func (r *MemoryCartRepository) DeleteByProduct(_ context.Context, cartID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := false
	for id, item := range r.items {
		if item.CartID == cartID && item.ProductID == productID {
			delete(r.items, id)
			deleted = true
		}
	}
	if !deleted {
		return fmt.Errorf("cart item for product %s: %w", productID, ErrNotFound)
	}
	return nil
}

// Clear removes every line of a cart.
func (r *MemoryCartRepository) Clear(_ context.Context, cartID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.items {
		if item.CartID == cartID {
			delete(r.items, id)
		}
	}
	return nil
}
