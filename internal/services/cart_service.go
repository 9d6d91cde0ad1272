package services

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/validation"
)

const msgCartItemNotFound = "Cart item not found"

// CartService handles business logic related to carts. Every operation is
// scoped by a cart identifier; an empty one selects models.DefaultCartID.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func scopeCart(cartID string) string {
	if cartID == "" {
		return models.DefaultCartID
	}
	return cartID
}

// GetCart retrieves every line of a cart with its product resolved.
func (s *CartService) GetCart(ctx context.Context, cartID string) ([]models.CartItem, error) {
	items, err := s.cartRepo.GetAll(ctx, scopeCart(cartID))
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return items, nil
}

// AddToCart adds quantity of a product to a cart. An existing line for the
// product is merged into; created reports whether a new line was made.
func (s *CartService) AddToCart(ctx context.Context, cartID string, in models.CartInput) (item *models.CartItem, created bool, err error) {
	cartID = scopeCart(cartID)
	product, err := s.checkInput(ctx, in)
	if err != nil {
		return nil, false, err
	}
	quantity := *in.Quantity

	existing, err := s.cartRepo.GetByProduct(ctx, cartID, product.ID)
	switch {
	case err == nil:
		merged := existing.Quantity + quantity
		if product.Stock < merged {
			return nil, false, apperr.InsufficientStock(
				fmt.Sprintf("Insufficient stock. Available: %d, Total requested: %d", product.Stock, merged))
		}
		existing.Quantity = merged
		if err := s.cartRepo.Update(ctx, existing); err != nil {
			return nil, false, fmt.Errorf("merge cart item: %w", err)
		}
		item, err = s.cartRepo.GetByID(ctx, existing.ID)
		if err != nil {
			return nil, false, fmt.Errorf("reload cart item: %w", err)
		}
		return item, false, nil

	case errors.Is(err, repositories.ErrNotFound):
		if product.Stock < quantity {
			return nil, false, insufficientStock(product.Stock, quantity)
		}
		line := &models.CartItem{CartID: cartID, ProductID: product.ID, Quantity: quantity}
		if err := s.cartRepo.Create(ctx, line); err != nil {
			return nil, false, fmt.Errorf("create cart item: %w", err)
		}
		item, err = s.cartRepo.GetByID(ctx, line.ID)
		if err != nil {
			return nil, false, fmt.Errorf("reload cart item: %w", err)
		}
		return item, true, nil

	default:
		return nil, false, fmt.Errorf("find cart item: %w", err)
	}
}

// UpdateCartItem replaces the quantity of an existing cart line.
func (s *CartService) UpdateCartItem(ctx context.Context, cartID string, in models.CartInput) (*models.CartItem, error) {
	cartID = scopeCart(cartID)
	product, err := s.checkInput(ctx, in)
	if err != nil {
		return nil, err
	}
	quantity := *in.Quantity
	if product.Stock < quantity {
		return nil, insufficientStock(product.Stock, quantity)
	}

	existing, err := s.cartRepo.GetByProduct(ctx, cartID, product.ID)
	if err != nil {
		return nil, notFound(err, msgCartItemNotFound)
	}
	existing.Quantity = quantity
	if err := s.cartRepo.Update(ctx, existing); err != nil {
		return nil, notFound(err, msgCartItemNotFound)
	}
	item, err := s.cartRepo.GetByID(ctx, existing.ID)
	if err != nil {
		return nil, fmt.Errorf("reload cart item: %w", err)
	}
	return item, nil
}

// RemoveFromCart deletes the line of a cart that references productID.
func (s *CartService) RemoveFromCart(ctx context.Context, cartID, productID string) error {
	if !validation.ValidateIdentifier(productID) {
		return apperr.InvalidID(msgInvalidProductID)
	}
	if err := s.cartRepo.DeleteByProduct(ctx, scopeCart(cartID), productID); err != nil {
		return notFound(err, msgCartItemNotFound)
	}
	return nil
}

// checkInput validates a cart body and loads the product it references.
func (s *CartService) checkInput(ctx context.Context, in models.CartInput) (*models.Product, error) {
	if errs := validation.ValidateCartInput(in); len(errs) > 0 {
		return nil, apperr.InvalidInput(errs)
	}
	product, err := s.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, notFound(err, msgProductNotFound)
	}
	return product, nil
}

func insufficientStock(available, requested int) error {
	return apperr.InsufficientStock(
		fmt.Sprintf("Insufficient stock. Available: %d, Requested: %d", available, requested))
}
