package services

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/validation"
)

const (
	msgProductNotFound  = "Product not found"
	msgInvalidProductID = "Invalid product ID format"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves the products matching filter.
func (s *ProductService) GetAllProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	products, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	if !validation.ValidateIdentifier(id) {
		return nil, apperr.InvalidID(msgInvalidProductID)
	}
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, msgProductNotFound)
	}
	return product, nil
}

// CreateProduct validates the input, trims its strings and stores a new product.
func (s *ProductService) CreateProduct(ctx context.Context, in models.ProductCreateInput) (*models.Product, error) {
	if errs := validation.ValidateProductCreate(in); len(errs) > 0 {
		return nil, apperr.InvalidInput(errs)
	}

	product := &models.Product{
		Name:        strings.TrimSpace(*in.Name),
		Description: trimmed(in.Description),
		Price:       *in.Price,
		Stock:       *in.Stock,
		Category:    trimmed(in.Category),
		ImageURL:    trimmed(in.ImageURL),
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

// UpdateProduct applies the fields present in the input to an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, in models.ProductUpdateInput) (*models.Product, error) {
	if !validation.ValidateIdentifier(id) {
		return nil, apperr.InvalidID(msgInvalidProductID)
	}
	if errs := validation.ValidateProductUpdate(in); len(errs) > 0 {
		return nil, apperr.InvalidInput(errs)
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, msgProductNotFound)
	}

	product.Name = strings.TrimSpace(*in.Name)
	if in.Description != nil {
		product.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if in.Category != nil {
		product.Category = strings.TrimSpace(*in.Category)
	}
	if in.ImageURL != nil {
		product.ImageURL = strings.TrimSpace(*in.ImageURL)
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, notFound(err, msgProductNotFound)
	}
	return product, nil
}

// DeleteProduct deletes a product by its ID. Cart and order lines that
// reference it are left in place.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if !validation.ValidateIdentifier(id) {
		return apperr.InvalidID(msgInvalidProductID)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, msgProductNotFound)
	}
	return nil
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
