package main

import (
	"context"
	"fmt"
	"log/slog"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// seedProducts populates an empty product store with a few demo products.
func seedProducts(ctx context.Context, repo repositories.ProductRepository, log *slog.Logger) error {
	existing, err := repo.GetAll(ctx, models.ProductFilter{})
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	if len(existing) > 0 {
		log.InfoContext(ctx, "products already present, skipping seed", "count", len(existing))
		return nil
	}

	products := []models.Product{
		{Name: "Laptop", Description: "High performance laptop", Price: 1200.00, Stock: 10, Category: "electronics"},
		{Name: "Keyboard", Description: "Mechanical keyboard", Price: 75.00, Stock: 25, Category: "electronics"},
		{Name: "Mouse", Description: "Ergonomic wireless mouse", Price: 25.00, Stock: 50, Category: "electronics"},
		{Name: "Pen", Description: "Blue ballpoint pen", Price: 1.50, Stock: 200, Category: "office"},
	}
	for i := range products {
		if err := repo.Create(ctx, &products[i]); err != nil {
			return fmt.Errorf("seed product %s: %w", products[i].Name, err)
		}
		log.DebugContext(ctx, "seeded product", "name", products[i].Name, "id", products[i].ID)
	}
	log.InfoContext(ctx, "seeded products", "count", len(products))
	return nil
}
