package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"storefront/internal/models"
)

// Store bundles the repositories of one backing database.
type Store struct {
	Products ProductRepository
	Carts    CartRepository
	Orders   OrderRepository
}

// NewGORMStore returns repositories backed by a SQL database.
func NewGORMStore(db *gorm.DB) Store {
	return Store{
		Products: NewGORMProductRepository(db),
		Carts:    NewGORMCartRepository(db),
		Orders:   NewGORMOrderRepository(db),
	}
}

// NewMemoryStore returns repositories that keep everything in process memory.
func NewMemoryStore() Store {
	products := NewMemoryProductRepository()
	return Store{
		Products: products,
		Carts:    NewMemoryCartRepository(products),
		Orders:   NewMemoryOrderRepository(products),
	}
}

// NewMongoStore returns repositories backed by a MongoDB database.
func NewMongoStore(db *mongo.Database) Store {
	products := NewMongoProductRepository(db)
	return Store{
		Products: products,
		Carts:    NewMongoCartRepository(db, products),
		Orders:   NewMongoOrderRepository(db, products),
	}
}

// AutoMigrate creates or updates the SQL tables of every record type.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Product{}, &models.CartItem{}, &models.Order{}, &models.OrderLine{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// EnsureMongoIndexes creates the secondary indexes the repositories query by.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection(cartItemsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "cartId", Value: 1}, {Key: "productId", Value: 1}},
	}); err != nil {
		return fmt.Errorf("create cart_items index: %w", err)
	}
	if _, err := db.Collection(productsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "category", Value: 1}},
	}); err != nil {
		return fmt.Errorf("create products index: %w", err)
	}
	if _, err := db.Collection(ordersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	}); err != nil {
		return fmt.Errorf("create orders index: %w", err)
	}
	return nil
}
