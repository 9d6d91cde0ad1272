package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/models"
)

// MongoCartRepository is a MongoDB implementation of CartRepository.
type MongoCartRepository struct {
	coll     *mongo.Collection
	products *MongoProductRepository
}

// NewMongoCartRepository creates a new instance of MongoCartRepository.
func NewMongoCartRepository(db *mongo.Database, products *MongoProductRepository) *MongoCartRepository {
	return &MongoCartRepository{
		coll:     db.Collection(cartItemsCollection),
		products: products,
	}
}

func (r *MongoCartRepository) resolve(ctx context.Context, items []models.CartItem) error {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	summaries, err := r.products.summaries(ctx, ids)
	if err != nil {
		return err
	}
	for i := range items {
		items[i].Product = summaries[items[i].ProductID]
	}
	return nil
}

func (r *MongoCartRepository) findOne(ctx context.Context, filter bson.M, what string) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.coll.FindOne(ctx, filter).Decode(&item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", what, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get %s: %w", what, err)
	}
	items := []models.CartItem{item}
	if err := r.resolve(ctx, items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

// GetAll retrieves every line of a cart in insertion order.
func (r *MongoCartRepository) GetAll(ctx context.Context, cartID string) ([]models.CartItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"cartId": cartID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart %s: %w", cartID, err)
	}
	items := []models.CartItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode cart %s: %w", cartID, err)
	}
	if err := r.resolve(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID retrieves one cart line.
func (r *MongoCartRepository) GetByID(ctx context.Context, id string) (*models.CartItem, error) {
	return r.findOne(ctx, bson.M{"_id": id}, "cart item with ID "+id)
}

// GetByProduct retrieves the line of a cart that references productID.
func (r *MongoCartRepository) GetByProduct(ctx context.Context, cartID, productID string) (*models.CartItem, error) {
	return r.findOne(ctx, bson.M{"cartId": cartID, "productId": productID}, "cart item for product "+productID)
}

// Create inserts a new cart line.
func (r *MongoCartRepository) Create(ctx context.Context, item *models.CartItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CartID == "" {
		item.CartID = models.DefaultCartID
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("failed to create cart item: %w", err)
	}
	return nil
}

// Update stores the quantity of an existing cart line.
func (r *MongoCartRepository) Update(ctx context.Context, item *models.CartItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	item.UpdatedAt = time.Now().UTC()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": item.ID}, bson.M{
		"$set": bson.M{"quantity": item.Quantity, "updatedAt": item.UpdatedAt},
	})
	if err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("cart item with ID %s for update: %w", item.ID, ErrNotFound)
	}
	return nil
}

// DeleteByProduct removes the line of a cart that references productID.
func (r *MongoCartRepository) DeleteByProduct(ctx context.Context, cartID, productID string) error {
	res, err := r.coll.DeleteMany(ctx, bson.M{"cartId": cartID, "productId": productID})
	if err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("cart item for product %s: %w", productID, ErrNotFound)
	}
	return nil
}

// Clear removes every line of a cart.
func (r *MongoCartRepository) Clear(ctx context.Context, cartID string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"cartId": cartID}); err != nil {
		return fmt.Errorf("failed to clear cart %s: %w", cartID, err)
	}
	return nil
}
