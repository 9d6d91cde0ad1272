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

// MongoOrderRepository is a MongoDB implementation of OrderRepository.
// Lines are embedded in the order document.
type MongoOrderRepository struct {
	coll     *mongo.Collection
	products *MongoProductRepository
}

// NewMongoOrderRepository creates a new instance of MongoOrderRepository.
func NewMongoOrderRepository(db *mongo.Database, products *MongoProductRepository) *MongoOrderRepository {
	return &MongoOrderRepository{
		coll:     db.Collection(ordersCollection),
		products: products,
	}
}

func (r *MongoOrderRepository) resolve(ctx context.Context, orders []models.Order) error {
	var ids []string
	for _, order := range orders {
		for _, line := range order.Items {
			ids = append(ids, line.ProductID)
		}
	}
	summaries, err := r.products.summaries(ctx, ids)
	if err != nil {
		return err
	}
	for i := range orders {
		for j := range orders[i].Items {
			orders[i].Items[j].Product = summaries[orders[i].Items[j].ProductID]
		}
	}
	return nil
}

// GetAll retrieves every order, newest first.
func (r *MongoOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	if err := r.resolve(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetByID retrieves a single order.
func (r *MongoOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	orders := []models.Order{order}
	if err := r.resolve(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

// Create inserts the order as a single document.
func (r *MongoOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}
