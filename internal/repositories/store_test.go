package repositories_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

func newSQLiteStore(t *testing.T) repositories.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, repositories.AutoMigrate(db))
	return repositories.NewGORMStore(db)
}

// forEachStore runs fn against every store that needs no external service.
func forEachStore(t *testing.T, fn func(t *testing.T, store repositories.Store)) {
	t.Run("sqlite", func(t *testing.T) { fn(t, newSQLiteStore(t)) })
	t.Run("memory", func(t *testing.T) { fn(t, repositories.NewMemoryStore()) })
}

func seed(t *testing.T, store repositories.Store, name, category string, price float64, stock int) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Category: category, Price: price, Stock: stock}
	require.NoError(t, store.Products.Create(context.Background(), p))
	return p
}

func TestProductRepository_CRUD(t *testing.T) {
	forEachStore(t, func(t *testing.T, store repositories.Store) {
		ctx := context.Background()
		pen := seed(t, store, "Pen", "office", 2, 5)
		require.True(t, len(pen.ID) == 36)

		got, err := store.Products.GetByID(ctx, pen.ID)
		require.NoError(t, err)
		assert.Equal(t, "Pen", got.Name)
		assert.Equal(t, 5, got.Stock)
		assert.False(t, got.CreatedAt.IsZero())

		got.Name = "Blue Pen"
		got.Stock = 0
		require.NoError(t, store.Products.Update(ctx, got))

		got, err = store.Products.GetByID(ctx, pen.ID)
		require.NoError(t, err)
		assert.Equal(t, "Blue Pen", got.Name)
		assert.Equal(t, 0, got.Stock)

		require.NoError(t, store.Products.Delete(ctx, pen.ID))
		_, err = store.Products.GetByID(ctx, pen.ID)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
		assert.ErrorIs(t, store.Products.Delete(ctx, pen.ID), repositories.ErrNotFound)
		assert.ErrorIs(t, store.Products.Update(ctx, got), repositories.ErrNotFound)
	})
}

func TestProductRepository_RejectsSchemaViolations(t *testing.T) {
	forEachStore(t, func(t *testing.T, store repositories.Store) {
		err := store.Products.Create(context.Background(), &models.Product{Name: "Bad", Price: 0, Stock: -2})
		require.Error(t, err)
		assert.ElementsMatch(t, []string{"Price must be positive", "Stock must be non-negative"}, models.ConstraintMessages(err))
	})
}

func TestProductRepository_Filter(t *testing.T) {
	forEachStore(t, func(t *testing.T, store repositories.Store) {
		ctx := context.Background()
		seed(t, store, "Pen", "office", 2, 5)
		seed(t, store, "Desk", "office", 150, 1)
		seed(t, store, "Pan", "kitchen", 30, 3)

		all, err := store.Products.GetAll(ctx, models.ProductFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 3)

		office, err := store.Products.GetAll(ctx, models.ProductFilter{Category: "office"})
		require.NoError(t, err)
		assert.Len(t, office, 2)

		low, high := 2.0, 30.0
		ranged, err := store.Products.GetAll(ctx, models.ProductFilter{MinPrice: &low, MaxPrice: &high})
		require.NoError(t, err)
		names := []string{}
		for _, p := range ranged {
			names = append(names, p.Name)
		}
		assert.ElementsMatch(t, []string{"Pen", "Pan"}, names)
	})
}

func TestProductRepository_Stock(t *testing.T) {
	forEachStore(t, func(t *testing.T, store repositories.Store) {
		ctx := context.Background()
		pen := seed(t, store, "Pen", "", 2, 5)

		require.NoError(t, store.Products.AdjustStock(ctx, pen.ID, -7))
		got, err := store.Products.GetByID(ctx, pen.ID)
		require.NoError(t, err)
		assert.Equal(t, -2, got.Stock)

		require.NoError(t, store.Products.AdjustStock(ctx, pen.ID, 6))
		require.NoError(t, store.Products.DecrementStockIfAvailable(ctx, pen.ID, 4))
		err = store.Products.DecrementStockIfAvailable(ctx, pen.ID, 1)
		assert.ErrorIs(t, err, repositories.ErrInsufficientStock)

		got, err = store.Products.GetByID(ctx, pen.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, got.Stock)

		missing := uuid.NewString()
		assert.ErrorIs(t, store.Products.AdjustStock(ctx, missing, 1), repositories.ErrNotFound)
		assert.ErrorIs(t, store.Products.DecrementStockIfAvailable(ctx, missing, 1), repositories.ErrNotFound)
	})
}

func TestCartRepository(t *testing.T) {
	forEachStore(t, func(t *testing.T, store repositories.Store) {
		ctx := context.Background()
		pen := seed(t, store, "Pen", "", 2, 5)
		cup := seed(t, store, "Cup", "", 4, 5)

		line := &models.CartItem{ProductID: pen.ID, Quantity: 2}
		require.NoError(t, store.Carts.Create(ctx, line))
		assert.Equal(t, models.DefaultCartID, line.CartID)
		time.Sleep(time.Millisecond)
		require.NoError(t, store.Carts.Create(ctx, &models.CartItem{CartID: "other", ProductID: cup.ID, Quantity: 1}))

		items, err := store.Carts.GetAll(ctx, models.DefaultCartID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		require.NotNil(t, items[0].Product)
		assert.Equal(t, "Pen", items[0].Product.Name)
		assert.Equal(t, 2.0, items[0].Product.Price)

		found, err := store.Carts.GetByProduct(ctx, models.DefaultCartID, pen.ID)
		require.NoError(t, err)
		found.Quantity = 4
		require.NoError(t, store.Carts.Update(ctx, found))

		reread, err := store.Carts.GetByID(ctx, line.ID)
		require.NoError(t, err)
		assert.Equal(t, 4, reread.Quantity)

		_, err = store.Carts.GetByProduct(ctx, models.DefaultCartID, cup.ID)
		assert.ErrorIs(t, err, repositories.ErrNotFound)

		require.NoError(t, store.Carts.DeleteByProduct(ctx, models.DefaultCartID, pen.ID))
		assert.ErrorIs(t, store.Carts.DeleteByProduct(ctx, models.DefaultCartID, pen.ID), repositories.ErrNotFound)

		require.NoError(t, store.Carts.Clear(ctx, "other"))
		others, err := store.Carts.GetAll(ctx, "other")
		require.NoError(t, err)
		assert.Empty(t, others)
	})
}

func TestCartRepository_DeletedProductResolvesToNil(t *testing.T) {
	forEachStore(t, func(t *testing.T, store repositories.Store) {
		ctx := context.Background()
		pen := seed(t, store, "Pen", "", 2, 5)
		require.NoError(t, store.Carts.Create(ctx, &models.CartItem{ProductID: pen.ID, Quantity: 1}))
		require.NoError(t, store.Products.Delete(ctx, pen.ID))

		items, err := store.Carts.GetAll(ctx, models.DefaultCartID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Nil(t, items[0].Product)
	})
}

func TestOrderRepository(t *testing.T) {
	forEachStore(t, func(t *testing.T, store repositories.Store) {
		ctx := context.Background()
		pen := seed(t, store, "Pen", "", 2, 5)

		first := &models.Order{
			Items:    []models.OrderLine{{ProductID: pen.ID, Quantity: 3, PriceAtPurchase: 2}},
			Total:    6,
			Customer: models.Customer{Name: "Guest"},
		}
		require.NoError(t, store.Orders.Create(ctx, first))
		time.Sleep(5 * time.Millisecond)
		second := &models.Order{
			Items: []models.OrderLine{{ProductID: pen.ID, Quantity: 1, PriceAtPurchase: 2}},
			Total: 2,
		}
		require.NoError(t, store.Orders.Create(ctx, second))

		orders, err := store.Orders.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, second.ID, orders[0].ID)
		assert.Equal(t, first.ID, orders[1].ID)

		got, err := store.Orders.GetByID(ctx, first.ID)
		require.NoError(t, err)
		require.Len(t, got.Items, 1)
		assert.Equal(t, 3, got.Items[0].Quantity)
		assert.Equal(t, 2.0, got.Items[0].PriceAtPurchase)
		require.NotNil(t, got.Items[0].Product)
		assert.Equal(t, "Pen", got.Items[0].Product.Name)
		assert.Equal(t, "Guest", got.Customer.Name)

		_, err = store.Orders.GetByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, repositories.ErrNotFound)

		err = store.Orders.Create(ctx, &models.Order{Total: -1})
		assert.Equal(t, []string{"Total must be non-negative"}, models.ConstraintMessages(err))
	})
}
