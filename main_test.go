package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/config"
	"storefront/internal/logging"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/rabbitmq"
)

// MockRabbitMQClient is a mock implementation of the order event publisher
type MockRabbitMQClient struct {
	mock.Mock
}

func (m *MockRabbitMQClient) PublishOrderCreated(ctx context.Context, event rabbitmq.OrderCreatedEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func TestSeedProductsOnlyFillsEmptyStore(t *testing.T) {
	store := repositories.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, seedProducts(ctx, store.Products, logging.Discard()))
	products, err := store.Products.GetAll(ctx, models.ProductFilter{})
	require.NoError(t, err)
	seeded := len(products)
	assert.Positive(t, seeded)

	require.NoError(t, seedProducts(ctx, store.Products, logging.Discard()))
	products, err = store.Products.GetAll(ctx, models.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, products, seeded)
}

func TestAppCheckoutPublishesOrderEvent(t *testing.T) {
	store := repositories.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, seedProducts(ctx, store.Products, logging.Discard()))

	products, err := store.Products.GetAll(ctx, models.ProductFilter{Category: "office"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	pen := products[0]

	mockMQ := new(MockRabbitMQClient)
	mockMQ.On("PublishOrderCreated", mock.MatchedBy(func(e rabbitmq.OrderCreatedEvent) bool {
		return e.Total == 4.5 && len(e.Items) == 1 && e.Items[0].ProductID == pen.ID
	})).Return(nil).Once()

	app := newApp(config.App{Env: config.EnvProduction, StockGuard: true}, logging.Discard(), store, mockMQ, false)

	body, err := json.Marshal(map[string]any{"productId": pen.ID, "quantity": 3})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/orders", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	stored, err := store.Products.GetByID(ctx, pen.ID)
	require.NoError(t, err)
	assert.Equal(t, pen.Stock-3, stored.Stock)
	mockMQ.AssertExpectations(t)
}

func TestAppWithoutPublisher(t *testing.T) {
	app := newApp(config.App{}, logging.Discard(), repositories.NewMemoryStore(), nil, false)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestAuditOrderEvent(t *testing.T) {
	handler := auditOrderEvent(logging.Discard())
	assert.NoError(t, handler(context.Background(), rabbitmq.OrderCreatedEvent{OrderID: "o-1"}))
}
