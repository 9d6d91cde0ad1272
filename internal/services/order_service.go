package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/validation"
	"storefront/pkg/rabbitmq"
)

const (
	msgOrderNotFound  = "Order not found"
	msgInvalidOrderID = "Invalid order ID format"
	guestName         = "Guest"
)

// OrderEventPublisher publishes the event that follows a successful checkout.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, event rabbitmq.OrderCreatedEvent) error
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	cartRepo    repositories.CartRepository
	publisher   OrderEventPublisher
	log         *slog.Logger
	stockGuard  bool
}

// OrderOption configures an OrderService.
type OrderOption func(*OrderService)

// WithPublisher publishes an order.created event after every checkout.
func WithPublisher(p OrderEventPublisher) OrderOption {
	return func(s *OrderService) { s.publisher = p }
}

// WithLogger sets the logger used for failures that do not fail the request.
func WithLogger(log *slog.Logger) OrderOption {
	return func(s *OrderService) { s.log = log }
}

// WithStockGuard makes checkout reserve stock with conditional decrements
// before the order is stored, so stock can never go negative.
func WithStockGuard(enabled bool) OrderOption {
	return func(s *OrderService) { s.stockGuard = enabled }
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, cartRepo repositories.CartRepository, opts ...OrderOption) *OrderService {
	s := &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		log:         slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetAllOrders retrieves all orders, newest first.
func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	if !validation.ValidateIdentifier(id) {
		return nil, apperr.InvalidID(msgInvalidOrderID)
	}
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, msgOrderNotFound)
	}
	return order, nil
}

// CreateOrder checks out a cart: every line is checked against the current
// stock, prices are snapshotted, the order is stored, stock is decremented
// and the cart is emptied.
func (s *OrderService) CreateOrder(ctx context.Context, cartID string, in models.CustomerInput) (*models.Order, error) {
	cartID = scopeCart(cartID)

	cart, err := s.cartRepo.GetAll(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(cart) == 0 {
		return nil, apperr.EmptyCart()
	}

	lines := make([]models.OrderLine, 0, len(cart))
	names := make(map[string]string, len(cart))
	total := decimal.Zero
	var problems []string
	for _, item := range cart {
		product, err := s.productRepo.GetByID(ctx, item.ProductID)
		if errors.Is(err, repositories.ErrNotFound) {
			problems = append(problems, fmt.Sprintf("Product %s is no longer available", item.ProductID))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load product %s: %w", item.ProductID, err)
		}
		if product.Stock < item.Quantity {
			problems = append(problems, fmt.Sprintf("Insufficient stock for %s. Available: %d, Requested: %d",
				product.Name, product.Stock, item.Quantity))
			continue
		}

		names[product.ID] = product.Name
		price := decimal.NewFromFloat(product.Price)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		lines = append(lines, models.OrderLine{
			ProductID:       product.ID,
			Quantity:        item.Quantity,
			PriceAtPurchase: product.Price,
		})
	}
	if len(problems) > 0 {
		return nil, apperr.StockValidationFailed(problems)
	}

	order := &models.Order{
		Items:    lines,
		Total:    total.InexactFloat64(),
		Customer: customerFrom(in),
	}

	if s.stockGuard {
		err = s.createReserved(ctx, order, names)
	} else {
		err = s.createThenDecrement(ctx, order)
	}
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.Clear(ctx, cartID); err != nil {
		s.log.ErrorContext(ctx, "order stored but cart not cleared", "order_id", order.ID, "cart_id", cartID, "err", err)
		return nil, fmt.Errorf("clear cart %s after order %s: %w", cartID, order.ID, err)
	}

	s.publishOrderCreated(ctx, cartID, order)

	created, err := s.orderRepo.GetByID(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("reload order %s: %w", order.ID, err)
	}
	return created, nil
}

// createThenDecrement stores the order and then decrements the stock of each
// line. A failed decrement leaves the stored order in place.
func (s *OrderService) createThenDecrement(ctx context.Context, order *models.Order) error {
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	for _, line := range order.Items {
		if err := s.productRepo.AdjustStock(ctx, line.ProductID, -line.Quantity); err != nil {
			s.log.ErrorContext(ctx, "order stored but stock not decremented",
				"order_id", order.ID, "product_id", line.ProductID, "quantity", line.Quantity, "err", err)
			return fmt.Errorf("decrement stock of %s for order %s: %w", line.ProductID, order.ID, err)
		}
	}
	return nil
}

// createReserved decrements the stock of every line conditionally before the
// order is stored. Any failure returns the reserved quantities.
func (s *OrderService) createReserved(ctx context.Context, order *models.Order, names map[string]string) error {
	reserved := make([]models.OrderLine, 0, len(order.Items))
	for _, line := range order.Items {
		err := s.productRepo.DecrementStockIfAvailable(ctx, line.ProductID, line.Quantity)
		if err == nil {
			reserved = append(reserved, line)
			continue
		}
		s.release(ctx, reserved)
		switch {
		case errors.Is(err, repositories.ErrInsufficientStock):
			return apperr.StockValidationFailed([]string{
				fmt.Sprintf("Insufficient stock for %s. Requested: %d", names[line.ProductID], line.Quantity),
			})
		case errors.Is(err, repositories.ErrNotFound):
			return apperr.StockValidationFailed([]string{
				fmt.Sprintf("Product %s is no longer available", line.ProductID),
			})
		default:
			return fmt.Errorf("reserve stock of %s: %w", line.ProductID, err)
		}
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		s.release(ctx, reserved)
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (s *OrderService) release(ctx context.Context, lines []models.OrderLine) {
	for _, line := range lines {
		if err := s.productRepo.AdjustStock(ctx, line.ProductID, line.Quantity); err != nil {
			s.log.ErrorContext(ctx, "stock reservation not released",
				"product_id", line.ProductID, "quantity", line.Quantity, "err", err)
		}
	}
}

func (s *OrderService) publishOrderCreated(ctx context.Context, cartID string, order *models.Order) {
	if s.publisher == nil {
		return
	}
	event := rabbitmq.OrderCreatedEvent{
		OrderID:    order.ID,
		CartID:     cartID,
		Total:      order.Total,
		Customer:   order.Customer.Name,
		Items:      make([]rabbitmq.OrderEventLine, 0, len(order.Items)),
		OccurredAt: time.Now().UTC(),
	}
	for _, line := range order.Items {
		event.Items = append(event.Items, rabbitmq.OrderEventLine{
			ProductID:       line.ProductID,
			Quantity:        line.Quantity,
			PriceAtPurchase: line.PriceAtPurchase,
		})
	}
	if err := s.publisher.PublishOrderCreated(ctx, event); err != nil {
		s.log.WarnContext(ctx, "order event not published", "order_id", order.ID, "err", err)
	}
}

func customerFrom(in models.CustomerInput) models.Customer {
	customer := models.Customer{Name: guestName}
	if in.Customer == nil {
		return customer
	}
	if in.Customer.Name != nil {
		if name := strings.TrimSpace(*in.Customer.Name); name != "" {
			customer.Name = name
		}
	}
	customer.Email = trimmed(in.Customer.Email)
	customer.Address = trimmed(in.Customer.Address)
	return customer
}
