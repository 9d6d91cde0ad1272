package main

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"storefront/internal/config"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/repositories"
	"storefront/internal/services"
)

// newApp wires services and handlers over store into a Fiber app.
// publisher may be nil, in which case no order events are published.
func newApp(cfg config.App, log *slog.Logger, store repositories.Store, publisher services.OrderEventPublisher, accessLog bool) *fiber.App {
	// --- Services ---
	orderOpts := []services.OrderOption{
		services.WithLogger(log),
		services.WithStockGuard(cfg.StockGuard),
	}
	if publisher != nil {
		orderOpts = append(orderOpts, services.WithPublisher(publisher))
	}
	productService := services.NewProductService(store.Products)
	cartService := services.NewCartService(store.Carts, store.Products)
	orderService := services.NewOrderService(store.Orders, store.Products, store.Carts, orderOpts...)

	// --- Fiber App ---
	app := fiber.New(fiber.Config{
		AppName:               "storefront",
		ErrorHandler:          middleware.NewErrorHandler(cfg.IsProduction(), log),
		DisableStartupMessage: true,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(cors.New())
	if accessLog {
		app.Use(logger.New())
	}

	// --- Routes ---
	handlers.NewSystemHandler().RegisterRoutes(app)
	handlers.NewProductHandler(productService).RegisterRoutes(app)
	handlers.NewCartHandler(cartService).RegisterRoutes(app)
	handlers.NewOrderHandler(orderService).RegisterRoutes(app)

	return app
}
