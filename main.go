package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/logging"
	"storefront/internal/services"
	"storefront/pkg/rabbitmq"
)

func main() {
	if err := run(); err != nil {
		slog.Error("storefront stopped", "err", err)
		os.Exit(1)
	}
}

func run() error {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logging.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Store ---
	store, closeStore, err := database.OpenStore(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.App.SeedProducts {
		if err := seedProducts(ctx, store.Products, log); err != nil {
			return err
		}
	}

	// --- RabbitMQ ---
	var publisher services.OrderEventPublisher
	if cfg.RabbitMQ.Enabled {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL}, log)
		if err != nil {
			return err
		}
		defer mqClient.Close()
		publisher = mqClient

		if err := mqClient.ConsumeOrderEvents(ctx, auditOrderEvent(log)); err != nil {
			log.Error("order event consumer not started", "err", err)
		}
	}

	app := newApp(cfg.App, log, store, publisher, true)

	// --- HTTP Server ---
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", cfg.App.Port, "driver", cfg.Database.Driver, "stock_guard", cfg.App.StockGuard)
		errCh <- app.Listen(cfg.App.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("fiber shutdown", "err", err)
	}
	log.Info("server gracefully stopped")
	return nil
}

// auditOrderEvent logs every order event received from the broker.
func auditOrderEvent(log *slog.Logger) func(context.Context, rabbitmq.OrderCreatedEvent) error {
	return func(ctx context.Context, event rabbitmq.OrderCreatedEvent) error {
		log.InfoContext(ctx, "order event received",
			"order_id", event.OrderID, "cart_id", event.CartID, "total", event.Total, "lines", len(event.Items))
		return nil
	}
}
