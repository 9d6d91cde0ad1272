package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/streadway/amqp"
)

// OrderQueue is the durable queue order events are routed to.
const OrderQueue = "order_queue"

// EventOrderCreated is the type of the event published after a checkout.
const EventOrderCreated = "order.created"

// OrderCreatedEvent is the message body published after a successful checkout.
type OrderCreatedEvent struct {
	Type       string           `json:"type"`
	OrderID    string           `json:"orderId"`
	CartID     string           `json:"cartId"`
	Total      float64          `json:"total"`
	Customer   string           `json:"customer"`
	Items      []OrderEventLine `json:"items"`
	OccurredAt time.Time        `json:"occurredAt"`
}

// OrderEventLine is one line of an OrderCreatedEvent.
type OrderEventLine struct {
	ProductID       string  `json:"productId"`
	Quantity        int     `json:"quantity"`
	PriceAtPurchase float64 `json:"priceAtPurchase"`
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	log     *slog.Logger
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, opens a channel and declares OrderQueue.
func NewClient(cfg Config, log *slog.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := declareOrderQueue(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log.Info("rabbitmq connected", "queue", OrderQueue)

	return &Client{
		conn:    conn,
		channel: ch,
		log:     log,
	}, nil
}

func declareOrderQueue(ch *amqp.Channel) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(
		OrderQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return q, fmt.Errorf("failed to declare %s: %w", OrderQueue, err)
	}
	return q, nil
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	return errors.Join(errs...)
}

// PublishOrderCreated publishes event to OrderQueue as a persistent JSON message.
func (c *Client) PublishOrderCreated(ctx context.Context, event OrderCreatedEvent) error {
	if c.channel == nil {
		return errors.New("RabbitMQ channel is not available")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := EncodeOrderCreated(event)
	if err != nil {
		return err
	}

	err = c.channel.Publish(
		"",         // default exchange
		OrderQueue, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         EventOrderCreated,
			MessageId:    event.OrderID,
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.log.DebugContext(ctx, "order event published", "order_id", event.OrderID)
	return nil
}

// EncodeOrderCreated returns the wire form of event, stamping its type.
func EncodeOrderCreated(event OrderCreatedEvent) ([]byte, error) {
	event.Type = EventOrderCreated
	body, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order event: %w", err)
	}
	return body, nil
}

// DecodeOrderCreated parses the body of an order event message.
func DecodeOrderCreated(body []byte) (OrderCreatedEvent, error) {
	var event OrderCreatedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return event, fmt.Errorf("failed to unmarshal order event: %w", err)
	}
	if event.Type != EventOrderCreated {
		return event, fmt.Errorf("unexpected event type %q", event.Type)
	}
	return event, nil
}

// ConsumeOrderEvents delivers every message of OrderQueue to handler until
// ctx is done or the channel closes. Messages the handler fails on are
// rejected without requeueing; malformed bodies are rejected the same way.
func (c *Client) ConsumeOrderEvents(ctx context.Context, handler func(context.Context, OrderCreatedEvent) error) error {
	if c.channel == nil {
		return errors.New("RabbitMQ channel is not available for consumption")
	}

	queue, err := declareOrderQueue(c.channel)
	if err != nil {
		return err
	}

	msgs, err := c.channel.Consume(
		queue.Name,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.log.Info("waiting for order events", "queue", queue.Name)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				c.handle(ctx, msg, handler)
			}
		}
	}()

	return nil
}

func (c *Client) handle(ctx context.Context, msg amqp.Delivery, handler func(context.Context, OrderCreatedEvent) error) {
	event, err := DecodeOrderCreated(msg.Body)
	if err == nil {
		err = handler(ctx, event)
	}
	if err != nil {
		c.log.ErrorContext(ctx, "order event rejected", "delivery_tag", msg.DeliveryTag, "err", err)
		if nackErr := msg.Nack(false, false); nackErr != nil {
			c.log.ErrorContext(ctx, "nack failed", "delivery_tag", msg.DeliveryTag, "err", nackErr)
		}
		return
	}
	if ackErr := msg.Ack(false); ackErr != nil {
		c.log.ErrorContext(ctx, "ack failed", "delivery_tag", msg.DeliveryTag, "err", ackErr)
	}
}
