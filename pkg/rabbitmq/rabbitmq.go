package rabbitmq

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	amqp "github.com/streadway/amqp"
)

// Client publishes domain events to a durable RabbitMQ queue.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	mu      sync.Mutex // amqp channels are not safe for concurrent publishing
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL   string
	Queue string
}

// Event is the JSON body of every published message.
type Event struct {
	Event      string                 `json:"event"`
	OccurredAt time.Time              `json:"occurred_at"`
	Data       map[string]interface{} `json:"data"`
}

// NewClient connects to RabbitMQ, opens a channel and declares the event queue.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Queue == "" {
		cfg.Queue = "catalog_events"
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		cfg.Queue, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", cfg.Queue, err)
	}

	logrus.WithField("queue", cfg.Queue).Info("RabbitMQ client connected")

	return &Client{
		conn:    conn,
		channel: ch,
		queue:   cfg.Queue,
	}, nil
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
	if len(errs) > 0 {
		return fmt.Errorf("errors while closing RabbitMQ client: %v", errs)
	}
	return nil
}

// Publish sends event to the queue as a persistent JSON message. The AMQP
// message type carries the event name so consumers can route without decoding.
func (c *Client) Publish(event string, data map[string]interface{}) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	now := time.Now().UTC()
	body, err := json.Marshal(Event{Event: event, OccurredAt: now, Data: data})
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	err = c.channel.Publish(
		"",      // default exchange
		c.queue, // routing key: the queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         event,
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    now,
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event, err)
	}

	logrus.WithField("event", event).Debug("Published domain event")
	return nil
}
