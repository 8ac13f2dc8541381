package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"
)

const publishTimeout = 5 * time.Second

// Channel is the subset of *amqp.Channel the publisher and the event logger use.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// DeclareExchange makes sure the durable topic exchange exists.
func DeclareExchange(ch Channel) error {
	err := ch.ExchangeDeclare(
		Exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange %q: %w", Exchange, err)
	}
	return nil
}

// AMQPPublisher publishes persistent JSON messages to Exchange.
type AMQPPublisher struct {
	ch       Channel
	observer Observer
	logger   *log.Entry
}

func NewAMQPPublisher(ch Channel, observer Observer, logger *log.Entry) *AMQPPublisher {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &AMQPPublisher{
		ch:       ch,
		observer: observer,
		logger:   logger.WithField("component", "event-publisher"),
	}
}

func (p *AMQPPublisher) Publish(ctx context.Context, routingKey string, event Event) error {
	err := p.publish(ctx, routingKey, event)
	if p.observer != nil {
		p.observer.ObserveEvent(routingKey, err)
	}
	return err
}

func (p *AMQPPublisher) publish(ctx context.Context, routingKey string, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.ch.PublishWithContext(ctx,
		Exchange,   // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}

	p.logger.WithFields(log.Fields{
		"routing_key": routingKey,
		"order_id":    event.OrderID,
	}).Debug("event published")
	return nil
}

// Connection owns the broker connection and the channel shared by publisher and logger.
type Connection struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// Dial connects to RabbitMQ, opens a channel and declares the exchange.
func Dial(url string) (*Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	if err := DeclareExchange(ch); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	return &Connection{conn: conn, ch: ch}, nil
}

func (c *Connection) Channel() *amqp.Channel { return c.ch }

func (c *Connection) IsClosed() bool { return c.conn.IsClosed() }

func (c *Connection) Close() error {
	if err := c.ch.Close(); err != nil && !c.conn.IsClosed() {
		_ = c.conn.Close()
		return fmt.Errorf("close rabbitmq channel: %w", err)
	}
	if c.conn.IsClosed() {
		return nil
	}
	return c.conn.Close()
}
