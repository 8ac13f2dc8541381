// Package events publishes order lifecycle events to RabbitMQ and can log them back.
package events

import (
	"context"
	"time"

	"fruit-order-service/internal/order"
)

const (
	// Exchange is the topic exchange every order event goes to.
	Exchange = "orders_exchange"

	RoutingKeyCreated = "order.created"
	RoutingKeyUpdated = "order.updated"
	RoutingKeyDeleted = "order.deleted"
)

// Event is the JSON body of an order event. Deleted events only carry the id.
type Event struct {
	EventType    string            `json:"eventType"`
	OrderID      string            `json:"orderId"`
	ClientName   string            `json:"clientName,omitempty"`
	DeliveryDate *order.Date       `json:"deliveryDate,omitempty"`
	Items        []order.OrderItem `json:"items,omitempty"`
	Timestamp    string            `json:"timestamp"`
}

func NewOrderEvent(routingKey string, o *order.Order, at time.Time) Event {
	date := o.DeliveryDate
	return Event{
		EventType:    routingKey,
		OrderID:      o.ID,
		ClientName:   o.ClientName,
		DeliveryDate: &date,
		Items:        o.Items,
		Timestamp:    at.UTC().Format(time.RFC3339),
	}
}

func NewDeletedEvent(id string, at time.Time) Event {
	return Event{
		EventType: RoutingKeyDeleted,
		OrderID:   id,
		Timestamp: at.UTC().Format(time.RFC3339),
	}
}

// Publisher sends an event under the given routing key.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, event Event) error
}

// Observer is told about every publish attempt; metrics.Metrics implements it.
type Observer interface {
	ObserveEvent(routingKey string, err error)
}

// NoopPublisher drops every event. It is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, Event) error { return nil }
