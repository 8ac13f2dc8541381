// internal/order/service/order_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fruit-order-service/internal/events"
	"fruit-order-service/internal/order"
	"fruit-order-service/internal/order/mapper"
	"fruit-order-service/internal/order/repository"

	log "github.com/sirupsen/logrus"
)

// OrderService is what the HTTP handler calls.
type OrderService interface {
	CreateOrder(ctx context.Context, req order.OrderCreateRequest) (*order.OrderResponse, error)
	GetAllOrders(ctx context.Context) ([]order.OrderResponse, error)
	GetOrderByID(ctx context.Context, id string) (*order.OrderResponse, error)
	UpdateOrder(ctx context.Context, id string, req order.OrderCreateRequest) (*order.OrderResponse, error)
	DeleteOrder(ctx context.Context, id string) error
}

type orderService struct {
	repo      repository.OrderRepository
	mapper    *mapper.OrderMapper
	publisher events.Publisher
	logger    *log.Entry
	now       func() time.Time
}

func NewOrderService(repo repository.OrderRepository, m *mapper.OrderMapper, publisher events.Publisher, logger *log.Entry) OrderService {
	if m == nil {
		m = mapper.New(nil)
	}
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &orderService{
		repo:      repo,
		mapper:    m,
		publisher: publisher,
		logger:    logger.WithField("component", "order-service"),
		now:       time.Now,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, req order.OrderCreateRequest) (*order.OrderResponse, error) {
	entity, err := s.mapper.ToEntity(req)
	if err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, entity)
	if err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	s.publish(ctx, events.NewOrderEvent(events.RoutingKeyCreated, saved, s.now()))

	resp := s.mapper.ToResponse(saved)
	return &resp, nil
}

func (s *orderService) GetAllOrders(ctx context.Context) ([]order.OrderResponse, error) {
	orders, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return s.mapper.ToResponses(orders), nil
}

func (s *orderService) GetOrderByID(ctx context.Context, id string) (*order.OrderResponse, error) {
	existing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := s.mapper.ToResponse(existing)
	return &resp, nil
}

// UpdateOrder replaces client name, delivery date and items of an existing order.
// The id and the insertion stamp are kept. There is no version check, so the
// last concurrent writer wins.
func (s *orderService) UpdateOrder(ctx context.Context, id string, req order.OrderCreateRequest) (*order.OrderResponse, error) {
	existing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	replacement, err := s.mapper.ToEntity(req)
	if err != nil {
		return nil, err
	}
	replacement.ID = existing.ID
	replacement.CreatedAt = existing.CreatedAt

	saved, err := s.repo.Save(ctx, replacement)
	if err != nil {
		return nil, fmt.Errorf("update order %s: %w", id, err)
	}

	s.publish(ctx, events.NewOrderEvent(events.RoutingKeyUpdated, saved, s.now()))

	resp := s.mapper.ToResponse(saved)
	return &resp, nil
}

// DeleteOrder removes the order; an unknown id is not an error.
func (s *orderService) DeleteOrder(ctx context.Context, id string) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete order %s: %w", id, err)
	}

	s.publish(ctx, events.NewDeletedEvent(id, s.now()))
	return nil
}

func (s *orderService) find(ctx context.Context, id string) (*order.Order, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, order.ErrOrderNotFound) {
		return nil, order.NewNotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("find order %s: %w", id, err)
	}
	return existing, nil
}

// publish never fails the request: the order is already stored.
func (s *orderService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event.EventType, event); err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"order_id":    event.OrderID,
			"routing_key": event.EventType,
		}).Warn("order saved but event publish failed")
	}
}
