package repository

import (
	"context"

	"fruit-order-service/internal/order"

	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a testify mock of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) (*order.Order, error) {
	args := m.Called(ctx, o)

	result := args.Get(0)
	if result == nil {
		return nil, args.Error(1)
	}
	if fn, ok := result.(func(context.Context, *order.Order) *order.Order); ok {
		return fn(ctx, o), args.Error(1)
	}
	return result.(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	args := m.Called(ctx, id)

	result := args.Get(0)
	if result == nil {
		return nil, args.Error(1)
	}
	return result.(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context) ([]order.Order, error) {
	args := m.Called(ctx)

	result := args.Get(0)
	if result == nil {
		return nil, args.Error(1)
	}
	return result.([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ OrderRepository = (*MockOrderRepository)(nil)
