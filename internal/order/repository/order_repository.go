// internal/order/repository/order_repository.go
package repository

import (
	"context"

	"fruit-order-service/internal/order"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// OrderRepository is the store contract the service depends on.
type OrderRepository interface {
	// Save inserts o when it has no id yet, otherwise replaces the stored record.
	Save(ctx context.Context, o *order.Order) (*order.Order, error)
	// FindByID returns order.ErrOrderNotFound when no record has that id.
	FindByID(ctx context.Context, id string) (*order.Order, error)
	// FindAll returns every order in insertion order.
	FindAll(ctx context.Context) ([]order.Order, error)
	// DeleteByID is a no-op for unknown ids.
	DeleteByID(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// AutoMigrate creates or updates the orders table.
func AutoMigrate(db *gorm.DB) error {
	return errors.Wrap(db.AutoMigrate(&order.Order{}), "migrate orders table")
}

func (r *orderRepository) Save(ctx context.Context, o *order.Order) (*order.Order, error) {
	db := r.db.WithContext(ctx)
	if o.IsNew() {
		if err := db.Create(o).Error; err != nil {
			return nil, errors.Wrap(err, "create order")
		}
		return o, nil
	}

	if err := db.Save(o).Error; err != nil {
		return nil, errors.Wrapf(err, "save order %s", o.ID)
	}
	return o, nil
}

func (r *orderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	var o order.Order
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, order.ErrOrderNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "find order %s", id)
	}
	return &o, nil
}

func (r *orderRepository) FindAll(ctx context.Context) ([]order.Order, error) {
	orders := make([]order.Order, 0)
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&orders).Error; err != nil {
		return nil, errors.Wrap(err, "find orders")
	}
	return orders, nil
}

func (r *orderRepository) DeleteByID(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&order.Order{}).Error; err != nil {
		return errors.Wrapf(err, "delete order %s", id)
	}
	return nil
}

func (r *orderRepository) DeleteAll(ctx context.Context) error {
	err := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&order.Order{}).Error
	return errors.Wrap(err, "delete all orders")
}
