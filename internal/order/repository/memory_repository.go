package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"fruit-order-service/internal/order"

	"github.com/google/uuid"
)

// memoryOrderRepository keeps orders in a map; used for local runs and tests.
type memoryOrderRepository struct {
	mu    sync.RWMutex
	items map[string]order.Order
	seq   int64
}

func NewMemoryOrderRepository() OrderRepository {
	return &memoryOrderRepository{items: make(map[string]order.Order)}
}

func (r *memoryOrderRepository) Save(_ context.Context, o *order.Order) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if o.IsNew() {
		o.ID = uuid.New().String()
	}
	if current, ok := r.items[o.ID]; ok {
		o.CreatedAt = current.CreatedAt
	} else {
		// monotonic even when the clock does not advance between saves
		r.seq = max(r.seq+1, time.Now().UnixNano())
		o.CreatedAt = r.seq
	}

	r.items[o.ID] = cloneOrder(*o)
	return o, nil
}

func (r *memoryOrderRepository) FindByID(_ context.Context, id string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.items[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	clone := cloneOrder(o)
	return &clone, nil
}

func (r *memoryOrderRepository) FindAll(_ context.Context) ([]order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]order.Order, 0, len(r.items))
	for _, o := range r.items {
		result = append(result, cloneOrder(o))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt < result[j].CreatedAt
	})
	return result, nil
}

func (r *memoryOrderRepository) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *memoryOrderRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = make(map[string]order.Order)
	return nil
}

// cloneOrder copies the item slice so callers cannot mutate stored state.
func cloneOrder(o order.Order) order.Order {
	if o.Items != nil {
		items := make([]order.OrderItem, len(o.Items))
		copy(items, o.Items)
		o.Items = items
	}
	return o
}

var _ OrderRepository = (*memoryOrderRepository)(nil)
