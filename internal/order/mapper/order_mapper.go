package mapper

import (
	"time"

	"fruit-order-service/internal/order"
	"fruit-order-service/internal/order/valueobject"
)

// OrderMapper converts between the HTTP request/response shapes and the persisted order.
type OrderMapper struct {
	clock func() time.Time
}

// New returns a mapper that judges delivery dates against clock's local calendar day.
func New(clock func() time.Time) *OrderMapper {
	if clock == nil {
		clock = time.Now
	}
	return &OrderMapper{clock: clock}
}

// Today returns the calendar day the mapper validates against.
func (m *OrderMapper) Today() order.Date {
	return order.DateOf(m.clock())
}

// ToEntity validates req through the value objects and builds an unsaved order.
// The first violated invariant is returned as an *order.ValidationError.
func (m *OrderMapper) ToEntity(req order.OrderCreateRequest) (*order.Order, error) {
	clientName, err := valueobject.NewClientName(req.ClientName)
	if err != nil {
		return nil, err
	}

	deliveryDate, err := valueobject.NewDeliveryDate(req.DeliveryDate, m.Today())
	if err != nil {
		return nil, err
	}

	vos := make([]valueobject.OrderItemVO, 0, len(req.Items))
	for _, item := range req.Items {
		vo, err := valueobject.NewOrderItemVO(item.FruitName, item.QuantityInKilos)
		if err != nil {
			return nil, err
		}
		vos = append(vos, vo)
	}

	items, err := valueobject.NewItems(vos)
	if err != nil {
		return nil, err
	}

	return &order.Order{
		ClientName:   clientName.Value(),
		DeliveryDate: deliveryDate.Value(),
		Items:        items.ToEntities(),
	}, nil
}

func (m *OrderMapper) ToResponse(o *order.Order) order.OrderResponse {
	items := make([]order.OrderItemResponse, 0, len(o.Items))
	for _, i := range o.Items {
		items = append(items, order.OrderItemResponse{
			FruitName:       i.FruitName,
			QuantityInKilos: i.QuantityInKilos,
		})
	}

	return order.OrderResponse{
		ID:           o.ID,
		ClientName:   o.ClientName,
		DeliveryDate: o.DeliveryDate,
		Items:        items,
	}
}

func (m *OrderMapper) ToResponses(orders []order.Order) []order.OrderResponse {
	out := make([]order.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, m.ToResponse(&orders[i]))
	}
	return out
}
