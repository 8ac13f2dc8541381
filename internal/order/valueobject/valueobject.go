// Package valueobject holds the validated wrappers an order is built from.
// Every constructor fails on the first violated invariant with an
// *order.ValidationError, so an invalid value can never be constructed.
package valueobject

import (
	"strings"

	"fruit-order-service/internal/order"
)

const (
	MsgClientNameEmpty   = "Client name cannot be empty"
	MsgDeliveryDateEarly = "Delivery date must be at least tomorrow"
	MsgFruitNameRequired = "Fruit name is required"
	MsgQuantityInvalid   = "Quantity must be > 0"
	MsgItemsRequired     = "At least one item is required"
)

type ClientName struct {
	value string
}

func NewClientName(value string) (ClientName, error) {
	if strings.TrimSpace(value) == "" {
		return ClientName{}, order.NewValidationError("clientName", MsgClientNameEmpty)
	}
	return ClientName{value: value}, nil
}

func (c ClientName) Value() string { return c.value }

type DeliveryDate struct {
	value order.Date
}

// NewDeliveryDate accepts any date from the day after today onwards.
func NewDeliveryDate(value *order.Date, today order.Date) (DeliveryDate, error) {
	if value == nil || value.IsZero() || value.Before(today.AddDays(1)) {
		return DeliveryDate{}, order.NewValidationError("deliveryDate", MsgDeliveryDateEarly)
	}
	return DeliveryDate{value: *value}, nil
}

func (d DeliveryDate) Value() order.Date { return d.value }

type OrderItemVO struct {
	fruitName       string
	quantityInKilos int
}

func NewOrderItemVO(fruitName string, quantityInKilos int) (OrderItemVO, error) {
	if strings.TrimSpace(fruitName) == "" {
		return OrderItemVO{}, order.NewValidationError("fruitName", MsgFruitNameRequired)
	}
	if quantityInKilos <= 0 {
		return OrderItemVO{}, order.NewValidationError("quantityInKilos", MsgQuantityInvalid)
	}
	return OrderItemVO{fruitName: fruitName, quantityInKilos: quantityInKilos}, nil
}

func (i OrderItemVO) FruitName() string    { return i.fruitName }
func (i OrderItemVO) QuantityInKilos() int { return i.quantityInKilos }

func (i OrderItemVO) ToEntity() order.OrderItem {
	return order.OrderItem{FruitName: i.fruitName, QuantityInKilos: i.quantityInKilos}
}

// Items is a non-empty, ordered list of validated items.
type Items struct {
	values []OrderItemVO
}

func NewItems(values []OrderItemVO) (Items, error) {
	if len(values) == 0 {
		return Items{}, order.NewValidationError("items", MsgItemsRequired)
	}
	copied := make([]OrderItemVO, len(values))
	copy(copied, values)
	return Items{values: copied}, nil
}

func (it Items) Len() int { return len(it.values) }

func (it Items) ToEntities() []order.OrderItem {
	out := make([]order.OrderItem, 0, len(it.values))
	for _, v := range it.values {
		out = append(out, v.ToEntity())
	}
	return out
}
