// internal/order/order_dto.go
package order

import "time"

// OrderItemRequest is one item of the POST/PUT /orders payload.
type OrderItemRequest struct {
	FruitName       string `json:"fruitName" binding:"required"`
	QuantityInKilos int    `json:"quantityInKilos" binding:"gt=0"`
}

// OrderCreateRequest is the JSON payload for POST /orders and PUT /orders/:id.
// The binding tags reject obviously malformed input early; the value objects
// remain the authoritative checks.
type OrderCreateRequest struct {
	ClientName   string             `json:"clientName" binding:"required"`
	DeliveryDate *Date              `json:"deliveryDate" binding:"required"`
	Items        []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type OrderItemResponse struct {
	FruitName       string `json:"fruitName"`
	QuantityInKilos int    `json:"quantityInKilos"`
}

// OrderResponse is the JSON shape returned for a persisted order.
type OrderResponse struct {
	ID           string              `json:"id"`
	ClientName   string              `json:"clientName"`
	DeliveryDate Date                `json:"deliveryDate"`
	Items        []OrderItemResponse `json:"items"`
}

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}
