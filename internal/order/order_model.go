package order

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderItem is one fruit line of an order. It has no identity of its own and is
// stored embedded in its parent order.
type OrderItem struct {
	FruitName       string `json:"fruitName"`
	QuantityInKilos int    `json:"quantityInKilos"`
}

// Order is the persisted record and the GORM model for the 'orders' table.
// Items are kept inside the record as a JSON document.
type Order struct {
	ID           string      `gorm:"type:varchar(36);primaryKey" json:"id"`
	ClientName   string      `gorm:"type:varchar(255);not null" json:"clientName"`
	DeliveryDate Date        `gorm:"type:date;not null" json:"deliveryDate"`
	Items        []OrderItem `gorm:"type:jsonb;serializer:json;not null" json:"items"`
	// CreatedAt is a nanosecond insertion stamp; listing sorts on it.
	CreatedAt int64 `gorm:"autoCreateTime:nano;index" json:"createdAt"`
}

// IsNew reports whether the order has not been saved yet.
func (o *Order) IsNew() bool {
	return o.ID == ""
}

// BeforeCreate assigns the store identity on first save.
func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	if o.CreatedAt == 0 {
		o.CreatedAt = time.Now().UnixNano()
	}
	return
}
