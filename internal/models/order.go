// internal/models/order.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is an order header. Total is derived from the items at creation and
// never recomputed afterwards.
type Order struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Email     string          `json:"email" gorm:"size:200;not null"`
	Total     decimal.Decimal `json:"total" gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time       `json:"created_at"`

	// Relationships
	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem is one line of an order. ProductName and Price are copied from
// the product when the order is placed; ProductID is not a foreign key so
// later catalog changes never touch order history.
type OrderItem struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	OrderID     uint            `json:"order_id" gorm:"not null;index"`
	ProductID   uint            `json:"product_id" gorm:"index"`
	ProductName string          `json:"product_name" gorm:"size:200"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
}

// LineTotal is Price * Quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
