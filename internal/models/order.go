package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderLine represents a single item within an order.
type OrderLine struct {
	ID              uint            `json:"-" gorm:"primaryKey" bson:"-"`
	OrderID         string          `json:"-" gorm:"type:varchar(36);index" bson:"-"`
	ProductID       string          `json:"productId" gorm:"type:varchar(36);not null" bson:"productId" validate:"required"`
	Product         *ProductSummary `json:"product" gorm:"foreignKey:ProductID;-:migration" bson:"-"`
	Quantity        int             `json:"quantity" gorm:"not null" bson:"quantity" validate:"gte=1"`
	PriceAtPurchase float64         `json:"priceAtPurchase" gorm:"not null" bson:"priceAtPurchase"` // Price at the time of order
}

// Customer is the optional contact data attached to an order.
type Customer struct {
	Name    string `json:"name" bson:"name"`
	Email   string `json:"email" bson:"email"`
	Address string `json:"address" bson:"address"`
}

// Order is an immutable snapshot of a checked out cart.
type Order struct {
	ID        string      `json:"id" gorm:"primaryKey;type:varchar(36)" bson:"_id"`
	Items     []OrderLine `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" bson:"items" validate:"dive"`
	Total     float64     `json:"total" gorm:"not null" bson:"total" validate:"gte=0"`
	Customer  Customer    `json:"customer" gorm:"embedded;embeddedPrefix:customer_" bson:"customer"`
	CreatedAt time.Time   `json:"createdAt" gorm:"index" bson:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt" bson:"updatedAt"`
}

// Validate checks the schema constraints of the record.
func (o *Order) Validate() error {
	return schema.Struct(o)
}

func (o *Order) BeforeSave(tx *gorm.DB) error {
	return o.Validate()
}
