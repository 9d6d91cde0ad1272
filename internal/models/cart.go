package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultCartID scopes the cart used when a caller names none.
const DefaultCartID = "default"

// CartItem is one (product, quantity) line of a cart.
type CartItem struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)" bson:"_id"`
	CartID    string          `json:"cartId" gorm:"type:varchar(64);index;not null;default:'default'" bson:"cartId"`
	ProductID string          `json:"productId" gorm:"type:varchar(36);index;not null" bson:"productId" validate:"required"`
	Product   *ProductSummary `json:"product" gorm:"foreignKey:ProductID;-:migration" bson:"-"`
	Quantity  int             `json:"quantity" gorm:"not null" bson:"quantity" validate:"gte=1"`
	CreatedAt time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// Validate checks the schema constraints of the record.
func (c *CartItem) Validate() error {
	return schema.Struct(c)
}

func (c *CartItem) BeforeSave(tx *gorm.DB) error {
	return c.Validate()
}
