package models

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a product in the store.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" bson:"_id"`
	Name        string    `json:"name" gorm:"not null" bson:"name" validate:"required"`
	Description string    `json:"description" bson:"description"`
	Price       float64   `json:"price" gorm:"not null" bson:"price" validate:"gt=0"`
	Stock       int       `json:"stock" gorm:"not null;default:0" bson:"stock" validate:"gte=0"`
	Category    string    `json:"category" gorm:"index" bson:"category"`
	ImageURL    string    `json:"imageUrl" bson:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ProductSummary is the inline view of a product resolved from a cart line
// or an order line.
type ProductSummary struct {
	ID       string  `json:"id" gorm:"primaryKey;type:varchar(36)" bson:"_id"`
	Name     string  `json:"name" bson:"name"`
	Price    float64 `json:"price" bson:"price"`
	ImageURL string  `json:"imageUrl" bson:"imageUrl"`
}

func (ProductSummary) TableName() string {
	return "products"
}

// Summary returns the inline view of p.
func (p *Product) Summary() *ProductSummary {
	return &ProductSummary{ID: p.ID, Name: p.Name, Price: p.Price, ImageURL: p.ImageURL}
}

// Validate checks the schema constraints of the record.
func (p *Product) Validate() error {
	return schema.Struct(p)
}

func (p *Product) BeforeSave(tx *gorm.DB) error {
	return p.Validate()
}

// ProductFilter narrows a product listing. Nil bounds are not applied.
type ProductFilter struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// Matches reports whether p passes the filter.
func (f ProductFilter) Matches(p Product) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	return true
}
