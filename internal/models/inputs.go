package models

// ProductCreateInput is the body of a product creation request.
type ProductCreateInput struct {
	Name        *string  `json:"name" validate:"required,notblank"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"required,gt=0"`
	Stock       *int     `json:"stock" validate:"required,gte=0"`
	Category    *string  `json:"category"`
	ImageURL    *string  `json:"imageUrl"`
}

// ProductUpdateInput is the body of a product update request. Nil price,
// stock and optional strings leave the stored value unchanged.
type ProductUpdateInput struct {
	Name        *string  `json:"name" validate:"required,notblank"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitnil,gt=0"`
	Stock       *int     `json:"stock" validate:"omitnil,gte=0"`
	Category    *string  `json:"category"`
	ImageURL    *string  `json:"imageUrl"`
}

// CartInput is the body of the add-to-cart and update-cart requests.
type CartInput struct {
	ProductID string `json:"productId" validate:"required,identifier"`
	Quantity  *int   `json:"quantity" validate:"required,gte=1"`
}

// CustomerInput is the optional body of a checkout request.
type CustomerInput struct {
	Customer *CustomerDetails `json:"customer"`
}

// CustomerDetails carries the contact fields a checkout may supply.
type CustomerDetails struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
}
