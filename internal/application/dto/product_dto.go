package dto

import "time"

// CreateProductRequest entrada para crear un producto.
// La cantidad inicial se fija aquí y no vuelve a cambiar.
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Category    *string `json:"category" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Quantity    *int64  `json:"quantity" validate:"required,gte=0"`
}

// BulkCreateProductsRequest body para POST /api/products/bulk.
type BulkCreateProductsRequest struct {
	Products []CreateProductRequest `json:"products" validate:"required,min=1,max=1000,dive"`
}

// ProductResponse producto con sus existencias derivadas.
type ProductResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Category          *string   `json:"category"`
	Description       *string   `json:"description"`
	InitialQuantity   int64     `json:"initial_quantity"`
	RemainingQuantity int64     `json:"remaining_quantity"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// AvailableProductResponse fila de GET /api/products/available.
type AvailableProductResponse struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Category          *string `json:"category"`
	RemainingQuantity int64   `json:"remaining_quantity"`
}
