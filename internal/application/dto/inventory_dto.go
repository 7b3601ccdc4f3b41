package dto

import "time"

// CreateDistributionRequest body para POST /api/distributions.
// Un envío corresponde a un solo trabajador.
type CreateDistributionRequest struct {
	WorkerName   string                   `json:"worker_name" validate:"required,max=200"`
	WorkerGender string                   `json:"worker_gender,omitempty" validate:"max=50"`
	WorkerMobile string                   `json:"worker_mobile,omitempty" validate:"max=50"`
	Products     []DistributionItemRequest `json:"products" validate:"required,min=1,dive"`
}

// DistributionItemRequest cantidad de un producto para el trabajador.
type DistributionItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0,lte=1000000000"`
}

// WorkerResponse identidad usada en envíos anteriores.
type WorkerResponse struct {
	WorkerName   string  `json:"worker_name"`
	WorkerGender *string `json:"worker_gender"`
	WorkerMobile *string `json:"worker_mobile"`
}

// DistributionResponse fila de GET /api/distributions y de los reportes.
type DistributionResponse struct {
	ID              string    `json:"id"`
	WorkerName      string    `json:"worker_name"`
	WorkerGender    *string   `json:"worker_gender"`
	WorkerMobile    *string   `json:"worker_mobile"`
	Quantity        int64     `json:"quantity"`
	DistributedAt   time.Time `json:"distributed_at"`
	ProductID       string    `json:"product_id"`
	ProductName     string    `json:"product_name"`
	ProductCategory *string   `json:"product_category"`
	DistributedBy   string    `json:"distributed_by"`
}
