package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"` // campo JSON → regla incumplida
}

// InsufficientStockResponse cuerpo del 409 INSUFFICIENT_STOCK.
type InsufficientStockResponse struct {
	ErrorResponse
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Available   int64  `json:"available"`
	Requested   int64  `json:"requested"`
}

// CountResponse respuesta de operaciones que crean varias filas.
type CountResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}

// IDResponse respuesta de creación de un recurso.
type IDResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}
