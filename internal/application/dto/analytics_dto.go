package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportFilter parámetros de GET /api/reports/*. Todos opcionales; se combinan con AND.
type ReportFilter struct {
	StartDate string `query:"start_date"` // YYYY-MM-DD, inclusivo
	EndDate   string `query:"end_date"`   // YYYY-MM-DD, inclusivo
	Worker    string `query:"worker"`     // nombre exacto
	Product   string `query:"product"`    // nombre exacto
	Category  string `query:"category"`
}

// ProductAnalyticsDTO total distribuido por producto.
type ProductAnalyticsDTO struct {
	ProductID         string          `json:"product_id"`
	ProductName       string          `json:"product_name"`
	Category          *string         `json:"category"`
	TotalDistributed  int64           `json:"total_distributed"`
	DistributionCount int64           `json:"distribution_count"`
	SharePct          decimal.Decimal `json:"share_pct"` // % de las unidades del resultado
}

// WorkerAnalyticsDTO total recibido por trabajador (agrupado por nombre exacto).
type WorkerAnalyticsDTO struct {
	WorkerName        string    `json:"worker_name"`
	TotalItems        int64     `json:"total_items"`
	DistributionCount int64     `json:"distribution_count"`
	LastDistribution  time.Time `json:"last_distribution"`
}
