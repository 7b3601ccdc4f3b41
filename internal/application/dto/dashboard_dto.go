package dto

import "github.com/shopspring/decimal"

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
type DashboardStatsDTO struct {
	TotalStock     int64 `json:"total_stock"`     // suma de cantidades iniciales
	RemainingStock int64 `json:"remaining_stock"` // total_stock - todo lo distribuido

	// Días y meses en UTC
	DistributedToday int64 `json:"distributed_today"`
	DistributedMonth int64 `json:"distributed_month"`
	ActiveWorkers    int64 `json:"active_workers"` // nombres distintos en el mes

	MonthDistributionPct decimal.Decimal `json:"month_distribution_pct"` // distribuido_mes / total_stock * 100
	DateLabel            string          `json:"date_label"`             // ej: "Febrero 2026"
}
