package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ReportQuery filtros ya resueltos para las consultas de reportes.
// Los campos vacíos/nil no restringen.
type ReportQuery struct {
	CompanyID string
	// DistributedBy restringe a filas registradas por ese usuario (rol worker).
	DistributedBy string
	From          *time.Time // inclusivo
	To            *time.Time // exclusivo
	Worker        string     // coincidencia exacta
	Product       string     // nombre exacto
	Category      string     // exacta
}

// DistributionView fila de distribución con los datos de producto y usuario ya unidos.
type DistributionView struct {
	ID              string
	WorkerName      string
	WorkerGender    *string
	WorkerMobile    *string
	Quantity        int64
	DistributedAt   time.Time
	ProductID       string
	ProductName     string
	ProductCategory *string
	DistributedBy   string // nombre del usuario
}

// ProductTotal agregado por producto.
type ProductTotal struct {
	ProductID         string
	ProductName       string
	Category          *string
	TotalDistributed  int64
	DistributionCount int64
	SharePct          decimal.Decimal // % del total de unidades del resultado
}

// WorkerTotal agregado por nombre de trabajador (texto exacto).
type WorkerTotal struct {
	WorkerName        string
	TotalItems        int64
	DistributionCount int64
	LastDistribution  time.Time
}

// PeriodTotals unidades distribuidas y trabajadores distintos en un rango.
type PeriodTotals struct {
	Units   int64
	Workers int64
}

// ReportRepository consultas de solo lectura para reportes y dashboard.
type ReportRepository interface {
	ListDistributions(ctx context.Context, q ReportQuery, limit int) ([]DistributionView, error)
	ProductTotals(ctx context.Context, q ReportQuery) ([]ProductTotal, error)
	WorkerTotals(ctx context.Context, q ReportQuery) ([]WorkerTotal, error)
	// StockTotals suma de cantidades iniciales y de lo distribuido en toda la empresa.
	StockTotals(ctx context.Context, companyID string) (initial, distributed int64, err error)
	// PeriodTotals entre from (inclusivo) y to (exclusivo).
	PeriodTotals(ctx context.Context, companyID string, from, to time.Time) (PeriodTotals, error)
}
