// Package analytics contiene los casos de uso de reportes de distribución y el
// resumen del dashboard.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Distribucion-api/internal/application/dto"
	"github.com/jhoicas/Distribucion-api/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// DashboardUseCase genera los indicadores del día y del mes en curso.
//
// Fuente de datos: ReportRepository (consultas read-only). Días y meses se cuentan en UTC.
type DashboardUseCase struct {
	repo repository.ReportRepository
	now  func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.ReportRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, now: time.Now}
}

// GetSummary construye el DashboardStatsDTO para la empresa indicada.
//
// Tres llamadas en paralelo:
//  1. StockTotals            → TotalStock + RemainingStock
//  2. PeriodTotals(hoy)      → DistributedToday
//  3. PeriodTotals(mes)      → DistributedMonth + ActiveWorkers
func (uc *DashboardUseCase) GetSummary(ctx context.Context, companyID string) (*dto.DashboardStatsDTO, error) {
	now := uc.now().UTC()

	// ── Rangos de fecha (fin exclusivo) ───────────────────────────────────────
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	todayEnd := todayStart.AddDate(0, 0, 1)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	// ── Goroutines para paralelizar las 3 consultas DB ────────────────────────
	type stockResult struct {
		initial     int64
		distributed int64
		err         error
	}
	type periodResult struct {
		totals repository.PeriodTotals
		err    error
	}

	stockCh := make(chan stockResult, 1)
	todayCh := make(chan periodResult, 1)
	monthCh := make(chan periodResult, 1)

	go func() {
		initial, distributed, err := uc.repo.StockTotals(ctx, companyID)
		stockCh <- stockResult{initial, distributed, err}
	}()
	go func() {
		t, err := uc.repo.PeriodTotals(ctx, companyID, todayStart, todayEnd)
		todayCh <- periodResult{t, err}
	}()
	go func() {
		t, err := uc.repo.PeriodTotals(ctx, companyID, monthStart, monthEnd)
		monthCh <- periodResult{t, err}
	}()

	stock := <-stockCh
	today := <-todayCh
	month := <-monthCh

	if stock.err != nil {
		return nil, fmt.Errorf("dashboard: existencias: %w", stock.err)
	}
	if today.err != nil {
		return nil, fmt.Errorf("dashboard: distribuido hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: distribuido en el mes: %w", month.err)
	}

	remaining := stock.initial - stock.distributed
	if remaining < 0 {
		remaining = 0
	}
	pct := decimal.Zero
	if stock.initial > 0 {
		pct = decimal.NewFromInt(month.totals.Units).Div(decimal.NewFromInt(stock.initial)).Mul(hundred).Round(2)
	}

	return &dto.DashboardStatsDTO{
		TotalStock:           stock.initial,
		RemainingStock:       remaining,
		DistributedToday:     today.totals.Units,
		DistributedMonth:     month.totals.Units,
		ActiveWorkers:        month.totals.Workers,
		MonthDistributionPct: pct,
		DateLabel:            monthLabel(now),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
