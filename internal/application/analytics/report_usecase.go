package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/Distribucion-api/internal/application/dto"
	"github.com/jhoicas/Distribucion-api/internal/domain"
	"github.com/jhoicas/Distribucion-api/internal/domain/entity"
	"github.com/jhoicas/Distribucion-api/internal/domain/repository"
)

const (
	dateLayout  = "2006-01-02"
	recentLimit = 10 // filas del widget "recientes" del dashboard
)

// Scope quién consulta. Un worker solo ve las filas que él registró.
type Scope struct {
	CompanyID string
	UserID    string
	Role      string
}

// ReportUseCase filtra y agrega el historial de distribuciones.
// Sin paginación: cada consulta devuelve todo lo que cumple los filtros.
type ReportUseCase struct {
	repo repository.ReportRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{repo: repo}
}

// Distributions filas que cumplen los filtros, más recientes primero.
func (uc *ReportUseCase) Distributions(ctx context.Context, scope Scope, f dto.ReportFilter) ([]dto.DistributionResponse, error) {
	q, err := buildQuery(scope, f)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.ListDistributions(ctx, q, 0)
	if err != nil {
		return nil, err
	}
	return toDistributionResponses(rows), nil
}

// Recent últimas 10 filas visibles para quien consulta.
func (uc *ReportUseCase) Recent(ctx context.Context, scope Scope) ([]dto.DistributionResponse, error) {
	q, err := buildQuery(scope, dto.ReportFilter{})
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.ListDistributions(ctx, q, recentLimit)
	if err != nil {
		return nil, err
	}
	return toDistributionResponses(rows), nil
}

// ProductAnalytics totales por producto, mayor total primero.
func (uc *ReportUseCase) ProductAnalytics(ctx context.Context, scope Scope, f dto.ReportFilter) ([]dto.ProductAnalyticsDTO, error) {
	q, err := buildQuery(scope, f)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.ProductTotals(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductAnalyticsDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ProductAnalyticsDTO{
			ProductID:         r.ProductID,
			ProductName:       r.ProductName,
			Category:          r.Category,
			TotalDistributed:  r.TotalDistributed,
			DistributionCount: r.DistributionCount,
			SharePct:          r.SharePct.Round(2),
		})
	}
	return out, nil
}

// WorkerAnalytics totales por nombre de trabajador (texto exacto), mayor total primero.
func (uc *ReportUseCase) WorkerAnalytics(ctx context.Context, scope Scope, f dto.ReportFilter) ([]dto.WorkerAnalyticsDTO, error) {
	q, err := buildQuery(scope, f)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.WorkerTotals(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WorkerAnalyticsDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.WorkerAnalyticsDTO{
			WorkerName:        r.WorkerName,
			TotalItems:        r.TotalItems,
			DistributionCount: r.DistributionCount,
			LastDistribution:  r.LastDistribution,
		})
	}
	return out, nil
}

// buildQuery resuelve visibilidad y fechas. Las fechas son días UTC inclusivos:
// end_date=2026-03-04 incluye todo el 4 de marzo.
func buildQuery(scope Scope, f dto.ReportFilter) (repository.ReportQuery, error) {
	if scope.CompanyID == "" {
		return repository.ReportQuery{}, domain.ErrUnauthorized
	}
	q := repository.ReportQuery{
		CompanyID: scope.CompanyID,
		Worker:    f.Worker,
		Product:   f.Product,
		Category:  f.Category,
	}
	if scope.Role == entity.RoleWorker {
		q.DistributedBy = scope.UserID
	}
	if f.StartDate != "" {
		from, err := time.Parse(dateLayout, f.StartDate)
		if err != nil {
			return repository.ReportQuery{}, domain.Invalid("start_date debe tener formato YYYY-MM-DD")
		}
		q.From = &from
	}
	if f.EndDate != "" {
		end, err := time.Parse(dateLayout, f.EndDate)
		if err != nil {
			return repository.ReportQuery{}, domain.Invalid("end_date debe tener formato YYYY-MM-DD")
		}
		to := end.AddDate(0, 0, 1)
		q.To = &to
	}
	if q.From != nil && q.To != nil && !q.From.Before(*q.To) {
		return repository.ReportQuery{}, domain.Invalid("start_date no puede ser posterior a end_date")
	}
	return q, nil
}

func toDistributionResponses(rows []repository.DistributionView) []dto.DistributionResponse {
	out := make([]dto.DistributionResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.DistributionResponse{
			ID:              r.ID,
			WorkerName:      r.WorkerName,
			WorkerGender:    r.WorkerGender,
			WorkerMobile:    r.WorkerMobile,
			Quantity:        r.Quantity,
			DistributedAt:   r.DistributedAt,
			ProductID:       r.ProductID,
			ProductName:     r.ProductName,
			ProductCategory: r.ProductCategory,
			DistributedBy:   r.DistributedBy,
		})
	}
	return out
}
