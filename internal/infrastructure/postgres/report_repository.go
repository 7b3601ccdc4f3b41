package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Distribucion-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para reportes y dashboard.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// reportWhere arma el WHERE común; asume alias d (distributions) y p (products).
func reportWhere(q repository.ReportQuery) (string, []any) {
	conds := []string{"d.company_id = $1"}
	args := []any{q.CompanyID}
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if q.DistributedBy != "" {
		add("d.distributed_by_user_id = $%d", q.DistributedBy)
	}
	if q.From != nil {
		add("d.distributed_at >= $%d", *q.From)
	}
	if q.To != nil {
		add("d.distributed_at < $%d", *q.To)
	}
	if q.Worker != "" {
		add("d.worker_name = $%d", q.Worker)
	}
	if q.Product != "" {
		add("p.name = $%d", q.Product)
	}
	if q.Category != "" {
		add("p.category = $%d", q.Category)
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListDistributions filas con producto y usuario, más recientes primero. limit <= 0 = sin límite.
func (r *ReportRepo) ListDistributions(ctx context.Context, q repository.ReportQuery, limit int) ([]repository.DistributionView, error) {
	where, args := reportWhere(q)
	query := `
		SELECT d.id, d.worker_name, d.worker_gender, d.worker_mobile, d.quantity, d.distributed_at,
		       p.id, p.name, p.category, u.name
		FROM distributions d
		JOIN products p ON p.id = d.product_id
		JOIN users u ON u.id = d.distributed_by_user_id` + where + `
		ORDER BY d.distributed_at DESC, d.id`
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list distributions: %w", err)
	}
	defer rows.Close()

	out := []repository.DistributionView{}
	for rows.Next() {
		var v repository.DistributionView
		if err := rows.Scan(&v.ID, &v.WorkerName, &v.WorkerGender, &v.WorkerMobile, &v.Quantity, &v.DistributedAt,
			&v.ProductID, &v.ProductName, &v.ProductCategory, &v.DistributedBy); err != nil {
			return nil, fmt.Errorf("scan distribution: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ProductTotals agrega por producto. share_pct sale como NUMERIC y se lee en decimal.Decimal.
func (r *ReportRepo) ProductTotals(ctx context.Context, q repository.ReportQuery) ([]repository.ProductTotal, error) {
	where, args := reportWhere(q)
	query := `
		SELECT p.id, p.name, p.category,
		       SUM(d.quantity)::BIGINT AS total_distributed,
		       COUNT(d.id) AS distribution_count,
		       COALESCE(ROUND(SUM(d.quantity) * 100.0 / NULLIF(SUM(SUM(d.quantity)) OVER (), 0), 2), 0) AS share_pct
		FROM distributions d
		JOIN products p ON p.id = d.product_id` + where + `
		GROUP BY p.id, p.name, p.category
		ORDER BY total_distributed DESC, p.name`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("product totals: %w", err)
	}
	defer rows.Close()

	out := []repository.ProductTotal{}
	for rows.Next() {
		var t repository.ProductTotal
		if err := rows.Scan(&t.ProductID, &t.ProductName, &t.Category, &t.TotalDistributed,
			&t.DistributionCount, &t.SharePct); err != nil {
			return nil, fmt.Errorf("scan product total: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// WorkerTotals agrega por worker_name exacto.
func (r *ReportRepo) WorkerTotals(ctx context.Context, q repository.ReportQuery) ([]repository.WorkerTotal, error) {
	where, args := reportWhere(q)
	query := `
		SELECT d.worker_name,
		       SUM(d.quantity)::BIGINT AS total_items,
		       COUNT(d.id) AS distribution_count,
		       MAX(d.distributed_at) AS last_distribution
		FROM distributions d
		JOIN products p ON p.id = d.product_id` + where + `
		GROUP BY d.worker_name
		ORDER BY total_items DESC, d.worker_name`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("worker totals: %w", err)
	}
	defer rows.Close()

	out := []repository.WorkerTotal{}
	for rows.Next() {
		var t repository.WorkerTotal
		if err := rows.Scan(&t.WorkerName, &t.TotalItems, &t.DistributionCount, &t.LastDistribution); err != nil {
			return nil, fmt.Errorf("scan worker total: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// StockTotals suma de cantidades iniciales y de todo lo distribuido en la empresa.
func (r *ReportRepo) StockTotals(ctx context.Context, companyID string) (initial, distributed int64, err error) {
	query := `
		SELECT
			COALESCE((SELECT SUM(initial_quantity) FROM products WHERE company_id = $1), 0)::BIGINT,
			COALESCE((SELECT SUM(quantity) FROM distributions WHERE company_id = $1), 0)::BIGINT`
	if err := r.q.QueryRow(ctx, query, companyID).Scan(&initial, &distributed); err != nil {
		return 0, 0, fmt.Errorf("stock totals: %w", err)
	}
	return initial, distributed, nil
}

// PeriodTotals unidades y trabajadores distintos con distributed_at en [from, to).
func (r *ReportRepo) PeriodTotals(ctx context.Context, companyID string, from, to time.Time) (repository.PeriodTotals, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)::BIGINT, COUNT(DISTINCT worker_name)
		FROM distributions
		WHERE company_id = $1 AND distributed_at >= $2 AND distributed_at < $3`
	var t repository.PeriodTotals
	if err := r.q.QueryRow(ctx, query, companyID, from, to).Scan(&t.Units, &t.Workers); err != nil {
		return repository.PeriodTotals{}, fmt.Errorf("period totals: %w", err)
	}
	return t, nil
}
