package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Distribucion-api/internal/domain/entity"
	"github.com/jhoicas/Distribucion-api/internal/domain/repository"
)

var _ repository.DistributionRepository = (*DistributionRepo)(nil)

// DistributionRepo libro de distribuciones: solo INSERT y lecturas.
type DistributionRepo struct {
	q Querier
}

// NewDistributionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDistributionRepository(q Querier) *DistributionRepo {
	return &DistributionRepo{q: q}
}

const insertDistribution = `
	INSERT INTO distributions
		(id, company_id, product_id, worker_name, worker_gender, worker_mobile, quantity, distributed_by_user_id, distributed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// CreateBatch encola un INSERT por fila y los envía juntos (un solo round trip).
func (r *DistributionRepo) CreateBatch(ctx context.Context, rows []*entity.Distribution) error {
	if len(rows) == 0 {
		return nil
	}
	b := &pgx.Batch{}
	for _, d := range rows {
		b.Queue(insertDistribution,
			d.ID, d.CompanyID, d.ProductID, d.Worker.Name,
			entity.NullableString(d.Worker.Gender), entity.NullableString(d.Worker.Mobile),
			d.Quantity, d.DistributedByUserID, d.DistributedAt,
		)
	}
	br := r.q.SendBatch(ctx, b)
	for i := range rows {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("insert distribution %d: %w", i, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("insert distributions: %w", err)
	}
	return nil
}

// PreviousWorkers identidades distintas (nombre, género, móvil), la última usada primero.
func (r *DistributionRepo) PreviousWorkers(ctx context.Context, companyID string, limit int) ([]entity.WorkerIdentity, error) {
	query := `
		SELECT worker_name, COALESCE(worker_gender, ''), COALESCE(worker_mobile, '')
		FROM distributions
		WHERE company_id = $1
		GROUP BY worker_name, worker_gender, worker_mobile
		ORDER BY MAX(distributed_at) DESC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("previous workers: %w", err)
	}
	defer rows.Close()

	out := []entity.WorkerIdentity{}
	for rows.Next() {
		var w entity.WorkerIdentity
		if err := rows.Scan(&w.Name, &w.Gender, &w.Mobile); err != nil {
			return nil, fmt.Errorf("scan worker: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
