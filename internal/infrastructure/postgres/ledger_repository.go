package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Distribucion-api/internal/domain/entity"
	"github.com/jhoicas/Distribucion-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo suma el libro de distributions por producto. Sin caché: cada consulta agrega desde las filas.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

const productStockSelect = `
	SELECT p.id, p.company_id, p.name, p.category, p.description, p.initial_quantity,
	       p.created_at, p.updated_at, COALESCE(SUM(d.quantity), 0)::BIGINT AS distributed
	FROM products p
	LEFT JOIN distributions d ON d.product_id = p.id
	WHERE p.company_id = $1`

func scanProductStock(row pgx.Row) (entity.ProductStock, error) {
	var s entity.ProductStock
	p := &s.Product
	err := row.Scan(&p.ID, &p.CompanyID, &p.Name, &p.Category, &p.Description, &p.InitialQuantity,
		&p.CreatedAt, &p.UpdatedAt, &s.Distributed)
	return s, err
}

// GetProductStock producto con lo distribuido. nil, nil si no existe en la empresa.
func (r *LedgerRepo) GetProductStock(ctx context.Context, companyID, productID string) (*entity.ProductStock, error) {
	query := productStockSelect + ` AND p.id = $2 GROUP BY p.id`
	s, err := scanProductStock(r.q.QueryRow(ctx, query, companyID, productID))
	if err != nil {
		if isNoRows(err) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product stock: %w", err)
	}
	return &s, nil
}

// ListProductStock todos los productos de la empresa, más recientes primero.
func (r *LedgerRepo) ListProductStock(ctx context.Context, companyID string) ([]entity.ProductStock, error) {
	query := productStockSelect + ` GROUP BY p.id ORDER BY p.created_at DESC, p.id`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list product stock: %w", err)
	}
	defer rows.Close()

	out := []entity.ProductStock{}
	for rows.Next() {
		s, err := scanProductStock(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product stock: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// LockProducts bloquea las filas de producto en orden de id para no generar deadlocks entre envíos.
func (r *LedgerRepo) LockProducts(ctx context.Context, companyID string, productIDs []string) error {
	if len(productIDs) == 0 {
		return nil
	}
	query := `
		SELECT id FROM products
		WHERE company_id = $1 AND id = ANY($2::uuid[])
		ORDER BY id
		FOR UPDATE`
	rows, err := r.q.Query(ctx, query, companyID, productIDs)
	if err != nil {
		return fmt.Errorf("lock products: %w", err)
	}
	defer rows.Close()
	// Los candados se toman al leer las filas; no se usa su contenido
	for rows.Next() {
	}
	if err := rows.Err(); err != nil {
		if isInvalidText(err) {
			return nil
		}
		return fmt.Errorf("lock products: %w", err)
	}
	return nil
}
