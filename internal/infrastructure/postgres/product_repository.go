package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Distribucion-api/internal/domain/entity"
	"github.com/jhoicas/Distribucion-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL (pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const insertProduct = `
	INSERT INTO products (id, company_id, name, category, description, initial_quantity, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

func productArgs(p *entity.Product) []any {
	return []any{p.ID, p.CompanyID, p.Name, p.Category, p.Description, p.InitialQuantity, p.CreatedAt, p.UpdatedAt}
}

// Create persiste un producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	if _, err := r.q.Exec(ctx, insertProduct, productArgs(p)...); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// CreateMany inserta todos los productos en un solo batch.
// Sin transacción alrededor, un fallo puede dejar parte de las filas.
func (r *ProductRepo) CreateMany(ctx context.Context, products []*entity.Product) error {
	if len(products) == 0 {
		return nil
	}
	b := &pgx.Batch{}
	for _, p := range products {
		b.Queue(insertProduct, productArgs(p)...)
	}
	br := r.q.SendBatch(ctx, b)
	for i := range products {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("insert product %d: %w", i, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("insert products: %w", err)
	}
	return nil
}
