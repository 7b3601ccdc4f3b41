package repository

import (
	"context"

	"github.com/jhoicas/Distribucion-api/internal/domain/entity"
)

// LedgerRepository lecturas agregadas sobre el libro de distribuciones.
// Cada llamada recalcula la suma desde las filas; no hay contadores guardados.
type LedgerRepository interface {
	// GetProductStock devuelve nil, nil si el producto no existe en la empresa.
	GetProductStock(ctx context.Context, companyID, productID string) (*entity.ProductStock, error)
	// ListProductStock devuelve todos los productos de la empresa, más recientes primero.
	ListProductStock(ctx context.Context, companyID string) ([]entity.ProductStock, error)
	// LockProducts bloquea las filas de producto (SELECT FOR UPDATE). Solo tiene efecto dentro de una tx.
	LockProducts(ctx context.Context, companyID string, productIDs []string) error
}
