package inventory

import (
	"context"

	"github.com/jhoicas/Distribucion-api/internal/domain"
	"github.com/jhoicas/Distribucion-api/internal/domain/entity"
	"github.com/jhoicas/Distribucion-api/internal/domain/repository"
)

// Ledger consulta las existencias restantes. Nunca guarda resultados:
// cada llamada vuelve a sumar las filas de distributions.
type Ledger struct {
	repo repository.LedgerRepository
}

// NewLedger construye el Ledger sobre el repositorio dado.
func NewLedger(repo repository.LedgerRepository) *Ledger {
	return &Ledger{repo: repo}
}

// RemainingStock existencias restantes de un producto de la empresa (≥ 0).
// Devuelve domain.ErrNotFound si el producto no existe o es de otra empresa.
func (l *Ledger) RemainingStock(ctx context.Context, companyID, productID string) (int64, error) {
	stock, err := l.ProductStock(ctx, companyID, productID)
	if err != nil {
		return 0, err
	}
	return clamp(stock.Remaining()), nil
}

// RemainingStockBatch existencias restantes de todos los productos de la empresa.
// Un producto sin distribuciones aparece con su cantidad inicial.
func (l *Ledger) RemainingStockBatch(ctx context.Context, companyID string) (map[string]int64, error) {
	stocks, err := l.repo.ListProductStock(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(stocks))
	for _, s := range stocks {
		out[s.Product.ID] = clamp(s.Remaining())
	}
	return out, nil
}

// ListStock todos los productos de la empresa con lo distribuido, más recientes primero.
// Remaining() de cada fila no está recortado a 0.
func (l *Ledger) ListStock(ctx context.Context, companyID string) ([]entity.ProductStock, error) {
	return l.repo.ListProductStock(ctx, companyID)
}

// ProductStock devuelve el producto con lo distribuido hasta ahora.
func (l *Ledger) ProductStock(ctx context.Context, companyID, productID string) (*entity.ProductStock, error) {
	return productStock(ctx, l.repo, companyID, productID)
}

func productStock(ctx context.Context, repo repository.LedgerRepository, companyID, productID string) (*entity.ProductStock, error) {
	stock, err := repo.GetProductStock(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrNotFound
	}
	return stock, nil
}

// clamp: una carrera entre envíos puede dejar la suma por encima del inicial.
func clamp(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}
