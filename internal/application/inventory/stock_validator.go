package inventory

import (
	"context"
	"math"

	"github.com/jhoicas/Distribucion-api/internal/domain"
	"github.com/jhoicas/Distribucion-api/internal/domain/repository"
)

// Allocation cantidad de un producto asignada a un trabajador.
type Allocation struct {
	ProductID string
	Quantity  int64
}

// StockValidator confirma cada asignación contra las existencias actuales antes de escribir.
type StockValidator struct {
	repo repository.LedgerRepository
}

// NewStockValidator construye el validador.
func NewStockValidator(repo repository.LedgerRepository) *StockValidator {
	return &StockValidator{repo: repo}
}

// Validate relee las existencias de cada producto y falla con *domain.InsufficientStockError
// en el primer producto cuya cantidad pedida supera lo disponible.
// Las líneas repetidas de un mismo producto se validan por su suma.
func (v *StockValidator) Validate(ctx context.Context, companyID string, allocations []Allocation) error {
	return validateWith(ctx, v.repo, companyID, allocations)
}

// validateWith permite validar con un repositorio atado a una transacción.
func validateWith(ctx context.Context, repo repository.LedgerRepository, companyID string, allocations []Allocation) error {
	order, requested := groupByProduct(allocations)
	for _, productID := range order {
		stock, err := productStock(ctx, repo, companyID, productID)
		if err != nil {
			return err
		}
		available := clamp(stock.Remaining())
		if requested[productID] > available {
			return &domain.InsufficientStockError{
				ProductID:   productID,
				ProductName: stock.Product.Name,
				Available:   available,
				Requested:   requested[productID],
			}
		}
	}
	return nil
}

// groupByProduct suma cantidades por producto conservando el orden de aparición.
// La suma se satura en math.MaxInt64 para que un desbordamiento nunca pase por debajo de lo disponible.
func groupByProduct(allocations []Allocation) ([]string, map[string]int64) {
	order := make([]string, 0, len(allocations))
	sums := make(map[string]int64, len(allocations))
	for _, a := range allocations {
		if _, seen := sums[a.ProductID]; !seen {
			order = append(order, a.ProductID)
		}
		sums[a.ProductID] = addSaturated(sums[a.ProductID], a.Quantity)
	}
	return order, sums
}

func addSaturated(a, b int64) int64 {
	if b > 0 && a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}
