package repository

import (
	"context"

	"github.com/jhoicas/Distribucion-api/internal/domain/entity"
)

// ProductRepository define el puerto de escritura para Product (DIP).
// InitialQuantity nunca se actualiza, por eso no hay Update. Las lecturas con
// existencias pasan por LedgerRepository.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// CreateMany inserta todos los productos; pensado para usarse dentro de una transacción.
	CreateMany(ctx context.Context, products []*entity.Product) error
}
