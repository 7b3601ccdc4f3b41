package repository

import (
	"context"

	"github.com/jhoicas/Distribucion-api/internal/domain/entity"
)

// DistributionRepository puerto de escritura del libro de distribuciones (solo inserciones).
type DistributionRepository interface {
	// CreateBatch inserta todas las filas en un solo envío al servidor.
	CreateBatch(ctx context.Context, rows []*entity.Distribution) error
	// PreviousWorkers identidades distintas usadas antes, la más reciente primero.
	PreviousWorkers(ctx context.Context, companyID string, limit int) ([]entity.WorkerIdentity, error)
}
