package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Distribucion-api/internal/domain/entity"
	"github.com/jhoicas/Distribucion-api/internal/domain/repository"
)

// DistributionWriter persiste una fila por (trabajador, producto) dentro de una sola transacción.
//
// Con strictLocking=false la validación ocurre antes y fuera de la transacción: dos envíos
// concurrentes pueden pasar ambos el chequeo. Con strictLocking=true se bloquean las filas de
// producto (SELECT ... FOR UPDATE) y se revalida dentro de la tx.
type DistributionWriter struct {
	txRunner      TxRunner
	strictLocking bool
	now           func() time.Time
}

// NewDistributionWriter construye el writer.
func NewDistributionWriter(txRunner TxRunner, strictLocking bool) *DistributionWriter {
	return &DistributionWriter{txRunner: txRunner, strictLocking: strictLocking, now: time.Now}
}

// RecordDistribution inserta las filas del trabajador y devuelve cuántas se escribieron.
// Todas comparten identidad, usuario y marca de tiempo del servidor.
func (w *DistributionWriter) RecordDistribution(
	ctx context.Context,
	companyID, userID string,
	worker entity.WorkerIdentity,
	allocations []Allocation,
) (int, error) {
	now := w.now().UTC()
	rows := make([]*entity.Distribution, 0, len(allocations))
	for _, a := range allocations {
		rows = append(rows, &entity.Distribution{
			ID:                  uuid.New().String(),
			CompanyID:           companyID,
			ProductID:           a.ProductID,
			Worker:              worker,
			Quantity:            a.Quantity,
			DistributedByUserID: userID,
			DistributedAt:       now,
		})
	}

	err := w.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		distRepo repository.DistributionRepository,
		_ repository.ProductRepository,
	) error {
		if w.strictLocking {
			order, _ := groupByProduct(allocations)
			if err := ledgerRepo.LockProducts(ctx, companyID, order); err != nil {
				return err
			}
			if err := validateWith(ctx, ledgerRepo, companyID, allocations); err != nil {
				return err
			}
		}
		return distRepo.CreateBatch(ctx, rows)
	})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}
