package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Distribucion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que las filas de un trabajador se escriben todas o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ledgerRepo repository.LedgerRepository,
		distRepo repository.DistributionRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// IdempotencyStore reserva llaves Idempotency-Key por un tiempo limitado.
type IdempotencyStore interface {
	// Claim devuelve false si la llave ya estaba reservada.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release libera la llave para que el cliente pueda reintentar.
	Release(ctx context.Context, key string) error
}

// Resultados posibles de un envío, usados como etiqueta de métricas.
const (
	OutcomeOK                = "ok"
	OutcomeInvalid           = "invalid"
	OutcomeInsufficientStock = "insufficient_stock"
	OutcomeDuplicate         = "duplicate"
	OutcomeError             = "error"
)

// MetricsRecorder recibe los eventos del flujo de distribución.
type MetricsRecorder interface {
	DistributionRecorded(rows int, units int64)
	StockRejected()
	Submission(outcome string)
}

type nopMetrics struct{}

func (nopMetrics) DistributionRecorded(int, int64) {}
func (nopMetrics) StockRejected()                  {}
func (nopMetrics) Submission(string)               {}
