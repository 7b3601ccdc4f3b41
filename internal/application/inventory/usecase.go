package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jhoicas/Distribucion-api/internal/domain"
	"github.com/jhoicas/Distribucion-api/internal/domain/entity"
	"github.com/jhoicas/Distribucion-api/internal/domain/repository"
	"github.com/jhoicas/Distribucion-api/pkg/logger"
)

// previousWorkersLimit máximo de identidades sugeridas al abrir el asistente.
const previousWorkersLimit = 20

// DistributionUseCase registra la entrega de productos a un trabajador:
// validación de entrada, validación de stock, escritura transaccional y métricas.
type DistributionUseCase struct {
	validator      *StockValidator
	writer         *DistributionWriter
	distRepo       repository.DistributionRepository
	idempotency    IdempotencyStore
	idempotencyTTL time.Duration
	metrics        MetricsRecorder
	log            *logger.Logger
}

// Option configura dependencias opcionales del caso de uso.
type Option func(*DistributionUseCase)

// WithIdempotency habilita Idempotency-Key con el almacén y TTL dados.
func WithIdempotency(store IdempotencyStore, ttl time.Duration) Option {
	return func(uc *DistributionUseCase) {
		uc.idempotency = store
		uc.idempotencyTTL = ttl
	}
}

// WithMetrics registra eventos en el recorder dado.
func WithMetrics(m MetricsRecorder) Option {
	return func(uc *DistributionUseCase) { uc.metrics = m }
}

// WithLogger reemplaza el logger (por defecto descarta todo).
func WithLogger(l *logger.Logger) Option {
	return func(uc *DistributionUseCase) { uc.log = l }
}

// NewDistributionUseCase construye el caso de uso.
func NewDistributionUseCase(
	validator *StockValidator,
	writer *DistributionWriter,
	distRepo repository.DistributionRepository,
	opts ...Option,
) *DistributionUseCase {
	uc := &DistributionUseCase{
		validator: validator,
		writer:    writer,
		distRepo:  distRepo,
		metrics:   nopMetrics{},
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// SubmitInput envío de un trabajador con sus asignaciones.
type SubmitInput struct {
	CompanyID      string
	UserID         string
	Worker         entity.WorkerIdentity
	Allocations    []Allocation
	IdempotencyKey string // opcional
}

// SubmitResult resultado de un envío aceptado.
type SubmitResult struct {
	Count int
}

// Submit valida y registra el envío. Errores posibles:
//   - domain.ErrInvalidInput: entrada mal formada (no toca la BD)
//   - domain.ErrNotFound: algún producto no existe en la empresa
//   - *domain.InsufficientStockError: cantidad pedida mayor a lo disponible
//   - domain.ErrDuplicateSubmission: la llave de idempotencia ya se usó
func (uc *DistributionUseCase) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	if err := validateSubmit(in); err != nil {
		uc.metrics.Submission(OutcomeInvalid)
		return nil, err
	}

	var idemKey string
	if in.IdempotencyKey != "" && uc.idempotency != nil {
		idemKey = "distribution:" + in.CompanyID + ":" + in.IdempotencyKey
		claimed, err := uc.idempotency.Claim(ctx, idemKey, uc.idempotencyTTL)
		if err != nil {
			uc.metrics.Submission(OutcomeError)
			return nil, err
		}
		if !claimed {
			uc.metrics.Submission(OutcomeDuplicate)
			uc.log.Warn().Str("company_id", in.CompanyID).Str("idempotency_key", in.IdempotencyKey).
				Msg("envío duplicado rechazado")
			return nil, domain.ErrDuplicateSubmission
		}
	}

	count, err := uc.submit(ctx, in)
	if err != nil {
		if idemKey != "" {
			if relErr := uc.idempotency.Release(ctx, idemKey); relErr != nil {
				uc.log.Error().Err(relErr).Str("key", idemKey).Msg("no se pudo liberar la llave de idempotencia")
			}
		}
		return nil, err
	}
	return &SubmitResult{Count: count}, nil
}

func (uc *DistributionUseCase) submit(ctx context.Context, in SubmitInput) (int, error) {
	if err := uc.validator.Validate(ctx, in.CompanyID, in.Allocations); err != nil {
		uc.recordFailure(in, err)
		return 0, err
	}
	count, err := uc.writer.RecordDistribution(ctx, in.CompanyID, in.UserID, in.Worker, in.Allocations)
	if err != nil {
		uc.recordFailure(in, err)
		return 0, err
	}

	var units int64
	for _, a := range in.Allocations {
		units += a.Quantity
	}
	uc.metrics.DistributionRecorded(count, units)
	uc.metrics.Submission(OutcomeOK)
	uc.log.Info().Str("company_id", in.CompanyID).Str("worker", in.Worker.Name).
		Int("rows", count).Int64("units", units).Msg("distribución registrada")
	return count, nil
}

func (uc *DistributionUseCase) recordFailure(in SubmitInput, err error) {
	var stockErr *domain.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		uc.metrics.StockRejected()
		uc.metrics.Submission(OutcomeInsufficientStock)
		uc.log.Warn().Str("company_id", in.CompanyID).Str("product_id", stockErr.ProductID).
			Int64("available", stockErr.Available).Int64("requested", stockErr.Requested).
			Msg("stock insuficiente")
	case errors.Is(err, domain.ErrNotFound):
		uc.metrics.Submission(OutcomeInvalid)
		uc.log.Warn().Str("company_id", in.CompanyID).Msg("producto inexistente en el envío")
	default:
		uc.metrics.Submission(OutcomeError)
		uc.log.Error().Err(err).Str("company_id", in.CompanyID).Msg("falló el registro de la distribución")
	}
}

// PreviousWorkers identidades usadas antes en la empresa, la más reciente primero (máximo 20).
func (uc *DistributionUseCase) PreviousWorkers(ctx context.Context, companyID string) ([]entity.WorkerIdentity, error) {
	workers, err := uc.distRepo.PreviousWorkers(ctx, companyID, previousWorkersLimit)
	if err != nil {
		return nil, err
	}
	if workers == nil {
		workers = []entity.WorkerIdentity{}
	}
	return workers, nil
}

func validateSubmit(in SubmitInput) error {
	if in.CompanyID == "" || in.UserID == "" {
		return domain.ErrUnauthorized
	}
	if strings.TrimSpace(in.Worker.Name) == "" {
		return domain.Invalid("el nombre del trabajador es obligatorio")
	}
	if len(in.Allocations) == 0 {
		return domain.Invalid("se requiere al menos un producto")
	}
	for i, a := range in.Allocations {
		if a.ProductID == "" {
			return domain.Invalid("products[%d]: product_id es obligatorio", i)
		}
		if a.Quantity <= 0 {
			return domain.Invalid("products[%d]: la cantidad debe ser positiva", i)
		}
	}
	return nil
}
