package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Distribucion-api/internal/application/analytics"
	"github.com/jhoicas/Distribucion-api/internal/application/dto"
	"github.com/jhoicas/Distribucion-api/internal/application/inventory"
	"github.com/jhoicas/Distribucion-api/internal/domain/entity"
)

// HeaderIdempotencyKey header opcional que evita registrar dos veces el mismo envío.
const HeaderIdempotencyKey = "Idempotency-Key"

// distributionService lo implementa *inventory.DistributionUseCase.
type distributionService interface {
	SubmitFromRequest(ctx context.Context, companyID, userID, idempotencyKey string, in dto.CreateDistributionRequest) (*inventory.SubmitResult, error)
	PreviousWorkers(ctx context.Context, companyID string) ([]entity.WorkerIdentity, error)
}

// DistributionHandler registro y listado de entregas a trabajadores.
type DistributionHandler struct {
	uc      distributionService
	reports reportService
}

// NewDistributionHandler construye el handler. reports sirve el listado con visibilidad por rol.
func NewDistributionHandler(uc distributionService, reports reportService) *DistributionHandler {
	return &DistributionHandler{uc: uc, reports: reports}
}

// Create godoc
// @Summary      Registrar la entrega a un trabajador
// @Description  Valida el stock de cada producto antes de escribir. Todas las filas del trabajador se escriben en una transacción.
// @Tags         distributions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string  false  "Llave para reintentos seguros"
// @Param        body  body  dto.CreateDistributionRequest  true  "Trabajador y cantidades"
// @Success      201   {object}  dto.CountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Router       /api/distributions [post]
func (h *DistributionHandler) Create(c *fiber.Ctx) error {
	companyID, userID, ok := requireTenant(c)
	if !ok {
		return nil
	}
	var in dto.CreateDistributionRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	key := strings.TrimSpace(c.Get(HeaderIdempotencyKey))
	out, err := h.uc.SubmitFromRequest(c.UserContext(), companyID, userID, key, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CountResponse{Success: true, Count: out.Count})
}

// Workers godoc
// @Summary      Trabajadores de envíos anteriores (máx. 20)
// @Tags         distributions
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.WorkerResponse
// @Router       /api/distributions/workers [get]
func (h *DistributionHandler) Workers(c *fiber.Ctx) error {
	companyID, _, ok := requireTenant(c)
	if !ok {
		return nil
	}
	workers, err := h.uc.PreviousWorkers(c.UserContext(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inventory.ToWorkerResponses(workers))
}

// List godoc
// @Summary      Historial de distribuciones (un worker solo ve las suyas)
// @Tags         distributions
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DistributionResponse
// @Router       /api/distributions [get]
func (h *DistributionHandler) List(c *fiber.Ctx) error {
	scope, ok := scopeFrom(c)
	if !ok {
		return nil
	}
	out, err := h.reports.Distributions(c.UserContext(), scope, dto.ReportFilter{})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func scopeFrom(c *fiber.Ctx) (analytics.Scope, bool) {
	companyID, userID, ok := requireTenant(c)
	if !ok {
		return analytics.Scope{}, false
	}
	return analytics.Scope{CompanyID: companyID, UserID: userID, Role: GetRole(c)}, true
}
