package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Distribucion-api/internal/application/dto"
)

// dashboardService lo implementa *analytics.DashboardUseCase.
type dashboardService interface {
	GetSummary(ctx context.Context, companyID string) (*dto.DashboardStatsDTO, error)
}

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc      dashboardService
	reports reportService
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc dashboardService, reports reportService) *DashboardHandler {
	return &DashboardHandler{uc: uc, reports: reports}
}

// Stats devuelve los totales de stock y de distribución del día y del mes en curso.
// GET /api/dashboard/stats
//
// Las cifras son de toda la empresa, sin importar el rol. Días y meses en UTC.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	companyID, _, ok := requireTenant(c)
	if !ok {
		return nil
	}
	summary, err := h.uc.GetSummary(c.UserContext(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// Recent últimas 10 distribuciones visibles para quien consulta.
// GET /api/dashboard/recent
func (h *DashboardHandler) Recent(c *fiber.Ctx) error {
	scope, ok := scopeFrom(c)
	if !ok {
		return nil
	}
	out, err := h.reports.Recent(c.UserContext(), scope)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
