package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Distribucion-api/internal/application/analytics"
	"github.com/jhoicas/Distribucion-api/internal/application/dto"
)

// reportService lo implementa *analytics.ReportUseCase.
type reportService interface {
	Distributions(ctx context.Context, scope analytics.Scope, f dto.ReportFilter) ([]dto.DistributionResponse, error)
	Recent(ctx context.Context, scope analytics.Scope) ([]dto.DistributionResponse, error)
	ProductAnalytics(ctx context.Context, scope analytics.Scope, f dto.ReportFilter) ([]dto.ProductAnalyticsDTO, error)
	WorkerAnalytics(ctx context.Context, scope analytics.Scope, f dto.ReportFilter) ([]dto.WorkerAnalyticsDTO, error)
}

// ReportHandler reportes filtrables del historial.
// Filtros por query string: start_date, end_date (YYYY-MM-DD), worker, product, category.
type ReportHandler struct {
	uc reportService
}

// NewReportHandler construye el handler.
func NewReportHandler(uc reportService) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Distributions godoc
// @Summary      Reporte de distribuciones
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Param        worker      query  string  false  "Nombre exacto del trabajador"
// @Param        product     query  string  false  "Nombre exacto del producto"
// @Param        category    query  string  false  "Categoría"
// @Success      200  {array}  dto.DistributionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/distributions [get]
func (h *ReportHandler) Distributions(c *fiber.Ctx) error {
	scope, f, ok := reportParams(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Distributions(c.UserContext(), scope, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ProductAnalytics godoc
// @Summary      Totales por producto
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductAnalyticsDTO
// @Router       /api/reports/product-analytics [get]
func (h *ReportHandler) ProductAnalytics(c *fiber.Ctx) error {
	scope, f, ok := reportParams(c)
	if !ok {
		return nil
	}
	out, err := h.uc.ProductAnalytics(c.UserContext(), scope, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// WorkerAnalytics godoc
// @Summary      Totales por trabajador
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.WorkerAnalyticsDTO
// @Router       /api/reports/worker-analytics [get]
func (h *ReportHandler) WorkerAnalytics(c *fiber.Ctx) error {
	scope, f, ok := reportParams(c)
	if !ok {
		return nil
	}
	out, err := h.uc.WorkerAnalytics(c.UserContext(), scope, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func reportParams(c *fiber.Ctx) (analytics.Scope, dto.ReportFilter, bool) {
	scope, ok := scopeFrom(c)
	if !ok {
		return analytics.Scope{}, dto.ReportFilter{}, false
	}
	var f dto.ReportFilter
	if err := c.QueryParser(&f); err != nil {
		_ = writeError(c, errInvalidBody)
		return analytics.Scope{}, dto.ReportFilter{}, false
	}
	return scope, f, true
}
