package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/backoffice-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del tablero.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve KPIs del mes, gráficos y alertas.
// GET /api/dashboard/summary
//
// No requiere parámetros; las fechas se calculan en el servidor.
//
// @Summary      Resumen del tablero
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.UserContext(), GetScope(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
