package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/receivables"
)

// ReceivableHandler maneja las cuentas por cobrar.
type ReceivableHandler struct {
	uc *receivables.ReceivableUseCase
}

// NewReceivableHandler construye el handler.
func NewReceivableHandler(uc *receivables.ReceivableUseCase) *ReceivableHandler {
	return &ReceivableHandler{uc: uc}
}

// List godoc
// @Summary      Listar cuentas por cobrar
// @Tags         receivables
// @Security     Bearer
// @Produce      json
// @Param        filter     query  string  false  "all | overdue | upcoming | paid"  default(all)
// @Param        daysAhead  query  int     false  "Ventana de próximas (1..60)"      default(7)
// @Success      200        {object}  dto.ReceivableListResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/receivables [get]
func (h *ReceivableHandler) List(c *fiber.Ctx) error {
	var q dto.ReceivableQuery
	if err := c.QueryParser(&q); err != nil {
		return errInvalidBody
	}
	out, err := h.uc.List(c.UserContext(), GetScope(c), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// MarkPaid godoc
// @Summary      Marcar cuenta como pagada
// @Description  Idempotente: una cuenta ya pagada se devuelve sin cambios.
// @Tags         receivables
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cuenta por cobrar"
// @Success      200  {object}  dto.ReceivableResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receivables/{id}/pay [post]
func (h *ReceivableHandler) MarkPaid(c *fiber.Ctx) error {
	out, err := h.uc.MarkPaid(c.UserContext(), GetScope(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
