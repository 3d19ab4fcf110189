package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/inventory"
)

// InventoryHandler maneja el libro de movimientos y la exportación del inventario.
type InventoryHandler struct {
	movements *inventory.MovementUseCase
	export    *inventory.ExportUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(movements *inventory.MovementUseCase, export *inventory.ExportUseCase) *InventoryHandler {
	return &InventoryHandler{movements: movements, export: export}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  IN y OUT requieren quantity > 0; ADJUST requiere targetStock >= 0.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMovementRequest  true  "productId, type, quantity | targetStock, reason"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.StockMovementRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.movements.RegisterMovement(c.UserContext(), GetScope(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RecentMovements godoc
// @Summary      Últimos movimientos de stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockMovementResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) RecentMovements(c *fiber.Ctx) error {
	out, err := h.movements.RecentMovements(c.UserContext(), GetScope(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar inventario a XLSX
// @Tags         inventory
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/inventory/export [get]
func (h *InventoryHandler) Export(c *fiber.Ctx) error {
	file, err := h.export.Export(c.UserContext(), GetScope(c))
	if err != nil {
		return err
	}
	c.Attachment(file.Name)
	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.Send(file.Data)
}
