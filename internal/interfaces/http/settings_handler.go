package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/settings"
)

// SettingsHandler ajustes del tenant y de la cuenta.
type SettingsHandler struct {
	uc *settings.SettingsUseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *settings.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// Get godoc
// @Summary      Ver ajustes
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SettingsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetScope(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// UpdateTenant godoc
// @Summary      Renombrar organización
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateTenantRequest  true  "name"
// @Success      200   {object}  dto.TenantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/settings/tenant [put]
func (h *SettingsHandler) UpdateTenant(c *fiber.Ctx) error {
	var in dto.UpdateTenantRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateTenantName(c.UserContext(), GetScope(c), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// UpdatePassword godoc
// @Summary      Cambiar contraseña
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdatePasswordRequest  true  "currentPassword, newPassword"
// @Success      200   {object}  dto.OKResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings/password [put]
func (h *SettingsHandler) UpdatePassword(c *fiber.Ctx) error {
	var in dto.UpdatePasswordRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	if err := h.uc.UpdatePassword(c.UserContext(), GetScope(c), in); err != nil {
		return err
	}
	return c.JSON(dto.OKResponse{OK: true})
}
