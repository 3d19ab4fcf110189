package http

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/backoffice-api/internal/domain"
)

func TestToErrorResponse(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"stock insuficiente envuelto", fmt.Errorf("venta: %w", domain.ErrInsufficientStock), fiber.StatusBadRequest, "INSUFFICIENT_STOCK"},
		{"producto", domain.ErrProductNotFound, fiber.StatusNotFound, "PRODUCT_NOT_FOUND"},
		{"cuenta por cobrar", domain.ErrReceivableNotFound, fiber.StatusNotFound, "RECEIVABLE_NOT_FOUND"},
		{"usuario cae en genérico", domain.ErrUserNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{"email duplicado", domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
		{"producto en uso", domain.ErrProductInUse, fiber.StatusConflict, "PRODUCT_IN_USE"},
		{"token", domain.ErrInvalidToken, fiber.StatusBadRequest, "INVALID_OR_EXPIRED_TOKEN"},
		{"contraseña actual", domain.ErrInvalidCurrentPassword, fiber.StatusBadRequest, "INVALID_CURRENT_PASSWORD"},
		{"no autorizado", domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{"prohibido", domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
		{"cuerpo inválido", errInvalidBody, fiber.StatusBadRequest, "INVALID_BODY"},
		{"ruta inexistente", fiber.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{"método", fiber.ErrMethodNotAllowed, fiber.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"desconocido", errors.New("pgx: conexión perdida"), fiber.StatusInternalServerError, "INTERNAL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := toErrorResponse(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestToErrorResponse_ValidacionConCampos(t *testing.T) {
	err := fmt.Errorf("crear venta: %w", domain.NewValidationError("dueDate", "es requerido"))

	status, body := toErrorResponse(err)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Equal(t, map[string]string{"dueDate": "es requerido"}, body.Fields)
}

func TestToErrorResponse_NoFiltraDetallesInternos(t *testing.T) {
	_, body := toErrorResponse(errors.New("dial tcp 10.0.0.3:5432: connection refused"))
	assert.NotContains(t, body.Message, "10.0.0.3")
}
