package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

// errInvalidBody cuerpo que no se pudo decodificar.
var errInvalidBody = errors.New("cuerpo inválido")

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// errorMappings va de lo específico a lo general: el primer errors.Is que coincide gana.
var errorMappings = []errorMapping{
	{domain.ErrInsufficientStock, fiber.StatusBadRequest, "INSUFFICIENT_STOCK", "stock insuficiente"},
	{domain.ErrProductNotFound, fiber.StatusNotFound, "PRODUCT_NOT_FOUND", "producto no encontrado"},
	{domain.ErrReceivableNotFound, fiber.StatusNotFound, "RECEIVABLE_NOT_FOUND", "cuenta por cobrar no encontrada"},
	{domain.ErrCustomerNotFound, fiber.StatusNotFound, "CUSTOMER_NOT_FOUND", "cliente no encontrado"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas o sesión ausente"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "acceso denegado"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS", "el email ya está registrado"},
	{domain.ErrProductInUse, fiber.StatusConflict, "PRODUCT_IN_USE", "el producto tiene ventas asociadas"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT", "conflicto con el estado actual"},
	{domain.ErrInvalidToken, fiber.StatusBadRequest, "INVALID_OR_EXPIRED_TOKEN", "token inválido o expirado"},
	{domain.ErrInvalidCurrentPassword, fiber.StatusBadRequest, "INVALID_CURRENT_PASSWORD", "la contraseña actual no es correcta"},
	{errInvalidBody, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", "entrada inválida"},
}

// ErrorHandler traduce los errores que devuelven los handlers a {code, message, fields}.
// Los 5xx se registran con el error real; el cliente solo recibe un mensaje genérico.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body := toErrorResponse(err)
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("tenant_id", GetTenantID(c)).
				Msg("error interno")
		}
		return c.Status(status).JSON(body)
	}
}

func toErrorResponse(err error) (int, dto.ErrorResponse) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: "entrada inválida", Fields: ve.Fields}
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, dto.ErrorResponse{Code: m.code, Message: m.message}
		}
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "INTERNAL"
		switch fe.Code {
		case fiber.StatusNotFound:
			code = "NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
			code = "INVALID_BODY"
		case fiber.StatusRequestEntityTooLarge:
			code = "PAYLOAD_TOO_LARGE"
		}
		if fe.Code < fiber.StatusInternalServerError {
			return fe.Code, dto.ErrorResponse{Code: code, Message: fe.Message}
		}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"}
}

// parseBody decodifica el JSON del cuerpo en dst.
func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return errInvalidBody
	}
	return nil
}
