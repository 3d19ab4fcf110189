package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// Variantes específicas. Todas siguen respondiendo a errors.Is con su categoría.
var (
	ErrProductNotFound    = fmt.Errorf("producto: %w", ErrNotFound)
	ErrCustomerNotFound   = fmt.Errorf("cliente: %w", ErrNotFound)
	ErrReceivableNotFound = fmt.Errorf("cuenta por cobrar: %w", ErrNotFound)
	ErrUserNotFound       = fmt.Errorf("usuario: %w", ErrNotFound)
	ErrMembershipNotFound = fmt.Errorf("membresía: %w", ErrNotFound)

	ErrEmailAlreadyExists = fmt.Errorf("el email ya está registrado: %w", ErrConflict)
	ErrProductInUse       = fmt.Errorf("el producto tiene ventas asociadas: %w", ErrConflict)

	ErrInvalidToken           = fmt.Errorf("token inválido o expirado: %w", ErrInvalidInput)
	ErrInvalidCurrentPassword = fmt.Errorf("contraseña actual incorrecta: %w", ErrInvalidInput)
)

// ValidationError detalla qué campos de la entrada no cumplen sus restricciones.
// Las claves son los nombres JSON de los campos.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError construye un error con un único campo.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidInput.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrInvalidInput.Error() + " (" + strings.Join(parts, "; ") + ")"
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
