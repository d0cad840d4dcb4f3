package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidState      = errors.New("estado inválido para la operación")
	ErrBusinessRule      = errors.New("regla de negocio no cumplida")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrQuotaExceeded     = errors.New("excede el límite del contrato")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrUnauthorized      = errors.New("credenciales inválidas")
	ErrForbidden         = errors.New("acceso denegado")
)

// StockError detalla un faltante de stock. Cumple errors.Is(err, ErrInsufficientStock).
type StockError struct {
	Available int
	Requested int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %d, solicitado %d", e.Available, e.Requested)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }

// Shortfall unidades que faltan para cubrir la solicitud.
func (e *StockError) Shortfall() int { return e.Requested - e.Available }

// QuotaError detalla el exceso sobre tarjetas_maximas del contrato.
type QuotaError struct {
	Max       int
	Issued    int
	Requested int
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("excede el límite del contrato: máximas %d, emitidas %d, solicitadas %d", e.Max, e.Issued, e.Requested)
}

func (e *QuotaError) Unwrap() error { return ErrQuotaExceeded }

// Remaining tarjetas que aún se pueden emitir.
func (e *QuotaError) Remaining() int { return e.Max - e.Issued }

// RuleViolationError rechazo de validar_pedido u otra regla con razón legible.
type RuleViolationError struct {
	Reason string
}

func (e *RuleViolationError) Error() string { return "pedido no aprobado: " + e.Reason }

func (e *RuleViolationError) Unwrap() error { return ErrBusinessRule }

// StateError la entidad no está en un estado que permita la transición.
type StateError struct {
	Entity   string
	Current  string
	Expected []string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s en estado %q; se requiere %s", e.Entity, e.Current, strings.Join(e.Expected, " o "))
}

func (e *StateError) Unwrap() error { return ErrInvalidState }

// ValidationError agrupa errores de validación de campos.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string { return strings.Join(e.Errors, "; ") }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError construye un ValidationError con uno o más mensajes.
func NewValidationError(msgs ...string) *ValidationError {
	return &ValidationError{Errors: msgs}
}

// ThresholdError el archivo de nómina no alcanza el mínimo de registros válidos.
type ThresholdError struct {
	Requested int
	Minimum   int
	Valid     int
}

func (e *ThresholdError) Error() string {
	return fmt.Sprintf("se requieren al menos %d registros válidos (90%% de %d); el archivo tiene %d", e.Minimum, e.Requested, e.Valid)
}

func (e *ThresholdError) Unwrap() error { return ErrBusinessRule }
