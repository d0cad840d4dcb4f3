package http

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartstock-api/internal/application/dto"
	"github.com/jhoicas/smartstock-api/internal/application/payroll"
	"github.com/jhoicas/smartstock-api/internal/domain"
)

func TestMapError_Taxonomia(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validación", domain.NewValidationError("cantidad requerida"), fiber.StatusBadRequest, CodeInvalidInput},
		{"entrada envuelta", fmt.Errorf("x: %w", domain.ErrInvalidInput), fiber.StatusBadRequest, CodeInvalidInput},
		{"no encontrado", fmt.Errorf("pedido 9: %w", domain.ErrNotFound), fiber.StatusNotFound, CodeNotFound},
		{"estado", &domain.StateError{Entity: "pedido", Current: "rechazado", Expected: []string{"pendiente"}}, fiber.StatusBadRequest, CodeInvalidState},
		{"regla", &domain.RuleViolationError{Reason: "Contrato con uso bajo"}, fiber.StatusBadRequest, CodeBusinessRule},
		{"stock", &domain.StockError{Available: 3, Requested: 5}, fiber.StatusBadRequest, CodeInsufficientStock},
		{"cupo", &domain.QuotaError{Max: 100, Issued: 95, Requested: 10}, fiber.StatusBadRequest, CodeQuotaExceeded},
		{"conflicto", fmt.Errorf("insert: %w", domain.ErrConflict), fiber.StatusConflict, CodeConflict},
		{"credenciales", domain.ErrUnauthorized, fiber.StatusUnauthorized, CodeUnauthorized},
		{"inactivo", domain.ErrForbidden, fiber.StatusForbidden, CodeForbidden},
		{"desconocido", errors.New("conexión rechazada"), fiber.StatusInternalServerError, CodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := mapError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestMapError_DetalleDeStockYRazon(t *testing.T) {
	_, body := mapError(fmt.Errorf("reservar: %w", &domain.StockError{Available: 3, Requested: 5}))
	detail, ok := body.Detail.(fiber.Map)
	require.True(t, ok)
	assert.Equal(t, 2, detail["faltante"])

	_, body = mapError(&domain.RuleViolationError{Reason: "Contrato vencido"})
	assert.Equal(t, "Contrato vencido", body.Reason)
}

func TestMapError_InternoNoFiltraDetalle(t *testing.T) {
	_, body := mapError(errors.New("pq: password authentication failed"))
	assert.NotContains(t, body.Message, "password")
}

func TestMapError_UmbralNomina(t *testing.T) {
	rej := &payroll.ThresholdRejection{
		ThresholdError: &domain.ThresholdError{Requested: 100, Minimum: 90, Valid: 89},
		ValidationID:   5,
		CompliancePct:  decimal.RequireFromString("89"),
	}
	status, body := mapError(rej)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, CodeThreshold, body.Code)
	detail, ok := body.Detail.(dto.ThresholdDetail)
	require.True(t, ok)
	assert.Equal(t, 1, detail.Missing)
	assert.Equal(t, int64(5), detail.ValidationID)
}
