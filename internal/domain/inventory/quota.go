package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/smartstock-api/internal/domain"
	"github.com/jhoicas/smartstock-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// UtilizationPct porcentaje de uso del contrato: activas / emitidas × 100, redondeado a 2 decimales.
// Sin tarjetas emitidas el porcentaje es 0.
func UtilizationPct(active, issued int) decimal.Decimal {
	if issued <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(active)).Mul(hundred).Div(decimal.NewFromInt(int64(issued))).Round(2)
}

// CheckStock valida que el stock actual cubra la cantidad solicitada.
func CheckStock(available, requested int) error {
	if available < requested {
		return &domain.StockError{Available: available, Requested: requested}
	}
	return nil
}

// CheckQuota valida que emitidas + solicitadas no supere tarjetas_maximas.
func CheckQuota(c *entity.Contract, requested int) error {
	if c.Issued+requested > c.MaxCards {
		return &domain.QuotaError{Max: c.MaxCards, Issued: c.Issued, Requested: requested}
	}
	return nil
}

// RosterMinimum registros válidos mínimos para una solicitud: ceil(solicitadas × 0.90).
func RosterMinimum(requested int) int {
	if requested <= 0 {
		return 0
	}
	return (requested*9 + 9) / 10
}

// DeadStockPriority prioridad de una alerta de stock muerto según el porcentaje de uso.
func DeadStockPriority(usagePct decimal.Decimal) string {
	switch {
	case usagePct.LessThan(decimal.NewFromInt(30)):
		return entity.AlertPriorityCritical
	case usagePct.LessThan(decimal.NewFromInt(50)):
		return entity.AlertPriorityHigh
	default:
		return entity.AlertPriorityMedium
	}
}

// DeadStockThreshold uso por debajo del cual un contrato genera alerta de stock muerto.
var DeadStockThreshold = decimal.NewFromInt(70)
