package entity

import (
	"github.com/shopspring/decimal"
)

// ContractStatusActive único estado de contrato que admite pedidos.
const ContractStatusActive = "vigente"

// Niveles de salud de contrato (v_salud_contratos).
const (
	HealthCritical   = "Critico"
	HealthAtRisk     = "En Riesgo"
	HealthAcceptable = "Aceptable"
	HealthOptimal    = "Optimo"
)

// Contract vincula un cliente con un producto y una cuota de tarjetas.
// Invariantes: Issued <= Max; Inactive = Issued - Active.
type Contract struct {
	ID         int64
	CustomerID int64
	ProductID  int64
	MaxCards   int
	Issued     int
	Active     int
	Inactive   int
	Status     string

	// Datos de lectura (JOIN); vacíos en operaciones de escritura.
	CustomerName string
	ProductName  string
}

// IsActive indica si el contrato está vigente.
func (c *Contract) IsActive() bool { return c.Status == ContractStatusActive }

// OrderVerdict resultado de la función validar_pedido.
type OrderVerdict struct {
	Approved bool
	Reason   string
}

// ContractHealth fila de la vista v_salud_contratos.
type ContractHealth struct {
	ContractID   int64
	CustomerID   int64
	CustomerName string
	ProductName  string
	MaxCards     int
	Issued       int
	Active       int
	Inactive     int
	UsagePct     decimal.Decimal
	HealthLevel  string
}

// ContractSummary resumen estadístico de contratos vigentes.
type ContractSummary struct {
	Total       int
	Critical    int
	AtRisk      int
	Acceptable  int
	Optimal     int
	AvgUsagePct decimal.Decimal
	TotalMax    int
	TotalIssued int
	TotalActive int
}

// AvailableProduct producto que un cliente puede pedir con su cupo restante.
type AvailableProduct struct {
	ContractID   int64
	ProductID    int64
	ProductName  string
	StockCurrent int
	MaxCards     int
	Issued       int
	Remaining    int
}
