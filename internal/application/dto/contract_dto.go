package dto

import "github.com/shopspring/decimal"

// ContractResponse contrato con nombres de cliente y producto.
type ContractResponse struct {
	ID           int64  `json:"id"`
	CustomerID   int64  `json:"cliente_id"`
	ProductID    int64  `json:"producto_id"`
	MaxCards     int    `json:"tarjetas_maximas"`
	Issued       int    `json:"tarjetas_emitidas"`
	Active       int    `json:"tarjetas_activas"`
	Inactive     int    `json:"tarjetas_inactivas"`
	Status       string `json:"estado"`
	CustomerName string `json:"cliente_nombre,omitempty"`
	ProductName  string `json:"producto_nombre,omitempty"`
}

// ContractHealthResponse fila de salud de contrato.
type ContractHealthResponse struct {
	ContractID   int64           `json:"contrato_id"`
	CustomerID   int64           `json:"cliente_id"`
	CustomerName string          `json:"cliente"`
	ProductName  string          `json:"producto"`
	MaxCards     int             `json:"tarjetas_permitidas"`
	Issued       int             `json:"tarjetas_emitidas"`
	Active       int             `json:"tarjetas_activas"`
	Inactive     int             `json:"tarjetas_inactivas"`
	UsagePct     decimal.Decimal `json:"porcentaje_uso"`
	HealthLevel  string          `json:"nivel_salud"`
}

// ContractSummaryResponse resumen estadístico de contratos vigentes.
type ContractSummaryResponse struct {
	Total       int             `json:"total_contratos"`
	Critical    int             `json:"criticos"`
	AtRisk      int             `json:"en_riesgo"`
	Acceptable  int             `json:"aceptables"`
	Optimal     int             `json:"optimos"`
	AvgUsagePct decimal.Decimal `json:"promedio_uso"`
	TotalMax    int             `json:"total_tarjetas_permitidas"`
	TotalIssued int             `json:"total_tarjetas_emitidas"`
	TotalActive int             `json:"total_tarjetas_activas"`
}

// AvailableProductResponse producto que el cliente puede pedir.
type AvailableProductResponse struct {
	ContractID   int64  `json:"contrato_id"`
	ProductID    int64  `json:"id"`
	ProductName  string `json:"nombre"`
	StockCurrent int    `json:"stock_actual"`
	MaxCards     int    `json:"tarjetas_maximas"`
	Issued       int    `json:"tarjetas_emitidas"`
	Remaining    int    `json:"tarjetas_restantes"`
}
