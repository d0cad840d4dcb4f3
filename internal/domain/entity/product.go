package entity

import "time"

// Niveles de alerta de stock calculados por la vista v_alertas_stock.
const (
	StockLevelCritical = "CRITICO"
	StockLevelLow      = "BAJO"
)

// Product representa un producto (tipo de tarjeta) con su stock físico.
// StockCurrent nunca puede quedar negativo.
type Product struct {
	ID           int64
	Name         string
	StockCurrent int
	StockMin     int
	StockMax     int
	UpdatedAt    time.Time
}

// StockAlert fila de la vista de alertas de stock.
type StockAlert struct {
	ProductID    int64
	ProductName  string
	StockCurrent int
	StockMin     int
	Level        string // CRITICO, BAJO
}
