package dto

import "time"

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"nombre"`
	StockCurrent int       `json:"stock_actual"`
	StockMin     int       `json:"stock_minimo"`
	StockMax     int       `json:"stock_maximo"`
	UpdatedAt    time.Time `json:"ultima_actualizacion"`
}

// StockAlertResponse fila de alertas de stock (CRITICO / BAJO).
type StockAlertResponse struct {
	ProductID    int64  `json:"producto_id"`
	ProductName  string `json:"nombre"`
	StockCurrent int    `json:"stock_actual"`
	StockMin     int    `json:"stock_minimo"`
	Level        string `json:"estado_stock"`
}

// AdjustStockRequest body para PUT /api/productos/:id/stock. Cantidad es un delta (puede ser negativo).
type AdjustStockRequest struct {
	Quantity int    `json:"cantidad"`
	Reason   string `json:"razon"`
	UserID   *int64 `json:"usuario_id"`
}

// AdjustStockResponse stock antes y después del ajuste.
type AdjustStockResponse struct {
	Message     string `json:"mensaje"`
	StockBefore int    `json:"stock_anterior"`
	StockAfter  int    `json:"stock_nuevo"`
}
