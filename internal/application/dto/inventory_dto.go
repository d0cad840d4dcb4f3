package dto

import "time"

// InventoryStateResponse estado de inventario de un producto.
type InventoryStateResponse struct {
	ProductID   int64     `json:"producto_id"`
	ProductName string    `json:"producto_nombre,omitempty"`
	Available   int       `json:"stock_disponible"`
	InTransit   int       `json:"stock_en_transito"`
	Received    int       `json:"stock_recibido_cliente"`
	Total       int       `json:"stock_total"`
	UpdatedAt   time.Time `json:"ultima_actualizacion"`
}

// InventorySummaryResponse totales agregados de inventario.
type InventorySummaryResponse struct {
	Available int `json:"total_disponible"`
	InTransit int `json:"total_en_transito"`
	Received  int `json:"total_recibido"`
	Total     int `json:"total_general"`
	Products  int `json:"total_productos"`
}

// StockMovementResponse entrada del historial de stock.
type StockMovementResponse struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"producto_id"`
	ProductName string    `json:"producto_nombre,omitempty"`
	Before      int       `json:"cantidad_anterior"`
	After       int       `json:"cantidad_nueva"`
	Reason      string    `json:"razon"`
	UserID      *int64    `json:"usuario_id,omitempty"`
	CreatedAt   time.Time `json:"fecha"`
}
