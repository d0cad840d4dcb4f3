package dto

import "time"

// CreateShipmentRequest body para POST /api/envios.
type CreateShipmentRequest struct {
	OrderID   int64  `json:"pedido_id"`
	CourierID *int64 `json:"repartidor_id"`
}

// UpdateLocationRequest body para PUT /api/envios/:id/ubicacion.
type UpdateLocationRequest struct {
	Latitude  *float64 `json:"latitud"`
	Longitude *float64 `json:"longitud"`
}

// DeliverRequest body para PUT /api/envios/:id/entregar.
type DeliverRequest struct {
	EvidenceURL string `json:"evidencia_foto_url"`
}

// ShipmentResponse salida de un envío.
type ShipmentResponse struct {
	ID           int64      `json:"id"`
	OrderID      int64      `json:"pedido_id"`
	CourierID    *int64     `json:"repartidor_id,omitempty"`
	TrackingCode string     `json:"tracking_code"`
	Status       string     `json:"status"`
	Latitude     *float64   `json:"latitud_actual,omitempty"`
	Longitude    *float64   `json:"longitud_actual,omitempty"`
	DepartedAt   time.Time  `json:"fecha_salida"`
	DeliveredAt  *time.Time `json:"fecha_entrega,omitempty"`
	EvidenceURL  *string    `json:"evidencia_foto_url,omitempty"`
	Quantity     int        `json:"cantidad,omitempty"`
	CustomerName string     `json:"cliente_nombre,omitempty"`
	ProductName  string     `json:"producto_nombre,omitempty"`
	CourierName  string     `json:"repartidor_nombre,omitempty"`
}

// DeliveryResponse resultado de confirmar una entrega.
type DeliveryResponse struct {
	Message   string                 `json:"mensaje"`
	Shipment  ShipmentResponse       `json:"envio"`
	Order     OrderResponse          `json:"pedido"`
	Inventory InventoryStateResponse `json:"inventario"`
}

// CreateCourierRequest body para POST /api/repartidores.
type CreateCourierRequest struct {
	Name    string `json:"nombre"`
	Phone   string `json:"telefono"`
	Vehicle string `json:"vehiculo"`
}

// CourierResponse salida de un repartidor.
type CourierResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"nombre"`
	Phone     string `json:"telefono"`
	Vehicle   string `json:"vehiculo"`
	Available bool   `json:"disponible"`
}
