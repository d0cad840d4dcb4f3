package dto

import "time"

// AlertResponse salida de una alerta.
type AlertResponse struct {
	ID         int64      `json:"id"`
	Type       string     `json:"tipo"`
	Priority   string     `json:"prioridad"`
	EntityType string     `json:"entidad_tipo"`
	EntityID   int64      `json:"entidad_id"`
	Message    string     `json:"mensaje"`
	Resolved   bool       `json:"resuelta"`
	CreatedAt  time.Time  `json:"fecha_creacion"`
	ResolvedAt *time.Time `json:"fecha_resolucion,omitempty"`
}

// GenerateAlertsResponse cuántas alertas nuevas se crearon por tipo.
type GenerateAlertsResponse struct {
	Message   string `json:"mensaje"`
	DeadStock int    `json:"stock_muerto"`
	LowStock  int    `json:"stock_bajo"`
}
