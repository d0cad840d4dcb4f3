package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string   `json:"error"`
	Message string   `json:"mensaje"`
	Reason  string   `json:"razon,omitempty"`
	Errors  []string `json:"errores,omitempty"`
	Detail  any      `json:"detalle,omitempty"`
}

// MessageResponse confirmación simple de una operación sin cuerpo propio.
type MessageResponse struct {
	Message string `json:"mensaje"`
}

// HealthResponse estado del servicio y de la base de datos.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp,omitempty"`
}
