package dto

import "time"

// CreateCustomerRequest body para POST /api/clientes.
type CreateCustomerRequest struct {
	Name     string `json:"nombre"`
	RFC      string `json:"rfc"`
	Email    string `json:"contacto_email"`
	Phone    string `json:"contacto_tel"`
	Address  string `json:"direccion"`
	Password string `json:"password"`
}

// UpdateCustomerRequest actualización parcial; los campos omitidos no cambian.
type UpdateCustomerRequest struct {
	Name    *string `json:"nombre"`
	RFC     *string `json:"rfc"`
	Email   *string `json:"contacto_email"`
	Phone   *string `json:"contacto_tel"`
	Address *string `json:"direccion"`
}

// LoginRequest body para POST /api/clientes/login.
type LoginRequest struct {
	Name     string `json:"nombre"`
	Password string `json:"password"`
}

// CustomerResponse salida de un cliente (nunca incluye el hash de contraseña).
type CustomerResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"nombre"`
	RFC       string    `json:"rfc"`
	Email     string    `json:"contacto_email"`
	Phone     string    `json:"contacto_tel"`
	Address   string    `json:"direccion"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"fecha_alta"`
}

// LoginResponse resultado de un login correcto.
type LoginResponse struct {
	Message  string           `json:"mensaje"`
	Customer CustomerResponse `json:"cliente"`
}
