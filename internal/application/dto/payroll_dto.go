package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RosterSummary resumen de la validación de un archivo de nómina.
type RosterSummary struct {
	TotalRows      int             `json:"total_registros"`
	ValidRows      int             `json:"empleados_validos"`
	InvalidRows    int             `json:"empleados_invalidos"`
	DuplicateRows  int             `json:"empleados_duplicados"`
	InsertedRows   int             `json:"empleados_insertados"`
	RequestedCards int             `json:"tarjetas_solicitadas"`
	Minimum        int             `json:"minimo_requerido"`
	CompliancePct  decimal.Decimal `json:"porcentaje_cumplido"`
	MeetsThreshold bool            `json:"cumple_requisito_90"`
}

// RosterRowError fila rechazada del archivo.
type RosterRowError struct {
	Line   int      `json:"linea"`
	ID     string   `json:"id"`
	RFC    string   `json:"rfc"`
	Name   string   `json:"nombre"`
	Errors []string `json:"errores"`
}

// RosterResponse resultado completo de POST /api/validacion/nomina.
type RosterResponse struct {
	ValidationID int64            `json:"validacion_id"`
	Message      string           `json:"mensaje"`
	Summary      RosterSummary    `json:"resumen"`
	Errors       []RosterRowError `json:"errores"`
	Duplicates   []string         `json:"duplicados,omitempty"`
}

// ThresholdDetail detalle del error NO_CUMPLE_MINIMO_90.
type ThresholdDetail struct {
	RequestedCards int              `json:"tarjetas_solicitadas"`
	Minimum        int              `json:"minimo_empleados_requerido"`
	ValidFound     int              `json:"empleados_validos_encontrados"`
	Missing        int              `json:"faltante"`
	CompliancePct  decimal.Decimal  `json:"porcentaje_cumplido"`
	ValidationID   int64            `json:"validacion_id"`
	Errors         []RosterRowError `json:"errores"`
}

// EmployeeResponse empleado validado de un cliente.
type EmployeeResponse struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"cliente_id"`
	ExternalID string    `json:"id_empleado"`
	RFC        string    `json:"rfc"`
	Name       string    `json:"nombre_completo"`
	FileName   string    `json:"archivo_origen,omitempty"`
	CreatedAt  time.Time `json:"fecha_registro"`
}
