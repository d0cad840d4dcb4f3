package entity

import "time"

// Estados de una corrida de validación de archivo.
const (
	FileValidationProcessing = "procesando"
	FileValidationError      = "error"
	FileValidationCompleted  = "completado"
)

// Employee empleado de un cliente validado desde un archivo de nómina.
type Employee struct {
	ID           int64
	CustomerID   int64
	ValidationID int64
	ExternalID   string
	RFC          string
	Name         string
	CreatedAt    time.Time

	// Archivo de origen (JOIN con validaciones_archivo).
	FileName string
}

// FileValidation resumen persistido de cada archivo procesado.
type FileValidation struct {
	ID            int64
	CustomerID    int64
	FileName      string
	Requested     int
	TotalRows     int
	ValidRows     int
	InvalidRows   int
	DuplicateRows int
	InsertedRows  int
	Status        string
	Detail        []byte // JSON con el reporte
	CreatedAt     time.Time
}
