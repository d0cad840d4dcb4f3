// Package payroll valida archivos CSV de nómina (id, rfc, name) antes de registrar empleados.
package payroll

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jhoicas/smartstock-api/internal/domain"
	"github.com/jhoicas/smartstock-api/internal/domain/entity"
	"github.com/jhoicas/smartstock-api/pkg/sat"
)

// MinNameLength longitud mínima del nombre completo.
const MinNameLength = 5

// Mensajes de error por fila.
const (
	msgInvalidRFC   = "RFC inválido o faltante (debe tener 13 caracteres)"
	msgInvalidName  = "Nombre completo inválido o muy corto"
	msgDuplicateRFC = "RFC duplicado en el archivo"
)

// RowError fila rechazada con todos sus errores.
type RowError struct {
	Line   int      `json:"linea"`
	ID     string   `json:"id"`
	RFC    string   `json:"rfc"`
	Name   string   `json:"nombre"`
	Errors []string `json:"errores"`
}

// Report resultado de leer un archivo de nómina.
type Report struct {
	TotalRows int
	Valid     []*entity.Employee
	Invalid   []RowError
}

// ValidCount registros válidos dentro del archivo.
func (r *Report) ValidCount() int { return len(r.Valid) }

// sniffSize bytes iniciales que se inspeccionan para decidir la codificación.
const sniffSize = 64 << 10

// ReadRoster lee y valida el CSV fila por fila. La primera fila es el encabezado.
// Acepta UTF-8 (con o sin BOM) y Windows-1252, habitual en exportaciones de Excel; la
// codificación se decide con el primer bloque del archivo.
func ReadRoster(src io.Reader) (*Report, error) {
	br := bufio.NewReaderSize(src, sniffSize)
	head, err := br.Peek(sniffSize)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("leer archivo: %w", err)
	}
	var fallback transform.Transformer = unicode.UTF8.NewDecoder()
	if !looksUTF8(head) {
		fallback = charmap.Windows1252.NewDecoder()
	}
	r := csv.NewReader(transform.NewReader(br, unicode.BOMOverride(fallback)))
	r.ReuseRecord = true
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.NewValidationError("el archivo está vacío")
		}
		return nil, domain.NewValidationError("CSV inválido: " + err.Error())
	}
	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	rep := &Report{}
	seen := make(map[string]bool)
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, domain.NewValidationError("CSV inválido: " + err.Error())
		}
		rep.TotalRows++
		line, _ := r.FieldPos(0)

		id := field(rec, cols.id)
		rfc := sat.NormalizeRFC(field(rec, cols.rfc))
		name := field(rec, cols.name)

		var errs []string
		if _, err := sat.ValidateRFCFisica(rfc); err != nil {
			errs = append(errs, msgInvalidRFC)
		}
		if utf8.RuneCountInString(name) < MinNameLength {
			errs = append(errs, msgInvalidName)
		}
		if rfc != "" {
			if seen[rfc] {
				errs = append(errs, msgDuplicateRFC)
			} else {
				seen[rfc] = true
			}
		}

		if len(errs) > 0 {
			rep.Invalid = append(rep.Invalid, RowError{
				Line:   line,
				ID:     orNA(id),
				RFC:    orNA(rfc),
				Name:   orNA(name),
				Errors: errs,
			})
			continue
		}
		rep.Valid = append(rep.Valid, &entity.Employee{ExternalID: id, RFC: rfc, Name: name})
	}
	return rep, nil
}

// looksUTF8 valida el bloque inicial; una secuencia cortada por el límite del bloque no
// cuenta como inválida.
func looksUTF8(b []byte) bool {
	if utf8.Valid(b) {
		return true
	}
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if utf8.RuneStart(b[i]) {
			return !utf8.FullRune(b[i:]) && utf8.Valid(b[:i])
		}
	}
	return false
}

type columns struct{ id, rfc, name int }

func mapColumns(header []string) (columns, error) {
	c := columns{id: -1, rfc: -1, name: -1}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "id":
			c.id = i
		case "rfc":
			c.rfc = i
		case "name", "nombre", "nombre_completo":
			c.name = i
		}
	}
	if c.rfc < 0 || c.name < 0 {
		return c, domain.NewValidationError("encabezados requeridos: id, rfc, name")
	}
	return c, nil
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// Template plantilla CSV descargable (UTF-8 con BOM para Excel).
const Template = "\ufeffid,rfc,name\n" +
	"1,XAXX010101000,Juan Pérez López\n" +
	"2,XEXX010101000,María García González\n" +
	"3,RABC850315AB1,Carlos Ramírez Sánchez\n"
