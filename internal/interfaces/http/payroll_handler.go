package http

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/smartstock-api/internal/application/payroll"
	"github.com/jhoicas/smartstock-api/internal/domain"
)

// PayrollHandler validación de archivos de nómina.
type PayrollHandler struct {
	uc        *payroll.UseCase
	uploadDir string
	maxBytes  int64
}

// NewPayrollHandler construye el handler. Los archivos se guardan en uploadDir con nombre aleatorio.
func NewPayrollHandler(uc *payroll.UseCase, uploadDir string, maxBytes int64) *PayrollHandler {
	return &PayrollHandler{uc: uc, uploadDir: uploadDir, maxBytes: maxBytes}
}

// Validate godoc
// @Summary      Validar archivo de nómina
// @Description  CSV con columnas id, rfc, name. Se requiere que al menos el 90% de las tarjetas solicitadas tengan un empleado válido.
// @Tags         validacion
// @Accept       multipart/form-data
// @Produce      json
// @Param        archivo                      formData  file  true  "Archivo CSV"
// @Param        clienteId                    formData  int   true  "ID del cliente"
// @Param        cantidadTarjetasSolicitadas  formData  int   true  "Tarjetas solicitadas"
// @Success      200  {object}  dto.RosterResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/validacion/nomina [post]
func (h *PayrollHandler) Validate(c *fiber.Ctx) error {
	in := payroll.ValidateInput{
		CustomerID:     formInt(c, "clienteId"),
		RequestedCards: int(formInt(c, "cantidadTarjetasSolicitadas")),
	}

	if fh, err := c.FormFile("archivo"); err == nil {
		if fh.Size > h.maxBytes {
			return fail(c, domain.NewValidationError(fmt.Sprintf("el archivo excede el máximo de %d MB", h.maxBytes>>20)))
		}
		if err := os.MkdirAll(h.uploadDir, 0o750); err != nil {
			return fail(c, fmt.Errorf("crear directorio de carga: %w", err))
		}
		path := filepath.Join(h.uploadDir, "nomina-"+uuid.NewString()+strings.ToLower(filepath.Ext(fh.Filename)))
		if err := c.SaveFile(fh, path); err != nil {
			return fail(c, fmt.Errorf("guardar archivo de nómina: %w", err))
		}
		in.FileName = filepath.Base(fh.Filename)
		in.Path = path
	}

	out, err := h.uc.ValidateFile(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Template godoc
// @Summary      Descargar plantilla CSV
// @Tags         validacion
// @Produce      text/csv
// @Success      200  {file}  binary
// @Router       /api/validacion/plantilla [get]
func (h *PayrollHandler) Template(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, payroll.TemplateFileName))
	return c.Send(h.uc.Template())
}

// Employees godoc
// @Summary      Empleados validados de un cliente
// @Tags         validacion
// @Produce      json
// @Param        clienteId  path  int  true  "ID del cliente"
// @Success      200  {array}  dto.EmployeeResponse
// @Router       /api/validacion/empleados/{clienteId} [get]
func (h *PayrollHandler) Employees(c *fiber.Ctx) error {
	id, err := paramID(c, "clienteId")
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.ListEmployees(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// formInt valor de formulario; vacío o no numérico = 0 (el caso de uso lo reporta).
func formInt(c *fiber.Ctx, key string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(c.FormValue(key)), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
