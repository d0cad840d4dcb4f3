package payroll_test

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/smartstock-api/internal/domain"
	"github.com/jhoicas/smartstock-api/internal/domain/payroll"
)

// rosterCSV genera un CSV con n filas válidas y m inválidas (nombre corto).
func rosterCSV(valid, invalid int) string {
	var b strings.Builder
	b.WriteString("id,rfc,name\n")
	for i := 0; i < valid; i++ {
		fmt.Fprintf(&b, "%d,GOMJ80%04dAB1,Empleado Número %d\n", i+1, i, i+1)
	}
	for i := 0; i < invalid; i++ {
		fmt.Fprintf(&b, "x%d,PEPE90%04dXY2,Ana\n", i, i)
	}
	return b.String()
}

func TestReadRoster_CuentaValidosEInvalidos(t *testing.T) {
	rep, err := payroll.ReadRoster(strings.NewReader(rosterCSV(89, 11)))
	require.NoError(t, err)
	assert.Equal(t, 100, rep.TotalRows)
	assert.Equal(t, 89, rep.ValidCount())
	assert.Len(t, rep.Invalid, 11)
	assert.Equal(t, 91, rep.Invalid[0].Line, "la línea incluye el encabezado")
	assert.Contains(t, rep.Invalid[0].Errors, "Nombre completo inválido o muy corto")
}

func TestReadRoster_RFCDuplicadoYNormalizacion(t *testing.T) {
	csv := "id,rfc,name\n" +
		"1,gomj800101ab1,Juan Pérez López\n" +
		"2,GOMJ800101AB1,Juan Pérez Otro\n" +
		"3,MALO,Pedro Páramo\n"
	rep, err := payroll.ReadRoster(strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, rep.Valid, 1)
	assert.Equal(t, "GOMJ800101AB1", rep.Valid[0].RFC)

	require.Len(t, rep.Invalid, 2)
	assert.Equal(t, []string{"RFC duplicado en el archivo"}, rep.Invalid[0].Errors)
	assert.Equal(t, 3, rep.Invalid[0].Line)
	assert.Equal(t, "MALO", rep.Invalid[1].RFC)
}

func TestReadRoster_BOMYWindows1252(t *testing.T) {
	rep, err := payroll.ReadRoster(strings.NewReader(payroll.Template))
	require.NoError(t, err)
	assert.Equal(t, 3, rep.TotalRows)
	assert.Equal(t, 3, rep.ValidCount(), "la plantilla debe ser válida")
	assert.Equal(t, "Juan Pérez López", rep.Valid[0].Name)

	latin, err := charmap.Windows1252.NewEncoder().String("id,rfc,name\n1,NUNE900101AB1,José Núñez\n")
	require.NoError(t, err)
	rep, err = payroll.ReadRoster(strings.NewReader(latin))
	require.NoError(t, err)
	require.Len(t, rep.Valid, 1)
	assert.Equal(t, "José Núñez", rep.Valid[0].Name)
}

func TestReadRoster_EncabezadosFaltantes(t *testing.T) {
	_, err := payroll.ReadRoster(strings.NewReader("a,b\n1,2\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = payroll.ReadRoster(strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReadRoster_LeeVariosBloques(t *testing.T) {
	// ~180 KB entregados de a un byte: el lector no depende de tener el archivo completo.
	rep, err := payroll.ReadRoster(iotest.OneByteReader(strings.NewReader(rosterCSV(5000, 3))))
	require.NoError(t, err)
	assert.Equal(t, 5003, rep.TotalRows)
	assert.Equal(t, 5000, rep.ValidCount())
	assert.Equal(t, "Empleado Número 5000", rep.Valid[4999].Name)
}

func TestReadRoster_ErrorDeLecturaAMitad(t *testing.T) {
	src := io.MultiReader(strings.NewReader(rosterCSV(3, 0)), iotest.ErrReader(errors.New("disco")))
	_, err := payroll.ReadRoster(src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disco")
}
