package payroll_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartstock-api/internal/application/payroll"
	"github.com/jhoicas/smartstock-api/internal/domain"
	"github.com/jhoicas/smartstock-api/internal/domain/entity"
	"github.com/jhoicas/smartstock-api/internal/testutil/mocks"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func rfcFor(i int) string { return fmt.Sprintf("GARC%06dAB1", i) }

// writeRoster escribe un CSV con valid filas correctas y invalid filas con RFC mal formado.
func writeRoster(t *testing.T, valid, invalid int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("id,rfc,name\n")
	for i := 0; i < valid; i++ {
		fmt.Fprintf(&b, "%d,%s,Empleado Número %d\n", i+1, rfcFor(i), i+1)
	}
	for i := 0; i < invalid; i++ {
		fmt.Fprintf(&b, "X%d,MAL%d,Nombre Válido\n", i, i)
	}
	path := filepath.Join(t.TempDir(), "nomina.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))
	return path
}

func startOK(repo *mocks.EmployeeRepository) {
	repo.On("StartValidation", mock.Anything, mock.AnythingOfType("*entity.FileValidation")).
		Run(func(args mock.Arguments) { args.Get(1).(*entity.FileValidation).ID = 77 }).
		Return(nil)
}

// ──────────────────────────────────────────────────────────────────────────────
// Umbral del 90%
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateFile_89De100Rechazado(t *testing.T) {
	repo := &mocks.EmployeeRepository{}
	startOK(repo)
	var finished *entity.FileValidation
	repo.On("FinishValidation", mock.Anything, mock.AnythingOfType("*entity.FileValidation")).
		Run(func(args mock.Arguments) { finished = args.Get(1).(*entity.FileValidation) }).
		Return(nil)

	path := writeRoster(t, 89, 11)
	_, err := payroll.NewUseCase(repo).ValidateFile(context.Background(), payroll.ValidateInput{
		CustomerID: 3, RequestedCards: 100, FileName: "nomina.csv", Path: path,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBusinessRule))

	var rej *payroll.ThresholdRejection
	require.ErrorAs(t, err, &rej)
	d := rej.Detail()
	assert.Equal(t, 100, d.RequestedCards)
	assert.Equal(t, 90, d.Minimum)
	assert.Equal(t, 89, d.ValidFound)
	assert.Equal(t, 1, d.Missing)
	assert.Equal(t, "89", d.CompliancePct.String())
	assert.Equal(t, int64(77), d.ValidationID)
	assert.Len(t, d.Errors, 11)

	require.NotNil(t, finished)
	assert.Equal(t, entity.FileValidationError, finished.Status)
	assert.Equal(t, 100, finished.TotalRows)
	assert.Equal(t, 11, finished.InvalidRows)
	repo.AssertNotCalled(t, "InsertBatch", mock.Anything, mock.Anything, mock.Anything)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "el archivo temporal debe eliminarse")
}

func TestValidateFile_90De100AceptadoOmiteDuplicados(t *testing.T) {
	repo := &mocks.EmployeeRepository{}
	startOK(repo)
	repo.On("ExistingRFCs", mock.Anything, int64(3), mock.Anything).
		Return(map[string]bool{rfcFor(0): true, rfcFor(1): true}, nil)
	var batch []*entity.Employee
	repo.On("InsertBatch", mock.Anything, int64(77), mock.Anything).
		Run(func(args mock.Arguments) { batch = args.Get(2).([]*entity.Employee) }).
		Return(88, nil)
	var finished *entity.FileValidation
	repo.On("FinishValidation", mock.Anything, mock.AnythingOfType("*entity.FileValidation")).
		Run(func(args mock.Arguments) { finished = args.Get(1).(*entity.FileValidation) }).
		Return(nil)

	path := writeRoster(t, 90, 10)
	resp, err := payroll.NewUseCase(repo).ValidateFile(context.Background(), payroll.ValidateInput{
		CustomerID: 3, RequestedCards: 100, FileName: "NOMINA.CSV", Path: path,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(77), resp.ValidationID)
	assert.True(t, resp.Summary.MeetsThreshold)
	assert.Equal(t, 90, resp.Summary.ValidRows)
	assert.Equal(t, 10, resp.Summary.InvalidRows)
	assert.Equal(t, 2, resp.Summary.DuplicateRows)
	assert.Equal(t, 88, resp.Summary.InsertedRows)
	assert.Equal(t, 90, resp.Summary.Minimum)
	assert.ElementsMatch(t, []string{rfcFor(0), rfcFor(1)}, resp.Duplicates)
	assert.Len(t, resp.Errors, 10)

	require.Len(t, batch, 88)
	assert.Equal(t, int64(3), batch[0].CustomerID)
	assert.Equal(t, int64(77), batch[0].ValidationID)

	assert.Equal(t, entity.FileValidationCompleted, finished.Status)
	assert.Equal(t, 88, finished.InsertedRows)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

// ──────────────────────────────────────────────────────────────────────────────
// Entrada inválida
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateFile_ExtensionInvalidaBorraArchivo(t *testing.T) {
	repo := &mocks.EmployeeRepository{}
	path := writeRoster(t, 5, 0)

	_, err := payroll.NewUseCase(repo).ValidateFile(context.Background(), payroll.ValidateInput{
		CustomerID: 1, RequestedCards: 5, FileName: "nomina.xlsx", Path: path,
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
	repo.AssertNotCalled(t, "StartValidation", mock.Anything, mock.Anything)
}

func TestValidateFile_ParametrosFaltantes(t *testing.T) {
	_, err := payroll.NewUseCase(&mocks.EmployeeRepository{}).ValidateFile(context.Background(), payroll.ValidateInput{})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Errors, 3)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida de la corrida
// ──────────────────────────────────────────────────────────────────────────────

// captureFinish registra cada llamada a FinishValidation con una copia del estado recibido.
func captureFinish(repo *mocks.EmployeeRepository, ret error) *[]entity.FileValidation {
	var calls []entity.FileValidation
	repo.On("FinishValidation", mock.Anything, mock.AnythingOfType("*entity.FileValidation")).
		Run(func(args mock.Arguments) { calls = append(calls, *args.Get(1).(*entity.FileValidation)) }).
		Return(ret)
	return &calls
}

func TestValidateFile_SinEncabezadoRFCRegistraCorridaConError(t *testing.T) {
	repo := &mocks.EmployeeRepository{}
	startOK(repo)
	finished := captureFinish(repo, nil)

	path := filepath.Join(t.TempDir(), "n.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,nombre\n1,Juan Pérez\n"), 0o600))

	_, err := payroll.NewUseCase(repo).ValidateFile(context.Background(), payroll.ValidateInput{
		CustomerID: 1, RequestedCards: 1, FileName: "n.csv", Path: path,
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	repo.AssertNumberOfCalls(t, "StartValidation", 1)
	require.Len(t, *finished, 1)
	run := (*finished)[0]
	assert.Equal(t, int64(77), run.ID)
	assert.Equal(t, entity.FileValidationError, run.Status)
	assert.Contains(t, string(run.Detail), "encabezados requeridos")
	repo.AssertNotCalled(t, "InsertBatch", mock.Anything, mock.Anything, mock.Anything)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestValidateFile_ArchivoVacioRegistraCorridaConError(t *testing.T) {
	repo := &mocks.EmployeeRepository{}
	startOK(repo)
	finished := captureFinish(repo, nil)

	path := filepath.Join(t.TempDir(), "vacio.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	_, err := payroll.NewUseCase(repo).ValidateFile(context.Background(), payroll.ValidateInput{
		CustomerID: 1, RequestedCards: 10, FileName: "vacio.csv", Path: path,
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	require.Len(t, *finished, 1)
	assert.Equal(t, entity.FileValidationError, (*finished)[0].Status)
}

func TestValidateFile_FallaInsertBatchCierraCorrida(t *testing.T) {
	repo := &mocks.EmployeeRepository{}
	startOK(repo)
	repo.On("ExistingRFCs", mock.Anything, int64(3), mock.Anything).Return(map[string]bool{}, nil)
	repo.On("InsertBatch", mock.Anything, int64(77), mock.Anything).Return(0, errors.New("db down"))
	finished := captureFinish(repo, nil)

	_, err := payroll.NewUseCase(repo).ValidateFile(context.Background(), payroll.ValidateInput{
		CustomerID: 3, RequestedCards: 10, FileName: "nomina.csv", Path: writeRoster(t, 10, 0),
	})
	require.EqualError(t, err, "db down")

	require.Len(t, *finished, 1)
	run := (*finished)[0]
	assert.Equal(t, entity.FileValidationError, run.Status)
	assert.Equal(t, 10, run.ValidRows)
	assert.Zero(t, run.InsertedRows)
}

func TestValidateFile_FallaExistingRFCsCierraCorrida(t *testing.T) {
	repo := &mocks.EmployeeRepository{}
	startOK(repo)
	repo.On("ExistingRFCs", mock.Anything, int64(3), mock.Anything).Return(nil, errors.New("timeout"))
	finished := captureFinish(repo, nil)

	_, err := payroll.NewUseCase(repo).ValidateFile(context.Background(), payroll.ValidateInput{
		CustomerID: 3, RequestedCards: 10, FileName: "nomina.csv", Path: writeRoster(t, 10, 0),
	})
	require.Error(t, err)
	require.Len(t, *finished, 1)
	assert.Equal(t, entity.FileValidationError, (*finished)[0].Status)
	repo.AssertNotCalled(t, "InsertBatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestValidateFile_CierreCompletadoFallidoReintentaComoError(t *testing.T) {
	repo := &mocks.EmployeeRepository{}
	startOK(repo)
	repo.On("ExistingRFCs", mock.Anything, int64(3), mock.Anything).Return(map[string]bool{}, nil)
	repo.On("InsertBatch", mock.Anything, int64(77), mock.Anything).Return(10, nil)
	finished := captureFinish(repo, errors.New("conexión perdida"))

	_, err := payroll.NewUseCase(repo).ValidateFile(context.Background(), payroll.ValidateInput{
		CustomerID: 3, RequestedCards: 10, FileName: "nomina.csv", Path: writeRoster(t, 10, 0),
	})
	require.Error(t, err)
	require.Len(t, *finished, 2)
	assert.Equal(t, entity.FileValidationCompleted, (*finished)[0].Status)
	assert.Equal(t, entity.FileValidationError, (*finished)[1].Status)
}

func TestValidateFile_SinCorridaSiFallaElRegistro(t *testing.T) {
	repo := &mocks.EmployeeRepository{}
	repo.On("StartValidation", mock.Anything, mock.Anything).Return(errors.New("db down"))

	_, err := payroll.NewUseCase(repo).ValidateFile(context.Background(), payroll.ValidateInput{
		CustomerID: 3, RequestedCards: 10, FileName: "nomina.csv", Path: writeRoster(t, 10, 0),
	})
	require.Error(t, err)
	repo.AssertNotCalled(t, "FinishValidation", mock.Anything, mock.Anything)
}

func TestTemplate_TieneBOM(t *testing.T) {
	tpl := payroll.NewUseCase(nil).Template()
	assert.True(t, strings.HasPrefix(string(tpl), "\ufeffid,rfc,name"))
}
