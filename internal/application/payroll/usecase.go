// Package payroll orquesta la validación de archivos de nómina: lectura del CSV, umbral del 90%,
// registro de la corrida y alta de empleados nuevos.
package payroll

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/smartstock-api/internal/application/dto"
	"github.com/jhoicas/smartstock-api/internal/domain"
	"github.com/jhoicas/smartstock-api/internal/domain/entity"
	"github.com/jhoicas/smartstock-api/internal/domain/inventory"
	roster "github.com/jhoicas/smartstock-api/internal/domain/payroll"
	"github.com/jhoicas/smartstock-api/internal/domain/repository"
	"github.com/jhoicas/smartstock-api/pkg/metrics"
)

// TemplateFileName nombre sugerido para la plantilla descargable.
const TemplateFileName = "plantilla_nomina_empleados.csv"

// ThresholdRejection el archivo no alcanzó el mínimo de registros válidos. La corrida quedó
// registrada con estado error; no se insertó ningún empleado.
type ThresholdRejection struct {
	*domain.ThresholdError
	ValidationID  int64
	CompliancePct decimal.Decimal
	Errors        []dto.RosterRowError
}

func (e *ThresholdRejection) Unwrap() error { return e.ThresholdError }

// Detail cuerpo "detalle" de la respuesta HTTP.
func (e *ThresholdRejection) Detail() dto.ThresholdDetail {
	return dto.ThresholdDetail{
		RequestedCards: e.Requested,
		Minimum:        e.Minimum,
		ValidFound:     e.Valid,
		Missing:        e.Minimum - e.Valid,
		CompliancePct:  e.CompliancePct,
		ValidationID:   e.ValidationID,
		Errors:         e.Errors,
	}
}

// UseCase casos de uso de validación de nómina.
type UseCase struct {
	repo repository.EmployeeRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.EmployeeRepository) *UseCase {
	return &UseCase{repo: repo}
}

// ValidateInput archivo ya guardado en disco (Path) con su nombre original.
type ValidateInput struct {
	CustomerID     int64
	RequestedCards int
	FileName       string
	Path           string
}

// ValidateFile valida el archivo de nómina y registra los empleados válidos que el cliente
// aún no tenga. El archivo temporal se elimina en todos los caminos de salida.
// Una vez registrada la corrida, siempre termina como completado o error.
func (uc *UseCase) ValidateFile(ctx context.Context, in ValidateInput) (resp *dto.RosterResponse, err error) {
	if in.Path != "" {
		defer func() {
			if err := os.Remove(in.Path); err != nil && !os.IsNotExist(err) {
				log.Warn().Err(err).Str("path", in.Path).Msg("no se pudo eliminar el archivo temporal")
			}
		}()
	}

	var errs []string
	if in.CustomerID <= 0 {
		errs = append(errs, "clienteId es requerido")
	}
	if in.RequestedCards <= 0 {
		errs = append(errs, "cantidadTarjetasSolicitadas debe ser un entero positivo")
	}
	if in.Path == "" {
		errs = append(errs, "archivo es requerido")
	} else if !strings.EqualFold(filepath.Ext(in.FileName), ".csv") {
		errs = append(errs, "solo se aceptan archivos .csv")
	}
	if len(errs) > 0 {
		return nil, domain.NewValidationError(errs...)
	}

	f, err := os.Open(in.Path)
	if err != nil {
		return nil, fmt.Errorf("abrir archivo de nómina: %w", err)
	}
	defer f.Close()

	run := &entity.FileValidation{
		CustomerID: in.CustomerID,
		FileName:   in.FileName,
		Requested:  in.RequestedCards,
		Status:     entity.FileValidationProcessing,
	}
	if err := uc.repo.StartValidation(ctx, run); err != nil {
		return nil, err
	}
	finished := false
	defer func() {
		if err == nil || finished {
			return
		}
		uc.failRun(ctx, run, err)
	}()

	report, err := roster.ReadRoster(f)
	if err != nil {
		return nil, err
	}

	rowErrors := toRowErrors(report.Invalid)
	minimum := inventory.RosterMinimum(in.RequestedCards)
	pct := compliancePct(report.ValidCount(), in.RequestedCards)
	run.TotalRows = report.TotalRows
	run.ValidRows = report.ValidCount()
	run.InvalidRows = len(report.Invalid)
	run.Detail = marshalDetail(rowErrors)

	if report.ValidCount() < minimum {
		run.Status = entity.FileValidationError
		if err := uc.repo.FinishValidation(ctx, run); err != nil {
			return nil, err
		}
		finished = true
		metrics.RecordRoster(run.Status)
		return nil, &ThresholdRejection{
			ThresholdError: &domain.ThresholdError{Requested: in.RequestedCards, Minimum: minimum, Valid: report.ValidCount()},
			ValidationID:   run.ID,
			CompliancePct:  pct,
			Errors:         rowErrors,
		}
	}

	rfcs := make([]string, 0, len(report.Valid))
	for _, e := range report.Valid {
		rfcs = append(rfcs, e.RFC)
	}
	existing, err := uc.repo.ExistingRFCs(ctx, in.CustomerID, rfcs)
	if err != nil {
		return nil, err
	}
	var duplicates []string
	fresh := make([]*entity.Employee, 0, len(report.Valid))
	for _, e := range report.Valid {
		if existing[e.RFC] {
			duplicates = append(duplicates, e.RFC)
			continue
		}
		e.CustomerID = in.CustomerID
		e.ValidationID = run.ID
		fresh = append(fresh, e)
	}

	inserted := 0
	if len(fresh) > 0 {
		if inserted, err = uc.repo.InsertBatch(ctx, run.ID, fresh); err != nil {
			return nil, err
		}
	}

	run.DuplicateRows = len(duplicates)
	run.InsertedRows = inserted
	run.Status = entity.FileValidationCompleted
	if err := uc.repo.FinishValidation(ctx, run); err != nil {
		return nil, err
	}
	finished = true
	metrics.RecordRoster(run.Status)
	log.Info().
		Int64("cliente_id", in.CustomerID).
		Int64("validacion_id", run.ID).
		Int("validos", run.ValidRows).
		Int("insertados", inserted).
		Int("duplicados", len(duplicates)).
		Msg("nómina validada")

	return &dto.RosterResponse{
		ValidationID: run.ID,
		Message:      "Archivo validado exitosamente",
		Summary: dto.RosterSummary{
			TotalRows:      run.TotalRows,
			ValidRows:      run.ValidRows,
			InvalidRows:    run.InvalidRows,
			DuplicateRows:  run.DuplicateRows,
			InsertedRows:   inserted,
			RequestedCards: in.RequestedCards,
			Minimum:        minimum,
			CompliancePct:  pct,
			MeetsThreshold: true,
		},
		Errors:     rowErrors,
		Duplicates: duplicates,
	}, nil
}

// failRun cierra la corrida como error. Si el archivo no llegó a leerse, el detalle guarda el
// motivo; se usa un contexto sin cancelación para que el cierre sobreviva a un request abortado.
func (uc *UseCase) failRun(ctx context.Context, run *entity.FileValidation, cause error) {
	run.Status = entity.FileValidationError
	if run.Detail == nil {
		run.Detail = marshalDetail([]dto.RosterRowError{{Errors: []string{cause.Error()}}})
	}
	if err := uc.repo.FinishValidation(context.WithoutCancel(ctx), run); err != nil {
		log.Error().Err(err).Int64("validacion_id", run.ID).Msg("no se pudo cerrar la corrida de validación")
	}
	metrics.RecordRoster(run.Status)
}

// Template contenido de la plantilla CSV.
func (uc *UseCase) Template() []byte {
	return []byte(roster.Template)
}

// ListEmployees empleados validados de un cliente, más recientes primero.
func (uc *UseCase) ListEmployees(ctx context.Context, customerID int64) ([]dto.EmployeeResponse, error) {
	list, err := uc.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, dto.EmployeeResponse{
			ID:         e.ID,
			CustomerID: e.CustomerID,
			ExternalID: e.ExternalID,
			RFC:        e.RFC,
			Name:       e.Name,
			FileName:   e.FileName,
			CreatedAt:  e.CreatedAt,
		})
	}
	return out, nil
}

func compliancePct(valid, requested int) decimal.Decimal {
	if requested <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(valid)).Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(int64(requested))).Round(2)
}

func toRowErrors(rows []roster.RowError) []dto.RosterRowError {
	out := make([]dto.RosterRowError, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.RosterRowError{Line: r.Line, ID: r.ID, RFC: r.RFC, Name: r.Name, Errors: r.Errors})
	}
	return out
}

func marshalDetail(rows []dto.RosterRowError) []byte {
	b, err := json.Marshal(rows)
	if err != nil {
		return []byte("[]")
	}
	return b
}
