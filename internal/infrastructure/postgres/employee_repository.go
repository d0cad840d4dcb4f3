package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/smartstock-api/internal/domain/entity"
	"github.com/jhoicas/smartstock-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo empleados_clientes y validaciones_archivo.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

// ExistingRFCs una sola consulta con ANY($2) en lugar de una por empleado.
func (r *EmployeeRepo) ExistingRFCs(ctx context.Context, customerID int64, rfcs []string) (map[string]bool, error) {
	out := make(map[string]bool)
	if len(rfcs) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `SELECT rfc FROM empleados_clientes WHERE cliente_id = $1 AND rfc = ANY($2)`, customerID, rfcs)
	if err != nil {
		return nil, fmt.Errorf("buscar RFC existentes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var rfc string
		if err := rows.Scan(&rfc); err != nil {
			return nil, fmt.Errorf("scan rfc: %w", err)
		}
		out[rfc] = true
	}
	return out, rows.Err()
}

// InsertBatch envía los INSERT en un pgx.Batch; los conflictos (cliente_id, rfc) se ignoran.
func (r *EmployeeRepo) InsertBatch(ctx context.Context, validationID int64, employees []*entity.Employee) (int, error) {
	if len(employees) == 0 {
		return 0, nil
	}
	batch := &pgx.Batch{}
	for _, e := range employees {
		batch.Queue(`
			INSERT INTO empleados_clientes (cliente_id, id_empleado, rfc, nombre_completo, status, validado_en_archivo)
			VALUES ($1, NULLIF($2, ''), $3, $4, 'activo', $5)
			ON CONFLICT (cliente_id, rfc) DO NOTHING`,
			e.CustomerID, e.ExternalID, e.RFC, e.Name, validationID)
	}
	res := r.q.SendBatch(ctx, batch)
	defer res.Close()

	inserted := 0
	for range employees {
		cmd, err := res.Exec()
		if err != nil {
			return inserted, wrapWrite("insert empleado", err)
		}
		inserted += int(cmd.RowsAffected())
	}
	return inserted, nil
}

// ListByCustomer empleados del cliente con el archivo que los validó.
func (r *EmployeeRepo) ListByCustomer(ctx context.Context, customerID int64) ([]*entity.Employee, error) {
	rows, err := r.q.Query(ctx, `
		SELECT ec.id, ec.cliente_id, COALESCE(ec.validado_en_archivo, 0), COALESCE(ec.id_empleado, ''),
		       ec.rfc, ec.nombre_completo, ec.fecha_alta, COALESCE(va.nombre_archivo, '')
		FROM empleados_clientes ec
		LEFT JOIN validaciones_archivo va ON va.id = ec.validado_en_archivo
		WHERE ec.cliente_id = $1
		ORDER BY ec.fecha_alta DESC, ec.id DESC`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list empleados: %w", err)
	}
	return collect(rows, "empleados", func(rows pgx.Rows) (*entity.Employee, error) {
		var e entity.Employee
		err := rows.Scan(&e.ID, &e.CustomerID, &e.ValidationID, &e.ExternalID, &e.RFC, &e.Name, &e.CreatedAt, &e.FileName)
		return &e, err
	})
}

// StartValidation registra la corrida en estado procesando.
func (r *EmployeeRepo) StartValidation(ctx context.Context, v *entity.FileValidation) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO validaciones_archivo (cliente_id, nombre_archivo, tipo_archivo, tarjetas_solicitadas, estado)
		VALUES ($1, $2, 'csv', $3, $4)
		RETURNING id, fecha_carga`,
		v.CustomerID, v.FileName, v.Requested, v.Status,
	).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return wrapWrite("insert validación de archivo", err)
	}
	return nil
}

// FinishValidation guarda contadores, detalle JSON y estado final.
func (r *EmployeeRepo) FinishValidation(ctx context.Context, v *entity.FileValidation) error {
	_, err := r.q.Exec(ctx, `
		UPDATE validaciones_archivo
		SET total_registros = $2, registros_validos = $3, registros_invalidos = $4,
		    registros_duplicados = $5, registros_insertados = $6, errores_detalle = $7, estado = $8
		WHERE id = $1`,
		v.ID, v.TotalRows, v.ValidRows, v.InvalidRows, v.DuplicateRows, v.InsertedRows, v.Detail, v.Status)
	if err != nil {
		return fmt.Errorf("update validación de archivo: %w", err)
	}
	return nil
}
