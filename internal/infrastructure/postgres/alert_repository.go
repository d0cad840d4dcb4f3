package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/smartstock-api/internal/domain/entity"
	"github.com/jhoicas/smartstock-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo alertas operativas.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

// Prioridad critica primero, luego las más recientes.
const alertSelect = `
	SELECT id, tipo, prioridad, entidad_tipo, entidad_id, mensaje, resuelta, fecha_creacion, fecha_resolucion
	FROM alertas`

const alertOrder = `
	ORDER BY CASE prioridad WHEN 'critica' THEN 1 WHEN 'alta' THEN 2 WHEN 'media' THEN 3 ELSE 4 END,
	         fecha_creacion DESC`

func (r *AlertRepo) Create(ctx context.Context, a *entity.Alert) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO alertas (tipo, prioridad, entidad_tipo, entidad_id, mensaje)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, fecha_creacion`,
		a.Type, a.Priority, a.EntityType, a.EntityID, a.Message,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return wrapWrite("insert alerta", err)
	}
	return nil
}

func (r *AlertRepo) List(ctx context.Context) ([]*entity.Alert, error) {
	return r.list(ctx, alertSelect+alertOrder)
}

func (r *AlertRepo) ListUnresolved(ctx context.Context) ([]*entity.Alert, error) {
	return r.list(ctx, alertSelect+` WHERE resuelta = FALSE`+alertOrder)
}

func (r *AlertRepo) list(ctx context.Context, query string) ([]*entity.Alert, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list alertas: %w", err)
	}
	return collect(rows, "alertas", func(rows pgx.Rows) (*entity.Alert, error) {
		var a entity.Alert
		err := rows.Scan(&a.ID, &a.Type, &a.Priority, &a.EntityType, &a.EntityID, &a.Message, &a.Resolved, &a.CreatedAt, &a.ResolvedAt)
		return &a, err
	})
}

// Resolve marca la alerta como resuelta; resolverla otra vez no cambia la fecha.
func (r *AlertRepo) Resolve(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE alertas
		SET resuelta = TRUE, fecha_resolucion = COALESCE(fecha_resolucion, CURRENT_TIMESTAMP)
		WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("resolver alerta: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *AlertRepo) ExistsUnresolved(ctx context.Context, alertType, entityType string, entityID int64) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM alertas
			WHERE tipo = $1 AND entidad_tipo = $2 AND entidad_id = $3 AND resuelta = FALSE
		)`, alertType, entityType, entityID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("buscar alerta abierta: %w", err)
	}
	return ok, nil
}
