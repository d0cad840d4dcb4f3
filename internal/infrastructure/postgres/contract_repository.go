package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/smartstock-api/internal/domain"
	"github.com/jhoicas/smartstock-api/internal/domain/entity"
	"github.com/jhoicas/smartstock-api/internal/domain/repository"
)

var _ repository.ContractRepository = (*ContractRepo)(nil)

// ContractRepo contratos y vistas derivadas (v_salud_contratos).
type ContractRepo struct {
	q Querier
}

// NewContractRepository construye el adaptador. Pasar pool o tx (Querier).
func NewContractRepository(q Querier) *ContractRepo {
	return &ContractRepo{q: q}
}

const contractSelect = `
	SELECT c.id, c.cliente_id, c.producto_id, c.tarjetas_maximas, c.tarjetas_emitidas,
	       c.tarjetas_activas, c.tarjetas_inactivas, c.status, cl.nombre, p.nombre
	FROM contratos c
	JOIN clientes cl ON cl.id = c.cliente_id
	JOIN productos p ON p.id = c.producto_id`

func scanContract(row pgx.Row) (*entity.Contract, error) {
	var c entity.Contract
	err := row.Scan(&c.ID, &c.CustomerID, &c.ProductID, &c.MaxCards, &c.Issued,
		&c.Active, &c.Inactive, &c.Status, &c.CustomerName, &c.ProductName)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContractRepo) GetByID(ctx context.Context, id int64) (*entity.Contract, error) {
	return r.get(ctx, contractSelect+` WHERE c.id = $1`, id)
}

// GetForUpdate bloquea solo la fila del contrato; producto y cliente se leen sin bloqueo.
func (r *ContractRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Contract, error) {
	return r.get(ctx, contractSelect+` WHERE c.id = $1 FOR UPDATE OF c`, id)
}

func (r *ContractRepo) get(ctx context.Context, query string, id int64) (*entity.Contract, error) {
	c, err := scanContract(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contrato: %w", err)
	}
	return c, nil
}

// ResolveID prefiere el contrato vigente y, entre iguales, el más reciente.
func (r *ContractRepo) ResolveID(ctx context.Context, customerID, productID int64) (int64, error) {
	query := `
		SELECT id FROM contratos
		WHERE cliente_id = $1 AND producto_id = $2
		ORDER BY (status = $3) DESC, id DESC
		LIMIT 1`
	var id int64
	err := r.q.QueryRow(ctx, query, customerID, productID, entity.ContractStatusActive).Scan(&id)
	if err != nil {
		if noRows(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("resolver contrato: %w", err)
	}
	return id, nil
}

// ValidateOrder invoca validar_pedido(contrato, cantidad) -> (puede_aprobar, razon).
func (r *ContractRepo) ValidateOrder(ctx context.Context, contractID int64, quantity int) (*entity.OrderVerdict, error) {
	var v entity.OrderVerdict
	err := r.q.QueryRow(ctx, `SELECT puede_aprobar, razon FROM validar_pedido($1, $2)`, contractID, quantity).
		Scan(&v.Approved, &v.Reason)
	if err != nil {
		if noRows(err) {
			return nil, fmt.Errorf("contrato %d: %w", contractID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("validar_pedido: %w", err)
	}
	return &v, nil
}

// AddIssued suma quantity a emitidas e inactivas (las tarjetas nuevas nacen inactivas).
func (r *ContractRepo) AddIssued(ctx context.Context, id int64, quantity int) error {
	_, err := r.q.Exec(ctx, `
		UPDATE contratos
		SET tarjetas_emitidas = tarjetas_emitidas + $1,
		    tarjetas_inactivas = tarjetas_inactivas + $1
		WHERE id = $2`, quantity, id)
	if err != nil {
		return wrapWrite("update contrato", err)
	}
	return nil
}

func (r *ContractRepo) List(ctx context.Context) ([]*entity.Contract, error) {
	return r.list(ctx, contractSelect+` ORDER BY c.id`)
}

func (r *ContractRepo) ListByCustomer(ctx context.Context, customerID int64) ([]*entity.Contract, error) {
	return r.list(ctx, contractSelect+` WHERE c.cliente_id = $1 ORDER BY c.id`, customerID)
}

func (r *ContractRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Contract, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contratos: %w", err)
	}
	return collect(rows, "contratos", func(rows pgx.Rows) (*entity.Contract, error) { return scanContract(rows) })
}

// Health lee v_salud_contratos ordenada del menor al mayor uso.
func (r *ContractRepo) Health(ctx context.Context) ([]*entity.ContractHealth, error) {
	query := `
		SELECT contrato_id, cliente_id, cliente, producto, tarjetas_permitidas, tarjetas_emitidas,
		       tarjetas_activas, tarjetas_inactivas, porcentaje_uso, nivel_salud
		FROM v_salud_contratos
		ORDER BY porcentaje_uso ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("salud de contratos: %w", err)
	}
	return collect(rows, "salud de contratos", func(rows pgx.Rows) (*entity.ContractHealth, error) {
		var h entity.ContractHealth
		err := rows.Scan(&h.ContractID, &h.CustomerID, &h.CustomerName, &h.ProductName, &h.MaxCards,
			&h.Issued, &h.Active, &h.Inactive, &h.UsagePct, &h.HealthLevel)
		return &h, err
	})
}

// Summary agrega la vista de salud; con cero contratos todos los totales son 0.
func (r *ContractRepo) Summary(ctx context.Context) (*entity.ContractSummary, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE nivel_salud = $1),
		       COUNT(*) FILTER (WHERE nivel_salud = $2),
		       COUNT(*) FILTER (WHERE nivel_salud = $3),
		       COUNT(*) FILTER (WHERE nivel_salud = $4),
		       COALESCE(ROUND(AVG(porcentaje_uso), 1), 0),
		       COALESCE(SUM(tarjetas_permitidas), 0),
		       COALESCE(SUM(tarjetas_emitidas), 0),
		       COALESCE(SUM(tarjetas_activas), 0)
		FROM v_salud_contratos`
	var s entity.ContractSummary
	err := r.q.QueryRow(ctx, query, entity.HealthCritical, entity.HealthAtRisk, entity.HealthAcceptable, entity.HealthOptimal).
		Scan(&s.Total, &s.Critical, &s.AtRisk, &s.Acceptable, &s.Optimal, &s.AvgUsagePct, &s.TotalMax, &s.TotalIssued, &s.TotalActive)
	if err != nil {
		return nil, fmt.Errorf("resumen de contratos: %w", err)
	}
	return &s, nil
}

// AvailableProducts productos con contrato vigente del cliente y su cupo restante.
func (r *ContractRepo) AvailableProducts(ctx context.Context, customerID int64) ([]*entity.AvailableProduct, error) {
	query := `
		SELECT c.id, p.id, p.nombre, p.stock_actual, c.tarjetas_maximas, c.tarjetas_emitidas,
		       c.tarjetas_maximas - c.tarjetas_emitidas
		FROM contratos c
		JOIN productos p ON p.id = c.producto_id
		WHERE c.cliente_id = $1 AND c.status = $2
		ORDER BY p.nombre`
	rows, err := r.q.Query(ctx, query, customerID, entity.ContractStatusActive)
	if err != nil {
		return nil, fmt.Errorf("productos disponibles: %w", err)
	}
	return collect(rows, "productos disponibles", func(rows pgx.Rows) (*entity.AvailableProduct, error) {
		var a entity.AvailableProduct
		err := rows.Scan(&a.ContractID, &a.ProductID, &a.ProductName, &a.StockCurrent, &a.MaxCards, &a.Issued, &a.Remaining)
		return &a, err
	})
}
