package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/smartstock-api/internal/domain/entity"
	"github.com/jhoicas/smartstock-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, nombre, rfc, contacto_email, COALESCE(contacto_tel, ''), COALESCE(direccion, ''), password, status, fecha_registro`

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(&c.ID, &c.Name, &c.RFC, &c.Email, &c.Phone, &c.Address, &c.PasswordHash, &c.Status, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un nuevo cliente y completa ID y CreatedAt.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO clientes (nombre, rfc, contacto_email, contacto_tel, direccion, password, status)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7)
		RETURNING id, fecha_registro`
	err := r.q.QueryRow(ctx, query, c.Name, c.RFC, c.Email, c.Phone, c.Address, c.PasswordHash, c.Status).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return wrapWrite("insert cliente", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx, `SELECT `+customerColumns+` FROM clientes WHERE id = $1`, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return c, nil
}

// GetByName busca por nombre exacto (login).
func (r *CustomerRepo) GetByName(ctx context.Context, name string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx, `SELECT `+customerColumns+` FROM clientes WHERE nombre = $1 LIMIT 1`, name))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente por nombre: %w", err)
	}
	return c, nil
}

func (r *CustomerRepo) ExistsByRFC(ctx context.Context, rfc string, excludeID int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM clientes WHERE rfc = $1 AND id <> $2)`, rfc, excludeID)
}

func (r *CustomerRepo) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM clientes WHERE lower(contacto_email) = lower($1) AND id <> $2)`, email, excludeID)
}

func (r *CustomerRepo) exists(ctx context.Context, query string, value string, excludeID int64) (bool, error) {
	var ok bool
	if err := r.q.QueryRow(ctx, query, value, excludeID).Scan(&ok); err != nil {
		return false, fmt.Errorf("verificar unicidad de cliente: %w", err)
	}
	return ok, nil
}

// Update actualiza los datos editables; la contraseña solo cambia si PasswordHash no está vacío.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	query := `
		UPDATE clientes
		SET nombre = $2, rfc = $3, contacto_email = $4, contacto_tel = NULLIF($5, ''),
		    direccion = NULLIF($6, ''), status = $7,
		    password = COALESCE(NULLIF($8, ''), password)
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, c.ID, c.Name, c.RFC, c.Email, c.Phone, c.Address, c.Status, c.PasswordHash)
	if err != nil {
		return wrapWrite("update cliente", err)
	}
	return nil
}

// ListActive clientes con status activo ordenados por nombre.
func (r *CustomerRepo) ListActive(ctx context.Context) ([]*entity.Customer, error) {
	rows, err := r.q.Query(ctx, `SELECT `+customerColumns+` FROM clientes WHERE status = $1 ORDER BY nombre`, entity.CustomerStatusActive)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	return collect(rows, "clientes", func(rows pgx.Rows) (*entity.Customer, error) { return scanCustomer(rows) })
}
