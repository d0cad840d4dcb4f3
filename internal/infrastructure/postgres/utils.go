package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/smartstock-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isCheckViolation 23514: por ejemplo stock_actual >= 0 en productos.
func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23514"
}

// wrapWrite traduce errores de escritura: 23505 -> ErrConflict, 23514 -> ErrBusinessRule.
func wrapWrite(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	case isCheckViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrBusinessRule)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// noRows indica si el error es "sin filas"; los repositorios devuelven nil, nil en ese caso.
func noRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// collect recorre rows aplicando scan a cada fila.
func collect[T any](rows pgx.Rows, op string, scan func(pgx.Rows) (*T, error)) ([]*T, error) {
	defer rows.Close()
	var list []*T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", op, err)
		}
		list = append(list, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}
