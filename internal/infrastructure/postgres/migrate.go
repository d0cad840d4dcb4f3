package postgres

import (
	"context"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Migrate aplica en orden los .sql de fsys que aún no estén en schema_migrations.
// Cada archivo corre en su propia transacción junto con su registro.
func Migrate(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS) (int, error) {
	if _, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			nombre     VARCHAR(255) PRIMARY KEY,
			aplicada_en TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`); err != nil {
		return 0, fmt.Errorf("crear schema_migrations: %w", err)
	}

	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return 0, fmt.Errorf("listar migraciones: %w", err)
	}
	sort.Strings(names)

	applied := 0
	for _, name := range names {
		var done bool
		if err := pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE nombre = $1)`, name).Scan(&done); err != nil {
			return applied, fmt.Errorf("consultar migración %s: %w", name, err)
		}
		if done {
			continue
		}
		script, err := fs.ReadFile(fsys, name)
		if err != nil {
			return applied, fmt.Errorf("leer %s: %w", name, err)
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return applied, fmt.Errorf("begin transaction: %w", err)
		}
		// Exec sin argumentos usa el protocolo simple: admite varias sentencias por archivo.
		if _, err := tx.Exec(ctx, string(script)); err != nil {
			_ = tx.Rollback(ctx)
			return applied, fmt.Errorf("aplicar %s: %w", name, err)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (nombre) VALUES ($1)`, name); err != nil {
			_ = tx.Rollback(ctx)
			return applied, fmt.Errorf("registrar %s: %w", name, err)
		}
		if err := tx.Commit(ctx); err != nil {
			return applied, fmt.Errorf("commit %s: %w", name, err)
		}
		log.Info().Str("migracion", name).Msg("migración aplicada")
		applied++
	}
	return applied, nil
}
