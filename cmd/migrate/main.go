// Command migrate aplica el esquema embebido (tablas, vistas y validar_pedido) sobre la base configurada.
package main

import (
	"context"
	"os"
	"time"

	"github.com/jhoicas/smartstock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/smartstock-api/migrations"
	"github.com/jhoicas/smartstock-api/pkg/config"
	"github.com/jhoicas/smartstock-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	}).Component("migrate")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("conexión a PostgreSQL")
		os.Exit(1)
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool, migrations.FS)
	if err != nil {
		log.Error().Err(err).Int("aplicadas", applied).Msg("migración fallida")
		os.Exit(1)
	}
	log.Info().Int("aplicadas", applied).Msg("esquema al día")
}
