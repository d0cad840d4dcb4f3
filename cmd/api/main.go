package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/smartstock-api/internal/application/inventory"
	"github.com/jhoicas/smartstock-api/internal/application/ordering"
	"github.com/jhoicas/smartstock-api/internal/application/payroll"
	"github.com/jhoicas/smartstock-api/internal/application/shipping"
	"github.com/jhoicas/smartstock-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/smartstock-api/internal/infrastructure/pdf"
	"github.com/jhoicas/smartstock-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/smartstock-api/internal/interfaces/http"
	"github.com/jhoicas/smartstock-api/migrations"
	"github.com/jhoicas/smartstock-api/pkg/config"
	"github.com/jhoicas/smartstock-api/pkg/logger"
	"github.com/jhoicas/smartstock-api/pkg/metrics"
	"github.com/jhoicas/smartstock-api/pkg/tracing"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("version", version).
		Msg("iniciando aplicación")

	ctx := context.Background()

	shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		ServiceName: cfg.Telemetry.ServiceName,
		Version:     version,
		Insecure:    cfg.Telemetry.OTLPInsecure,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("configurar trazas")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		n, err := postgres.Migrate(ctx, pool, migrations.FS)
		if err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		log.Info().Int("aplicadas", n).Msg("migraciones al día")
	}

	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	contractRepo := postgres.NewContractRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	stateRepo := postgres.NewInventoryStateRepository(pool)
	historyRepo := postgres.NewStockHistoryRepository(pool)
	shipmentRepo := postgres.NewShipmentRepository(pool)
	courierRepo := postgres.NewCourierRepository(pool)
	ticketRepo := postgres.NewTicketRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	deps := httpRouter.RouterDeps{
		CustomerUC: usecase.NewCustomerUseCase(customerRepo),
		ProductUC:  usecase.NewProductUseCase(productRepo),
		ContractUC: usecase.NewContractUseCase(contractRepo),
		AlertUC:    usecase.NewAlertUseCase(alertRepo, contractRepo, productRepo),
		CourierUC:  usecase.NewCourierUseCase(courierRepo, shipmentRepo),
		TicketUC:   usecase.NewTicketUseCase(ticketRepo, customerRepo),
		Ordering:   ordering.NewUseCase(txRunner, orderRepo, contractRepo),
		Shipping:   shipping.NewUseCase(txRunner, shipmentRepo, courierRepo, infrapdf.NewLabelGenerator(cfg.App.Name)),
		Inventory:  inventory.NewUseCase(txRunner, productRepo, stateRepo, historyRepo),
		Payroll:    payroll.NewUseCase(employeeRepo),

		UploadDir:      cfg.Upload.Dir,
		UploadMaxBytes: cfg.Upload.MaxBytes(),
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimitMB << 20,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	app.Use(recover.New(recover.Config{EnableStackTrace: cfg.App.IsDevelopment()}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigin,
		AllowMethods: "GET,POST,PUT,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
	}))

	if cfg.Telemetry.MetricsEnabled {
		if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
			log.Fatal().Err(err).Msg("registrar métricas")
		}
		app.Use(metrics.Middleware())
		app.Get("/metrics", metrics.Handler())
	}

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "SmartStock API",
	}))

	app.Get("/health", httpRouter.Health(func(ctx context.Context) (time.Time, error) {
		return postgres.Ping(ctx, pool)
	}))

	httpRouter.Router(app, deps)
	app.Use(httpRouter.NotFound)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("cierre del exportador de trazas")
	}

	log.Info().Msg("aplicación detenida")
}
